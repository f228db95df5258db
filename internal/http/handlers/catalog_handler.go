package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookstore/internal/domain"
	"bookstore/internal/services"
)

// catalogText holds the response wording of one product table.
type catalogText struct {
	ListKey      string
	Action       string
	ListFailed   string
	Added        string
	AddFailed    string
	Removed      string
	RemoveFailed string
}

var (
	productsText = catalogText{
		ListKey:      "productsList",
		Action:       "products",
		ListFailed:   "Failed to load products",
		Added:        "Product added successfully",
		AddFailed:    "Failed to add product",
		Removed:      "Product removed successfully",
		RemoveFailed: "Failed to remove product",
	}
	newArrivalsText = catalogText{
		ListKey:      "newArrivalList",
		Action:       "new_arrivals",
		ListFailed:   "Failed to load new arrivals",
		Added:        "New arrival added successfully",
		AddFailed:    "Failed to add new arrival",
		Removed:      "New arrival removed successfully",
		RemoveFailed: "Failed to remove new arrival",
	}
)

// CatalogHandler serves one product table: the home catalog or the new arrivals.
type CatalogHandler struct {
	Catalog *services.CatalogService
	Text    catalogText
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return fail(c, h.Text.Action+".list", err, h.Text.ListFailed)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(fiber.Map{h.Text.ListKey: products})
}

func (h *CatalogHandler) Save(c *fiber.Ctx) error {
	var req productRequest
	if !bind(c, &req) || req.Details == nil {
		return badRequest(c, h.Text.Action+".save", "Invalid product data")
	}
	p, err := h.Catalog.Save(c.UserContext(), req.Details)
	if err != nil {
		return fail(c, h.Text.Action+".save", err, h.Text.AddFailed)
	}
	return ok(c, h.Text.Action+".save", h.Text.Added, map[string]any{"id": p.ID})
}

func (h *CatalogHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Remove(c.UserContext(), id); err != nil {
		return fail(c, h.Text.Action+".remove", err, h.Text.RemoveFailed)
	}
	return ok(c, h.Text.Action+".remove", h.Text.Removed, map[string]any{"id": id})
}
