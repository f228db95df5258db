package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookstore/internal/services"
)

// ListHandler serves the wishlist or the cart.
type ListHandler struct {
	List *services.ListService
	// Noun completes the response messages: "Product added to <Noun>".
	Noun string
}

func (h *ListHandler) Add(c *fiber.Ctx) error {
	var req listEntryRequest
	if !bind(c, &req) || req.Details == nil {
		return badRequest(c, h.Noun+".add", "Invalid product data")
	}
	if err := h.List.Add(c.UserContext(), req.Details); err != nil {
		return fail(c, h.Noun+".add", err, "Failed to add product to "+h.Noun)
	}
	id, _ := req.Details.ID()
	return ok(c, h.Noun+".add", "Product added to "+h.Noun, map[string]any{"id": id})
}

func (h *ListHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.List.Remove(c.UserContext(), id); err != nil {
		return fail(c, h.Noun+".remove", err, "Failed to remove product from "+h.Noun)
	}
	return ok(c, h.Noun+".remove", "Product removed from "+h.Noun, map[string]any{"id": id})
}

type UserHandler struct {
	Users *services.UserService
}

// Lists returns the wishlist and cart together.
func (h *UserHandler) Lists(c *fiber.Ctx) error {
	lists, err := h.Users.Lists(c.UserContext())
	if err != nil {
		return fail(c, "user.lists", err, "An unexpected error occurred")
	}
	return c.JSON(userResponse{User: lists})
}
