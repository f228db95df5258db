package services

import (
	"context"

	"bookstore/internal/apperr"
	"bookstore/internal/domain"
	"bookstore/internal/metrics"
)

type ListStore interface {
	Add(ctx context.Context, bookID string, p *domain.Product) error
	Remove(ctx context.Context, bookID string) error
	Products(ctx context.Context) ([]domain.Product, error)
}

// ListService manages the wishlist or the cart.
type ListService struct {
	Store   ListStore
	Metrics *metrics.AppMetrics
	Name    string
}

func NewListService(store ListStore, name string, m *metrics.AppMetrics) *ListService {
	return &ListService{Store: store, Metrics: m, Name: name}
}

// Add puts the book named by details on the list. A payload carrying only _id adds
// the reference without creating a product; otherwise the full product is required.
func (s *ListService) Add(ctx context.Context, details domain.ProductDetails) error {
	id, err := details.ID()
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid product data", err)
	}
	var p *domain.Product
	if !details.OnlyID() {
		full, err := decodeProduct(details)
		if err != nil {
			return err
		}
		p = &full
	}
	if err := s.Store.Add(ctx, id, p); err != nil {
		return apperr.Store("add to "+s.Name, err)
	}
	s.Metrics.ListEntryAdded(ctx, s.Name)
	return nil
}

func (s *ListService) Remove(ctx context.Context, bookID string) error {
	if err := s.Store.Remove(ctx, bookID); err != nil {
		return apperr.Store("remove from "+s.Name, err)
	}
	s.Metrics.ListEntryRemoved(ctx, s.Name)
	return nil
}

func (s *ListService) Products(ctx context.Context) ([]domain.Product, error) {
	out, err := s.Store.Products(ctx)
	if err != nil {
		return nil, apperr.Store("read "+s.Name, err)
	}
	return out, nil
}

type UserService struct {
	Wishlist *ListService
	Cart     *ListService
}

func NewUserService(wishlist, cart *ListService) *UserService {
	return &UserService{Wishlist: wishlist, Cart: cart}
}

// Lists returns the wishlist and cart contents.
func (s *UserService) Lists(ctx context.Context) (domain.UserLists, error) {
	w, err := s.Wishlist.Products(ctx)
	if err != nil {
		return domain.UserLists{}, err
	}
	c, err := s.Cart.Products(ctx)
	if err != nil {
		return domain.UserLists{}, err
	}
	return domain.UserLists{Wishlist: w, Cart: c}, nil
}
