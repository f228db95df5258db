package services

import (
	"context"
	"errors"

	"bookstore/internal/apperr"
	"bookstore/internal/domain"
	"bookstore/internal/metrics"
)

type ProductStore interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) error
	DeleteByID(ctx context.Context, id string) error
}

// CatalogService manages one product table (the catalog or the new arrivals).
type CatalogService struct {
	Products ProductStore
	Metrics  *metrics.AppMetrics
	Name     string
}

func NewCatalogService(store ProductStore, name string, m *metrics.AppMetrics) *CatalogService {
	return &CatalogService{Products: store, Metrics: m, Name: name}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	out, err := s.Products.ListAll(ctx)
	if err != nil {
		return nil, apperr.Store("list "+s.Name, err)
	}
	return out, nil
}

// Save stores the product described by details, replacing any product with the same _id.
func (s *CatalogService) Save(ctx context.Context, details domain.ProductDetails) (domain.Product, error) {
	p, err := decodeProduct(details)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Products.Upsert(ctx, p); err != nil {
		return domain.Product{}, apperr.Store("upsert "+s.Name, err)
	}
	s.Metrics.ProductUpserted(ctx, s.Name)
	return p, nil
}

func (s *CatalogService) Remove(ctx context.Context, id string) error {
	if err := s.Products.DeleteByID(ctx, id); err != nil {
		return apperr.Store("delete "+s.Name, err)
	}
	s.Metrics.ProductDeleted(ctx, s.Name)
	return nil
}

func decodeProduct(details domain.ProductDetails) (domain.Product, error) {
	p, err := details.Product()
	if err == nil {
		return p, nil
	}
	var mf *domain.MissingFieldError
	if errors.As(err, &mf) {
		return domain.Product{}, apperr.New(apperr.Validation, "Missing field: "+mf.Field, err)
	}
	return domain.Product{}, apperr.New(apperr.Validation, "Invalid product data", err)
}
