package handlers

import (
	"github.com/jmoiron/sqlx"

	"bookstore/internal/auth"
	"bookstore/internal/config"
	"bookstore/internal/metrics"
	"bookstore/internal/repos"
	"bookstore/internal/services"
)

type Deps struct {
	ProductHandler    *CatalogHandler
	NewArrivalHandler *CatalogHandler
	WishlistHandler   *ListHandler
	CartHandler       *ListHandler
	UserHandler       *UserHandler
	AuthHandler       *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, m *metrics.AppMetrics) *Deps {
	prodRepo := repos.NewProductRepo(db, repos.Catalog)
	arrivalRepo := repos.NewProductRepo(db, repos.NewArrivals)
	wishRepo := repos.NewListRepo(db, repos.Wishlist)
	cartRepo := repos.NewListRepo(db, repos.Cart)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, string(repos.Catalog), m)
	arrivalSvc := services.NewCatalogService(arrivalRepo, string(repos.NewArrivals), m)
	wishSvc := services.NewListService(wishRepo, string(repos.Wishlist), m)
	cartSvc := services.NewListService(cartRepo, string(repos.Cart), m)
	authSvc := services.NewAuthService(userRepo, auth.Hasher{Cost: cfg.BcryptCost}, m)

	return &Deps{
		ProductHandler:    &CatalogHandler{Catalog: catalogSvc, Text: productsText},
		NewArrivalHandler: &CatalogHandler{Catalog: arrivalSvc, Text: newArrivalsText},
		WishlistHandler:   &ListHandler{List: wishSvc, Noun: "wishlist"},
		CartHandler:       &ListHandler{List: cartSvc, Noun: "cart"},
		UserHandler:       &UserHandler{Users: services.NewUserService(wishSvc, cartSvc)},
		AuthHandler:       &AuthHandler{Auth: authSvc},
	}
}
