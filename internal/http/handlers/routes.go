package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"bookstore/internal/config"
	applog "bookstore/internal/log"
	"bookstore/internal/metrics"
)

// ErrorHandler is the last resort for errors no handler answered: it echoes the error text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	c.Status(code)
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	} else {
		applog.Security(c, "server.reject", map[string]any{"reason": err.Error()})
	}
	return c.JSON(statusResponse{Status: "error", Message: err.Error()})
}

func loginLimiter(cfg config.Config) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.LoginRateLimit,
		Expiration: cfg.LoginRateWindow,
		LimitReached: func(c *fiber.Ctx) error {
			c.Status(fiber.StatusTooManyRequests)
			applog.Security(c, "rate.login.hit", nil)
			return c.JSON(statusResponse{Status: "error", Message: "Too many attempts. Please try again later."})
		},
	})
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg config.Config, deps *Deps, m *metrics.AppMetrics) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Output: applog.Writer()}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(metrics.Middleware(m))
	app.Use(recover.New())

	api := app.Group("/api")

	// Catalog
	api.Get("/home/products", deps.ProductHandler.List)
	api.Post("/home/products", deps.ProductHandler.Save)
	api.Delete("/home/products/:id", deps.ProductHandler.Remove)

	// New arrivals
	api.Get("/newArrivalList", deps.NewArrivalHandler.List)
	api.Post("/newArrival", deps.NewArrivalHandler.Save)
	api.Delete("/newArrival/:id", deps.NewArrivalHandler.Remove)

	// Wishlist & cart
	api.Get("/user", deps.UserHandler.Lists)
	api.Patch("/wishlist", deps.WishlistHandler.Add)
	api.Delete("/wishlist/:id", deps.WishlistHandler.Remove)
	api.Patch("/cart", deps.CartHandler.Add)
	api.Delete("/cart/:id", deps.CartHandler.Remove)

	// Accounts
	api.Post("/signup", deps.AuthHandler.Signup)
	login := []fiber.Handler{deps.AuthHandler.Login}
	if cfg.LoginRateLimit > 0 {
		login = append([]fiber.Handler{loginLimiter(cfg)}, login...)
	}
	api.Post("/login", login...)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(statusResponse{Status: "error", Message: "Not found"})
	})
	return app
}
