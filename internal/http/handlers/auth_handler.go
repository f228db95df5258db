package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookstore/internal/log"
	"bookstore/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if !bind(c, &req) || !req.complete() {
		return badRequest(c, "auth.signup", "Missing required fields")
	}
	id, err := h.Auth.Signup(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, "auth.signup", err, "An unexpected error occurred")
	}
	applog.Audit(c.Status(fiber.StatusOK), "auth.signup.success", map[string]any{"user_id": id, "email": req.Email})
	return c.JSON(statusResponse{Status: "ok"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !bind(c, &req) || !req.complete() {
		return badRequest(c, "auth.login", "Email and password are required")
	}
	u, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, "auth.login", err, "An unexpected error occurred")
	}
	applog.Audit(c.Status(fiber.StatusOK), "auth.login.success", map[string]any{"user_id": u.ID, "email": req.Email})
	return c.JSON(loginResponse{Status: "ok", User: u.ID})
}
