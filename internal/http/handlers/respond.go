package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"bookstore/internal/apperr"
	applog "bookstore/internal/log"
)

func ok(c *fiber.Ctx, action, message string, fields map[string]any) error {
	applog.Audit(c.Status(fiber.StatusOK), action, fields)
	return c.JSON(statusResponse{Status: "ok", Message: message})
}

// fail writes the error envelope for err. Storage and unhandled failures are logged in full
// and answered with the endpoint's generic message; client errors keep their own message.
func fail(c *fiber.Ctx, action string, err error, generic string) error {
	kind := apperr.KindOf(err)
	c.Status(apperr.Status(kind))
	msg := apperr.Message(err)
	switch kind {
	case apperr.Storage, apperr.Unhandled:
		applog.Error(c, action+".fail", err, nil)
		msg = generic
	default:
		applog.Security(c, action+".reject", map[string]any{"kind": kind.String(), "reason": err.Error()})
	}
	return c.JSON(statusResponse{Status: "error", Message: msg})
}

func badRequest(c *fiber.Ctx, action, message string) error {
	return fail(c, action, apperr.Invalid(message), "")
}

// bind decodes the raw request body into v regardless of Content-Type.
func bind(c *fiber.Ctx, v any) bool {
	return json.Unmarshal(c.Body(), v) == nil
}
