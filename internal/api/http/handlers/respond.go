package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// success renders the service-wide success envelope.
func success(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// ok renders a 200 success envelope.
func ok(c *fiber.Ctx, data any) error {
	return success(c, http.StatusOK, data)
}
