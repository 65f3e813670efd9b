// middleware/json.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireJSON rejects any body-carrying request that does not declare a JSON
// body. Exact match on purpose: clients are expected to send the bare media
// type without parameters.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		if c.Get(fiber.HeaderContentType) != fiber.MIMEApplicationJSON {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
		}
		return c.Next()
	}
}
