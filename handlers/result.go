// handlers/result.go
package handlers

import (
	"georound-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupResultRoutes(app *fiber.App, resultService *services.ResultService) {
	app.Post("/results", resultService.RecordResult)
}
