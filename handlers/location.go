// handlers/location.go
package handlers

import (
	"georound-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(app *fiber.App, locationService *services.LocationService) {
	app.Post("/locations", locationService.RecordLocation)
}
