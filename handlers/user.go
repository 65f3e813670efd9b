// handlers/user.go
package handlers

import (
	"georound-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	app.Post("/users", userService.CreateUser)
	app.Get("/locations/:token", userService.GetLocations)
}
