package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRegistrationRoutes(app *fiber.App, registrationService *services.RegistrationService) {
	secured := app.Group("/registrations", middleware.RequireAuth())

	secured.Post("/", registrationService.Create)
	secured.Get("/me", registrationService.Mine)
	secured.Patch("/:id/status", registrationService.SetStatus)
}
