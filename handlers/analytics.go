package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalyticsRoutes(app *fiber.App, analyticsService *services.UserAnalyticsService) {
	secured := app.Group("/users/analytics", middleware.RequireAuth())
	secured.Get("/me", analyticsService.Mine)
}
