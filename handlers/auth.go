package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	auth := app.Group("/auth")

	auth.Post("/register", authService.Register)
	auth.Post("/login", authService.Login)
	auth.Get("/logout", authService.Logout)

	secured := auth.Group("/", middleware.RequireAuth())
	secured.Get("/me", authService.Me)
	secured.Put("/update", authService.Update)
}
