package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWinnerRoutes(app *fiber.App, winnerService *services.WinnerService) {
	// The winner board is public once finalized
	app.Get("/winners/hackathons/:id", winnerService.GetWinners)

	secured := app.Group("/winners", middleware.RequireAuth())
	secured.Post("/hackathons/:id/finalize", winnerService.Finalize)
}
