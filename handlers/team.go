package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App, teamService *services.TeamService, registrationService *services.RegistrationService) {
	secured := app.Group("/teams", middleware.RequireAuth())

	secured.Post("/", teamService.Create)
	secured.Get("/me", teamService.Mine)
	secured.Get("/:id", teamService.Get)
	secured.Post("/:id/members", teamService.AddMemberEndpoint)
	secured.Delete("/:id/members/:user_id", teamService.RemoveMemberEndpoint)
	secured.Get("/:id/registrations", registrationService.ForTeam)
}
