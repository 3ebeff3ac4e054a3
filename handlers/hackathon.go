package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupHackathonRoutes(app *fiber.App, hackathonService *services.HackathonService, registrationService *services.RegistrationService, judgeService *services.JudgeService) {
	// Public routes. Only published hackathons are discoverable
	app.Get("/hackathons", hackathonService.ListPublished)

	// Keep the auth middleware scoped to this prefix; a bare Group("/")
	// would guard every route registered after it, app-wide.
	secured := app.Group("/hackathons", middleware.RequireAuth())

	// Hackathon CRUD (organizer-gated inside the service)
	secured.Post("/", hackathonService.Create)
	secured.Get("/mine", hackathonService.Mine)
	secured.Get("/:id", hackathonService.Get)
	secured.Put("/:id", hackathonService.Update)
	secured.Delete("/:id", hackathonService.Delete)

	// Publish scheduling
	secured.Post("/:id/publish/now", hackathonService.PublishNow)
	secured.Post("/:id/publish/schedule", hackathonService.SchedulePublish)
	secured.Post("/:id/publish/cancel", hackathonService.CancelScheduledPublish)

	// Registrations scoped to a hackathon
	secured.Get("/:id/registrations", registrationService.ForHackathon)
	secured.Get("/:id/registrations/check", registrationService.Check)
	secured.Get("/:id/analytics", registrationService.Analytics)

	// Judge panel (organizer only for mutations)
	secured.Post("/:id/judges", judgeService.Assign)
	secured.Get("/:id/judges", judgeService.List)
	secured.Delete("/:id/judges/:user_id", judgeService.Remove)
}
