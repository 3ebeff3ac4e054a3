package handlers

import (
	"hackathon-management-system/middleware"
	"hackathon-management-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSubmissionRoutes(app *fiber.App, submissionService *services.SubmissionService, scoringService *services.ScoringService) {
	secured := app.Group("/submissions", middleware.RequireAuth())

	secured.Post("/hackathons/:id", submissionService.Submit)
	secured.Get("/hackathons/:id", submissionService.List)
	secured.Get("/hackathons/:id/my-submission", submissionService.Mine)
	secured.Get("/:id", submissionService.Get)
	secured.Put("/:id", submissionService.Update)

	// Judge-or-organizer gated inside the service
	secured.Post("/:id/score", scoringService.ScoreSubmission)
}
