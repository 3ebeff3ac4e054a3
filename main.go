package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"hackathon-management-system/handlers"
	"hackathon-management-system/models"
	"hackathon-management-system/services"
	"hackathon-management-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // banners only, keep uploads small
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !utils.R2Enabled() {
		log.Println("R2 not configured, banners stored under ./uploads")
		if err := utils.EnsureUploadDir(); err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.HackathonTeam{},
		&models.HackathonTeamMember{},
		&models.HackathonRegistration{},
		&models.ProjectSubmission{},
		&models.JudgeScore{},
		&models.HackathonJudge{},
		&models.Winner{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	authService := services.NewAuthService(db, jwtSecret)
	hackathonService := services.NewHackathonService(db)
	teamService := services.NewTeamService(db)
	registrationService := services.NewRegistrationService(db)
	submissionService := services.NewSubmissionService(db)
	scoringService := services.NewScoringService(db)
	judgeService := services.NewJudgeService(db)
	winnerService := services.NewWinnerService(db)
	analyticsService := services.NewUserAnalyticsService(db)

	hackathonService.StartLifecycleScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupHackathonRoutes(app, hackathonService, registrationService, judgeService)
	handlers.SetupTeamRoutes(app, teamService, registrationService)
	handlers.SetupRegistrationRoutes(app, registrationService)
	handlers.SetupSubmissionRoutes(app, submissionService, scoringService)
	handlers.SetupWinnerRoutes(app, winnerService)
	handlers.SetupAnalyticsRoutes(app, analyticsService)

	app.Static("/uploads", "./uploads")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5100"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	log.Println("Hackathon lifecycle scheduler running (every 1m)")
	log.Printf("CORS configured for origins: %s", strings.Join(origins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")
}
