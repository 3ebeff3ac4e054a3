package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"hackathon-management-system/models"
	"hackathon-management-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// HackathonService manages the hackathon lifecycle: CRUD, banner uploads,
// and publish scheduling. Mutations are organizer-only.
type HackathonService struct {
	DB *gorm.DB
}

func NewHackathonService(db *gorm.DB) *HackathonService {
	return &HackathonService{DB: db}
}

func makeSlug(eventName string) string {
	// Short uuid suffix keeps slugs unique across same-named events.
	return fmt.Sprintf("%s-%s", slug.Make(eventName), uuid.NewString()[:8])
}

// Create handles POST /hackathons (multipart form, optional banner).
func (s *HackathonService) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	eventName := c.FormValue("event_name")
	description := c.FormValue("description")
	theme := c.FormValue("theme")
	mode := c.FormValue("mode", "online")
	venue := c.FormValue("venue")
	prizePool := c.FormValue("prize_pool")
	startTimeStr := c.FormValue("start_time")
	endTimeStr := c.FormValue("end_time")
	deadlineStr := c.FormValue("deadline")
	participationType := c.FormValue("participation_type", models.ParticipationIndividual)
	minTeamStr := c.FormValue("min_team_size")
	maxTeamStr := c.FormValue("max_team_size")
	publishScheduleStr := c.FormValue("publish_schedule")

	if eventName == "" || startTimeStr == "" {
		return respondError(c, ValidationError("event_name and start_time are required"))
	}

	switch participationType {
	case models.ParticipationIndividual, models.ParticipationTeam:
	default:
		return respondError(c, ValidationError("participation_type must be individual or team"))
	}

	switch mode {
	case "online", "offline", "hybrid":
	default:
		return respondError(c, ValidationError("mode must be online, offline or hybrid"))
	}

	startTime, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		return respondError(c, ValidationError("invalid start_time (use RFC3339)"))
	}

	var endTime time.Time
	if endTimeStr != "" {
		endTime, err = time.Parse(time.RFC3339, endTimeStr)
		if err != nil {
			return respondError(c, ValidationError("invalid end_time (use RFC3339)"))
		}
	}

	var deadline *time.Time
	if deadlineStr != "" {
		d, err := time.Parse(time.RFC3339, deadlineStr)
		if err != nil {
			return respondError(c, ValidationError("invalid deadline (use RFC3339)"))
		}
		deadline = &d
	}

	var publishSchedule *time.Time
	if publishScheduleStr != "" {
		p, err := time.Parse(time.RFC3339, publishScheduleStr)
		if err != nil {
			return respondError(c, ValidationError("invalid publish_schedule (use RFC3339)"))
		}
		publishSchedule = &p
	}

	minTeam, maxTeam := 0, 0
	if minTeamStr != "" {
		if n, err := strconv.Atoi(minTeamStr); err == nil && n >= 0 {
			minTeam = n
		} else {
			return respondError(c, ValidationError("min_team_size must be a non-negative integer"))
		}
	}
	if maxTeamStr != "" {
		if n, err := strconv.Atoi(maxTeamStr); err == nil && n >= 0 {
			maxTeam = n
		} else {
			return respondError(c, ValidationError("max_team_size must be a non-negative integer"))
		}
	}
	if minTeam > 0 && maxTeam > 0 && minTeam > maxTeam {
		return respondError(c, ValidationError("min_team_size cannot exceed max_team_size"))
	}

	hackathonID := uuid.NewString()

	var bannerURL string
	if banner, err := c.FormFile("banner"); err == nil && banner.Size > 0 {
		ext := filepath.Ext(banner.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		url, err := utils.StoreUpload(banner, "hackathons/banners/"+hackathonID+ext)
		if err != nil {
			log.Printf("[Hackathons] banner upload failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to upload banner"})
		}
		bannerURL = url
	}

	hackathon := &models.Hackathon{
		ID:                hackathonID,
		Slug:              makeSlug(eventName),
		EventName:         eventName,
		Description:       description,
		Theme:             theme,
		Mode:              mode,
		Venue:             venue,
		BannerURL:         bannerURL,
		PrizePool:         prizePool,
		OrganizerID:       userID,
		StartTime:         startTime,
		EndTime:           endTime,
		Deadline:          deadline,
		ParticipationType: participationType,
		MinTeamSize:       minTeam,
		MaxTeamSize:       maxTeam,
		Status:            models.HackathonStatusDraft,
		PublishSchedule:   publishSchedule,
	}

	if err := s.DB.Create(hackathon).Error; err != nil {
		log.Printf("[Hackathons] insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(hackathon)
}

// ListPublished handles GET /hackathons (public listing).
func (s *HackathonService) ListPublished(c *fiber.Ctx) error {
	var hackathons []models.Hackathon
	err := s.DB.Where("status = ?", models.HackathonStatusPublished).
		Order("start_time ASC").
		Find(&hackathons).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "failed to fetch hackathons"})
	}

	for i := range hackathons {
		s.DB.Model(&models.HackathonRegistration{}).
			Where("hackathon_id = ?", hackathons[i].ID).
			Count(&hackathons[i].RegistrationsCount)
	}
	return c.JSON(hackathons)
}

// Get handles GET /hackathons/:id. Accepts an ID or a slug.
func (s *HackathonService) Get(c *fiber.Ctx) error {
	key := c.Params("id")

	var hackathon models.Hackathon
	err := s.DB.Preload("Organizer").
		Where("id = ? OR slug = ?", key, key).
		First(&hackathon).Error
	if err != nil {
		return respondError(c, NotFoundError("hackathon not found"))
	}

	s.DB.Model(&models.HackathonRegistration{}).
		Where("hackathon_id = ?", hackathon.ID).
		Count(&hackathon.RegistrationsCount)
	return c.JSON(hackathon)
}

// Mine handles GET /hackathons/mine, the caller's own hackathons in any status.
func (s *HackathonService) Mine(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var hackathons []models.Hackathon
	err := s.DB.Where("organizer_id = ?", userID).
		Order("created_at DESC").
		Find(&hackathons).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "failed to fetch hackathons"})
	}
	return c.JSON(hackathons)
}

// Update handles PUT /hackathons/:id (organizer only).
func (s *HackathonService) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	hackathon, err := requireOrganizer(s.DB, userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if hackathon.IsFinalized {
		return respondError(c, ClosedError("hackathon results are finalized"))
	}

	if v := c.FormValue("event_name"); v != "" {
		hackathon.EventName = v
	}
	if v := c.FormValue("description"); v != "" {
		hackathon.Description = v
	}
	if v := c.FormValue("theme"); v != "" {
		hackathon.Theme = v
	}
	if v := c.FormValue("venue"); v != "" {
		hackathon.Venue = v
	}
	if v := c.FormValue("prize_pool"); v != "" {
		hackathon.PrizePool = v
	}
	if v := c.FormValue("deadline"); v != "" {
		d, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return respondError(c, ValidationError("invalid deadline (use RFC3339)"))
		}
		hackathon.Deadline = &d
	}
	if v := c.FormValue("min_team_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return respondError(c, ValidationError("min_team_size must be a non-negative integer"))
		}
		hackathon.MinTeamSize = n
	}
	if v := c.FormValue("max_team_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return respondError(c, ValidationError("max_team_size must be a non-negative integer"))
		}
		hackathon.MaxTeamSize = n
	}

	if banner, err := c.FormFile("banner"); err == nil && banner.Size > 0 {
		ext := filepath.Ext(banner.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		url, err := utils.StoreUpload(banner, "hackathons/banners/"+hackathon.ID+ext)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to upload banner"})
		}
		hackathon.BannerURL = url
	}

	if err := s.DB.Save(hackathon).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB update failed"})
	}
	return c.JSON(hackathon)
}

// Delete handles DELETE /hackathons/:id (organizer only, drafts only).
func (s *HackathonService) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	hackathon, err := requireOrganizer(s.DB, userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if hackathon.Status != models.HackathonStatusDraft {
		return respondError(c, StateError("only draft hackathons can be deleted"))
	}

	if err := s.DB.Delete(hackathon).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB delete failed"})
	}
	return c.JSON(fiber.Map{"message": "Hackathon deleted"})
}

// PublishNow handles POST /hackathons/:id/publish/now.
func (s *HackathonService) PublishNow(c *fiber.Ctx) error {
	return s.transitionPublish(c, func(h *models.Hackathon) error {
		now := time.Now()
		h.Status = models.HackathonStatusPublished
		h.PublishedAt = &now
		h.PublishSchedule = nil
		return nil
	})
}

// SchedulePublish handles POST /hackathons/:id/publish/schedule.
func (s *HackathonService) SchedulePublish(c *fiber.Ctx) error {
	var body struct {
		PublishAt string `json:"publish_at"`
	}
	if err := c.BodyParser(&body); err != nil || body.PublishAt == "" {
		return respondError(c, ValidationError("publish_at is required (RFC3339)"))
	}
	at, err := time.Parse(time.RFC3339, body.PublishAt)
	if err != nil {
		return respondError(c, ValidationError("invalid publish_at (use RFC3339)"))
	}
	if at.Before(time.Now()) {
		return respondError(c, ValidationError("publish_at must be in the future"))
	}

	return s.transitionPublish(c, func(h *models.Hackathon) error {
		h.PublishSchedule = &at
		return nil
	})
}

// CancelScheduledPublish handles POST /hackathons/:id/publish/cancel.
func (s *HackathonService) CancelScheduledPublish(c *fiber.Ctx) error {
	return s.transitionPublish(c, func(h *models.Hackathon) error {
		if h.PublishSchedule == nil {
			return StateError("no scheduled publish to cancel")
		}
		h.PublishSchedule = nil
		return nil
	})
}

func (s *HackathonService) transitionPublish(c *fiber.Ctx, mutate func(*models.Hackathon) error) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	hackathon, err := requireOrganizer(s.DB, userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if hackathon.Status != models.HackathonStatusDraft {
		return respondError(c, StateError("hackathon is not in draft status"))
	}
	if err := mutate(hackathon); err != nil {
		return respondError(c, err)
	}
	if err := s.DB.Save(hackathon).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB update failed"})
	}
	return c.JSON(hackathon)
}
