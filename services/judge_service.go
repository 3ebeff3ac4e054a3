package services

import (
	"errors"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JudgeService manages the judge panel of a hackathon. All mutations are
// organizer-only, enforced at the endpoint.
type JudgeService struct {
	DB *gorm.DB
}

func NewJudgeService(db *gorm.DB) *JudgeService {
	return &JudgeService{DB: db}
}

// requireJudgeOrOrganizer passes when userID is the hackathon's organizer or
// an assigned judge. Used by the scoring and submission-review endpoints.
func requireJudgeOrOrganizer(db *gorm.DB, userID uint, hackathonID string) error {
	var hackathon models.Hackathon
	if err := db.First(&hackathon, "id = ?", hackathonID).Error; err == nil {
		if hackathon.OrganizerID == userID {
			return nil
		}
	}

	var judge models.HackathonJudge
	err := db.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&judge).Error
	if err != nil {
		return AuthorizationError("you are not allowed to access this hackathon's submissions")
	}
	return nil
}

func requireOrganizer(db *gorm.DB, userID uint, hackathonID string) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	if err := db.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("hackathon not found")
		}
		return nil, err
	}
	if hackathon.OrganizerID != userID {
		return nil, AuthorizationError("only the organizer can manage this hackathon")
	}
	return &hackathon, nil
}

// AssignJudge adds userID to the hackathon's judge panel.
func (s *JudgeService) AssignJudge(hackathonID string, userID uint) (*models.HackathonJudge, *models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NotFoundError("user not found")
		}
		return nil, nil, err
	}

	var existing models.HackathonJudge
	err := s.DB.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&existing).Error
	if err == nil {
		return nil, nil, DuplicateError("user is already a judge")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	judge := models.HackathonJudge{
		ID:          uuid.NewString(),
		HackathonID: hackathonID,
		UserID:      userID,
	}
	if err := s.DB.Create(&judge).Error; err != nil {
		return nil, nil, err
	}
	return &judge, &user, nil
}

// RemoveJudge removes userID from the panel.
func (s *JudgeService) RemoveJudge(hackathonID string, userID uint) error {
	var judge models.HackathonJudge
	err := s.DB.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&judge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("judge not found")
		}
		return err
	}
	return s.DB.Delete(&judge).Error
}

// ListJudges returns the panel joined with user names.
func (s *JudgeService) ListJudges(hackathonID string) ([]models.HackathonJudge, error) {
	var judges []models.HackathonJudge
	err := s.DB.Preload("User").
		Where("hackathon_id = ?", hackathonID).
		Order("created_at ASC").
		Find(&judges).Error
	return judges, err
}

// ---- Fiber endpoints ----

// Assign handles POST /hackathons/:id/judges (organizer only).
func (s *JudgeService) Assign(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}
	hackathonID := c.Params("id")

	if _, err := requireOrganizer(s.DB, userID, hackathonID); err != nil {
		return respondError(c, err)
	}

	var body struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
		return respondError(c, ValidationError("user_id is required"))
	}

	judge, user, err := s.AssignJudge(hackathonID, body.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id": judge.UserID,
		"name":    user.Name,
	})
}

// List handles GET /hackathons/:id/judges.
func (s *JudgeService) List(c *fiber.Ctx) error {
	judges, err := s.ListJudges(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	type judgeView struct {
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
	}
	res := make([]judgeView, len(judges))
	for i, j := range judges {
		res[i] = judgeView{UserID: j.UserID, Name: j.User.Name}
	}
	return c.JSON(res)
}

// Remove handles DELETE /hackathons/:id/judges/:user_id (organizer only).
func (s *JudgeService) Remove(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}
	hackathonID := c.Params("id")

	if _, err := requireOrganizer(s.DB, userID, hackathonID); err != nil {
		return respondError(c, err)
	}

	judgeUserID, err := c.ParamsInt("user_id")
	if err != nil || judgeUserID <= 0 {
		return respondError(c, ValidationError("invalid judge user id"))
	}

	if err := s.RemoveJudge(hackathonID, uint(judgeUserID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Judge removed"})
}
