package services

import (
	"errors"
	"time"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationService validates and records entries into hackathons and
// computes per-hackathon registration analytics.
type RegistrationService struct {
	DB *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{DB: db}
}

// Register runs the full validation chain and records the registration.
// For individual hackathons teamID must be empty; for team hackathons the
// registering user must be a member of the team and the team size must fall
// within the hackathon's bounds (0 = no bound).
func (s *RegistrationService) Register(hackathonID string, userID uint, teamID string) (*models.HackathonRegistration, error) {
	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("hackathon not found")
		}
		return nil, err
	}

	if hackathon.Deadline != nil && hackathon.Deadline.Before(time.Now().UTC()) {
		return nil, ClosedError("registration deadline has passed")
	}

	var registration models.HackathonRegistration

	switch hackathon.ParticipationType {
	case models.ParticipationIndividual:
		if teamID != "" {
			return nil, ValidationError("this hackathon allows individual participation only")
		}

		var existing models.HackathonRegistration
		err := s.DB.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
			First(&existing).Error
		if err == nil {
			return nil, DuplicateError("user already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		registration = models.HackathonRegistration{
			ID:          uuid.NewString(),
			HackathonID: hackathonID,
			UserID:      &userID,
		}

	case models.ParticipationTeam:
		if teamID == "" {
			return nil, ValidationError("team registration required")
		}

		var team models.HackathonTeam
		if err := s.DB.Preload("Members").First(&team, "id = ?", teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundError("team not found")
			}
			return nil, err
		}

		isMember := false
		for _, m := range team.Members {
			if m.MemberID == userID {
				isMember = true
				break
			}
		}
		if !isMember {
			return nil, AuthorizationError("user is not a member of this team")
		}

		teamSize := len(team.Members)
		if hackathon.MinTeamSize > 0 && teamSize < hackathon.MinTeamSize {
			return nil, ValidationError("team size is below minimum requirement")
		}
		if hackathon.MaxTeamSize > 0 && teamSize > hackathon.MaxTeamSize {
			return nil, ValidationError("team size exceeds maximum limit")
		}

		var existing models.HackathonRegistration
		err := s.DB.Where("hackathon_id = ? AND team_id = ?", hackathonID, teamID).
			First(&existing).Error
		if err == nil {
			return nil, DuplicateError("team already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		registration = models.HackathonRegistration{
			ID:          uuid.NewString(),
			HackathonID: hackathonID,
			TeamID:      &teamID,
		}

	default:
		return nil, ValidationError("invalid participation type")
	}

	registration.Status = models.RegistrationPending
	if err := s.DB.Create(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// UpdateStatus moves a registration to pending/approved/rejected.
func (s *RegistrationService) UpdateStatus(registrationID, status string) (*models.HackathonRegistration, error) {
	switch status {
	case models.RegistrationPending, models.RegistrationApproved, models.RegistrationRejected:
	default:
		return nil, ValidationError("invalid registration status")
	}

	var registration models.HackathonRegistration
	if err := s.DB.First(&registration, "id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("registration not found")
		}
		return nil, err
	}

	registration.Status = status
	if err := s.DB.Save(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// RegistrationDetail is the organizer's denormalized view of one entry.
type RegistrationDetail struct {
	ID           string    `json:"id"`
	HackathonID  string    `json:"hackathon_id"`
	UserID       *uint     `json:"user_id"`
	TeamID       *string   `json:"team_id"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	Team         *TeamView `json:"team"`
}

// GetHackathonRegistrations lists all entries for a hackathon with team
// rosters resolved.
func (s *RegistrationService) GetHackathonRegistrations(hackathonID string) ([]RegistrationDetail, error) {
	var registrations []models.HackathonRegistration
	err := s.DB.Preload("Team.Members.User").
		Where("hackathon_id = ?", hackathonID).
		Order("registered_at ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}

	result := make([]RegistrationDetail, 0, len(registrations))
	for _, reg := range registrations {
		detail := RegistrationDetail{
			ID:           reg.ID,
			HackathonID:  reg.HackathonID,
			UserID:       reg.UserID,
			TeamID:       reg.TeamID,
			Status:       reg.Status,
			RegisteredAt: reg.RegisteredAt,
		}
		if reg.Team != nil {
			view := buildTeamView(reg.Team)
			detail.Team = &view
		}
		result = append(result, detail)
	}
	return result, nil
}

// GetUserRegistrations returns every entry the user is part of, whether
// registered individually or through a team they belong to.
func (s *RegistrationService) GetUserRegistrations(userID uint) ([]models.HackathonRegistration, error) {
	var registrations []models.HackathonRegistration
	err := s.DB.Preload("Hackathon").Preload("Team.Members.User").
		Joins("LEFT JOIN hackathon_team_members ON hackathon_team_members.team_id = hackathon_registrations.team_id").
		Where("hackathon_registrations.user_id = ? OR hackathon_team_members.member_id = ?", userID, userID).
		Group("hackathon_registrations.id").
		Order("hackathon_registrations.registered_at DESC").
		Find(&registrations).Error
	return registrations, err
}

// GetTeamRegistrations returns a team's entries across hackathons.
func (s *RegistrationService) GetTeamRegistrations(teamID string) ([]models.HackathonRegistration, error) {
	var registrations []models.HackathonRegistration
	err := s.DB.Preload("Hackathon").
		Where("team_id = ?", teamID).
		Order("registered_at DESC").
		Find(&registrations).Error
	return registrations, err
}

// RegistrationCheck reports whether (and how) a user is registered.
type RegistrationCheck struct {
	Registered     bool    `json:"registered"`
	Status         string  `json:"status,omitempty"`
	Mode           string  `json:"mode,omitempty"`
	RegistrationID string  `json:"registration_id,omitempty"`
	TeamID         *string `json:"team_id,omitempty"`
}

// CheckUserRegistration checks individual registration first, then scans
// team registrations for the user's membership.
func (s *RegistrationService) CheckUserRegistration(hackathonID string, userID uint) (*RegistrationCheck, error) {
	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("hackathon not found")
		}
		return nil, err
	}

	var individual models.HackathonRegistration
	err := s.DB.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&individual).Error
	if err == nil {
		return &RegistrationCheck{
			Registered:     true,
			Status:         individual.Status,
			Mode:           models.ParticipationIndividual,
			RegistrationID: individual.ID,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var teamRegs []models.HackathonRegistration
	err = s.DB.Preload("Team.Members").
		Where("hackathon_id = ? AND team_id IS NOT NULL", hackathonID).
		Find(&teamRegs).Error
	if err != nil {
		return nil, err
	}

	for _, reg := range teamRegs {
		if reg.Team == nil {
			continue
		}
		for _, m := range reg.Team.Members {
			if m.MemberID == userID {
				return &RegistrationCheck{
					Registered:     true,
					Status:         reg.Status,
					Mode:           models.ParticipationTeam,
					RegistrationID: reg.ID,
					TeamID:         reg.TeamID,
				}, nil
			}
		}
	}

	return &RegistrationCheck{Registered: false}, nil
}

// HackathonAnalytics aggregates one hackathon's registration numbers.
type HackathonAnalytics struct {
	TotalRegistrations int `json:"total_registrations"`
	Approved           int `json:"approved"`
	Pending            int `json:"pending"`
	Rejected           int `json:"rejected"`
	TotalParticipants  int `json:"total_participants"`
}

// GetHackathonAnalytics counts registrations by status and totals the
// participants (team registrations count every member).
func (s *RegistrationService) GetHackathonAnalytics(hackathonID string) (*HackathonAnalytics, error) {
	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("hackathon not found")
		}
		return nil, err
	}

	var registrations []models.HackathonRegistration
	err := s.DB.Preload("Team.Members").
		Where("hackathon_id = ?", hackathonID).
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}

	analytics := HackathonAnalytics{TotalRegistrations: len(registrations)}
	for _, reg := range registrations {
		switch reg.Status {
		case models.RegistrationApproved:
			analytics.Approved++
		case models.RegistrationPending:
			analytics.Pending++
		case models.RegistrationRejected:
			analytics.Rejected++
		}

		if reg.UserID != nil {
			analytics.TotalParticipants++
		} else if reg.Team != nil {
			analytics.TotalParticipants += len(reg.Team.Members)
		}
	}
	return &analytics, nil
}

// ---- Fiber endpoints ----

// Create handles POST /registrations.
func (s *RegistrationService) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var body struct {
		HackathonID string `json:"hackathon_id"`
		TeamID      string `json:"team_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.HackathonID == "" {
		return respondError(c, ValidationError("hackathon_id is required"))
	}

	registration, err := s.Register(body.HackathonID, userID, body.TeamID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(registration)
}

// SetStatus handles PATCH /registrations/:id/status (organizer only).
func (s *RegistrationService) SetStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var registration models.HackathonRegistration
	if err := s.DB.First(&registration, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, NotFoundError("registration not found"))
	}
	if _, err := requireOrganizer(s.DB, userID, registration.HackathonID); err != nil {
		return respondError(c, err)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	updated, err := s.UpdateStatus(registration.ID, body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// Mine handles GET /registrations/me.
func (s *RegistrationService) Mine(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	registrations, err := s.GetUserRegistrations(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(registrations)
}

// ForTeam handles GET /teams/:id/registrations.
func (s *RegistrationService) ForTeam(c *fiber.Ctx) error {
	registrations, err := s.GetTeamRegistrations(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(registrations)
}

// ForHackathon handles GET /hackathons/:id/registrations (organizer only).
func (s *RegistrationService) ForHackathon(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}
	hackathonID := c.Params("id")

	if _, err := requireOrganizer(s.DB, userID, hackathonID); err != nil {
		return respondError(c, err)
	}

	details, err := s.GetHackathonRegistrations(hackathonID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(details)
}

// Check handles GET /hackathons/:id/registrations/check.
func (s *RegistrationService) Check(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	check, err := s.CheckUserRegistration(c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(check)
}

// Analytics handles GET /hackathons/:id/analytics (organizer only).
func (s *RegistrationService) Analytics(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}
	hackathonID := c.Params("id")

	if _, err := requireOrganizer(s.DB, userID, hackathonID); err != nil {
		return respondError(c, err)
	}

	analytics, err := s.GetHackathonAnalytics(hackathonID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics)
}
