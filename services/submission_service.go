package services

import (
	"errors"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionService manages project submissions. One submission per
// (hackathon, team); updates are allowed until the hackathon is finalized.
type SubmissionService struct {
	DB *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{DB: db}
}

// SubmissionInput carries the mutable fields of a submission.
type SubmissionInput struct {
	TeamID       string `json:"team_id"`
	ProjectTitle string `json:"project_title"`
	ProjectDesc  string `json:"project_desc"`
	GithubURL    string `json:"github_url"`
	LiveURL      string `json:"live_url"`
}

func (in *SubmissionInput) validate(requireTeam bool) error {
	if requireTeam && in.TeamID == "" {
		return ValidationError("team_id is required")
	}
	if in.ProjectTitle == "" || in.ProjectDesc == "" || in.GithubURL == "" {
		return ValidationError("project_title, project_desc and github_url are required")
	}
	return nil
}

// CreateSubmission records a team's project entry.
func (s *SubmissionService) CreateSubmission(hackathonID string, in SubmissionInput) (*models.ProjectSubmission, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("hackathon not found")
		}
		return nil, err
	}
	if hackathon.IsFinalized {
		return nil, ClosedError("hackathon results are finalized")
	}

	var team models.HackathonTeam
	if err := s.DB.First(&team, "id = ?", in.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("team not found")
		}
		return nil, err
	}

	var existing models.ProjectSubmission
	err := s.DB.Where("hackathon_id = ? AND team_id = ?", hackathonID, in.TeamID).
		First(&existing).Error
	if err == nil {
		return nil, DuplicateError("submission already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	submission := models.ProjectSubmission{
		ID:           uuid.NewString(),
		HackathonID:  hackathonID,
		TeamID:       in.TeamID,
		ProjectTitle: in.ProjectTitle,
		ProjectDesc:  in.ProjectDesc,
		GithubURL:    in.GithubURL,
		LiveURL:      in.LiveURL,
	}
	if err := s.DB.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// UpdateSubmission overwrites the mutable fields of an existing submission.
func (s *SubmissionService) UpdateSubmission(submissionID string, in SubmissionInput) (*models.ProjectSubmission, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}

	var submission models.ProjectSubmission
	if err := s.DB.First(&submission, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("submission not found")
		}
		return nil, err
	}

	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", submission.HackathonID).Error; err == nil {
		if hackathon.IsFinalized {
			return nil, ClosedError("hackathon results are finalized")
		}
	}

	submission.ProjectTitle = in.ProjectTitle
	submission.ProjectDesc = in.ProjectDesc
	submission.GithubURL = in.GithubURL
	submission.LiveURL = in.LiveURL
	if err := s.DB.Save(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetMySubmission finds the submission of the team the user belongs to for
// the given hackathon.
func (s *SubmissionService) GetMySubmission(hackathonID string, userID uint) (*models.ProjectSubmission, error) {
	var memberships []models.HackathonTeamMember
	if err := s.DB.Where("member_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, NotFoundError("you are not part of any team for this hackathon")
	}

	teamIDs := make([]string, len(memberships))
	for i, m := range memberships {
		teamIDs[i] = m.TeamID
	}

	var submission models.ProjectSubmission
	err := s.DB.Preload("Scores").Preload("Team.Members.User").
		Where("hackathon_id = ? AND team_id IN ?", hackathonID, teamIDs).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("no submission found for this hackathon")
		}
		return nil, err
	}
	return &submission, nil
}

// ---- Fiber endpoints ----

// Submit handles POST /submissions/hackathons/:id.
func (s *SubmissionService) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var in SubmissionInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	// Submitter must belong to the team they submit for.
	if in.TeamID != "" {
		var membership models.HackathonTeamMember
		err := s.DB.Where("team_id = ? AND member_id = ?", in.TeamID, userID).
			First(&membership).Error
		if err != nil {
			return respondError(c, AuthorizationError("you are not a member of this team"))
		}
	}

	submission, err := s.CreateSubmission(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": submission.ID})
}

// List handles GET /submissions/hackathons/:id (judge or organizer).
func (s *SubmissionService) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}
	hackathonID := c.Params("id")

	if err := requireJudgeOrOrganizer(s.DB, userID, hackathonID); err != nil {
		return respondError(c, err)
	}

	var submissions []models.ProjectSubmission
	err := s.DB.Preload("Scores").Preload("Team.Members.User").
		Where("hackathon_id = ?", hackathonID).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return respondError(c, err)
	}

	views := make([]SubmissionView, len(submissions))
	for i := range submissions {
		views[i] = buildSubmissionView(&submissions[i])
	}
	return c.JSON(views)
}

// Get handles GET /submissions/:id (judge or organizer).
func (s *SubmissionService) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var submission models.ProjectSubmission
	err := s.DB.Preload("Scores").Preload("Team.Members.User").
		First(&submission, "id = ?", c.Params("id")).Error
	if err != nil {
		return respondError(c, NotFoundError("submission not found"))
	}

	if err := requireJudgeOrOrganizer(s.DB, userID, submission.HackathonID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(buildSubmissionView(&submission))
}

// Update handles PUT /submissions/:id.
func (s *SubmissionService) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var submission models.ProjectSubmission
	if err := s.DB.First(&submission, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, NotFoundError("submission not found"))
	}

	// The owning team can edit its own submission; judges and the organizer
	// can correct any.
	var membership models.HackathonTeamMember
	memberErr := s.DB.Where("team_id = ? AND member_id = ?", submission.TeamID, userID).
		First(&membership).Error
	if memberErr != nil {
		if err := requireJudgeOrOrganizer(s.DB, userID, submission.HackathonID); err != nil {
			return respondError(c, err)
		}
	}

	var in SubmissionInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	updated, err := s.UpdateSubmission(submission.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":      updated.ID,
		"message": "Submission updated successfully",
	})
}

// Mine handles GET /submissions/hackathons/:id/my-submission.
func (s *SubmissionService) Mine(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	submission, err := s.GetMySubmission(c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(buildSubmissionView(submission))
}
