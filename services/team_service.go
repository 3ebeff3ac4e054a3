package services

import (
	"errors"
	"strings"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService manages teams and their rosters. Teams are reusable across
// hackathons; membership changes are owner/coleader gated.
type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

// CreateTeam creates the team and enrolls the creator as owner.
func (s *TeamService) CreateTeam(name string, createdBy uint) (*models.HackathonTeam, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError("team name is required")
	}

	team := models.HackathonTeam{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: createdBy,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		owner := models.HackathonTeamMember{
			ID:       uuid.NewString(),
			TeamID:   team.ID,
			MemberID: createdBy,
			Role:     models.TeamRoleOwner,
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// canManageRoster reports whether userID may add/remove members.
func (s *TeamService) canManageRoster(teamID string, userID uint) bool {
	var membership models.HackathonTeamMember
	err := s.DB.Where("team_id = ? AND member_id = ?", teamID, userID).
		First(&membership).Error
	if err != nil {
		return false
	}
	return membership.Role == models.TeamRoleOwner || membership.Role == models.TeamRoleColeader
}

// AddMember enrolls memberID into the team with the given role.
func (s *TeamService) AddMember(teamID string, byUserID, memberID uint, role string) (*models.HackathonTeamMember, error) {
	switch role {
	case "":
		role = models.TeamRoleMember
	case models.TeamRoleColeader, models.TeamRoleMember:
	default:
		return nil, ValidationError("invalid team role")
	}

	var team models.HackathonTeam
	if err := s.DB.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("team not found")
		}
		return nil, err
	}

	if !s.canManageRoster(teamID, byUserID) {
		return nil, AuthorizationError("only the team owner or a coleader can manage members")
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("user not found")
		}
		return nil, err
	}

	var existing models.HackathonTeamMember
	err := s.DB.Where("team_id = ? AND member_id = ?", teamID, memberID).
		First(&existing).Error
	if err == nil {
		return nil, DuplicateError("user is already a team member")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := models.HackathonTeamMember{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		MemberID: memberID,
		Role:     role,
	}
	if err := s.DB.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember drops memberID from the roster. The owner cannot be removed.
func (s *TeamService) RemoveMember(teamID string, byUserID, memberID uint) error {
	if !s.canManageRoster(teamID, byUserID) && byUserID != memberID {
		return AuthorizationError("only the team owner or a coleader can manage members")
	}

	var membership models.HackathonTeamMember
	err := s.DB.Where("team_id = ? AND member_id = ?", teamID, memberID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("team member not found")
		}
		return err
	}
	if membership.Role == models.TeamRoleOwner {
		return ValidationError("the team owner cannot be removed")
	}
	return s.DB.Delete(&membership).Error
}

// GetTeam returns the team with its roster resolved.
func (s *TeamService) GetTeam(teamID string) (*models.HackathonTeam, error) {
	var team models.HackathonTeam
	err := s.DB.Preload("Members.User").First(&team, "id = ?", teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("team not found")
		}
		return nil, err
	}
	return &team, nil
}

// GetUserTeams lists every team the user belongs to, latest joined first.
func (s *TeamService) GetUserTeams(userID uint) ([]models.HackathonTeam, error) {
	var memberships []models.HackathonTeamMember
	err := s.DB.Where("member_id = ?", userID).
		Order("joined_at DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []models.HackathonTeam{}, nil
	}

	teamIDs := make([]string, len(memberships))
	for i, m := range memberships {
		teamIDs[i] = m.TeamID
	}

	var teams []models.HackathonTeam
	err = s.DB.Preload("Members.User").Where("id IN ?", teamIDs).Find(&teams).Error
	return teams, err
}

// ---- Fiber endpoints ----

// Create handles POST /teams.
func (s *TeamService) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	team, err := s.CreateTeam(body.Name, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

// Get handles GET /teams/:id.
func (s *TeamService) Get(c *fiber.Ctx) error {
	team, err := s.GetTeam(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(buildTeamView(team))
}

// Mine handles GET /teams/me.
func (s *TeamService) Mine(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	teams, err := s.GetUserTeams(userID)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]TeamView, len(teams))
	for i := range teams {
		views[i] = buildTeamView(&teams[i])
	}
	return c.JSON(views)
}

// AddMemberEndpoint handles POST /teams/:id/members.
func (s *TeamService) AddMemberEndpoint(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var body struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
		return respondError(c, ValidationError("user_id is required"))
	}

	member, err := s.AddMember(c.Params("id"), userID, body.UserID, body.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// RemoveMemberEndpoint handles DELETE /teams/:id/members/:user_id.
func (s *TeamService) RemoveMemberEndpoint(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	memberID, err := c.ParamsInt("user_id")
	if err != nil || memberID <= 0 {
		return respondError(c, ValidationError("invalid member user id"))
	}

	if err := s.RemoveMember(c.Params("id"), userID, uint(memberID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}
