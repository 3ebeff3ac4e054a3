package services

import (
	"time"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserAnalyticsService aggregates a user's cross-hackathon history by
// composing registrations, winners and teams read-only.
type UserAnalyticsService struct {
	DB *gorm.DB
}

func NewUserAnalyticsService(db *gorm.DB) *UserAnalyticsService {
	return &UserAnalyticsService{DB: db}
}

type RecentParticipation struct {
	HackathonID    string `json:"hackathon_id"`
	HackathonName  string `json:"hackathon_name"`
	TeamName       string `json:"team_name"`
	Position       *int   `json:"position"`
	ParticipatedAt string `json:"participated_at"`
}

type UserAnalytics struct {
	TotalHackathons     int64                 `json:"total_hackathons"`
	Wins                int64                 `json:"wins"`
	RunnerUp            int64                 `json:"runner_up"`
	Participated        int64                 `json:"participated"`
	CurrentTeam         *TeamView             `json:"current_team"`
	RecentParticipation []RecentParticipation `json:"recent_participation"`
}

// GetUserAnalytics builds the dashboard numbers for one user. A hackathon
// counts as participated whether the user registered individually or
// through a team membership.
func (s *UserAnalyticsService) GetUserAnalytics(userID uint) (*UserAnalytics, error) {
	analytics := &UserAnalytics{
		RecentParticipation: []RecentParticipation{},
	}

	err := s.DB.Model(&models.HackathonRegistration{}).
		Joins("LEFT JOIN hackathon_teams ON hackathon_teams.id = hackathon_registrations.team_id").
		Joins("LEFT JOIN hackathon_team_members ON hackathon_team_members.team_id = hackathon_teams.id").
		Where("hackathon_registrations.user_id = ? OR hackathon_team_members.member_id = ?", userID, userID).
		Distinct("hackathon_registrations.hackathon_id").
		Count(&analytics.TotalHackathons).Error
	if err != nil {
		return nil, err
	}

	err = s.winnerCountQuery(userID).
		Where("winners.position = ?", 1).
		Count(&analytics.Wins).Error
	if err != nil {
		return nil, err
	}

	err = s.winnerCountQuery(userID).
		Where("winners.position IN ?", []int{2, 3}).
		Count(&analytics.RunnerUp).Error
	if err != nil {
		return nil, err
	}

	analytics.Participated = analytics.TotalHackathons - analytics.Wins - analytics.RunnerUp
	if analytics.Participated < 0 {
		analytics.Participated = 0
	}

	// Current team: the one joined most recently
	var latest models.HackathonTeamMember
	err = s.DB.Where("member_id = ?", userID).
		Order("joined_at DESC").
		First(&latest).Error
	if err == nil {
		var team models.HackathonTeam
		if err := s.DB.First(&team, "id = ?", latest.TeamID).Error; err == nil {
			analytics.CurrentTeam = &TeamView{ID: team.ID, Name: team.Name, CreatedBy: team.CreatedBy}
		}
	}

	recent, err := s.recentParticipation(userID, 5)
	if err != nil {
		return nil, err
	}
	analytics.RecentParticipation = recent

	return analytics, nil
}

func (s *UserAnalyticsService) winnerCountQuery(userID uint) *gorm.DB {
	return s.DB.Model(&models.Winner{}).
		Joins("JOIN project_submissions ON project_submissions.id = winners.project_id").
		Joins("JOIN hackathon_team_members ON hackathon_team_members.team_id = project_submissions.team_id").
		Where("hackathon_team_members.member_id = ?", userID)
}

func (s *UserAnalyticsService) recentParticipation(userID uint, limit int) ([]RecentParticipation, error) {
	var regs []models.HackathonRegistration
	err := s.DB.Preload("Hackathon").Preload("Team").
		Joins("LEFT JOIN hackathon_teams ON hackathon_teams.id = hackathon_registrations.team_id").
		Joins("LEFT JOIN hackathon_team_members ON hackathon_team_members.team_id = hackathon_teams.id").
		Where("hackathon_registrations.user_id = ? OR hackathon_team_members.member_id = ?", userID, userID).
		Group("hackathon_registrations.id").
		Order("hackathon_registrations.registered_at DESC").
		Limit(limit).
		Find(&regs).Error
	if err != nil {
		return nil, err
	}

	recent := make([]RecentParticipation, 0, len(regs))
	for _, reg := range regs {
		entry := RecentParticipation{
			HackathonID:    reg.HackathonID,
			HackathonName:  reg.Hackathon.EventName,
			TeamName:       "Individual",
			ParticipatedAt: reg.RegisteredAt.Format(time.RFC3339),
		}
		if reg.Team != nil {
			entry.TeamName = reg.Team.Name
		}

		var winner models.Winner
		err := s.DB.
			Joins("JOIN project_submissions ON project_submissions.id = winners.project_id").
			Joins("JOIN hackathon_team_members ON hackathon_team_members.team_id = project_submissions.team_id").
			Where("hackathon_team_members.member_id = ? AND project_submissions.hackathon_id = ?",
				userID, reg.HackathonID).
			First(&winner).Error
		if err == nil {
			position := winner.Position
			entry.Position = &position
		}

		recent = append(recent, entry)
	}
	return recent, nil
}

// Mine handles GET /users/analytics/me.
func (s *UserAnalyticsService) Mine(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	analytics, err := s.GetUserAnalytics(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics)
}
