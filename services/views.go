package services

import (
	"time"

	"hackathon-management-system/models"
)

// Denormalized response shapes shared by the submission, registration and
// winner endpoints. Built from preloaded entities, serialized as-is.

type TeamMemberView struct {
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type TeamView struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedBy uint             `json:"created_by"`
	Members   []TeamMemberView `json:"members"`
}

type SubmissionView struct {
	ID           string   `json:"id"`
	HackathonID  string   `json:"hackathon_id"`
	ProjectTitle string   `json:"project_title"`
	ProjectDesc  string   `json:"project_desc"`
	GithubURL    string   `json:"github_url"`
	LiveURL      string   `json:"live_url,omitempty"`
	CreatedAt    string   `json:"created_at"`
	AverageScore *float64 `json:"average_score"`
	Team         TeamView `json:"team"`
}

type WinnerProjectView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	GithubURL string `json:"github_url"`
	LiveURL   string `json:"live_url,omitempty"`
}

type WinnerView struct {
	ID        string            `json:"id"`
	Position  int               `json:"position"`
	Score     *float64          `json:"score"`
	Project   WinnerProjectView `json:"project"`
	Team      TeamView          `json:"team"`
	CreatedAt string            `json:"created_at"`
}

func buildTeamView(team *models.HackathonTeam) TeamView {
	if team == nil {
		return TeamView{}
	}
	members := make([]TeamMemberView, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, TeamMemberView{
			UserID:   m.MemberID,
			Name:     m.User.Name,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return TeamView{
		ID:        team.ID,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		Members:   members,
	}
}

func buildSubmissionView(sub *models.ProjectSubmission) SubmissionView {
	return SubmissionView{
		ID:           sub.ID,
		HackathonID:  sub.HackathonID,
		ProjectTitle: sub.ProjectTitle,
		ProjectDesc:  sub.ProjectDesc,
		GithubURL:    sub.GithubURL,
		LiveURL:      sub.LiveURL,
		CreatedAt:    sub.CreatedAt.Format(time.RFC3339),
		AverageScore: AverageScore(sub.Scores),
		Team:         buildTeamView(&sub.Team),
	}
}
