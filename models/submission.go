package models

import (
	"time"
)

// ProjectSubmission is a team's project entry for a hackathon.
// One submission per (hackathon, team) pair.
type ProjectSubmission struct {
	ID          string `json:"id" gorm:"primaryKey"`
	HackathonID string `json:"hackathon_id" gorm:"not null;index;uniqueIndex:uq_hackathon_team_submission"`
	TeamID      string `json:"team_id" gorm:"not null;index;uniqueIndex:uq_hackathon_team_submission"`

	ProjectTitle string `json:"project_title" gorm:"size:255;not null"`
	ProjectDesc  string `json:"project_desc" gorm:"type:text;not null"`
	GithubURL    string `json:"github_url" gorm:"size:500;not null"`
	LiveURL      string `json:"live_url,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Hackathon Hackathon     `json:"hackathon,omitempty" gorm:"foreignKey:HackathonID"`
	Team      HackathonTeam `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Scores    []JudgeScore  `json:"scores,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}

// JudgeScore is one judge's score for one submission, in [0,100].
// A judge may overwrite their score; never two rows per (submission, judge).
type JudgeScore struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SubmissionID string    `json:"submission_id" gorm:"not null;index;uniqueIndex:uq_submission_judge_score"`
	JudgeID      uint      `json:"judge_id" gorm:"not null;uniqueIndex:uq_submission_judge_score"`
	Score        int       `json:"score" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// HackathonJudge assigns a user as judge for a hackathon.
type HackathonJudge struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	HackathonID string    `json:"hackathon_id" gorm:"not null;index;uniqueIndex:uq_hackathon_judge"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_hackathon_judge"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
