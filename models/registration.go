package models

import (
	"time"
)

// Registration statuses
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// HackathonRegistration records a user's or team's entry into a hackathon.
// Exactly one of UserID / TeamID is set, matching the hackathon's
// participation type.
type HackathonRegistration struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	HackathonID  string  `json:"hackathon_id" gorm:"not null;index;uniqueIndex:uq_hackathon_user;uniqueIndex:uq_hackathon_team"`
	UserID       *uint   `json:"user_id,omitempty" gorm:"uniqueIndex:uq_hackathon_user"`
	TeamID       *string `json:"team_id,omitempty" gorm:"uniqueIndex:uq_hackathon_team"`
	Status       string  `json:"status" gorm:"type:varchar(16);default:'pending'"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`

	Hackathon Hackathon      `json:"hackathon,omitempty" gorm:"foreignKey:HackathonID"`
	Team      *HackathonTeam `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}
