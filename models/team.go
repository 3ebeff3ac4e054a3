package models

import (
	"time"
)

// Team member roles
const (
	TeamRoleOwner    = "owner"
	TeamRoleColeader = "coleader"
	TeamRoleMember   = "member"
)

// HackathonTeam groups users for team-based participation. A team is not
// bound to one hackathon; it registers per hackathon.
type HackathonTeam struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Members []HackathonTeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// HackathonTeamMember is one user's membership in a team.
type HackathonTeamMember struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	TeamID   string    `json:"team_id" gorm:"not null;index;uniqueIndex:uq_team_member"`
	MemberID uint      `json:"member_id" gorm:"not null;index;uniqueIndex:uq_team_member"`
	Role     string    `json:"role" gorm:"type:varchar(16);default:'member'"` // owner | coleader | member
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:MemberID"`
}
