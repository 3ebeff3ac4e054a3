package models

import (
	"time"
)

// Hackathon statuses. Lifecycle: draft → published → completed.
// The is_finalized flag is separate: it freezes results and is one-way.
const (
	HackathonStatusDraft     = "draft"
	HackathonStatusPublished = "published"
	HackathonStatusCompleted = "completed"
)

// Participation types
const (
	ParticipationIndividual = "individual"
	ParticipationTeam       = "team"
)

// Hackathon is the top-level event entity, owned by its organizer.
type Hackathon struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	EventName   string `json:"event_name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Theme       string `json:"theme"`
	Mode        string `json:"mode" gorm:"default:'online'"` // online | offline | hybrid
	Venue       string `json:"venue"`
	BannerURL   string `json:"banner_url"`
	PrizePool   string `json:"prize_pool"`

	OrganizerID uint `json:"organizer_id" gorm:"not null;index"`

	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Deadline  *time.Time `json:"deadline,omitempty"` // registration deadline; nil = always open

	ParticipationType string `json:"participation_type" gorm:"default:'individual'"` // individual | team
	MinTeamSize       int    `json:"min_team_size" gorm:"default:0"`                 // 0 = no bound
	MaxTeamSize       int    `json:"max_team_size" gorm:"default:0"`                 // 0 = no bound

	Status          string     `json:"status" gorm:"default:'draft'"`
	PublishedAt     *time.Time `json:"published_at,omitempty" gorm:"index"`
	PublishSchedule *time.Time `json:"publish_schedule,omitempty"`
	IsFinalized     bool       `json:"is_finalized" gorm:"default:false"`

	Organizer User `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID"`

	// Calculated fields (not stored in DB)
	RegistrationsCount int64 `json:"registrations_count,omitempty" gorm:"-"`

	Timestamps
}
