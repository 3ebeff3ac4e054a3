package models

import (
	"time"
)

// Winner awards a podium position (1,2,3) to a submission. Rows are written
// once by finalization and never mutated. A submission can hold at most one
// position.
type Winner struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ProjectID string    `json:"project_id" gorm:"not null;uniqueIndex:uq_project_winner;uniqueIndex:uq_position_project"`
	Position  int       `json:"position" gorm:"not null;uniqueIndex:uq_position_project"` // 1,2,3
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Project ProjectSubmission `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}
