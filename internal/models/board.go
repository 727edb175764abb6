package models

import (
	"time"
)

// Board is the top-level container. Boards are never hard-deleted; IsDeleted
// hides them from every listing and detail query.
type Board struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Participants []BoardParticipant `gorm:"foreignKey:BoardID" json:"participants,omitempty"`
	Categories   []GoalCategory     `gorm:"foreignKey:BoardID" json:"categories,omitempty"`
}
