package models

import (
	"time"
)

type GoalStatus string

const (
	GoalStatusTodo       GoalStatus = "todo"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusDone       GoalStatus = "done"
	// GoalStatusArchived is terminal: goals reach it through delete or a
	// parent cascade and never leave it.
	GoalStatusArchived GoalStatus = "archived"
)

type GoalPriority string

const (
	GoalPriorityLow      GoalPriority = "low"
	GoalPriorityMedium   GoalPriority = "medium"
	GoalPriorityHigh     GoalPriority = "high"
	GoalPriorityCritical GoalPriority = "critical"
)

// Goal rows are never hard-deleted; delete sets Status to archived.
type Goal struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	CategoryID  uint64       `gorm:"not null;index" json:"category_id"`
	UserID      uint64       `gorm:"not null" json:"user_id"`
	Status      GoalStatus   `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority    GoalPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Category GoalCategory  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []GoalComment `gorm:"foreignKey:GoalID" json:"comments,omitempty"`
}
