package dto

import (
	"time"

	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/utils"
)

// CategoryDTO represents a goal category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	BoardID   uint64    `json:"board_id"`
	User      *UserDTO  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GoalDTO represents a goal in API responses
type GoalDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CategoryID  uint64              `json:"category_id"`
	Status      models.GoalStatus   `json:"status"`
	Priority    models.GoalPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	User        *UserDTO            `json:"user,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CategoryListResponse represents a paginated list of categories
type CategoryListResponse struct {
	Categories []CategoryDTO            `json:"categories"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// GoalListResponse represents a paginated list of goals
type GoalListResponse struct {
	Goals      []GoalDTO                `json:"goals"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToCategoryDTO converts a GoalCategory model to CategoryDTO
func ToCategoryDTO(category models.GoalCategory) CategoryDTO {
	dto := CategoryDTO{
		ID:        category.ID,
		Title:     category.Title,
		BoardID:   category.BoardID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}

	// Include creator if preloaded
	if category.User.ID != 0 {
		user := ToUserDTO(category.User)
		dto.User = &user
	}

	return dto
}

// ToGoalDTO converts a Goal model to GoalDTO
func ToGoalDTO(goal models.Goal) GoalDTO {
	dto := GoalDTO{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		CategoryID:  goal.CategoryID,
		Status:      goal.Status,
		Priority:    goal.Priority,
		DueDate:     goal.DueDate,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}

	if goal.User.ID != 0 {
		user := ToUserDTO(goal.User)
		dto.User = &user
	}

	return dto
}
