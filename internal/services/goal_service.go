package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/rbac"
	"github.com/ekovaleva/goals-api/internal/repository"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrInvalidGoalTitle  = errors.New("goal title cannot be empty")
	ErrCategoryDeleted   = errors.New("not allowed in deleted category")
	ErrDueDateInPast     = errors.New("failed to set due date in the past")
	ErrInvalidGoalStatus = errors.New("invalid goal status")
	ErrArchivedViaUpdate = errors.New("goals are archived through delete, not update")
	ErrInvalidPriority   = errors.New("invalid goal priority")
)

// GoalService provides business logic for goals.
type GoalService struct {
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo repository.GoalRepository, categoryRepo repository.CategoryRepository, boardRepo repository.BoardRepository) *GoalService {
	return &GoalService{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
	}
}

// writableCategory resolves the category a goal is being written into. A
// soft-deleted category is a validation failure (ErrCategoryDeleted), an
// invisible one is not found, and a reader role is forbidden.
func (s *GoalService) writableCategory(userID, categoryID uint64) (*models.GoalCategory, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	participant, err := s.boardRepo.FindParticipant(category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}

	if category.IsDeleted {
		return nil, ErrCategoryDeleted
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return nil, ErrForbidden
	}

	return category, nil
}

// visibleGoal resolves a goal the user is allowed to see: not archived, its
// category not deleted, and the user a participant of the owning board.
func (s *GoalService) visibleGoal(userID, goalID uint64, preload ...string) (*models.Goal, *models.BoardParticipant, error) {
	preload = append(preload, "Category")
	goal, err := s.goalRepo.FindByID(goalID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGoalNotFound
		}
		return nil, nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.Status == models.GoalStatusArchived || goal.Category.IsDeleted {
		return nil, nil, ErrGoalNotFound
	}

	participant, err := s.boardRepo.FindParticipant(goal.Category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGoalNotFound
		}
		return nil, nil, fmt.Errorf("failed to find participant: %w", err)
	}

	return goal, participant, nil
}

// validateDueDate rejects due dates before today (date precision).
func validateDueDate(dueDate *time.Time) error {
	if dueDate == nil {
		return nil
	}
	today := time.Now().Truncate(24 * time.Hour)
	if dueDate.Before(today) {
		return ErrDueDateInPast
	}
	return nil
}

// CreateGoalInput represents parameters to create a goal.
type CreateGoalInput struct {
	Title       string
	Description string
	CategoryID  uint64
	Status      models.GoalStatus
	Priority    models.GoalPriority
	DueDate     *time.Time
}

// CreateGoal creates a goal under a category. Requires the writer or owner
// role on the category's board.
func (s *GoalService) CreateGoal(userID uint64, input CreateGoalInput) (*models.Goal, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidGoalTitle
	}

	if _, err := s.writableCategory(userID, input.CategoryID); err != nil {
		return nil, err
	}

	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.GoalStatusTodo
	}
	switch status {
	case models.GoalStatusTodo, models.GoalStatusInProgress, models.GoalStatusDone:
	case models.GoalStatusArchived:
		return nil, ErrArchivedViaUpdate
	default:
		return nil, ErrInvalidGoalStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = models.GoalPriorityMedium
	}
	switch priority {
	case models.GoalPriorityLow, models.GoalPriorityMedium, models.GoalPriorityHigh, models.GoalPriorityCritical:
	default:
		return nil, ErrInvalidPriority
	}

	goal := &models.Goal{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		UserID:      userID,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.goalRepo.Create(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// GetGoal returns a goal visible to the user.
func (s *GoalService) GetGoal(userID, goalID uint64) (*models.Goal, error) {
	goal, _, err := s.visibleGoal(userID, goalID, "User")
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// ListGoalsInput holds list query parameters.
type ListGoalsInput struct {
	CategoryID  *uint64
	Search      string
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	Page        int
	PageSize    int
}

// ListGoals lists non-archived goals across the user's boards.
func (s *GoalService) ListGoals(userID uint64, input ListGoalsInput) ([]models.Goal, int64, error) {
	boardIDs, err := s.boardRepo.BoardIDsForUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve boards: %w", err)
	}

	goals, total, err := s.goalRepo.List(repository.GoalFilter{
		BoardIDs:    boardIDs,
		CategoryID:  input.CategoryID,
		Search:      input.Search,
		DueDateFrom: input.DueDateFrom,
		DueDateTo:   input.DueDateTo,
		Page:        input.Page,
		PageSize:    input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list goals: %w", err)
	}

	return goals, total, nil
}

// UpdateGoalInput holds optional goal fields; nil means unchanged.
type UpdateGoalInput struct {
	Title       *string
	Description *string
	CategoryID  *uint64
	Status      *models.GoalStatus
	Priority    *models.GoalPriority
	DueDate     *time.Time
	DueDateSet  bool
}

// UpdateGoal updates a goal. Requires the writer or owner role; status may
// move freely between todo, in_progress and done but never to archived.
func (s *GoalService) UpdateGoal(userID, goalID uint64, input UpdateGoalInput) (*models.Goal, error) {
	goal, participant, err := s.visibleGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidGoalTitle
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.CategoryID != nil && *input.CategoryID != goal.CategoryID {
		if _, err := s.writableCategory(userID, *input.CategoryID); err != nil {
			return nil, err
		}
		goal.CategoryID = *input.CategoryID
	}
	if input.Status != nil {
		switch *input.Status {
		case models.GoalStatusTodo, models.GoalStatusInProgress, models.GoalStatusDone:
			goal.Status = *input.Status
		case models.GoalStatusArchived:
			return nil, ErrArchivedViaUpdate
		default:
			return nil, ErrInvalidGoalStatus
		}
	}
	if input.Priority != nil {
		switch *input.Priority {
		case models.GoalPriorityLow, models.GoalPriorityMedium, models.GoalPriorityHigh, models.GoalPriorityCritical:
			goal.Priority = *input.Priority
		default:
			return nil, ErrInvalidPriority
		}
	}
	if input.DueDateSet {
		if err := validateDueDate(input.DueDate); err != nil {
			return nil, err
		}
		goal.DueDate = input.DueDate
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

// DeleteGoal archives the goal. Requires the writer or owner role.
func (s *GoalService) DeleteGoal(userID, goalID uint64) error {
	_, participant, err := s.visibleGoal(userID, goalID)
	if err != nil {
		return err
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return ErrForbidden
	}

	if err := s.goalRepo.Archive(goalID); err != nil {
		return fmt.Errorf("failed to archive goal: %w", err)
	}

	return nil
}
