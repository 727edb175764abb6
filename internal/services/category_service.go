package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/rbac"
	"github.com/ekovaleva/goals-api/internal/repository"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrInvalidCategoryTitle = errors.New("category title cannot be empty")
)

// CategoryService provides business logic for goal categories.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, boardRepo repository.BoardRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
	}
}

// visibleCategory resolves a category the user is allowed to see: it must
// exist, not be soft-deleted, and the user must participate in its board.
// Everything else maps to ErrCategoryNotFound.
func (s *CategoryService) visibleCategory(userID, categoryID uint64, preload ...string) (*models.GoalCategory, *models.BoardParticipant, error) {
	category, err := s.categoryRepo.FindByID(categoryID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.IsDeleted {
		return nil, nil, ErrCategoryNotFound
	}

	participant, err := s.boardRepo.FindParticipant(category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, fmt.Errorf("failed to find participant: %w", err)
	}

	return category, participant, nil
}

// CreateCategory creates a category under a board. Requires the writer or
// owner role; a deleted or foreign board is reported as not found.
func (s *CategoryService) CreateCategory(userID, boardID uint64, title string) (*models.GoalCategory, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidCategoryTitle
	}

	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	participant, err := s.boardRepo.FindParticipant(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return nil, ErrForbidden
	}

	category := &models.GoalCategory{
		Title:   title,
		BoardID: boardID,
		UserID:  userID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetCategory returns a category visible to the user.
func (s *CategoryService) GetCategory(userID, categoryID uint64) (*models.GoalCategory, error) {
	category, _, err := s.visibleCategory(userID, categoryID, "User", "Board")
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategoriesInput holds list query parameters.
type ListCategoriesInput struct {
	BoardID  *uint64
	Search   string
	Page     int
	PageSize int
}

// ListCategories lists categories across the user's boards.
func (s *CategoryService) ListCategories(userID uint64, input ListCategoriesInput) ([]models.GoalCategory, int64, error) {
	boardIDs, err := s.boardRepo.BoardIDsForUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve boards: %w", err)
	}

	if input.BoardID != nil {
		if _, err := s.boardRepo.FindParticipant(*input.BoardID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrBoardNotFound
			}
			return nil, 0, fmt.Errorf("failed to find participant: %w", err)
		}
	}

	categories, total, err := s.categoryRepo.List(repository.CategoryFilter{
		BoardIDs: boardIDs,
		BoardID:  input.BoardID,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, total, nil
}

// UpdateCategory renames a category. Requires the writer or owner role.
func (s *CategoryService) UpdateCategory(userID, categoryID uint64, title string) (*models.GoalCategory, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidCategoryTitle
	}

	category, participant, err := s.visibleCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return nil, ErrForbidden
	}

	category.Title = title
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory soft-deletes the category and archives all of its goals.
// Requires the writer or owner role.
func (s *CategoryService) DeleteCategory(userID, categoryID uint64) error {
	_, participant, err := s.visibleCategory(userID, categoryID)
	if err != nil {
		return err
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return ErrForbidden
	}

	if err := s.categoryRepo.DeleteCascade(categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
