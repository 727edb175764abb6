package repository

import (
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/database"
	"github.com/ekovaleva/goals-api/internal/models"
)

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{db: db}
}

// Create creates a new goal
func (r *GormGoalRepository) Create(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

// FindByID finds a goal by ID with optional preloading. Archived goals and
// goals under deleted categories are returned too; visibility policy is
// applied by the services.
func (r *GormGoalRepository) FindByID(id uint64, preload ...string) (*models.Goal, error) {
	var goal models.Goal
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&goal, id).Error; err != nil {
		return nil, err
	}

	return &goal, nil
}

// List retrieves non-archived goals on the given boards, excluding deleted
// categories, ordered by title.
func (r *GormGoalRepository) List(filter GoalFilter) ([]models.Goal, int64, error) {
	var goals []models.Goal

	if len(filter.BoardIDs) == 0 {
		return []models.Goal{}, 0, nil
	}

	query := r.db.Model(&models.Goal{}).
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Where("goal_categories.board_id IN ?", filter.BoardIDs).
		Where("goal_categories.is_deleted = ?", false).
		Where("goals.status <> ?", models.GoalStatusArchived)

	if filter.CategoryID != nil {
		query = query.Where("goals.category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("goals.title LIKE ? OR goals.description LIKE ?", pattern, pattern)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("goals.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("goals.due_date < ?", *filter.DueDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("goals.title").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&goals).Error; err != nil {
		return nil, 0, err
	}

	return goals, total, nil
}

// Update updates a goal
func (r *GormGoalRepository) Update(goal *models.Goal) error {
	return r.db.Save(goal).Error
}

// Archive sets the goal status to archived. Goal rows are never hard-deleted.
func (r *GormGoalRepository) Archive(id uint64) error {
	return r.db.Model(&models.Goal{}).
		Where("id = ?", id).
		Update("status", models.GoalStatusArchived).Error
}
