package repository

import (
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/database"
	"github.com/ekovaleva/goals-api/internal/models"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(category *models.GoalCategory) error {
	return r.db.Create(category).Error
}

// FindByID finds a category by ID with optional preloading. Soft-deleted
// rows are returned too; visibility policy is applied by the services.
func (r *GormCategoryRepository) FindByID(id uint64, preload ...string) (*models.GoalCategory, error) {
	var category models.GoalCategory
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&category, id).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// List retrieves non-deleted categories on the given boards, ordered by title
func (r *GormCategoryRepository) List(filter CategoryFilter) ([]models.GoalCategory, int64, error) {
	var categories []models.GoalCategory

	if len(filter.BoardIDs) == 0 {
		return []models.GoalCategory{}, 0, nil
	}

	query := r.db.Model(&models.GoalCategory{}).
		Where("goal_categories.board_id IN ?", filter.BoardIDs).
		Where("goal_categories.is_deleted = ?", false)

	if filter.BoardID != nil {
		query = query.Where("goal_categories.board_id = ?", *filter.BoardID)
	}
	if filter.Search != "" {
		query = query.Where("goal_categories.title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("goal_categories.title").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// Update updates a category
func (r *GormCategoryRepository) Update(category *models.GoalCategory) error {
	return r.db.Save(category).Error
}

// DeleteCascade soft-deletes the category and archives every goal in it
// within one transaction.
func (r *GormCategoryRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GoalCategory{}).
			Where("id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		return tx.Model(&models.Goal{}).
			Where("category_id = ?", id).
			Update("status", models.GoalStatusArchived).Error
	})
}
