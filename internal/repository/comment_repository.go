package repository

import (
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/database"
	"github.com/ekovaleva/goals-api/internal/models"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.GoalComment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.GoalComment, error) {
	var comment models.GoalComment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// List retrieves comments on goals of the given boards, newest first
func (r *GormCommentRepository) List(filter CommentFilter) ([]models.GoalComment, int64, error) {
	var comments []models.GoalComment

	if len(filter.BoardIDs) == 0 {
		return []models.GoalComment{}, 0, nil
	}

	query := r.db.Model(&models.GoalComment{}).
		Joins("JOIN goals ON goals.id = goal_comments.goal_id").
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Where("goal_categories.board_id IN ?", filter.BoardIDs)

	if filter.GoalID != nil {
		query = query.Where("goal_comments.goal_id = ?", *filter.GoalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("goal_comments.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(comment *models.GoalComment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.GoalComment{}, id).Error
}
