package repository

import (
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/models"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithOwner creates the board and its owner participant atomically.
func (r *GormBoardRepository) CreateWithOwner(board *models.Board, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		participant := models.BoardParticipant{
			BoardID: board.ID,
			UserID:  ownerID,
			Role:    models.RoleOwner,
		}
		return tx.Create(&participant).Error
	})
}

// FindByID finds a non-deleted board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.Where("is_deleted = ?", false).First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListForUser lists non-deleted boards the user participates in, ordered by title
func (r *GormBoardRepository) ListForUser(userID uint64) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("boards.is_deleted = ?", false).
		Order("boards.title").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// BoardIDsForUser returns the IDs of non-deleted boards the user participates in
func (r *GormBoardRepository) BoardIDsForUser(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.BoardParticipant{}).
		Joins("JOIN boards ON boards.id = board_participants.board_id").
		Where("board_participants.user_id = ?", userID).
		Where("boards.is_deleted = ?", false).
		Pluck("board_participants.board_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindParticipant finds a participant row for (board, user)
func (r *GormBoardRepository) FindParticipant(boardID, userID uint64) (*models.BoardParticipant, error) {
	var participant models.BoardParticipant
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListParticipants lists a board's roster with users preloaded
func (r *GormBoardRepository) ListParticipants(boardID uint64) ([]models.BoardParticipant, error) {
	var participants []models.BoardParticipant
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// ReplaceParticipants replaces the roster wholesale: every participant except
// the kept user is deleted and the submitted roster is bulk-inserted. The
// optional title change rides the same transaction, so a failure anywhere
// rolls the roster back.
func (r *GormBoardRepository) ReplaceParticipants(boardID, keepUserID uint64, participants []models.BoardParticipant, title string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ? AND user_id <> ?", boardID, keepUserID).
			Delete(&models.BoardParticipant{}).Error; err != nil {
			return err
		}

		if len(participants) > 0 {
			if err := tx.Create(&participants).Error; err != nil {
				return err
			}
		}

		if title != "" {
			if err := tx.Model(&models.Board{}).
				Where("id = ?", boardID).
				Update("title", title).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteCascade soft-deletes the board, soft-deletes its categories and
// archives every goal under those categories. All three writes share one
// transaction so no partial cascade is ever observable.
func (r *GormBoardRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Board{}).
			Where("id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.GoalCategory{}).
			Where("board_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		categoryIDs := tx.Model(&models.GoalCategory{}).
			Select("id").
			Where("board_id = ?", id)

		return tx.Model(&models.Goal{}).
			Where("category_id IN (?)", categoryIDs).
			Update("status", models.GoalStatusArchived).Error
	})
}
