package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds indexes used by the list and cascade queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"boards", "idx_boards_is_deleted", "is_deleted"},
		{"board_participants", "idx_board_participants_board_id", "board_id"},
		{"board_participants", "idx_board_participants_user_id", "user_id"},
		{"goal_categories", "idx_goal_categories_board_id", "board_id"},
		{"goal_categories", "idx_goal_categories_is_deleted", "is_deleted"},
		{"goals", "idx_goals_category_id", "category_id"},
		{"goals", "idx_goals_status", "status"},
		{"goals", "idx_goals_due_date", "due_date"},
		{"goal_comments", "idx_goal_comments_goal_id", "goal_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithField("index", idx.name).Info("created index")
	}

	return nil
}
