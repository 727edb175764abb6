package repository

import (
	"time"

	"github.com/ekovaleva/goals-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByUsernames finds all users with the given usernames
	FindByUsernames(usernames []string) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// BoardRepository defines the interface for board and participant data access
type BoardRepository interface {
	// CreateWithOwner creates a board and its owner participant atomically
	CreateWithOwner(board *models.Board, ownerID uint64) error

	// FindByID finds a non-deleted board by ID
	FindByID(id uint64) (*models.Board, error)

	// ListForUser lists non-deleted boards the user participates in, by title
	ListForUser(userID uint64) ([]models.Board, error)

	// BoardIDsForUser returns the IDs of boards the user participates in
	BoardIDsForUser(userID uint64) ([]uint64, error)

	// FindParticipant finds a participant row for (board, user)
	FindParticipant(boardID, userID uint64) (*models.BoardParticipant, error)

	// ListParticipants lists a board's roster with users preloaded
	ListParticipants(boardID uint64) ([]models.BoardParticipant, error)

	// ReplaceParticipants replaces the roster except the kept user and
	// optionally renames the board, in one transaction
	ReplaceParticipants(boardID, keepUserID uint64, participants []models.BoardParticipant, title string) error

	// DeleteCascade soft-deletes the board, its categories and archives
	// every goal under them in one transaction
	DeleteCascade(id uint64) error
}

// CategoryFilter holds filtering options for listing goal categories
type CategoryFilter struct {
	BoardIDs []uint64
	BoardID  *uint64
	Search   string
	Page     int
	PageSize int
}

// CategoryRepository defines the interface for goal category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.GoalCategory) error

	// FindByID finds a category by ID with optional preloading; soft-deleted
	// rows are returned too
	FindByID(id uint64, preload ...string) (*models.GoalCategory, error)

	// List retrieves non-deleted categories on the given boards
	List(filter CategoryFilter) ([]models.GoalCategory, int64, error)

	// Update updates a category
	Update(category *models.GoalCategory) error

	// DeleteCascade soft-deletes the category and archives its goals in one
	// transaction
	DeleteCascade(id uint64) error
}

// GoalFilter holds filtering options for listing goals
type GoalFilter struct {
	BoardIDs    []uint64
	CategoryID  *uint64
	Search      string
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	Page        int
	PageSize    int
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	// Create creates a new goal
	Create(goal *models.Goal) error

	// FindByID finds a goal by ID with optional preloading; archived rows
	// are returned too
	FindByID(id uint64, preload ...string) (*models.Goal, error)

	// List retrieves non-archived goals on the given boards, excluding
	// deleted categories
	List(filter GoalFilter) ([]models.Goal, int64, error)

	// Update updates a goal
	Update(goal *models.Goal) error

	// Archive sets the goal status to archived (goals are never hard-deleted)
	Archive(id uint64) error
}

// CommentFilter holds filtering options for listing goal comments
type CommentFilter struct {
	BoardIDs []uint64
	GoalID   *uint64
	Page     int
	PageSize int
}

// CommentRepository defines the interface for goal comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.GoalComment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.GoalComment, error)

	// List retrieves comments on goals of the given boards, newest first
	List(filter CommentFilter) ([]models.GoalComment, int64, error)

	// Update updates a comment
	Update(comment *models.GoalComment) error

	// Delete removes a comment
	Delete(id uint64) error
}
