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
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment text cannot be empty")
	ErrGoalArchived    = errors.New("cannot comment on an archived goal")
	// ErrNotCommentAuthor is returned when someone other than the author
	// tries to edit or delete a comment; board role does not override it.
	ErrNotCommentAuthor = errors.New("only the author can modify a comment")
)

// CommentService provides business logic for goal comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	goalRepo    repository.GoalRepository
	boardRepo   repository.BoardRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, goalRepo repository.GoalRepository, boardRepo repository.BoardRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		goalRepo:    goalRepo,
		boardRepo:   boardRepo,
	}
}

// visibleComment resolves a comment on a goal of one of the user's boards.
func (s *CommentService) visibleComment(userID, commentID uint64, preload ...string) (*models.GoalComment, *models.BoardParticipant, error) {
	preload = append(preload, "Goal", "Goal.Category")
	comment, err := s.commentRepo.FindByID(commentID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCommentNotFound
		}
		return nil, nil, fmt.Errorf("failed to find comment: %w", err)
	}

	participant, err := s.boardRepo.FindParticipant(comment.Goal.Category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCommentNotFound
		}
		return nil, nil, fmt.Errorf("failed to find participant: %w", err)
	}

	return comment, participant, nil
}

// CreateComment adds a comment to a goal. Requires the writer or owner role;
// archived goals reject new comments.
func (s *CommentService) CreateComment(userID, goalID uint64, text string) (*models.GoalComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	goal, err := s.goalRepo.FindByID(goalID, "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.Category.IsDeleted {
		return nil, ErrGoalNotFound
	}

	participant, err := s.boardRepo.FindParticipant(goal.Category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}

	if goal.Status == models.GoalStatusArchived {
		return nil, ErrGoalArchived
	}
	if !rbac.Can(participant.Role, rbac.ActionWrite) {
		return nil, ErrForbidden
	}

	comment := &models.GoalComment{
		Text:   text,
		GoalID: goalID,
		UserID: userID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetComment returns a comment visible to the user.
func (s *CommentService) GetComment(userID, commentID uint64) (*models.GoalComment, error) {
	comment, _, err := s.visibleComment(userID, commentID, "User")
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListCommentsInput holds list query parameters.
type ListCommentsInput struct {
	GoalID   *uint64
	Page     int
	PageSize int
}

// ListComments lists comments across the user's boards, newest first.
func (s *CommentService) ListComments(userID uint64, input ListCommentsInput) ([]models.GoalComment, int64, error) {
	boardIDs, err := s.boardRepo.BoardIDsForUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve boards: %w", err)
	}

	comments, total, err := s.commentRepo.List(repository.CommentFilter{
		BoardIDs: boardIDs,
		GoalID:   input.GoalID,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, total, nil
}

// UpdateComment edits a comment's text. Author only, regardless of board role.
func (s *CommentService) UpdateComment(userID, commentID uint64, text string) (*models.GoalComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	comment, _, err := s.visibleComment(userID, commentID, "User")
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}

	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment. Author only, regardless of board role.
func (s *CommentService) DeleteComment(userID, commentID uint64) error {
	comment, _, err := s.visibleComment(userID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotCommentAuthor
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
