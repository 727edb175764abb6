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
	// ErrForbidden means the requester participates in the board but the
	// role does not permit the operation. Out-of-scope objects surface as
	// the per-object not-found errors instead, so existence never leaks.
	ErrForbidden = errors.New("insufficient role for this operation")

	ErrBoardNotFound        = errors.New("board not found")
	ErrInvalidBoardTitle    = errors.New("board title cannot be empty")
	ErrRosterUnknownUser    = errors.New("roster contains an unknown username")
	ErrRosterInvalidRole    = errors.New("roster roles must be writer or reader")
	ErrRosterDuplicateUser  = errors.New("roster contains a duplicate username")
	ErrRosterContainsOwner  = errors.New("roster cannot contain the requesting owner")
)

// BoardService provides business logic for boards and their rosters.
type BoardService struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, userRepo repository.UserRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// participantFor resolves the requester's participant row on a board.
// A missing row maps to ErrBoardNotFound so foreign boards stay invisible.
func (s *BoardService) participantFor(boardID, userID uint64) (*models.BoardParticipant, error) {
	participant, err := s.boardRepo.FindParticipant(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return participant, nil
}

// CreateBoard creates a board with the creator as its only owner.
func (s *BoardService) CreateBoard(userID uint64, title string) (*models.Board, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidBoardTitle
	}

	board := &models.Board{Title: title}
	if err := s.boardRepo.CreateWithOwner(board, userID); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// ListBoards returns the user's non-deleted boards ordered by title.
func (s *BoardService) ListBoards(userID uint64) ([]models.Board, error) {
	boards, err := s.boardRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard returns a board with its roster, if the user participates in it.
func (s *BoardService) GetBoard(userID, boardID uint64) (*models.Board, []models.BoardParticipant, models.BoardRole, error) {
	participant, err := s.participantFor(boardID, userID)
	if err != nil {
		return nil, nil, "", err
	}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", ErrBoardNotFound
		}
		return nil, nil, "", fmt.Errorf("failed to find board: %w", err)
	}

	roster, err := s.boardRepo.ListParticipants(boardID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to list participants: %w", err)
	}

	return board, roster, participant.Role, nil
}

// RosterEntry is one submitted participant in a board update.
type RosterEntry struct {
	Username string
	Role     models.BoardRole
}

// UpdateBoardInput represents a board update: an optional rename plus the
// replacement roster (the requesting owner is kept implicitly).
type UpdateBoardInput struct {
	Title        string
	Participants []RosterEntry
}

// UpdateBoard replaces the board roster and optionally renames the board.
// Owner only.
func (s *BoardService) UpdateBoard(userID, boardID uint64, input UpdateBoardInput) (*models.Board, []models.BoardParticipant, error) {
	participant, err := s.participantFor(boardID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !rbac.Can(participant.Role, rbac.ActionManage) {
		return nil, nil, ErrForbidden
	}

	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to find board: %w", err)
	}

	newParticipants, err := s.buildRoster(boardID, userID, input.Participants)
	if err != nil {
		return nil, nil, err
	}

	if err := s.boardRepo.ReplaceParticipants(boardID, userID, newParticipants, input.Title); err != nil {
		return nil, nil, fmt.Errorf("failed to update board: %w", err)
	}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload board: %w", err)
	}
	roster, err := s.boardRepo.ListParticipants(boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return board, roster, nil
}

// buildRoster validates submitted entries and resolves usernames to IDs.
func (s *BoardService) buildRoster(boardID, requesterID uint64, entries []RosterEntry) ([]models.BoardParticipant, error) {
	seen := make(map[string]bool, len(entries))
	usernames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !rbac.Valid(entry.Role) || entry.Role == models.RoleOwner {
			return nil, ErrRosterInvalidRole
		}
		if seen[entry.Username] {
			return nil, ErrRosterDuplicateUser
		}
		seen[entry.Username] = true
		usernames = append(usernames, entry.Username)
	}

	users, err := s.userRepo.FindByUsernames(usernames)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roster users: %w", err)
	}
	if len(users) != len(usernames) {
		return nil, ErrRosterUnknownUser
	}

	byUsername := make(map[string]uint64, len(users))
	for _, user := range users {
		byUsername[user.Username] = user.ID
	}

	participants := make([]models.BoardParticipant, 0, len(entries))
	for _, entry := range entries {
		id := byUsername[entry.Username]
		if id == requesterID {
			return nil, ErrRosterContainsOwner
		}
		participants = append(participants, models.BoardParticipant{
			BoardID: boardID,
			UserID:  id,
			Role:    entry.Role,
		})
	}

	return participants, nil
}

// DeleteBoard soft-deletes the board and cascades to categories and goals.
// Owner only.
func (s *BoardService) DeleteBoard(userID, boardID uint64) error {
	participant, err := s.participantFor(boardID, userID)
	if err != nil {
		return err
	}
	if !rbac.Can(participant.Role, rbac.ActionManage) {
		return ErrForbidden
	}

	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	if err := s.boardRepo.DeleteCascade(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}
