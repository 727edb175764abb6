package dto

import (
	"time"

	"github.com/ekovaleva/goals-api/internal/models"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParticipantDTO represents a board participant in API responses
type ParticipantDTO struct {
	User UserDTO          `json:"user"`
	Role models.BoardRole `json:"role"`
}

// BoardDetailDTO represents a board with its roster
type BoardDetailDTO struct {
	BoardDTO
	Participants []ParticipantDTO `json:"participants"`
	YourRole     models.BoardRole `json:"your_role,omitempty"`
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:        board.ID,
		Title:     board.Title,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}

// ToParticipantDTO converts a participant to DTO
func ToParticipantDTO(participant models.BoardParticipant) ParticipantDTO {
	return ParticipantDTO{
		User: ToUserDTO(participant.User),
		Role: participant.Role,
	}
}

// ToBoardDetailDTO converts a board with roster to a detailed DTO
func ToBoardDetailDTO(board models.Board, participants []models.BoardParticipant, yourRole models.BoardRole) BoardDetailDTO {
	participantDTOs := make([]ParticipantDTO, len(participants))
	for i, participant := range participants {
		participantDTOs[i] = ToParticipantDTO(participant)
	}

	return BoardDetailDTO{
		BoardDTO:     ToBoardDTO(board),
		Participants: participantDTOs,
		YourRole:     yourRole,
	}
}
