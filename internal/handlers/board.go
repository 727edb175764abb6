package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekovaleva/goals-api/internal/dto"
	apierrors "github.com/ekovaleva/goals-api/internal/errors"
	"github.com/ekovaleva/goals-api/internal/middleware"
	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/services"
)

// BoardHandler coordinates board HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// CreateBoard creates a board with the requester as owner.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(userID, req.Title)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns the requester's boards ordered by title.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boards, err := h.boardService.ListBoards(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	boardDTOs := make([]dto.BoardDTO, len(boards))
	for i, board := range boards {
		boardDTOs[i] = dto.ToBoardDTO(board)
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": boardDTOs,
	})
}

// GetBoard returns board details with the roster.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	board, roster, role, err := h.boardService.GetBoard(userID, boardID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(*board, roster, role))
}

// UpdateBoard replaces the roster and optionally renames the board.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type RosterEntryRequest struct {
		Username string           `json:"username" binding:"required"`
		Role     models.BoardRole `json:"role" binding:"required"`
	}
	type UpdateBoardRequest struct {
		Title        string               `json:"title"`
		Participants []RosterEntryRequest `json:"participants"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]services.RosterEntry, len(req.Participants))
	for i, participant := range req.Participants {
		entries[i] = services.RosterEntry{
			Username: participant.Username,
			Role:     participant.Role,
		}
	}

	board, roster, err := h.boardService.UpdateBoard(userID, boardID, services.UpdateBoardInput{
		Title:        req.Title,
		Participants: entries,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(*board, roster, models.RoleOwner))
}

// DeleteBoard soft-deletes the board and cascades to its contents.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(userID, boardID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
