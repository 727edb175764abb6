package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekovaleva/goals-api/internal/dto"
	apierrors "github.com/ekovaleva/goals-api/internal/errors"
	"github.com/ekovaleva/goals-api/internal/middleware"
	"github.com/ekovaleva/goals-api/internal/services"
	"github.com/ekovaleva/goals-api/internal/utils"
)

// CommentHandler coordinates goal comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment adds a comment to a goal.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCommentRequest struct {
		Text   string `json:"text" binding:"required"`
		GoalID uint64 `json:"goal" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(userID, req.GoalID, req.Text)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments lists comments, optionally filtered by goal, newest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListCommentsInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if goalStr := c.Query("goal"); goalStr != "" {
		goalID, err := strconv.ParseUint(goalStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid goal filter")
			return
		}
		input.GoalID = &goalID
	}

	comments, total, err := h.commentService.ListComments(userID, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	commentDTOs := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		commentDTOs[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, dto.CommentListResponse{
		Comments: commentDTOs,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetComment returns a single comment.
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(userID, commentID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// UpdateComment edits a comment's text. Author only.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(userID, commentID, req.Text)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Author only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(userID, commentID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
