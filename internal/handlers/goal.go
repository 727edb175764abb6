package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekovaleva/goals-api/internal/dto"
	apierrors "github.com/ekovaleva/goals-api/internal/errors"
	"github.com/ekovaleva/goals-api/internal/middleware"
	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/services"
	"github.com/ekovaleva/goals-api/internal/utils"
)

// GoalHandler coordinates goal HTTP handlers.
type GoalHandler struct {
	goalService *services.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal creates a goal under a category.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateGoalRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		CategoryID  uint64              `json:"category" binding:"required"`
		Status      models.GoalStatus   `json:"status"`
		Priority    models.GoalPriority `json:"priority"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	goal, err := h.goalService.CreateGoal(userID, services.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalDTO(*goal))
}

// ListGoals lists non-archived goals across the requester's boards.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListGoalsInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category filter")
			return
		}
		input.CategoryID = &categoryID
	}
	if fromStr := c.Query("due_date_from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date_from")
			return
		}
		input.DueDateFrom = &from
	}
	if toStr := c.Query("due_date_to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date_to")
			return
		}
		input.DueDateTo = &to
	}

	goals, total, err := h.goalService.ListGoals(userID, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	goalDTOs := make([]dto.GoalDTO, len(goals))
	for i, goal := range goals {
		goalDTOs[i] = dto.ToGoalDTO(goal)
	}

	c.JSON(http.StatusOK, dto.GoalListResponse{
		Goals: goalDTOs,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetGoal returns a single goal.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(userID, goalID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*goal))
}

// UpdateGoal updates the provided fields of a goal.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateGoalInput
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if category, ok := rawReq["category"].(float64); ok {
		categoryID := uint64(category)
		input.CategoryID = &categoryID
	}
	if status, ok := rawReq["status"].(string); ok {
		goalStatus := models.GoalStatus(status)
		input.Status = &goalStatus
	}
	if priority, ok := rawReq["priority"].(string); ok {
		goalPriority := models.GoalPriority(priority)
		input.Priority = &goalPriority
	}
	if _, ok := rawReq["due_date"]; ok {
		// due_date was provided (might be null)
		input.DueDateSet = true
		if dueDateStr, ok := rawReq["due_date"].(string); ok {
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*goal))
}

// DeleteGoal archives the goal.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
