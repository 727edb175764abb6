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

// CategoryHandler coordinates goal category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory creates a category under a board.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCategoryRequest struct {
		Title   string `json:"title" binding:"required"`
		BoardID uint64 `json:"board" binding:"required"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.BoardID, req.Title)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// ListCategories lists categories across the requester's boards.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListCategoriesInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if boardStr := c.Query("board"); boardStr != "" {
		boardID, err := strconv.ParseUint(boardStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid board filter")
			return
		}
		input.BoardID = &boardID
	}

	categories, total, err := h.categoryService.ListCategories(userID, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	categoryDTOs := make([]dto.CategoryDTO, len(categories))
	for i, category := range categories {
		categoryDTOs[i] = dto.ToCategoryDTO(category)
	}

	c.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: categoryDTOs,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCategory returns a single category.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(userID, categoryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// UpdateCategory renames a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCategoryRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Title)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory soft-deletes the category and archives its goals.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
