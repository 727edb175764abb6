package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ekovaleva/goals-api/internal/constants"
	"github.com/ekovaleva/goals-api/internal/dto"
	apierrors "github.com/ekovaleva/goals-api/internal/errors"
	"github.com/ekovaleva/goals-api/internal/middleware"
	"github.com/ekovaleva/goals-api/internal/services"
	"github.com/ekovaleva/goals-api/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	cache       *redis.Client
}

// NewAuthHandler creates a new AuthHandler. The cache client is optional.
func NewAuthHandler(authService *services.AuthService, cache *redis.Client) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cache:       cache,
	}
}

func profileCacheKey(userID uint64) string {
	return fmt.Sprintf("profile:%d", userID)
}

func (h *AuthHandler) invalidateProfileCache(c *gin.Context, userID uint64) {
	if h.cache == nil {
		return
	}
	if err := utils.DeleteCache(c.Request.Context(), h.cache, profileCacheKey(userID)); err != nil {
		logrus.WithError(err).Warn("failed to invalidate profile cache")
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username       string `json:"username" binding:"required,min=3,max=50"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		Email          string `json:"email" binding:"omitempty,email"`
		Password       string `json:"password" binding:"required"`
		PasswordRepeat string `json:"password_repeat" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		PasswordRepeat: req.PasswordRepeat,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if h.cache != nil {
		var cached dto.UserDTO
		hit, err := utils.GetCache(c.Request.Context(), h.cache, profileCacheKey(userID), &cached)
		if err != nil {
			logrus.WithError(err).Warn("profile cache lookup failed")
		} else if hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	profile := dto.ToUserDTO(*user)
	if h.cache != nil {
		if err := utils.SetCache(c.Request.Context(), h.cache, profileCacheKey(userID), profile, profileCacheTTL); err != nil {
			logrus.WithError(err).Warn("failed to cache profile")
		}
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email" binding:"omitempty,email"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.invalidateProfileCache(c, userID)
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteProfile terminates the session. The account record is kept.
func (h *AuthHandler) DeleteProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to terminate session")
		return
	}

	h.invalidateProfileCache(c, userID)
	c.Status(http.StatusNoContent)
}

// ChangePassword replaces the user's password after verifying the old one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	h.invalidateProfileCache(c, userID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"password_repeat": services.ErrPasswordMismatch.Error()})
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"password": fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength)})
	case errors.Is(err, services.ErrPasswordNumeric):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"password": services.ErrPasswordNumeric.Error()})
	case errors.Is(err, services.ErrWrongOldPassword):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"old_password": services.ErrWrongOldPassword.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
