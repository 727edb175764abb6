package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/ekovaleva/goals-api/internal/errors"
	"github.com/ekovaleva/goals-api/internal/services"
)

// respondDomainError maps service errors for boards, categories, goals and
// comments onto HTTP responses. Out-of-scope objects are reported as not
// found; insufficient roles as forbidden; state and input violations as
// validation errors.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrRosterDuplicateUser):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidBoardTitle),
		errors.Is(err, services.ErrInvalidCategoryTitle),
		errors.Is(err, services.ErrInvalidGoalTitle),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrRosterUnknownUser),
		errors.Is(err, services.ErrRosterInvalidRole),
		errors.Is(err, services.ErrRosterContainsOwner),
		errors.Is(err, services.ErrInvalidGoalStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrArchivedViaUpdate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCategoryDeleted):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"category": services.ErrCategoryDeleted.Error()})
	case errors.Is(err, services.ErrDueDateInPast):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"due_date": services.ErrDueDateInPast.Error()})
	case errors.Is(err, services.ErrGoalArchived):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"goal": services.ErrGoalArchived.Error()})
	default:
		apierrors.InternalError(c, "")
	}
}
