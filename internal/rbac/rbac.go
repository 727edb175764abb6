// Package rbac holds the role/action permission matrix for board access.
// Every object (category, goal, comment) resolves to its owning board before
// the matrix is consulted; the services do that resolution and call Can with
// the requester's participant role.
package rbac

import "github.com/ekovaleva/goals-api/internal/models"

type Action string

const (
	// ActionRead covers GET on any object under the board.
	ActionRead Action = "read"
	// ActionWrite covers create/update/delete of categories, goals and
	// comments.
	ActionWrite Action = "write"
	// ActionManage covers board mutation: title, roster, delete.
	ActionManage Action = "manage"
)

// Can reports whether a participant role permits an action on the board.
func Can(role models.BoardRole, action Action) bool {
	switch role {
	case models.RoleOwner:
		return true
	case models.RoleWriter:
		return action == ActionRead || action == ActionWrite
	case models.RoleReader:
		return action == ActionRead
	default:
		return false
	}
}

// Valid reports whether the role is one of the known board roles.
func Valid(role models.BoardRole) bool {
	switch role {
	case models.RoleOwner, models.RoleWriter, models.RoleReader:
		return true
	default:
		return false
	}
}
