package constants

// Session
const (
	SessionCookieName = "goals_session"
	ContextKeyUserID  = "user_id"
)

// Password policy
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
