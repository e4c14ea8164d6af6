package constants

import "time"

// Session and context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "task_session"
	JWTCookieName     = "taskaura"
)

// Auth modes
const (
	AuthModeSession = "session"
	AuthModeJWT     = "jwt"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxTitleLength    = 255
)

// Pagination (pages are zero-indexed)
const (
	FirstPage       = 0
	DefaultPageSize = 6
	MinPageSize     = 1
	MaxPageSize     = 100
)

// JWT
const (
	DefaultJWTExpiration = 24 * time.Hour
)

// AI
const (
	MaxAIGeneratedTasks = 20
	MaxAIInputLength    = 4000
)

// Roles reported by /api/auth/user
const (
	RoleUser = "ROLE_USER"
)
