package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskaura-api/internal/auth"
	"github.com/yukikurage/taskaura-api/internal/constants"
	apierrors "github.com/yukikurage/taskaura-api/internal/errors"
	"github.com/yukikurage/taskaura-api/internal/services"
)

// IdentityResolver extracts the authenticated user ID from a request.
type IdentityResolver func(c *gin.Context) (uint64, bool)

// SessionIdentity reads the user ID from the server-side session.
func SessionIdentity(c *gin.Context) (uint64, bool) {
	session := sessions.Default(c)
	return toUserID(session.Get(constants.ContextKeyUserID))
}

// JWTIdentity reads the user ID from the signed JWT cookie.
func JWTIdentity(tokens *auth.TokenManager) IdentityResolver {
	return func(c *gin.Context) (uint64, bool) {
		token, err := c.Cookie(constants.JWTCookieName)
		if err != nil || token == "" {
			return 0, false
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			return 0, false
		}
		return userID, true
	}
}

// RequireAuth rejects requests without an identity
func RequireAuth(resolve IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolve(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth records the identity when present and never rejects
func OptionalAuth(resolve IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolve(c); ok {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// Session exposes the request identity to the service layer.
func Session(c *gin.Context) services.AuthSession {
	return ginSession{c: c}
}

type ginSession struct {
	c *gin.Context
}

func (s ginSession) CurrentUserID() (uint64, error) {
	userID, ok := GetUserID(s.c)
	if !ok {
		return 0, services.ErrUnauthenticated
	}
	return userID, nil
}

func toUserID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
