package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskaura-api/internal/auth"
	"github.com/yukikurage/taskaura-api/internal/constants"
	"github.com/yukikurage/taskaura-api/internal/dto"
	apierrors "github.com/yukikurage/taskaura-api/internal/errors"
	"github.com/yukikurage/taskaura-api/internal/logger"
	"github.com/yukikurage/taskaura-api/internal/middleware"
	"github.com/yukikurage/taskaura-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	tokens        *auth.TokenManager
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler that keeps the identity in the
// server-side session.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// NewJWTAuthHandler creates an AuthHandler that keeps the identity in a
// signed JWT cookie.
func NewJWTAuthHandler(authService *services.AuthService, tokens *auth.TokenManager, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email    string `json:"email" binding:"required,email,max=255"`
		Username string `json:"username" binding:"required,notblank,max=100"`
		Password string `json:"password" binding:"required,min=6,max=72"`
	}

	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	log := logger.Get()
	log.Info().Uint64("user_id", user.ID).Msg("user registered")

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Signin authenticates a user and issues the identity cookie.
func (h *AuthHandler) Signin(c *gin.Context) {
	type SigninRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req SigninRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if h.tokens != nil {
		token, err := h.tokens.Issue(user.ID, user.Email)
		if err != nil {
			respondAuthError(c, err)
			return
		}
		h.setJWTCookie(c, token, int(h.tokens.Expiration().Seconds()))
	} else {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, user.ID)
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, "Failed to save session")
			return
		}
	}

	c.JSON(http.StatusOK, dto.ToUserInfoResponse(*user))
}

// Signout removes the identity cookie.
func (h *AuthHandler) Signout(c *gin.Context) {
	if h.tokens != nil {
		h.setJWTCookie(c, "", -1)
	} else {
		session := sessions.Default(c)
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, "Failed to sign out")
			return
		}
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "You've been signed out!"})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserInfoResponse(*user))
}

// GetCurrentUsername returns the email of the signed in user, or an empty
// string for anonymous callers.
func (h *AuthHandler) GetCurrentUsername(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.String(http.StatusOK, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.String(http.StatusOK, "")
			return
		}
		respondAuthError(c, err)
		return
	}

	c.String(http.StatusOK, user.Email)
}

func (h *AuthHandler) setJWTCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.JWTCookieName, value, maxAge, "/", "", h.secureCookies, true)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Error: Email is already in use!")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		_ = c.Error(err)
		log := logger.Get()
		log.Error().Err(err).Msg("authentication request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}
