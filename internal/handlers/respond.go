package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskaura-api/internal/errors"
	"github.com/yukikurage/taskaura-api/internal/logger"
	"github.com/yukikurage/taskaura-api/internal/services"
)

// respondServiceError maps project and task service errors to responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidPagination),
		errors.Is(err, services.ErrAIInputTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		_ = c.Error(err)
		log := logger.Get()
		log.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

// parseIDParam reads a positive numeric path parameter, writing a 400 response on failure.
func parseIDParam(c *gin.Context, name, resource string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+resource+" ID")
		return 0, false
	}
	return id, true
}
