package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskaura-api/internal/dto"
	"github.com/yukikurage/taskaura-api/internal/middleware"
	"github.com/yukikurage/taskaura-api/internal/services"
	"github.com/yukikurage/taskaura-api/internal/utils"
)

// ProjectHandler exposes the project service over HTTP.
type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ProjectRequest is the body of create and update requests
type ProjectRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=10000"`
}

// CreateProject creates a project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.projectService.CreateProject(c.Request.Context(), middleware.Session(c), services.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*view))
}

// ListProjects returns a page of the caller's projects
// Supports page, size and search query parameters
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.projectService.ListProjects(c.Request.Context(), middleware.Session(c), services.ListProjectsInput{
		Page:     params.Page,
		PageSize: params.Size,
		Search:   params.Search,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectPageResponse(*page))
}

// GetProject returns a project with its progress
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	view, err := h.projectService.GetProject(c.Request.Context(), middleware.Session(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*view))
}

// UpdateProject replaces the title and description of a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.projectService.UpdateProject(c.Request.Context(), middleware.Session(c), id, services.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*view))
}

// DeleteProject deletes a project and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), middleware.Session(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
