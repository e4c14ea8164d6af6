package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskaura-api/internal/dto"
	apierrors "github.com/yukikurage/taskaura-api/internal/errors"
	"github.com/yukikurage/taskaura-api/internal/middleware"
	"github.com/yukikurage/taskaura-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the body of create and update requests. Updates overwrite
// every field, so omitted fields are reset.
type TaskRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=255"`
	Description string  `json:"description" binding:"max=10000"`
	DueDate     *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Completed   bool    `json:"completed"`
}

func (r TaskRequest) toInput() (services.TaskInput, error) {
	dueDate, err := dto.ParseDate(r.DueDate)
	if err != nil {
		return services.TaskInput{}, err
	}
	return services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     dueDate,
		Completed:   r.Completed,
	}, nil
}

// ListTasks returns the tasks of a project
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByProject(c.Request.Context(), middleware.Session(c), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a task in a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid dueDate")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.Session(c), projectID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask overwrites a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid dueDate")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.Session(c), taskID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.Session(c), taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTasks drafts task suggestions for a project from text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required,notblank"`
	}

	var req GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	drafts, err := h.taskService.GenerateTasks(c.Request.Context(), middleware.Session(c), projectID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToGeneratedTaskDTOs(drafts),
	})
}
