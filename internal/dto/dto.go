package dto

import (
	"time"

	"github.com/yukikurage/taskaura-api/internal/constants"
	"github.com/yukikurage/taskaura-api/internal/models"
	"github.com/yukikurage/taskaura-api/internal/services"
	"github.com/yukikurage/taskaura-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserInfoResponse is returned by signin and /api/auth/user
type UserInfoResponse struct {
	UserDTO
	Roles []string `json:"roles"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// ProjectDTO represents a project with its progress in API responses
type ProjectDTO struct {
	ID                 uint64    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	CreatedAt          time.Time `json:"createdAt"`
	TaskCount          int       `json:"taskCount"`
	CompletedTaskCount int       `json:"completedTaskCount"`
	ProgressPercentage int       `json:"progressPercentage"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   bool    `json:"completed"`
	ProjectID   uint64  `json:"projectId"`
}

// GeneratedTaskDTO represents an AI task draft
type GeneratedTaskDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// PageResponse is a page of items with its position in the full result set
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToUserInfoResponse converts a User model to UserInfoResponse
func ToUserInfoResponse(user models.User) UserInfoResponse {
	return UserInfoResponse{
		UserDTO: ToUserDTO(user),
		Roles:   []string{constants.RoleUser},
	}
}

// ToProjectDTO converts a project view to ProjectDTO
func ToProjectDTO(view services.ProjectView) ProjectDTO {
	return ProjectDTO{
		ID:                 view.Project.ID,
		Title:              view.Project.Title,
		Description:        view.Project.Description,
		CreatedAt:          view.Project.CreatedAt,
		TaskCount:          view.Progress.TaskCount,
		CompletedTaskCount: view.Progress.CompletedTaskCount,
		ProgressPercentage: view.Progress.ProgressPercentage,
	}
}

// ToProjectPageResponse converts a page of project views
func ToProjectPageResponse(page services.ProjectPage) PageResponse[ProjectDTO] {
	items := make([]ProjectDTO, len(page.Items))
	for i, view := range page.Items {
		items[i] = ToProjectDTO(view)
	}

	totalPages := utils.TotalPages(page.Total, page.PageSize)

	return PageResponse[ProjectDTO]{
		Content:       items,
		TotalElements: page.Total,
		TotalPages:    totalPages,
		Number:        page.Page,
		Size:          page.PageSize,
		First:         page.Page == 0,
		Last:          page.Page >= totalPages-1,
		Empty:         len(items) == 0,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     FormatDate(task.DueDate),
		Completed:   task.Completed,
		ProjectID:   task.ProjectID,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToGeneratedTaskDTOs converts AI drafts
func ToGeneratedTaskDTOs(tasks []services.GeneratedTask) []GeneratedTaskDTO {
	items := make([]GeneratedTaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = GeneratedTaskDTO{
			Title:       task.Title,
			Description: task.Description,
			DueDate:     FormatDate(task.DueDate),
		}
	}
	return items
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}
	formatted := date.Format(models.DateLayout)
	return &formatted
}

// ParseDate parses an optional YYYY-MM-DD date
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := time.Parse(models.DateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
