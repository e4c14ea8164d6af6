package repository

import (
	"github.com/yukikurage/taskaura-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// LockByID finds a project by ID and locks the row for the rest of the transaction
	LockByID(id uint64) (*models.Project, error)

	// List retrieves a page of projects matching the filter, with their tasks
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update saves the project's own columns
	Update(project *models.Project) error

	// Delete deletes a project and all of its tasks
	Delete(id uint64) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	UserID   uint64
	Search   string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// LockByID finds a task by ID, locks it and preloads its project
	LockByID(id uint64) (*models.Task, error)

	// ListByProject returns the tasks of a project in insertion order
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update saves the task's own columns
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(email string) (bool, error)
}
