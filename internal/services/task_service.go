package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskaura-api/internal/constants"
	"github.com/yukikurage/taskaura-api/internal/metrics"
	"github.com/yukikurage/taskaura-api/internal/models"
	"github.com/yukikurage/taskaura-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAIInputTooLong         = errors.New("text is too long for task generation")
)

// TaskGenerator drafts tasks from free text.
type TaskGenerator interface {
	GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService handles task business logic. Access to a task is always decided
// by the owner of its project.
type TaskService struct {
	uow       repository.UnitOfWork
	generator TaskGenerator
}

// NewTaskService creates a new TaskService. generator may be nil.
func NewTaskService(uow repository.UnitOfWork, generator TaskGenerator) *TaskService {
	return &TaskService{
		uow:       uow,
		generator: generator,
	}
}

// TaskInput holds the writable fields of a task. Updates overwrite all of them.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
}

// CreateTask creates a task in one of the caller's projects
func (s *TaskService) CreateTask(ctx context.Context, session AuthSession, projectID uint64, input TaskInput) (*models.Task, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     normalizeDueDate(input.DueDate),
		Completed:   input.Completed,
		ProjectID:   projectID,
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		project, err := repos.Projects.LockByID(projectID)
		if err != nil {
			return projectLookupError(projectID, err)
		}
		if err := authorizeProject(project, userID); err != nil {
			return err
		}

		if err := repos.Tasks.Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	if task.Completed {
		metrics.TasksCompletedTotal.Inc()
	}

	return task, nil
}

// ListTasksByProject returns the tasks of one of the caller's projects in insertion order
func (s *TaskService) ListTasksByProject(ctx context.Context, session AuthSession, projectID uint64) ([]models.Task, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(projectID)
		if err != nil {
			return projectLookupError(projectID, err)
		}
		if err := authorizeProject(project, userID); err != nil {
			return err
		}

		tasks, err = repos.Tasks.ListByProject(projectID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateTask overwrites title, description, due date and completion of a
// task. The task stays in its project.
func (s *TaskService) UpdateTask(ctx context.Context, session AuthSession, taskID uint64, input TaskInput) (*models.Task, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	var (
		task         *models.Task
		wasCompleted bool
	)
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		task, err = repos.Tasks.LockByID(taskID)
		if err != nil {
			return taskLookupError(taskID, err)
		}
		if err := authorizeTask(task, userID); err != nil {
			return err
		}

		wasCompleted = task.Completed
		task.Title = input.Title
		task.Description = input.Description
		task.DueDate = normalizeDueDate(input.DueDate)
		task.Completed = input.Completed

		if err := repos.Tasks.Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if task.Completed && !wasCompleted {
		metrics.TasksCompletedTotal.Inc()
	}

	task.Project = models.Project{}
	return task, nil
}

// DeleteTask deletes a task from one of the caller's projects
func (s *TaskService) DeleteTask(ctx context.Context, session AuthSession, taskID uint64) error {
	userID, err := session.CurrentUserID()
	if err != nil {
		return err
	}

	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		task, err := repos.Tasks.LockByID(taskID)
		if err != nil {
			return taskLookupError(taskID, err)
		}
		if err := authorizeTask(task, userID); err != nil {
			return err
		}

		if err := repos.Tasks.Delete(taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// GenerateTasks drafts tasks for one of the caller's projects from free text.
// Drafts are not saved.
func (s *TaskService) GenerateTasks(ctx context.Context, session AuthSession, projectID uint64, text string) ([]GeneratedTask, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if len(text) > constants.MaxAIInputLength {
		return nil, ErrAIInputTooLong
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(projectID)
		if err != nil {
			return projectLookupError(projectID, err)
		}
		return authorizeProject(project, userID)
	})
	if err != nil {
		return nil, err
	}

	// The transaction is closed before calling out to the model.
	drafts, err := s.generator.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	today := models.TruncateToDate(time.Now())
	validTasks := make([]GeneratedTask, 0, len(drafts))
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}
		if runes := []rune(draft.Title); len(runes) > constants.MaxTitleLength {
			draft.Title = string(runes[:constants.MaxTitleLength])
		}

		draft.DueDate = normalizeDueDate(draft.DueDate)
		if draft.DueDate != nil && draft.DueDate.Before(today) {
			draft.DueDate = nil
		}

		validTasks = append(validTasks, draft)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

// taskLookupError translates a repository lookup failure
func taskLookupError(id uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "Task", ID: id}
	}
	return fmt.Errorf("failed to find task: %w", err)
}

// authorizeTask checks that the caller owns the task's project
func authorizeTask(task *models.Task, callerID uint64) error {
	if err := Authorize(task.Project.UserID, callerID); err != nil {
		metrics.AuthorizationDeniedTotal.WithLabelValues("task").Inc()
		return &ForbiddenError{Resource: "Task", ID: task.ID}
	}
	return nil
}

// normalizeDueDate keeps only the calendar date
func normalizeDueDate(dueDate *time.Time) *time.Time {
	if dueDate == nil {
		return nil
	}
	date := models.TruncateToDate(*dueDate)
	return &date
}
