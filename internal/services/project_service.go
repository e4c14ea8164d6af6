package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskaura-api/internal/metrics"
	"github.com/yukikurage/taskaura-api/internal/models"
	"github.com/yukikurage/taskaura-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles project business logic. Every operation is scoped to
// the projects owned by the caller.
type ProjectService struct {
	uow repository.UnitOfWork
}

// NewProjectService creates a new ProjectService
func NewProjectService(uow repository.UnitOfWork) *ProjectService {
	return &ProjectService{
		uow: uow,
	}
}

// ProjectInput holds the writable fields of a project
type ProjectInput struct {
	Title       string
	Description string
}

// ListProjectsInput represents a page request over the caller's projects
type ListProjectsInput struct {
	Page     int
	PageSize int
	Search   string
}

// ProjectView is a project together with the progress of its tasks.
type ProjectView struct {
	Project  models.Project
	Progress Progress
}

// ProjectPage is one page of project views.
type ProjectPage struct {
	Items    []ProjectView
	Page     int
	PageSize int
	Total    int64
}

func newProjectView(project models.Project) ProjectView {
	return ProjectView{
		Project:  project,
		Progress: ComputeProgress(project.Tasks),
	}
}

// CreateProject creates a project owned by the caller
func (s *ProjectService) CreateProject(ctx context.Context, session AuthSession, input ProjectInput) (*ProjectView, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		UserID:      userID,
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Projects.Create(project)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	metrics.ProjectsCreatedTotal.Inc()

	view := newProjectView(*project)
	return &view, nil
}

// ListProjects returns a page of the caller's projects whose title contains
// the search term, ignoring case, newest first
func (s *ProjectService) ListProjects(ctx context.Context, session AuthSession, input ListProjectsInput) (*ProjectPage, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	if input.Page < 0 || input.PageSize < 1 {
		return nil, ErrInvalidPagination
	}

	var (
		projects []models.Project
		total    int64
	)
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		projects, total, err = repos.Projects.List(repository.ProjectFilter{
			UserID:   userID,
			Search:   input.Search,
			Page:     input.Page,
			PageSize: input.PageSize,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	items := make([]ProjectView, len(projects))
	for i, project := range projects {
		items[i] = newProjectView(project)
	}

	return &ProjectPage{
		Items:    items,
		Page:     input.Page,
		PageSize: input.PageSize,
		Total:    total,
	}, nil
}

// GetProject returns one of the caller's projects
func (s *ProjectService) GetProject(ctx context.Context, session AuthSession, id uint64) (*ProjectView, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	var view ProjectView
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(id, "Tasks")
		if err != nil {
			return projectLookupError(id, err)
		}
		if err := authorizeProject(project, userID); err != nil {
			return err
		}

		view = newProjectView(*project)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}

// UpdateProject replaces the title and description of one of the caller's projects
func (s *ProjectService) UpdateProject(ctx context.Context, session AuthSession, id uint64, input ProjectInput) (*ProjectView, error) {
	userID, err := session.CurrentUserID()
	if err != nil {
		return nil, err
	}

	var view ProjectView
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		project, err := repos.Projects.LockByID(id)
		if err != nil {
			return projectLookupError(id, err)
		}
		if err := authorizeProject(project, userID); err != nil {
			return err
		}

		project.Title = input.Title
		project.Description = input.Description

		if err := repos.Projects.Update(project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		updated, err := repos.Projects.FindByID(id, "Tasks")
		if err != nil {
			return fmt.Errorf("failed to reload project: %w", err)
		}

		view = newProjectView(*updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}

// DeleteProject deletes one of the caller's projects together with its tasks
func (s *ProjectService) DeleteProject(ctx context.Context, session AuthSession, id uint64) error {
	userID, err := session.CurrentUserID()
	if err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		project, err := repos.Projects.LockByID(id)
		if err != nil {
			return projectLookupError(id, err)
		}
		if err := authorizeProject(project, userID); err != nil {
			return err
		}

		if err := repos.Projects.Delete(id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.ProjectsDeletedTotal.Inc()
	return nil
}

// projectLookupError translates a repository lookup failure
func projectLookupError(id uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "Project", ID: id}
	}
	return fmt.Errorf("failed to find project: %w", err)
}

// authorizeProject checks that the caller owns the project
func authorizeProject(project *models.Project, callerID uint64) error {
	if err := Authorize(project.UserID, callerID); err != nil {
		metrics.AuthorizationDeniedTotal.WithLabelValues("project").Inc()
		return &ForbiddenError{Resource: "Project", ID: project.ID}
	}
	return nil
}
