package repository

import (
	"strings"

	"github.com/yukikurage/taskaura-api/internal/database"
	"github.com/yukikurage/taskaura-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape is the escape character used in LIKE patterns. A backslash is
// not portable across MySQL, Postgres and SQLite string literals.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit(clause.Associations).Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		if p == "Tasks" {
			query = query.Preload("Tasks", orderTasks)
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// LockByID finds a project by ID and locks the row
func (r *GormProjectRepository) LockByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves owned projects whose title contains the search term, newest first
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).Scopes(ownedMatching(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	if total == 0 || beyondLastPage(filter.Page, filter.PageSize, total) {
		return projects, total, nil
	}

	err := r.db.
		Scopes(ownedMatching(filter), database.Paginate(filter.Page, filter.PageSize)).
		Order("projects.created_at DESC").
		Order("projects.id DESC").
		Preload("Tasks", orderTasks).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update saves the project's own columns
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete deletes a project and all of its tasks in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

func ownedMatching(filter ProjectFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("projects.user_id = ?", filter.UserID)
		if filter.Search != "" {
			pattern := "%" + likeReplacer.Replace(strings.ToLower(filter.Search)) + "%"
			db = db.Where("LOWER(projects.title) LIKE ? ESCAPE '"+likeEscape+"'", pattern)
		}
		return db
	}
}

// beyondLastPage reports whether page starts after the last of total rows.
// It never multiplies, so huge page numbers cannot wrap the offset.
func beyondLastPage(page, size int, total int64) bool {
	if size < 1 {
		return true
	}
	return int64(page) > (total-1)/int64(size)
}

func orderTasks(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.id ASC")
}
