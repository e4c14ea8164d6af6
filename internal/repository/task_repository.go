package repository

import (
	"github.com/yukikurage/taskaura-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// LockByID finds a task by ID, locks it and loads its parent project
func (r *GormTaskRepository) LockByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Project").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject returns the tasks of a project in insertion order
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.
		Where("project_id = ?", projectID).
		Order("tasks.id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the task's own columns
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
