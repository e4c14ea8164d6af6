package database

import (
	"fmt"

	"github.com/yukikurage/taskaura-api/internal/logger"
	"github.com/yukikurage/taskaura-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes used by ownership lookups and project listing.
func AddIndexes(db *gorm.DB) error {
	log := logger.Get()

	indexes := []struct {
		model   any
		table   string
		name    string
		columns string
	}{
		// Project listing filters by owner and sorts by creation time
		{&models.Project{}, "projects", "idx_projects_user_id", "user_id"},
		{&models.Project{}, "projects", "idx_projects_user_created", "user_id, created_at"},

		// Task lookups by parent project
		{&models.Task{}, "tasks", "idx_tasks_project_id", "project_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}
