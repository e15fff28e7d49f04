package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrnoori/projecthub/internal/logger"
)

// AddIndexes ensures every foreign-key read path is backed by an index.
// AutoMigrate already creates the tag-declared indexes; this pass exists for
// databases migrated before the tags were added.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task foreign-key lookups
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_assignee_id", "assignee_id"},

		// Project ownership lookups
		{"projects", "idx_projects_created_by", "created_by"},

		// Comment lookups by task and author
		{"comments", "idx_comments_task_id", "task_id"},
		{"comments", "idx_comments_user_id", "user_id"},

		// Assignment lookups
		{"task_assignments", "idx_task_assignments_task_id", "task_id"},
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},

		// Activity log lookups by task and actor
		{"activity_logs", "idx_activity_logs_task_id", "task_id"},
		{"activity_logs", "idx_activity_logs_changed_by", "changed_by"},

		// Collaborator edges
		{"collaborators", "idx_collaborators_user_id", "user_id"},
		{"collaborators", "idx_collaborators_collaborator_id", "collaborator_id"},
	}

	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Get().WithField("index", idx.name).Info("created index")
	}

	return nil
}
