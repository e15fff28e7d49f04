package repository

import (
	"time"

	"github.com/mrnoori/projecthub/internal/database"
	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/utils"
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
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateFields applies a partial update and appends the audit rows in the
// same transaction, so a failed append never leaves an unaudited change.
// Only the named columns change; GORM refreshes updated_at automatically.
func (r *GormTaskRepository) UpdateFields(id uint64, updates map[string]interface{}, entries []models.ActivityLog) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected

		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Delete soft deletes a task and removes its assignments
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ListByProject lists one page of a project's tasks and the total count
func (r *GormTaskRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListByAssignee lists one page of tasks assigned to the user and the total count
func (r *GormTaskRepository) ListByAssignee(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("assignee_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// AssignUser inserts a (task, user) assignment. The compound unique index
// turns a concurrent double-assign into a no-op insert, and the follow-up
// fetch returns the canonical record with its original timestamp.
func (r *GormTaskRepository) AssignUser(taskID, userID uint64) (*models.TaskAssignment, error) {
	assignment := models.TaskAssignment{
		TaskID:     taskID,
		UserID:     userID,
		AssignedAt: time.Now(),
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&assignment).Error
	if err != nil {
		return nil, err
	}

	var existing models.TaskAssignment
	if err := r.db.
		Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

// ListAssignmentsByTask lists all assignments for a task
func (r *GormTaskRepository) ListAssignmentsByTask(taskID uint64) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListAssignmentsByUser lists all assignments held by a user
func (r *GormTaskRepository) ListAssignmentsByUser(userID uint64) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.Preload("Task").
		Where("user_id = ?", userID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
