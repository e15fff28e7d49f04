package repository

import (
	"github.com/mrnoori/projecthub/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository.
// The table is append-only: no update or delete method exists.
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends one activity record
func (r *GormActivityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// ListByTask lists the audit trail of a task, oldest first
func (r *GormActivityLogRepository) ListByTask(taskID uint64) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUser lists changes made by a user
func (r *GormActivityLogRepository) ListByUser(userID uint64) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := r.db.
		Where("changed_by = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
