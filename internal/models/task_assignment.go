package models

import "time"

// TaskAssignment binds a user to a task as a responsible party. The compound
// unique index makes re-assignment an insert-or-fetch rather than a duplicate.
type TaskAssignment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TaskID     uint64    `gorm:"not null;uniqueIndex:idx_task_user;index" json:"task_id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_task_user;index" json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
