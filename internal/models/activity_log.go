package models

import "time"

// ActivityLog is an append-only audit record of a single field change on a
// task. Rows are never updated or deleted.
type ActivityLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Field     string    `gorm:"type:varchar(100);not null" json:"field"`
	OldValue  string    `gorm:"type:text" json:"old_value"`
	NewValue  string    `gorm:"type:text" json:"new_value"`
	ChangedBy uint64    `gorm:"not null;index" json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:ChangedBy" json:"user,omitempty"`
}
