package dto

import (
	"time"

	"github.com/mrnoori/projecthub/internal/models"
)

// ActivityDTO represents an audit trail entry in API responses
type ActivityDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy uint64    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ToActivityDTO converts an ActivityLog model to ActivityDTO
func ToActivityDTO(entry models.ActivityLog) ActivityDTO {
	return ActivityDTO{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		Field:     entry.Field,
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
		ChangedBy: entry.ChangedBy,
		CreatedAt: entry.CreatedAt,
	}
}

// ToActivityDTOs converts a slice of activity entries
func ToActivityDTOs(entries []models.ActivityLog) []ActivityDTO {
	dtos := make([]ActivityDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = ToActivityDTO(entry)
	}
	return dtos
}
