package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	AssigneeID   *uint64        `gorm:"index" json:"assignee_id"`
	DueDate      *time.Time     `json:"due_date"`
	ProjectID    *uint64        `gorm:"index" json:"project_id"`
	Dependencies string         `gorm:"type:text" json:"dependencies"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee    *User            `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Project     *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Comments    []Comment        `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
