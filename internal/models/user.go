package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects      []Project        `gorm:"foreignKey:CreatedBy" json:"-"`
	Assignments   []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
	Comments      []Comment        `gorm:"foreignKey:UserID" json:"-"`
	Collaborators []Collaborator   `gorm:"foreignKey:UserID" json:"-"`
}
