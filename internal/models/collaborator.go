package models

import "time"

// Collaborator grants CollaboratorID visibility into UserID's projects.
// Self-references are rejected at the service layer; the compound unique
// index keeps the set duplicate-free.
type Collaborator struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	UserID         uint64    `gorm:"not null;uniqueIndex:idx_user_collaborator;index" json:"user_id"`
	CollaboratorID uint64    `gorm:"not null;uniqueIndex:idx_user_collaborator;index" json:"collaborator_id"`
	AddedAt        time.Time `json:"added_at"`

	// Relations
	User         User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Collaborator User `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
}
