package dto

import (
	"time"

	"github.com/mrnoori/projecthub/internal/models"
)

// CollaboratorDTO represents a collaborator link in API responses
type CollaboratorDTO struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	CollaboratorID uint64    `json:"collaborator_id"`
	AddedAt        time.Time `json:"added_at"`
	Collaborator   *UserDTO  `json:"collaborator,omitempty"`
}

// ToCollaboratorDTO converts a Collaborator model to CollaboratorDTO
func ToCollaboratorDTO(link models.Collaborator) CollaboratorDTO {
	dto := CollaboratorDTO{
		ID:             link.ID,
		UserID:         link.UserID,
		CollaboratorID: link.CollaboratorID,
		AddedAt:        link.AddedAt,
	}

	// Include collaborator if preloaded
	if link.Collaborator.ID != 0 {
		user := ToUserDTO(link.Collaborator, false)
		dto.Collaborator = &user
	}

	return dto
}
