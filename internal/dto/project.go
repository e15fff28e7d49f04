package dto

import (
	"time"

	"github.com/mrnoori/projecthub/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   uint64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Creator     *UserDTO  `json:"creator,omitempty"`
}

// ProjectListResponse represents a list of projects
type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include creator if preloaded
	if project.Creator.ID != 0 {
		creator := ToUserDTO(project.Creator, false)
		dto.Creator = &creator
	}

	return dto
}

// ToProjectListResponse converts a slice of projects
func ToProjectListResponse(projects []models.Project) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return ProjectListResponse{Projects: items}
}
