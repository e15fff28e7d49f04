package repository

import (
	"github.com/mrnoori/projecthub/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByCreators lists projects created by any of the given users
func (r *GormProjectRepository) ListByCreators(creatorIDs []uint64) ([]models.Project, error) {
	if len(creatorIDs) == 0 {
		return []models.Project{}, nil
	}

	var projects []models.Project
	if err := r.db.
		Where("created_by IN ?", creatorIDs).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
