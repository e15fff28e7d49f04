package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNotFound     = errors.New("project not found")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	CreatorID   uint64
}

// CreateProject creates a new project owned by the creator. Ownership is
// immutable after creation.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   input.CreatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjectsFor returns the user's own projects plus projects of every
// user who lists them as a collaborator.
func (s *ProjectService) ListProjectsFor(userID uint64) ([]models.Project, error) {
	ownerIDs, err := s.userRepo.ListOwnersFor(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve collaborations: %w", err)
	}

	creatorIDs := make([]uint64, 0, len(ownerIDs)+1)
	creatorIDs = append(creatorIDs, userID)
	for _, id := range ownerIDs {
		if id != userID {
			creatorIDs = append(creatorIDs, id)
		}
	}

	projects, err := s.projectRepo.ListByCreators(creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}
