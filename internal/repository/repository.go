package repository

import (
	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/utils"
)

// UserRepository defines the interface for user and collaborator data access
type UserRepository interface {
	// Create creates a new user; unique violations surface as gorm.ErrDuplicatedKey
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username (case-sensitive exact match)
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// AddCollaborator inserts a collaborator edge, or returns the existing
	// edge unchanged when the pair is already present
	AddCollaborator(userID, collaboratorID uint64) (*models.Collaborator, error)

	// RemoveCollaborator deletes a collaborator edge, reporting how many rows
	// were removed (zero when the edge was absent)
	RemoveCollaborator(userID, collaboratorID uint64) (int64, error)

	// ListCollaborators lists the collaborator edges owned by a user
	ListCollaborators(userID uint64) ([]models.Collaborator, error)

	// ListOwnersFor lists the IDs of users who have added the given user as
	// a collaborator
	ListOwnersFor(collaboratorID uint64) ([]uint64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListByCreators lists projects created by any of the given users,
	// newest first
	ListByCreators(creatorIDs []uint64) ([]models.Project, error)
}

// TaskRepository defines the interface for task and assignment data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// UpdateFields applies a partial update and appends the matching audit
	// rows in one transaction, returning the number of affected task rows;
	// updated_at is refreshed by GORM
	UpdateFields(id uint64, updates map[string]interface{}, entries []models.ActivityLog) (int64, error)

	// Delete soft deletes a task and removes its assignments transactionally
	Delete(id uint64) error

	// ListByProject lists one page of a project's tasks and the total count
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// ListByAssignee lists one page of tasks whose assignee field references
	// the user, plus the total count
	ListByAssignee(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// AssignUser inserts a (task, user) assignment, or returns the existing
	// record unchanged when the pair is already present
	AssignUser(taskID, userID uint64) (*models.TaskAssignment, error)

	// ListAssignmentsByTask lists all assignments for a task
	ListAssignmentsByTask(taskID uint64) ([]models.TaskAssignment, error)

	// ListAssignmentsByUser lists all assignments held by a user
	ListAssignmentsByUser(userID uint64) ([]models.TaskAssignment, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// ListByTask lists comments on a task, oldest first
	ListByTask(taskID uint64) ([]models.Comment, error)

	// ListByUser lists comments authored by a user
	ListByUser(userID uint64) ([]models.Comment, error)
}

// ActivityLogRepository defines the interface for the append-only audit trail
type ActivityLogRepository interface {
	// Create appends one activity record
	Create(entry *models.ActivityLog) error

	// ListByTask lists the audit trail of a task, oldest first
	ListByTask(taskID uint64) ([]models.ActivityLog, error)

	// ListByUser lists changes made by a user
	ListByUser(userID uint64) ([]models.ActivityLog, error)
}
