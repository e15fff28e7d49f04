package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/repository"
	"github.com/mrnoori/projecthub/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrAssigneeNotFound   = errors.New("assignee does not exist")
	ErrNotProjectOwner    = errors.New("only the project owner can perform this action")
	ErrActivityFieldEmpty = errors.New("activity field is required")
)

// TaskService handles task business logic, including the audit trail that
// every mutating operation feeds.
type TaskService struct {
	taskRepo     repository.TaskRepository
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityLogRepository,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	AssigneeID   *uint64
	DueDate      *time.Time
	ProjectID    *uint64
	Dependencies string
}

// UpdateTaskInput represents a partial update. Nil fields are left untouched;
// the Clear flags reset their optional counterparts.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Dependencies  *string
	AssigneeID    *uint64
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	ProjectID     *uint64
	ClearProject  bool
	ActorID       uint64
}

// RecordActivityInput represents a directly recorded audit entry
type RecordActivityInput struct {
	TaskID    uint64
	Field     string
	OldValue  string
	NewValue  string
	ChangedBy uint64
}

// CreateTask creates a new task after validating every foreign reference.
// Unknown project or assignee ids are rejected rather than silently stored.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.ProjectID != nil {
		if err := s.ensureProjectExists(*input.ProjectID); err != nil {
			return nil, err
		}
	}
	if input.AssigneeID != nil {
		if err := s.ensureUserExists(*input.AssigneeID, ErrAssigneeNotFound); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		AssigneeID:   input.AssigneeID,
		DueDate:      input.DueDate,
		ProjectID:    input.ProjectID,
		Dependencies: input.Dependencies,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "Project", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasksByProject lists one page of a project's tasks
func (s *TaskService) ListTasksByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	if err := s.ensureProjectExists(projectID); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListTasksAssignedTo lists one page of tasks whose assignee field
// references the user
func (s *TaskService) ListTasksAssignedTo(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByAssignee(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask performs a partial merge: unspecified fields stay untouched,
// updated_at is refreshed, and one audit entry is appended per changed
// field. Returns the number of updated rows and the fresh task.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (int64, *models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrTaskNotFound
		}
		return 0, nil, fmt.Errorf("failed to find task: %w", err)
	}

	updates := map[string]interface{}{}
	var changes []models.ActivityLog

	record := func(field, oldValue, newValue string) {
		changes = append(changes, models.ActivityLog{
			TaskID:    taskID,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: input.ActorID,
		})
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return 0, nil, ErrTitleEmpty
		}
		if *input.Title != task.Title {
			record("title", task.Title, *input.Title)
			updates["title"] = *input.Title
		}
	}

	if input.Description != nil && *input.Description != task.Description {
		record("description", task.Description, *input.Description)
		updates["description"] = *input.Description
	}

	if input.Dependencies != nil && *input.Dependencies != task.Dependencies {
		record("dependencies", task.Dependencies, *input.Dependencies)
		updates["dependencies"] = *input.Dependencies
	}

	if input.ClearAssignee {
		if task.AssigneeID != nil {
			record("assignee_id", formatID(task.AssigneeID), "")
			updates["assignee_id"] = nil
		}
	} else if input.AssigneeID != nil {
		if err := s.ensureUserExists(*input.AssigneeID, ErrAssigneeNotFound); err != nil {
			return 0, nil, err
		}
		if task.AssigneeID == nil || *task.AssigneeID != *input.AssigneeID {
			record("assignee_id", formatID(task.AssigneeID), formatID(input.AssigneeID))
			updates["assignee_id"] = *input.AssigneeID
		}
	}

	if input.ClearDueDate {
		if task.DueDate != nil {
			record("due_date", formatTime(task.DueDate), "")
			updates["due_date"] = nil
		}
	} else if input.DueDate != nil {
		if task.DueDate == nil || !task.DueDate.Equal(*input.DueDate) {
			record("due_date", formatTime(task.DueDate), formatTime(input.DueDate))
			updates["due_date"] = *input.DueDate
		}
	}

	if input.ClearProject {
		if task.ProjectID != nil {
			record("project_id", formatID(task.ProjectID), "")
			updates["project_id"] = nil
		}
	} else if input.ProjectID != nil {
		if err := s.ensureProjectExists(*input.ProjectID); err != nil {
			return 0, nil, err
		}
		if task.ProjectID == nil || *task.ProjectID != *input.ProjectID {
			record("project_id", formatID(task.ProjectID), formatID(input.ProjectID))
			updates["project_id"] = *input.ProjectID
		}
	}

	if len(updates) == 0 {
		return 0, task, nil
	}

	count, err := s.taskRepo.UpdateFields(taskID, updates, changes)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.FindByID(taskID, "Assignee", "Project")
	if err != nil {
		return count, nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return count, updated, nil
}

// DeleteTask removes a task. Tasks inside a project can only be deleted by
// the project owner; projectless tasks carry no ownership restriction.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*task.ProjectID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find project: %w", err)
		}
		if project != nil && project.CreatedBy != actorID {
			return ErrNotProjectOwner
		}
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// RecordActivity appends an audit entry outside the update path (for
// transport-level events such as status toggles done by the UI).
func (s *TaskService) RecordActivity(input RecordActivityInput) (*models.ActivityLog, error) {
	if strings.TrimSpace(input.Field) == "" {
		return nil, ErrActivityFieldEmpty
	}

	if _, err := s.taskRepo.FindByID(input.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	entry := &models.ActivityLog{
		TaskID:    input.TaskID,
		Field:     input.Field,
		OldValue:  input.OldValue,
		NewValue:  input.NewValue,
		ChangedBy: input.ChangedBy,
	}

	if err := s.activityRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	return entry, nil
}

// ListActivityByTask lists the audit trail of a task
func (s *TaskService) ListActivityByTask(taskID uint64) ([]models.ActivityLog, error) {
	entries, err := s.activityRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

// ListActivityByUser lists changes made by a user
func (s *TaskService) ListActivityByUser(userID uint64) ([]models.ActivityLog, error) {
	entries, err := s.activityRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

func (s *TaskService) ensureProjectExists(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify project: %w", err)
	}
	return nil
}

func (s *TaskService) ensureUserExists(userID uint64, notFound error) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

func formatID(id *uint64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(*id, 10)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
