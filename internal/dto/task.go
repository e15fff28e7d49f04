package dto

import (
	"time"

	"github.com/mrnoori/projecthub/internal/models"
)

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	ID         uint64    `json:"id"`
	TaskID     uint64    `json:"task_id"`
	UserID     uint64    `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
	User       *UserDTO  `json:"user,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	AssigneeID   *uint64             `json:"assignee_id"`
	DueDate      *time.Time          `json:"due_date"`
	ProjectID    *uint64             `json:"project_id"`
	Dependencies string              `json:"dependencies"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Assignee     *UserDTO            `json:"assignee,omitempty"`
	Project      *ProjectDTO         `json:"project,omitempty"`
	Assignments  []TaskAssignmentDTO `json:"assignments,omitempty"`
}

// ToTaskAssignmentDTO converts a TaskAssignment model to TaskAssignmentDTO
func ToTaskAssignmentDTO(assignment models.TaskAssignment) TaskAssignmentDTO {
	dto := TaskAssignmentDTO{
		ID:         assignment.ID,
		TaskID:     assignment.TaskID,
		UserID:     assignment.UserID,
		AssignedAt: assignment.AssignedAt,
	}

	if assignment.User.ID != 0 {
		user := ToUserDTO(assignment.User, false)
		dto.User = &user
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssigneeID:   task.AssigneeID,
		DueDate:      task.DueDate,
		ProjectID:    task.ProjectID,
		Dependencies: task.Dependencies,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee, false)
		dto.Assignee = &assignee
	}

	// Include project if preloaded
	if task.Project != nil && task.Project.ID != 0 {
		project := ToProjectDTO(*task.Project)
		dto.Project = &project
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = make([]TaskAssignmentDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignments[i] = ToTaskAssignmentDTO(assignment)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
