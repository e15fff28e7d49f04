package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/dto"
	apierrors "github.com/mrnoori/projecthub/internal/errors"
	"github.com/mrnoori/projecthub/internal/middleware"
	"github.com/mrnoori/projecthub/internal/services"
	"github.com/mrnoori/projecthub/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService  *services.TaskService
	collabHelper *services.CollaborationService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, collabService *services.CollaborationService) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		collabHelper: collabService,
	}
}

type taskPayload struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	AssigneeID   *uint64    `json:"assignee_id"`
	DueDate      *time.Time `json:"due_date"`
	ProjectID    *uint64    `json:"project_id"`
	Dependencies *string    `json:"dependencies"`
}

// CreateTask creates a task. Project and assignee references are validated
// before anything is stored.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
		ProjectID:  req.ProjectID,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Dependencies != nil {
		input.Dependencies = *req.Dependencies
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task with its relations. The task is already loaded by
// the RequireTaskAccess middleware.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not loaded")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// ListTasks returns a page of tasks assigned to the current user.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasksAssignedTo(userID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateTask applies a partial update. Omitted fields keep their values;
// explicit nulls clear the optional ones.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	// raw map distinguishes "field omitted" from "field set to null"
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{ActorID: userID}

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid title")
			return
		}
		input.Title = &s
	}
	if v, ok := raw["description"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid description")
			return
		}
		input.Description = &s
	}
	if v, ok := raw["dependencies"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid dependencies")
			return
		}
		input.Dependencies = &s
	}
	if v, ok := raw["assignee_id"]; ok {
		if v == nil {
			input.ClearAssignee = true
		} else {
			id, ok := toUint64(v)
			if !ok {
				apierrors.BadRequest(c, "Invalid assignee_id")
				return
			}
			input.AssigneeID = &id
		}
	}
	if v, ok := raw["project_id"]; ok {
		if v == nil {
			input.ClearProject = true
		} else {
			id, ok := toUint64(v)
			if !ok {
				apierrors.BadRequest(c, "Invalid project_id")
				return
			}
			input.ProjectID = &id
		}
	}
	if v, ok := raw["due_date"]; ok {
		if v == nil {
			input.ClearDueDate = true
		} else {
			s, ok := v.(string)
			if !ok {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}

	count, task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": count,
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AssignUser assigns a user to the task. Repeating the call is a no-op
// returning the existing assignment.
func (h *TaskHandler) AssignUser(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type AssignRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.collabHelper.AssignUserToTask(taskID, req.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskAssignmentDTO(*assignment))
}

// ListAssignments lists everyone assigned to the task.
func (h *TaskHandler) ListAssignments(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	assignments, err := h.collabHelper.ListAssignmentsByTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	dtos := make([]dto.TaskAssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = dto.ToTaskAssignmentDTO(a)
	}

	c.JSON(http.StatusOK, gin.H{"assignments": dtos})
}

// ListActivity returns the audit trail of the task, oldest first.
func (h *TaskHandler) ListActivity(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	entries, err := h.taskService.ListActivityByTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": dto.ToActivityDTOs(entries)})
}

// RecordActivity appends an audit entry recorded by the client, such as a
// status change done in the UI.
func (h *TaskHandler) RecordActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type ActivityRequest struct {
		Field    string `json:"field" binding:"required"`
		OldValue string `json:"old_value"`
		NewValue string `json:"new_value"`
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.taskService.RecordActivity(services.RecordActivityInput{
		TaskID:    taskID,
		Field:     req.Field,
		OldValue:  req.OldValue,
		NewValue:  req.NewValue,
		ChangedBy: userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToActivityDTO(*entry))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrActivityFieldEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func toUint64(v interface{}) (uint64, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != float64(uint64(f)) {
		return 0, false
	}
	return uint64(f), true
}
