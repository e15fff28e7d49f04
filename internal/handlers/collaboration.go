package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/dto"
	apierrors "github.com/mrnoori/projecthub/internal/errors"
	"github.com/mrnoori/projecthub/internal/middleware"
	"github.com/mrnoori/projecthub/internal/services"
)

// CollaborationHandler coordinates collaborator, comment and per-user
// listing endpoints.
type CollaborationHandler struct {
	collabService *services.CollaborationService
	taskService   *services.TaskService
}

// NewCollaborationHandler creates a new CollaborationHandler.
func NewCollaborationHandler(collabService *services.CollaborationService, taskService *services.TaskService) *CollaborationHandler {
	return &CollaborationHandler{
		collabService: collabService,
		taskService:   taskService,
	}
}

// AddCollaborator shares the current user's projects with another user.
func (h *CollaborationHandler) AddCollaborator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddCollaboratorRequest struct {
		CollaboratorID uint64 `json:"collaborator_id" binding:"required"`
	}

	var req AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.collabService.AddCollaborator(userID, req.CollaboratorID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCollaboratorDTO(*link))
}

// RemoveCollaborator revokes a collaborator link. Removing an absent link
// succeeds with removed=false.
func (h *CollaborationHandler) RemoveCollaborator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	collaboratorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid collaborator id")
		return
	}

	removed, err := h.collabService.RemoveCollaborator(userID, collaboratorID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ListCollaborators lists the current user's collaborators.
func (h *CollaborationHandler) ListCollaborators(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	collaborators, err := h.collabService.ListCollaborators(userID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborators": dto.ToUserDTOs(collaborators)})
}

// AddComment attaches a comment by the current user to a task.
func (h *CollaborationHandler) AddComment(c *gin.Context) {
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

	type AddCommentRequest struct {
		Text string `json:"text"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.collabService.AddComment(taskID, userID, req.Text)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments lists the comments on a task, oldest first.
func (h *CollaborationHandler) ListComments(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	comments, err := h.collabService.ListCommentsByTask(taskID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentDTOs(comments)})
}

// ListMyComments lists comments written by the current user.
func (h *CollaborationHandler) ListMyComments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	comments, err := h.collabService.ListCommentsByUser(userID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentDTOs(comments)})
}

// ListMyAssignments lists the current user's task assignments.
func (h *CollaborationHandler) ListMyAssignments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	assignments, err := h.collabService.ListAssignmentsByUser(userID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	dtos := make([]dto.TaskAssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = dto.ToTaskAssignmentDTO(a)
	}

	c.JSON(http.StatusOK, gin.H{"assignments": dtos})
}

// ListMyActivity lists changes made by the current user across all tasks.
func (h *CollaborationHandler) ListMyActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	entries, err := h.taskService.ListActivityByUser(userID)
	if err != nil {
		respondCollaborationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": dto.ToActivityDTOs(entries)})
}

func respondCollaborationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfCollaboration),
		errors.Is(err, services.ErrCommentTextRequired),
		errors.Is(err, services.ErrCollaboratorNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
