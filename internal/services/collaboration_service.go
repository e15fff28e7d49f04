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
	ErrSelfCollaboration    = errors.New("cannot add yourself as a collaborator")
	ErrCollaboratorNotFound = errors.New("collaborator does not exist")
	ErrCommentTextRequired  = errors.New("comment text is required")
)

// CollaborationService covers the social edges of the system: task
// assignments, collaborator links and comments.
type CollaborationService struct {
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
}

// NewCollaborationService creates a new CollaborationService
func NewCollaborationService(
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
) *CollaborationService {
	return &CollaborationService{
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
	}
}

// AssignUserToTask links a user to a task. Repeating the call returns the
// existing assignment unchanged, original timestamp included.
func (s *CollaborationService) AssignUserToTask(taskID, userID uint64) (*models.TaskAssignment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.ensureUserExists(userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	assignment, err := s.taskRepo.AssignUser(taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	return assignment, nil
}

// ListAssignmentsByTask lists everyone assigned to a task
func (s *CollaborationService) ListAssignmentsByTask(taskID uint64) ([]models.TaskAssignment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignments, err := s.taskRepo.ListAssignmentsByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// ListAssignmentsByUser lists every task a user is assigned to
func (s *CollaborationService) ListAssignmentsByUser(userID uint64) ([]models.TaskAssignment, error) {
	assignments, err := s.taskRepo.ListAssignmentsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// AddCollaborator links a collaborator to the user's workspace. Self links
// are rejected; repeating the call is a no-op returning the existing link.
func (s *CollaborationService) AddCollaborator(userID, collaboratorID uint64) (*models.Collaborator, error) {
	if userID == collaboratorID {
		return nil, ErrSelfCollaboration
	}

	if err := s.ensureUserExists(userID, ErrUserNotFound); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(collaboratorID, ErrCollaboratorNotFound); err != nil {
		return nil, err
	}

	link, err := s.userRepo.AddCollaborator(userID, collaboratorID)
	if err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	return link, nil
}

// RemoveCollaborator removes the link. Self links are rejected the same way
// they are on add. Removing an absent link is a no-op; the returned flag
// reports whether anything was actually deleted.
func (s *CollaborationService) RemoveCollaborator(userID, collaboratorID uint64) (bool, error) {
	if userID == collaboratorID {
		return false, ErrSelfCollaboration
	}

	removed, err := s.userRepo.RemoveCollaborator(userID, collaboratorID)
	if err != nil {
		return false, fmt.Errorf("failed to remove collaborator: %w", err)
	}
	return removed > 0, nil
}

// ListCollaborators lists the users collaborating with the given user
func (s *CollaborationService) ListCollaborators(userID uint64) ([]models.User, error) {
	if err := s.ensureUserExists(userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	edges, err := s.userRepo.ListCollaborators(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}

	users := make([]models.User, len(edges))
	for i, edge := range edges {
		users[i] = edge.Collaborator
	}
	return users, nil
}

// AddComment attaches a comment to a task
func (s *CollaborationService) AddComment(taskID, userID uint64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.ensureUserExists(userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID: taskID,
		UserID: userID,
		Text:   text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListCommentsByTask lists comments on a task, oldest first
func (s *CollaborationService) ListCommentsByTask(taskID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListCommentsByUser lists comments written by a user
func (s *CollaborationService) ListCommentsByUser(userID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CollaborationService) ensureUserExists(userID uint64, notFound error) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}
