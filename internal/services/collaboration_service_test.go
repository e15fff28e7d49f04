package services

import (
	"testing"

	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCollaborationService(t *testing.T) (*CollaborationService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Collaborator{},
		&models.Comment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	svc := NewCollaborationService(
		repository.NewUserRepository(db),
		repository.NewTaskRepository(db),
		repository.NewCommentRepository(db),
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTask(t *testing.T, db *gorm.DB, title string) *models.Task {
	t.Helper()
	task := &models.Task{Title: title}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestCollaborationService_AssignUserToTask_Idempotent(t *testing.T) {
	svc, db := setupCollaborationService(t)
	user := seedUser(t, db, "alice")
	task := seedTask(t, db, "Write docs")

	first, err := svc.AssignUserToTask(task.ID, user.ID)
	require.NoError(t, err)

	second, err := svc.AssignUserToTask(task.ID, user.ID)
	require.NoError(t, err)

	// repeating the call returns the same row, original timestamp intact
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.AssignedAt.UnixNano(), second.AssignedAt.UnixNano())

	var count int64
	db.Model(&models.TaskAssignment{}).Where("task_id = ? AND user_id = ?", task.ID, user.ID).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestCollaborationService_AssignUserToTask_UnknownTask(t *testing.T) {
	svc, db := setupCollaborationService(t)
	user := seedUser(t, db, "alice")

	_, err := svc.AssignUserToTask(999, user.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCollaborationService_AssignUserToTask_UnknownUser(t *testing.T) {
	svc, db := setupCollaborationService(t)
	task := seedTask(t, db, "Write docs")

	_, err := svc.AssignUserToTask(task.ID, 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCollaborationService_AddCollaborator_RejectsSelf(t *testing.T) {
	svc, db := setupCollaborationService(t)
	user := seedUser(t, db, "alice")

	_, err := svc.AddCollaborator(user.ID, user.ID)
	require.ErrorIs(t, err, ErrSelfCollaboration)
}

func TestCollaborationService_AddCollaborator_Idempotent(t *testing.T) {
	svc, db := setupCollaborationService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, err := svc.AddCollaborator(alice.ID, bob.ID)
	require.NoError(t, err)

	second, err := svc.AddCollaborator(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Collaborator{}).Where("user_id = ?", alice.ID).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestCollaborationService_AddCollaborator_UnknownCollaborator(t *testing.T) {
	svc, db := setupCollaborationService(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.AddCollaborator(alice.ID, 999)
	require.ErrorIs(t, err, ErrCollaboratorNotFound)
}

func TestCollaborationService_RemoveCollaborator_RejectsSelf(t *testing.T) {
	svc, db := setupCollaborationService(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.RemoveCollaborator(alice.ID, alice.ID)
	require.ErrorIs(t, err, ErrSelfCollaboration)
}

func TestCollaborationService_RemoveCollaborator(t *testing.T) {
	svc, db := setupCollaborationService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.AddCollaborator(alice.ID, bob.ID)
	require.NoError(t, err)

	removed, err := svc.RemoveCollaborator(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, removed)

	// removing again is a no-op
	removed, err = svc.RemoveCollaborator(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, removed)
}

func TestCollaborationService_ListCollaborators(t *testing.T) {
	svc, db := setupCollaborationService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := svc.AddCollaborator(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.AddCollaborator(alice.ID, carol.ID)
	require.NoError(t, err)

	collaborators, err := svc.ListCollaborators(alice.ID)
	require.NoError(t, err)
	require.Len(t, collaborators, 2)
}

func TestCollaborationService_AddComment(t *testing.T) {
	svc, db := setupCollaborationService(t)
	user := seedUser(t, db, "alice")
	task := seedTask(t, db, "Write docs")

	comment, err := svc.AddComment(task.ID, user.ID, "Looks good")
	require.NoError(t, err)
	require.NotZero(t, comment.ID)

	comments, err := svc.ListCommentsByTask(task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "Looks good", comments[0].Text)
}

func TestCollaborationService_AddComment_EmptyText(t *testing.T) {
	svc, db := setupCollaborationService(t)
	user := seedUser(t, db, "alice")
	task := seedTask(t, db, "Write docs")

	_, err := svc.AddComment(task.ID, user.ID, "   ")
	require.ErrorIs(t, err, ErrCommentTextRequired)
}

func TestCollaborationService_AddComment_UnknownTask(t *testing.T) {
	svc, db := setupCollaborationService(t)
	user := seedUser(t, db, "alice")

	_, err := svc.AddComment(999, user.ID, "hello")
	require.ErrorIs(t, err, ErrTaskNotFound)
}
