package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/repository"
	"github.com/mrnoori/projecthub/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCollaborationHandler(t *testing.T) (*CollaborationHandler, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Collaborator{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Comment{},
		&models.ActivityLog{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, activityRepo)
	collabService := services.NewCollaborationService(userRepo, taskRepo, commentRepo)

	return NewCollaborationHandler(collabService, taskService), db
}

func collabContext(t *testing.T, method, url string, payload interface{}, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	var req *http.Request
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func seedHandlerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCollaborationHandler_AddComment_ResponseShape(t *testing.T) {
	handler, db := setupCollaborationHandler(t)
	user := seedHandlerUser(t, db, "alice")
	task := &models.Task{Title: "Write docs"}
	require.NoError(t, db.Create(task).Error)

	c, w := collabContext(t, "POST", "/api/tasks/1/comments", map[string]string{"text": "Looks good"}, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.AddComment(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Looks good", response["text"])

	// no zero-valued embedded relations leak into the payload
	require.NotContains(t, response, "task")
	require.NotContains(t, response, "user")
}

func TestCollaborationHandler_AddCollaborator_ResponseShape(t *testing.T) {
	handler, db := setupCollaborationHandler(t)
	alice := seedHandlerUser(t, db, "alice")
	bob := seedHandlerUser(t, db, "bob")

	c, w := collabContext(t, "POST", "/api/collaborators", map[string]uint64{"collaborator_id": bob.ID}, alice.ID)

	handler.AddCollaborator(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, float64(alice.ID), response["user_id"])
	require.Equal(t, float64(bob.ID), response["collaborator_id"])
	require.NotContains(t, response, "user")
	require.NotContains(t, response, "collaborator")
}

func TestCollaborationHandler_RemoveCollaborator_RejectsSelf(t *testing.T) {
	handler, db := setupCollaborationHandler(t)
	alice := seedHandlerUser(t, db, "alice")

	c, w := collabContext(t, "DELETE", "/api/collaborators/"+strconv.FormatUint(alice.ID, 10), nil, alice.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(alice.ID, 10)}}

	handler.RemoveCollaborator(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
