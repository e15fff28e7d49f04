package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/database"
	"github.com/mrnoori/projecthub/internal/dto"
	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/repository"
	"github.com/mrnoori/projecthub/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	router  *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Comment{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	// RequireTaskAccess reads the default handle
	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	commentRepo := repository.NewCommentRepository(suite.db)
	activityRepo := repository.NewActivityLogRepository(suite.db)

	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, activityRepo)
	collabService := services.NewCollaborationService(userRepo, taskRepo, commentRepo)

	suite.handler = NewTaskHandler(taskService, collabService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string, creatorID uint64) *models.Project {
	project := &models.Project{
		Name:      name,
		CreatedBy: creatorID,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) createTestTask(title string) *models.Task {
	task := &models.Task{Title: title}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("alice")
	project := suite.createTestProject("Launch", user.ID)

	requestBody := map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
		"project_id":  project.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response["title"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"description": "no title",
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownProject() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"title":      "Orphan",
		"project_id": 999,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_PartialAndNullClear() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Write docs")
	suite.db.Model(task).Update("assignee_id", user.ID)

	// explicit null clears the assignee, omitted title stays put
	body := []byte(`{"assignee_id": null, "description": "refreshed"}`)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Updated int64 `json:"updated"`
		Task    struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			AssigneeID  *uint64 `json:"assignee_id"`
		} `json:"task"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), response.Updated)
	assert.Equal(suite.T(), "Write docs", response.Task.Title)
	assert.Equal(suite.T(), "refreshed", response.Task.Description)
	assert.Nil(suite.T(), response.Task.AssigneeID)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NotFound() {
	user := suite.createTestUser("alice")

	body := []byte(`{"title": "nope"}`)
	c, w := suite.createAuthContext("PATCH", "/api/tasks/999", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_ForbiddenForNonOwner() {
	owner := suite.createTestUser("owner")
	outsider := suite.createTestUser("outsider")
	project := suite.createTestProject("Launch", owner.ID)
	task := suite.createTestTask("Guarded")
	suite.db.Model(task).Update("project_id", project.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, outsider.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Launch", owner.ID)
	task := suite.createTestTask("Done soon")
	suite.db.Model(task).Update("project_id", project.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TaskHandlerTestSuite) TestAssignUser_Idempotent() {
	user := suite.createTestUser("alice")
	suite.createTestTask("Shared work")

	body, _ := json.Marshal(map[string]interface{}{"user_id": user.ID})

	c, w := suite.createAuthContext("POST", "/api/tasks/1/assignments", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.AssignUser(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("POST", "/api/tasks/1/assignments", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.AssignUser(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var count int64
	suite.db.Model(&models.TaskAssignment{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TaskHandlerTestSuite) TestListActivity_AfterUpdate() {
	user := suite.createTestUser("alice")
	suite.createTestTask("Audited")

	body := []byte(`{"title": "Audited twice"}`)
	c, _ := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTask(c)

	c, w := suite.createAuthContext("GET", "/api/tasks/1/activity", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ListActivity(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Activity []dto.ActivityDTO `json:"activity"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Activity, 1)
	assert.Equal(suite.T(), "title", response.Activity[0].Field)
	assert.Equal(suite.T(), user.ID, response.Activity[0].ChangedBy)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
