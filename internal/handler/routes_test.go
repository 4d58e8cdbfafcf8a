package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/board"
	"github.com/raids-lab/taskflow/pkg/notify"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	// user is the identity injected in place of JWT auth.
	user *model.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Project{}, &model.Column{}, &model.Task{},
		&model.Label{}, &model.Comment{}, &model.Attachment{}, &model.Notification{},
	))

	notifier := notify.NewAggregator(db, time.Minute, nil)
	conf := &RegisterConfig{
		DB: db,
		Board: board.NewService(db, board.NewPermissionEvaluator(db),
			board.NewOrderingEngine(db), notifier, nil, "https://files.example.com"),
		Notifier: notifier,
	}

	env := &testEnv{db: db}
	router := gin.New()
	group := router.Group("/v1")
	group.Use(func(c *gin.Context) {
		if env.user != nil {
			util.SetJWTContext(c, util.JWTMessage{
				UserID:   env.user.ID,
				Username: env.user.Name,
				Role:     env.user.Role,
			})
		}
		c.Next()
	})
	for _, register := range Registers {
		mgr := register(conf)
		mgr.RegisterProtected(group.Group(mgr.GetName()))
	}
	env.router = router
	return env
}

func (env *testEnv) seedUser(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "x",
		Role:     role,
		Status:   model.UserActive,
	}
	require.NoError(t, env.db.Create(u).Error)
	return u
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestColumnRoutes_CreateAndReorder(t *testing.T) {
	env := setupEnv(t)
	manager := env.seedUser(t, "manager", model.RoleManager)
	env.user = manager
	project := &model.Project{Title: "P", Status: model.ProjectActive, ManagerID: manager.ID}
	require.NoError(t, env.db.Create(project).Error)

	w := env.do(t, http.MethodPost, "/v1/columns", gin.H{"projectId": project.ID, "title": "To Do"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/v1/columns", gin.H{"projectId": project.ID, "title": "Done"})
	require.Equal(t, http.StatusOK, w.Code)

	var columns []model.Column
	require.NoError(t, env.db.Where("project_id = ?", project.ID).Order(`"order" ASC`).Find(&columns).Error)
	require.Len(t, columns, 2)

	w = env.do(t, http.MethodPut, "/v1/columns/reorder", gin.H{
		"projectId": project.ID,
		"items": []gin.H{
			{"id": columns[1].ID, "order": 0},
			{"id": columns[0].ID, "order": 1},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var first model.Column
	require.NoError(t, env.db.Where("project_id = ? AND \"order\" = 0", project.ID).First(&first).Error)
	assert.Equal(t, "Done", first.Title)
}

func TestColumnRoutes_ForbiddenForOutsider(t *testing.T) {
	env := setupEnv(t)
	manager := env.seedUser(t, "manager", model.RoleManager)
	outsider := env.seedUser(t, "outsider", model.RoleMember)
	project := &model.Project{Title: "P", Status: model.ProjectActive, ManagerID: manager.ID}
	require.NoError(t, env.db.Create(project).Error)

	env.user = outsider
	w := env.do(t, http.MethodPost, "/v1/columns", gin.H{"projectId": project.ID, "title": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskRoutes_CreateMoveAndList(t *testing.T) {
	env := setupEnv(t)
	manager := env.seedUser(t, "manager", model.RoleManager)
	env.user = manager
	project := &model.Project{Title: "P", Status: model.ProjectActive, ManagerID: manager.ID}
	require.NoError(t, env.db.Create(project).Error)
	todo := &model.Column{ProjectID: project.ID, Title: "To Do", Order: 0}
	done := &model.Column{ProjectID: project.ID, Title: "Done", Order: 1}
	require.NoError(t, env.db.Create(todo).Error)
	require.NoError(t, env.db.Create(done).Error)

	w := env.do(t, http.MethodPost, "/v1/tasks", gin.H{
		"projectId": project.ID, "columnId": todo.ID, "title": "Ship",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var task model.Task
	require.NoError(t, env.db.Where("project_id = ?", project.ID).First(&task).Error)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/v1/tasks/%d/move", task.ID), gin.H{
		"columnId": done.ID, "index": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/v1/tasks?projectId=%d", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ship")

	require.NoError(t, env.db.First(&task, task.ID).Error)
	require.NotNil(t, task.ColumnID)
	assert.Equal(t, done.ID, *task.ColumnID)
}

func TestNotificationRoutes_ListAndMarkRead(t *testing.T) {
	env := setupEnv(t)
	alice := env.seedUser(t, "alice", model.RoleMember)
	env.user = alice
	n := model.Notification{UserID: alice.ID, Message: "hello", Type: model.NotifyInfo}
	require.NoError(t, env.db.Create(&n).Error)

	w := env.do(t, http.MethodGet, "/v1/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")

	w = env.do(t, http.MethodPut, fmt.Sprintf("/v1/notifications/%d/read", n.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Notification
	require.NoError(t, env.db.First(&got, n.ID).Error)
	assert.True(t, got.Read)
}
