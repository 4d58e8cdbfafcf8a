package board

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raids-lab/taskflow/dao/model"
)

// openTestDB opens an in-memory sqlite database. One connection only:
// every connection of a plain ":memory:" DSN gets its own database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	project []string
	user    map[uint][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{user: map[uint][]string{}}
}

func (n *recordingNotifier) NotifyProject(_ context.Context, _ uint, message string, _ uint, _ string) {
	n.project = append(n.project, message)
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID uint, message, _ string) {
	n.user[userID] = append(n.user[userID], message)
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	notifier := newRecordingNotifier()
	svc := NewService(db, NewPermissionEvaluator(db), NewOrderingEngine(db), notifier, nil, "https://files.example.com")
	return &fixture{db: db, svc: svc, notifier: notifier}
}

func (f *fixture) seedUser(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "x",
		Role:     role,
		Status:   model.UserActive,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) seedProject(t *testing.T, manager *model.User, members ...*model.User) *model.Project {
	t.Helper()
	p := &model.Project{
		Title:     "Website Redesign",
		Status:    model.ProjectActive,
		ManagerID: manager.ID,
	}
	for _, m := range members {
		p.Members = append(p.Members, *m)
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) seedColumn(t *testing.T, projectID uint, title string, order int) *model.Column {
	t.Helper()
	col := &model.Column{ProjectID: projectID, Title: title, Order: order}
	require.NoError(t, f.db.Create(col).Error)
	return col
}

func (f *fixture) seedTask(t *testing.T, projectID uint, columnID *uint, title string, order int) *model.Task {
	t.Helper()
	task := &model.Task{
		ProjectID: projectID,
		ColumnID:  columnID,
		Title:     title,
		Status:    model.StatusTodo,
		Order:     order,
	}
	require.NoError(t, f.db.Create(task).Error)
	return task
}

func actorFor(u *model.User) Actor {
	return Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}
