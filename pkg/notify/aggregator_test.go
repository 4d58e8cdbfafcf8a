package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raids-lab/taskflow/dao/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Project{}, &model.Notification{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "x",
		Role:     model.RoleMember,
		Status:   model.UserActive,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProject(t *testing.T, db *gorm.DB, manager *model.User, members ...*model.User) *model.Project {
	t.Helper()
	p := &model.Project{
		Title:     "Website Redesign",
		Status:    model.ProjectActive,
		ManagerID: manager.ID,
	}
	for _, m := range members {
		p.Members = append(p.Members, *m)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []model.Notification {
	t.Helper()
	var out []model.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("id ASC").Find(&out).Error)
	return out
}

func TestNotifyProject_BurstCollapsesIntoOneRow(t *testing.T) {
	db := openTestDB(t)
	manager := seedUser(t, db, "manager")
	alice := seedUser(t, db, "alice")
	project := seedProject(t, db, manager, alice)

	agg := NewAggregator(db, 5*time.Minute, nil)

	ctx := context.Background()
	agg.NotifyProject(ctx, project.ID, "bob created task \"One\"", 0, model.NotifyProjectUpdate)

	second := time.Now().Add(2 * time.Minute)
	agg.now = func() time.Time { return second }
	agg.NotifyProject(ctx, project.ID, "bob created task \"Two\"", 0, model.NotifyProjectUpdate)

	got := notificationsFor(t, db, alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "bob made multiple updates in Website Redesign", got[0].Message)
	assert.False(t, got[0].Read)
	// Merging bumps the row's timestamp to the latest update.
	assert.WithinDuration(t, second, got[0].CreatedAt, time.Second)

	// A third update inside the window keeps the aggregated message.
	agg.NotifyProject(ctx, project.ID, "bob deleted task \"Two\"", 0, model.NotifyProjectUpdate)

	got = notificationsFor(t, db, alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "bob made multiple updates in Website Redesign", got[0].Message)
}

func TestNotifyProject_OutsideWindowCreatesNewRow(t *testing.T) {
	db := openTestDB(t)
	manager := seedUser(t, db, "manager")
	alice := seedUser(t, db, "alice")
	project := seedProject(t, db, manager, alice)

	agg := NewAggregator(db, 5*time.Minute, nil)

	ctx := context.Background()
	agg.NotifyProject(ctx, project.ID, "bob created task \"One\"", 0, model.NotifyProjectUpdate)

	// Shift the clock past the window; the first row now falls outside it.
	agg.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	agg.NotifyProject(ctx, project.ID, "bob created task \"Two\"", 0, model.NotifyProjectUpdate)

	got := notificationsFor(t, db, alice.ID)
	require.Len(t, got, 2)
	assert.Equal(t, "bob created task \"One\"", got[0].Message)
	assert.Equal(t, "bob created task \"Two\"", got[1].Message)
}

func TestNotifyProject_ReadRowsDoNotAggregate(t *testing.T) {
	db := openTestDB(t)
	manager := seedUser(t, db, "manager")
	project := seedProject(t, db, manager)

	agg := NewAggregator(db, 5*time.Minute, nil)
	ctx := context.Background()
	agg.NotifyProject(ctx, project.ID, "bob created task \"One\"", 0, model.NotifyProjectUpdate)

	first := notificationsFor(t, db, manager.ID)
	require.Len(t, first, 1)
	require.NoError(t, agg.MarkAsRead(ctx, manager.ID, first[0].ID))

	agg.NotifyProject(ctx, project.ID, "bob created task \"Two\"", 0, model.NotifyProjectUpdate)
	got := notificationsFor(t, db, manager.ID)
	require.Len(t, got, 2)
	assert.Equal(t, "bob created task \"Two\"", got[1].Message)
}

func TestNotifyProject_ExcludesActorAndDeduplicatesManager(t *testing.T) {
	db := openTestDB(t)
	manager := seedUser(t, db, "manager")
	alice := seedUser(t, db, "alice")
	// The manager is also in the member list; they must get one row only.
	project := seedProject(t, db, manager, manager, alice)

	agg := NewAggregator(db, 5*time.Minute, nil)
	agg.NotifyProject(context.Background(), project.ID, "alice created task \"One\"", alice.ID, model.NotifyProjectUpdate)

	assert.Len(t, notificationsFor(t, db, manager.ID), 1)
	assert.Empty(t, notificationsFor(t, db, alice.ID))
}

func TestMarkAsRead_ScopedAndIdempotent(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	agg := NewAggregator(db, 5*time.Minute, nil)
	ctx := context.Background()
	agg.NotifyUser(ctx, alice.ID, "hello", model.NotifyInfo)

	got := notificationsFor(t, db, alice.ID)
	require.Len(t, got, 1)

	// Another user cannot mark it.
	require.NoError(t, agg.MarkAsRead(ctx, bob.ID, got[0].ID))
	require.False(t, notificationsFor(t, db, alice.ID)[0].Read)

	require.NoError(t, agg.MarkAsRead(ctx, alice.ID, got[0].ID))
	require.True(t, notificationsFor(t, db, alice.ID)[0].Read)
	require.NoError(t, agg.MarkAsRead(ctx, alice.ID, got[0].ID))
}

func TestGetForUser_NewestFirstCapped(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")

	agg := NewAggregator(db, 5*time.Minute, nil)
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		n := model.Notification{UserID: alice.ID, Message: fmt.Sprintf("n%d", i), Type: model.NotifyInfo}
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&n).Error)
	}

	got, err := agg.GetForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, "n24", got[0].Message)
}
