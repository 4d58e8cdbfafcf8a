package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/taskflow/dao/model"
)

func TestCreateColumn_AppendsAndBroadcasts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	f.seedColumn(t, project.ID, "Backlog", 0)

	column, err := f.svc.CreateColumn(ctx, actorFor(manager), project.ID, "  QA  ")
	require.NoError(t, err)
	assert.Equal(t, "QA", column.Title)
	assert.Equal(t, 1, column.Order)
	require.Len(t, f.notifier.project, 1)
	assert.Contains(t, f.notifier.project[0], "QA")
}

func TestCreateColumn_EmptyTitleRejected(t *testing.T) {
	f := newFixture(t)
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)

	_, err := f.svc.CreateColumn(context.Background(), actorFor(manager), project.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, KindValidationFailed, KindOf(err))
}

func TestUpdateColumn_RenameWithoutBroadcast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	col := f.seedColumn(t, project.ID, "To Do", 0)

	require.NoError(t, f.svc.UpdateColumn(ctx, actorFor(manager), col.ID, "Doing"))

	var got model.Column
	require.NoError(t, f.db.First(&got, col.ID).Error)
	assert.Equal(t, "Doing", got.Title)
	assert.Empty(t, f.notifier.project)
}

func TestDeleteColumn_OrphansTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	col := f.seedColumn(t, project.ID, "To Do", 0)
	task := f.seedTask(t, project.ID, &col.ID, "Survivor", 0)

	require.NoError(t, f.svc.DeleteColumn(ctx, actorFor(manager), col.ID))

	var got model.Task
	require.NoError(t, f.db.First(&got, task.ID).Error)
	assert.Nil(t, got.ColumnID)
	assert.Equal(t, project.ID, got.ProjectID)

	var count int64
	require.NoError(t, f.db.Model(&model.Column{}).Where("id = ?", col.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteColumn_MissingColumn(t *testing.T) {
	f := newFixture(t)
	manager := f.seedUser(t, "manager", model.RoleManager)
	f.seedProject(t, manager)

	err := f.svc.DeleteColumn(context.Background(), actorFor(manager), 9999)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
