package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/taskflow/dao/model"
)

func TestNextColumnRank_AppendsDensely(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	engine := NewOrderingEngine(f.db)

	for want := 0; want < 4; want++ {
		rank, err := engine.NextColumnRank(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, want, rank)
		f.seedColumn(t, project.ID, "col", rank)
	}
}

func TestNextTaskRank_ScopedToColumn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	colA := f.seedColumn(t, project.ID, "To Do", 0)
	colB := f.seedColumn(t, project.ID, "Done", 1)
	f.seedTask(t, project.ID, &colA.ID, "a0", 0)
	f.seedTask(t, project.ID, &colA.ID, "a1", 1)
	engine := NewOrderingEngine(f.db)

	rank, err := engine.NextTaskRank(ctx, project.ID, &colA.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	// Empty sibling column starts at zero.
	rank, err = engine.NextTaskRank(ctx, project.ID, &colB.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, rank)

	// Without a column the scope widens to the whole project.
	rank, err = engine.NextTaskRank(ctx, project.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
}

func TestReorderColumns_AssignsByIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	c0 := f.seedColumn(t, project.ID, "Backlog", 0)
	c1 := f.seedColumn(t, project.ID, "To Do", 1)
	c2 := f.seedColumn(t, project.ID, "Done", 2)

	err := f.svc.ReorderColumns(ctx, actorFor(manager), project.ID, []RankAssignment{
		{ID: c2.ID, Order: 0},
		{ID: c0.ID, Order: 1},
		{ID: c1.ID, Order: 2},
	})
	require.NoError(t, err)

	var columns []model.Column
	require.NoError(t, f.db.Where("project_id = ?", project.ID).Order(`"order" ASC, id ASC`).Find(&columns).Error)
	require.Len(t, columns, 3)
	assert.Equal(t, c2.ID, columns[0].ID)
	assert.Equal(t, c0.ID, columns[1].ID)
	assert.Equal(t, c1.ID, columns[2].ID)
}

func TestReorderColumns_UnknownIDRollsBackAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	c0 := f.seedColumn(t, project.ID, "Backlog", 0)
	c1 := f.seedColumn(t, project.ID, "To Do", 1)

	err := f.svc.ReorderColumns(ctx, actorFor(manager), project.ID, []RankAssignment{
		{ID: c0.ID, Order: 1},
		{ID: 9999, Order: 0},
		{ID: c1.ID, Order: 2},
	})
	require.Error(t, err)
	assert.Equal(t, KindOperationFailed, KindOf(err))

	// The batch must not be partially applied.
	var got model.Column
	require.NoError(t, f.db.First(&got, c0.ID).Error)
	assert.Equal(t, 0, got.Order)
}

func TestReorderColumns_EmptyBatchRejected(t *testing.T) {
	f := newFixture(t)
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)

	err := f.svc.ReorderColumns(context.Background(), actorFor(manager), project.ID, nil)
	require.Error(t, err)
	assert.Equal(t, KindValidationFailed, KindOf(err))
}

func TestPlaceTask_LeavesGapsAndSkipsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)
	colA := f.seedColumn(t, project.ID, "To Do", 0)
	colB := f.seedColumn(t, project.ID, "Done", 1)
	t0 := f.seedTask(t, project.ID, &colA.ID, "t0", 0)
	t1 := f.seedTask(t, project.ID, &colA.ID, "t1", 1)
	engine := NewOrderingEngine(f.db)

	moved, err := engine.PlaceTask(ctx, t0, colB.ID, 0)
	require.NoError(t, err)
	assert.True(t, moved)

	// The sibling left behind keeps its rank; gaps are fine.
	var got model.Task
	require.NoError(t, f.db.First(&got, t1.ID).Error)
	assert.Equal(t, 1, got.Order)

	// Same column, same rank: no write.
	moved, err = engine.PlaceTask(ctx, t1, colA.ID, 1)
	require.NoError(t, err)
	assert.False(t, moved)
}
