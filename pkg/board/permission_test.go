package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/taskflow/dao/model"
)

func TestCanEditProject_AdminAlways(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.seedUser(t, "admin", model.RoleAdmin)
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)

	perms := NewPermissionEvaluator(f.db)
	assert.True(t, perms.CanEditProject(ctx, project.ID, admin.ID, model.RoleAdmin))
	// Even for a project that does not exist, an admin is allowed.
	assert.True(t, perms.CanEditProject(ctx, 9999, admin.ID, model.RoleAdmin))
}

func TestCanEditProject_ManagerOnlyOwnProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owning := f.seedUser(t, "owning", model.RoleManager)
	other := f.seedUser(t, "other", model.RoleManager)
	project := f.seedProject(t, owning)

	perms := NewPermissionEvaluator(f.db)
	assert.True(t, perms.CanEditProject(ctx, project.ID, owning.ID, model.RoleManager))
	assert.False(t, perms.CanEditProject(ctx, project.ID, other.ID, model.RoleManager))
}

func TestCanEditProject_MemberByMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	member := f.seedUser(t, "member", model.RoleMember)
	outsider := f.seedUser(t, "outsider", model.RoleMember)
	project := f.seedProject(t, manager, member)

	perms := NewPermissionEvaluator(f.db)
	assert.True(t, perms.CanEditProject(ctx, project.ID, member.ID, model.RoleMember))
	assert.False(t, perms.CanEditProject(ctx, project.ID, outsider.ID, model.RoleMember))
}

func TestCanEditProject_FailsClosedOnMissingProject(t *testing.T) {
	f := newFixture(t)
	manager := f.seedUser(t, "manager", model.RoleManager)

	perms := NewPermissionEvaluator(f.db)
	assert.False(t, perms.CanEditProject(context.Background(), 9999, manager.ID, model.RoleManager))
}

// A user denied a mutation must succeed at the identical call once added
// to the project.
func TestMutation_ForbiddenThenAllowedAfterJoining(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.seedUser(t, "manager", model.RoleManager)
	member := f.seedUser(t, "member", model.RoleMember)
	project := f.seedProject(t, manager)

	_, err := f.svc.CreateColumn(ctx, actorFor(member), project.ID, "QA")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	require.NoError(t, f.db.Model(project).Association("Members").Append(member))

	column, err := f.svc.CreateColumn(ctx, actorFor(member), project.ID, "QA")
	require.NoError(t, err)
	assert.Equal(t, "QA", column.Title)
}

func TestMutation_AnonymousActorUnauthorized(t *testing.T) {
	f := newFixture(t)
	manager := f.seedUser(t, "manager", model.RoleManager)
	project := f.seedProject(t, manager)

	_, err := f.svc.CreateColumn(context.Background(), Actor{}, project.ID, "QA")
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}
