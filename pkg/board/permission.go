package board

import (
	"context"

	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
)

// PermissionEvaluator gates every column and task mutation scoped to a
// project. It does not gate reads; read visibility is filtered per query.
type PermissionEvaluator struct {
	db *gorm.DB
}

func NewPermissionEvaluator(db *gorm.DB) *PermissionEvaluator {
	return &PermissionEvaluator{db: db}
}

// CanEditProject reports whether the actor may mutate the project's
// sub-resources. Admins always may; a manager only for the project they
// manage; anyone else only when they are in the member set. Fails closed:
// a missing project (or a storage fault) yields false, not an error —
// callers that need a NotFound distinction must resolve the resource first.
func (p *PermissionEvaluator) CanEditProject(ctx context.Context, projectID, actorID uint, role model.Role) bool {
	if role == model.RoleAdmin {
		return true
	}

	var project model.Project
	if err := p.db.WithContext(ctx).Select("id", "manager_id").First(&project, projectID).Error; err != nil {
		return false
	}

	if role == model.RoleManager {
		return project.ManagerID == actorID
	}

	var count int64
	if err := p.db.WithContext(ctx).Table("project_members").
		Where("project_id = ? AND user_id = ?", projectID, actorID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
