package board

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
)

type CreateProjectCmd struct {
	Title       string
	Description *string
	ManagerID   uint
	MemberIDs   []uint
}

// defaultColumns seeds every new project's board.
var defaultColumns = []string{"Backlog", "To Do", "In Progress", "Review", "Done"}

// CreateProject is admin-only. The new board starts with the default column
// set ranked 0..4, and every initial member gets a direct notification.
func (s *Service) CreateProject(ctx context.Context, actor Actor, cmd CreateProjectCmd) (*model.Project, error) {
	if actor.ID == 0 {
		return nil, s.done("createProject", 0, errUnauthorized())
	}
	if actor.Role != model.RoleAdmin {
		return nil, s.done("createProject", 0, errForbidden(0))
	}
	cmd.Title = strings.TrimSpace(cmd.Title)
	if cmd.Title == "" || cmd.ManagerID == 0 {
		return nil, s.done("createProject", 0, errValidation("title and managerId are required"))
	}

	columns := make([]model.Column, 0, len(defaultColumns))
	for i, title := range defaultColumns {
		columns = append(columns, model.Column{Title: title, Order: i})
	}
	project := model.Project{
		Title:       cmd.Title,
		Description: cmd.Description,
		Status:      model.ProjectActive,
		ManagerID:   cmd.ManagerID,
		Columns:     columns,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cmd.MemberIDs) > 0 {
			var members []model.User
			if err := tx.Where("id IN ?", cmd.MemberIDs).Find(&members).Error; err != nil {
				return err
			}
			project.Members = members
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		return nil, s.done("createProject", 0, errOperation("failed to create project", err))
	}

	for _, member := range project.Members {
		s.notifier.NotifyUser(ctx, member.ID, "You were added to project: "+project.Title, model.NotifyInfo)
	}

	return &project, s.done("createProject", project.ID, nil)
}

// UpdateProjectStatus may be called by an admin or by the project's own
// manager; other actors get Forbidden regardless of membership.
func (s *Service) UpdateProjectStatus(ctx context.Context, actor Actor, projectID uint, status model.ProjectStatus) error {
	if actor.ID == 0 {
		return s.done("updateProjectStatus", projectID, errUnauthorized())
	}

	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		return s.done("updateProjectStatus", projectID, errNotFound("project", projectID))
	}
	if actor.Role != model.RoleAdmin && project.ManagerID != actor.ID {
		return s.done("updateProjectStatus", projectID, errForbidden(projectID))
	}

	err := s.db.WithContext(ctx).Model(&project).Update("status", status).Error
	if err != nil {
		return s.done("updateProjectStatus", projectID, errOperation("failed to update project status", err))
	}
	return s.done("updateProjectStatus", projectID, nil)
}

// DeleteProject is admin-only and cascades the whole sub-tree: comments,
// attachments, task-label links, tasks, columns, labels, membership rows.
func (s *Service) DeleteProject(ctx context.Context, actor Actor, projectID uint) error {
	if actor.ID == 0 {
		return s.done("deleteProject", projectID, errUnauthorized())
	}
	if actor.Role != model.RoleAdmin {
		return s.done("deleteProject", projectID, errForbidden(projectID))
	}

	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		return s.done("deleteProject", projectID, errNotFound("project", projectID))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.Task{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_labels WHERE task_id IN (?)",
			tx.Model(&model.Task{}).Select("id").Where("project_id = ?", projectID)).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Column{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&project).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return s.done("deleteProject", projectID, errOperation("failed to delete project", err))
	}
	return s.done("deleteProject", projectID, nil)
}
