package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
)

type CreateTaskCmd struct {
	Title       string
	ProjectID   uint
	Description string
	Priority    *model.Priority
	AssigneeID  *uint
	ColumnID    *uint
	DueDate     *time.Time
	LabelIDs    []uint
}

// TaskUpdate is a closed partial-update command. Plain pointers mean
// "nil = leave unchanged"; Optional fields additionally distinguish an
// explicit clear (null) from no change for the clearable columns.
type TaskUpdate struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Status      *model.TaskStatus        `json:"status"`
	Priority    Optional[model.Priority] `json:"priority"`
	AssigneeID  Optional[uint]           `json:"assigneeId"`
	DueDate     Optional[time.Time]      `json:"dueDate"`
	// LabelIDs replaces the full label set when present.
	LabelIDs *[]uint `json:"labelIds"`
}

func (s *Service) CreateTask(ctx context.Context, actor Actor, cmd CreateTaskCmd) (*model.Task, error) {
	cmd.Title = strings.TrimSpace(cmd.Title)
	if cmd.Title == "" || cmd.ProjectID == 0 {
		return nil, s.done("createTask", cmd.ProjectID, errValidation("title and projectId are required"))
	}
	if err := s.authorize(ctx, actor, cmd.ProjectID); err != nil {
		return nil, s.done("createTask", cmd.ProjectID, err)
	}

	rank, err := s.ordering.NextTaskRank(ctx, cmd.ProjectID, cmd.ColumnID)
	if err != nil {
		return nil, s.done("createTask", cmd.ProjectID, errOperation("failed to create task", err))
	}

	task := model.Task{
		Title:       cmd.Title,
		ProjectID:   cmd.ProjectID,
		Description: cmd.Description,
		Status:      model.StatusTodo,
		Priority:    cmd.Priority,
		AssigneeID:  cmd.AssigneeID,
		ColumnID:    cmd.ColumnID,
		DueDate:     cmd.DueDate,
		Order:       rank,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cmd.LabelIDs) > 0 {
			labels, lerr := s.projectLabels(ctx, tx, cmd.ProjectID, cmd.LabelIDs)
			if lerr != nil {
				return lerr
			}
			task.Labels = labels
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, s.done("createTask", cmd.ProjectID, errOperation("failed to create task", err))
	}

	if cmd.AssigneeID != nil && *cmd.AssigneeID != actor.ID {
		s.notifier.NotifyUser(ctx, *cmd.AssigneeID, "You were assigned to task: "+cmd.Title, model.NotifyInfo)
	}
	s.notifier.NotifyProject(ctx, cmd.ProjectID,
		fmt.Sprintf("%s created task %q", actor.Name, cmd.Title), actor.ID, model.NotifyProjectUpdate)

	return &task, s.done("createTask", cmd.ProjectID, nil)
}

func (s *Service) UpdateTask(ctx context.Context, actor Actor, taskID uint, cmd TaskUpdate) error {
	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return s.done("updateTask", 0, errNotFound("task", taskID))
	}
	if err := s.authorize(ctx, actor, task.ProjectID); err != nil {
		return s.done("updateTask", task.ProjectID, err)
	}

	updates := map[string]any{}
	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return s.done("updateTask", task.ProjectID, errValidation("task title cannot be empty"))
		}
		updates["title"] = title
	}
	if cmd.Description != nil {
		updates["description"] = *cmd.Description
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}
	if cmd.Priority.Set {
		updates["priority"] = cmd.Priority.Value
	}
	if cmd.AssigneeID.Set {
		updates["assignee_id"] = cmd.AssigneeID.Value
	}
	if cmd.DueDate.Set {
		updates["due_date"] = cmd.DueDate.Value
	}

	// Updates below writes the map values back into task, so remember the
	// assignee as loaded.
	oldAssigneeID := task.AssigneeID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&task).Updates(updates).Error; err != nil {
				return err
			}
		}
		if cmd.LabelIDs != nil {
			labels, lerr := s.projectLabels(ctx, tx, task.ProjectID, *cmd.LabelIDs)
			if lerr != nil {
				return lerr
			}
			if len(labels) == 0 {
				return tx.Model(&task).Association("Labels").Clear()
			}
			return tx.Model(&task).Association("Labels").Replace(labels)
		}
		return nil
	})
	if err != nil {
		return s.done("updateTask", task.ProjectID, errOperation("failed to update task", err))
	}

	if newAssignee := cmd.AssigneeID; newAssignee.Set && newAssignee.Value != nil &&
		*newAssignee.Value != actor.ID &&
		(oldAssigneeID == nil || *oldAssigneeID != *newAssignee.Value) {
		s.notifier.NotifyUser(ctx, *newAssignee.Value, "You were assigned to task: "+task.Title, model.NotifyInfo)
	}
	s.notifier.NotifyProject(ctx, task.ProjectID,
		fmt.Sprintf("%s updated task %q", actor.Name, task.Title), actor.ID, model.NotifyProjectUpdate)

	return s.done("updateTask", task.ProjectID, nil)
}

// MoveTask places the task in the destination column at the given visual
// index. Moving a task onto the position it already holds is a no-op: no
// write, no notifications.
func (s *Service) MoveTask(ctx context.Context, actor Actor, taskID, destColumnID uint, destIndex int) error {
	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return s.done("moveTask", 0, errNotFound("task", taskID))
	}
	if err := s.authorize(ctx, actor, task.ProjectID); err != nil {
		return s.done("moveTask", task.ProjectID, err)
	}

	var destColumn model.Column
	if err := s.db.WithContext(ctx).First(&destColumn, destColumnID).Error; err != nil {
		return s.done("moveTask", task.ProjectID, errNotFound("column", destColumnID))
	}
	if destColumn.ProjectID != task.ProjectID {
		return s.done("moveTask", task.ProjectID, errValidation("destination column belongs to another project"))
	}

	moved, err := s.ordering.PlaceTask(ctx, &task, destColumnID, destIndex)
	if err != nil {
		return s.done("moveTask", task.ProjectID, errOperation("failed to move task", err))
	}
	if !moved {
		return s.done("moveTask", task.ProjectID, nil)
	}

	columnChanged := task.ColumnID == nil || *task.ColumnID != destColumnID
	if columnChanged && task.AssigneeID != nil && *task.AssigneeID != actor.ID {
		s.notifier.NotifyUser(ctx, *task.AssigneeID,
			fmt.Sprintf("Task %q moved to %s", task.Title, destColumn.Title), model.NotifyInfo)
	}
	s.notifier.NotifyProject(ctx, task.ProjectID,
		fmt.Sprintf("%s moved task %q", actor.Name, task.Title), actor.ID, model.NotifyProjectUpdate)

	return s.done("moveTask", task.ProjectID, nil)
}

func (s *Service) DeleteTask(ctx context.Context, actor Actor, taskID uint) error {
	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return s.done("deleteTask", 0, errNotFound("task", taskID))
	}
	if err := s.authorize(ctx, actor, task.ProjectID); err != nil {
		return s.done("deleteTask", task.ProjectID, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&task).Association("Labels").Clear(); err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		return s.done("deleteTask", task.ProjectID, errOperation("failed to delete task", err))
	}

	s.notifier.NotifyProject(ctx, task.ProjectID,
		fmt.Sprintf("%s deleted task %q", actor.Name, task.Title), actor.ID, model.NotifyProjectUpdate)

	return s.done("deleteTask", task.ProjectID, nil)
}

// projectLabels resolves label ids scoped to the project, rejecting ids
// from other projects.
func (s *Service) projectLabels(ctx context.Context, tx *gorm.DB, projectID uint, labelIDs []uint) ([]model.Label, error) {
	if len(labelIDs) == 0 {
		return nil, nil
	}
	var labels []model.Label
	if err := tx.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, labelIDs).
		Find(&labels).Error; err != nil {
		return nil, err
	}
	if len(labels) != len(labelIDs) {
		return nil, fmt.Errorf("%d of %d labels not found in project %d", len(labelIDs)-len(labels), len(labelIDs), projectID)
	}
	return labels, nil
}
