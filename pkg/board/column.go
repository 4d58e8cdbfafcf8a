package board

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
)

func (s *Service) CreateColumn(ctx context.Context, actor Actor, projectID uint, title string) (*model.Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, s.done("createColumn", projectID, errValidation("column title is required"))
	}
	if err := s.authorize(ctx, actor, projectID); err != nil {
		return nil, s.done("createColumn", projectID, err)
	}

	rank, err := s.ordering.NextColumnRank(ctx, projectID)
	if err != nil {
		return nil, s.done("createColumn", projectID, errOperation("failed to create column", err))
	}

	column := model.Column{ProjectID: projectID, Title: title, Order: rank}
	if err := s.db.WithContext(ctx).Create(&column).Error; err != nil {
		return nil, s.done("createColumn", projectID, errOperation("failed to create column", err))
	}

	s.notifier.NotifyProject(ctx, projectID,
		fmt.Sprintf("%s created column %q", actor.Name, title), actor.ID, model.NotifyProjectUpdate)

	return &column, s.done("createColumn", projectID, nil)
}

func (s *Service) UpdateColumn(ctx context.Context, actor Actor, columnID uint, title string) error {
	var column model.Column
	if err := s.db.WithContext(ctx).First(&column, columnID).Error; err != nil {
		return s.done("updateColumn", 0, errNotFound("column", columnID))
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return s.done("updateColumn", column.ProjectID, errValidation("column title is required"))
	}
	if err := s.authorize(ctx, actor, column.ProjectID); err != nil {
		return s.done("updateColumn", column.ProjectID, err)
	}

	err := s.db.WithContext(ctx).Model(&column).Update("title", title).Error
	if err != nil {
		return s.done("updateColumn", column.ProjectID, errOperation("failed to update column", err))
	}
	return s.done("updateColumn", column.ProjectID, nil)
}

// DeleteColumn removes the column and orphans its tasks: they keep their
// project but lose the column reference.
func (s *Service) DeleteColumn(ctx context.Context, actor Actor, columnID uint) error {
	var column model.Column
	if err := s.db.WithContext(ctx).First(&column, columnID).Error; err != nil {
		return s.done("deleteColumn", 0, errNotFound("column", columnID))
	}
	if err := s.authorize(ctx, actor, column.ProjectID); err != nil {
		return s.done("deleteColumn", column.ProjectID, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("column_id = ?", column.ID).
			Update("column_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&column).Error
	})
	if err != nil {
		return s.done("deleteColumn", column.ProjectID, errOperation("failed to delete column", err))
	}

	s.notifier.NotifyProject(ctx, column.ProjectID,
		fmt.Sprintf("%s deleted column %q", actor.Name, column.Title), actor.ID, model.NotifyProjectUpdate)

	return s.done("deleteColumn", column.ProjectID, nil)
}

// ReorderColumns applies a caller-supplied full ordering atomically.
func (s *Service) ReorderColumns(ctx context.Context, actor Actor, projectID uint, items []RankAssignment) error {
	if len(items) == 0 {
		return s.done("reorderColumns", projectID, errValidation("ordering is empty"))
	}
	if err := s.authorize(ctx, actor, projectID); err != nil {
		return s.done("reorderColumns", projectID, err)
	}

	if err := s.ordering.ReorderColumns(ctx, projectID, items); err != nil {
		return s.done("reorderColumns", projectID, errOperation("failed to reorder columns", err))
	}
	return s.done("reorderColumns", projectID, nil)
}
