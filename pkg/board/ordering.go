package board

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
)

// RankAssignment pairs an entity with its new rank in a full reorder.
type RankAssignment struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"order"`
}

// OrderingEngine maintains the integer rank of columns within a project and
// tasks within a column. Ranks may carry gaps; reads resolve display order
// by (order, id).
type OrderingEngine struct {
	db *gorm.DB
}

func NewOrderingEngine(db *gorm.DB) *OrderingEngine {
	return &OrderingEngine{db: db}
}

// NextColumnRank returns max(order)+1 among the project's columns, or 0 for
// an empty project. One read, no renumbering.
func (e *OrderingEngine) NextColumnRank(ctx context.Context, projectID uint) (int, error) {
	var maxRank *int
	err := e.db.WithContext(ctx).Model(&model.Column{}).
		Where("project_id = ?", projectID).
		Select(`MAX("order")`).
		Scan(&maxRank).Error
	if err != nil {
		return 0, err
	}
	if maxRank == nil {
		return 0, nil
	}
	return *maxRank + 1, nil
}

// NextTaskRank appends within the task's container. With a column the
// container is that column; without one the scope widens to all of the
// project's tasks.
func (e *OrderingEngine) NextTaskRank(ctx context.Context, projectID uint, columnID *uint) (int, error) {
	q := e.db.WithContext(ctx).Model(&model.Task{}).Where("project_id = ?", projectID)
	if columnID != nil {
		q = q.Where("column_id = ?", *columnID)
	}
	var maxRank *int
	if err := q.Select(`MAX("order")`).Scan(&maxRank).Error; err != nil {
		return 0, err
	}
	if maxRank == nil {
		return 0, nil
	}
	return *maxRank + 1, nil
}

// ReorderColumns persists a full column ordering in one transaction.
// Partial application is never observable: an unknown column id rolls the
// whole batch back.
func (e *OrderingEngine) ReorderColumns(ctx context.Context, projectID uint, items []RankAssignment) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			res := tx.Model(&model.Column{}).
				Where("id = ? AND project_id = ?", item.ID, projectID).
				Update("order", item.Order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("column %d does not belong to project %d", item.ID, projectID)
			}
		}
		return nil
	})
}

// PlaceTask sets the task's column reference and rank. Siblings are not
// renumbered: the gap left in the source container and any collision in the
// destination are tolerated. A move to the position the task already holds
// is detected and skipped; the returned flag reports whether anything was
// written.
func (e *OrderingEngine) PlaceTask(ctx context.Context, task *model.Task, destColumnID uint, destIndex int) (bool, error) {
	if task.ColumnID != nil && *task.ColumnID == destColumnID && task.Order == destIndex {
		return false, nil
	}
	err := e.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{"column_id": destColumnID, "order": destIndex}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
