package board

import (
	"context"
	"strings"

	"github.com/raids-lab/taskflow/dao/model"
)

func (s *Service) CreateLabel(ctx context.Context, actor Actor, projectID uint, name, color string) (*model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.done("createLabel", projectID, errValidation("label name is required"))
	}
	if err := s.authorize(ctx, actor, projectID); err != nil {
		return nil, s.done("createLabel", projectID, err)
	}

	label := model.Label{ProjectID: projectID, Name: name, Color: color}
	if err := s.db.WithContext(ctx).Create(&label).Error; err != nil {
		return nil, s.done("createLabel", projectID, errOperation("failed to create label", err))
	}
	return &label, s.done("createLabel", projectID, nil)
}
