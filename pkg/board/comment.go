package board

import (
	"context"
	"strings"

	"github.com/raids-lab/taskflow/dao/model"
)

// CreateComment adds a comment, optionally as a one-level reply. Direct
// notifications go to the task's assignee and, for replies, to the parent
// comment's author — each at most once and never to the actor.
func (s *Service) CreateComment(ctx context.Context, actor Actor, taskID uint, content string, parentID *uint) (*model.Comment, error) {
	if actor.ID == 0 {
		return nil, s.done("createComment", 0, errUnauthorized())
	}
	if strings.TrimSpace(content) == "" {
		return nil, s.done("createComment", 0, errValidation("comment content is required"))
	}

	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, s.done("createComment", 0, errNotFound("task", taskID))
	}

	comment := model.Comment{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Content:  content,
		ParentID: parentID,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, s.done("createComment", task.ProjectID, errOperation("failed to add comment", err))
	}

	if task.AssigneeID != nil && *task.AssigneeID != actor.ID {
		s.notifier.NotifyUser(ctx, *task.AssigneeID, "New comment on task: "+task.Title, model.NotifyInfo)
	}
	if parentID != nil {
		var parent model.Comment
		if err := s.db.WithContext(ctx).First(&parent, *parentID).Error; err == nil {
			duplicate := task.AssigneeID != nil && parent.AuthorID == *task.AssigneeID
			if parent.AuthorID != actor.ID && !duplicate {
				s.notifier.NotifyUser(ctx, parent.AuthorID, "New reply to your comment on task: "+task.Title, model.NotifyInfo)
			}
		}
	}

	return &comment, s.done("createComment", task.ProjectID, nil)
}
