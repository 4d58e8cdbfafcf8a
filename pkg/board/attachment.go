package board

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/raids-lab/taskflow/dao/model"
)

type AddAttachmentCmd struct {
	TaskID   uint
	Filename string
	Size     int64
	MimeType string
}

// AddAttachment records attachment metadata against a task. The upload
// itself happens against external storage under the generated key; this
// only keeps the logical record.
func (s *Service) AddAttachment(ctx context.Context, actor Actor, cmd AddAttachmentCmd) (*model.Attachment, error) {
	if actor.ID == 0 {
		return nil, s.done("addAttachment", 0, errUnauthorized())
	}
	if strings.TrimSpace(cmd.Filename) == "" || cmd.TaskID == 0 {
		return nil, s.done("addAttachment", 0, errValidation("filename and taskId are required"))
	}

	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, cmd.TaskID).Error; err != nil {
		return nil, s.done("addAttachment", 0, errNotFound("task", cmd.TaskID))
	}

	key := uuid.NewString()
	attachment := model.Attachment{
		TaskID:       cmd.TaskID,
		Filename:     cmd.Filename,
		Size:         cmd.Size,
		MimeType:     cmd.MimeType,
		StorageKey:   key,
		URL:          strings.TrimSuffix(s.storageBaseURL, "/") + "/" + key,
		UploadedByID: actor.ID,
	}
	if err := s.db.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, s.done("addAttachment", task.ProjectID, errOperation("failed to record attachment", err))
	}
	return &attachment, s.done("addAttachment", task.ProjectID, nil)
}
