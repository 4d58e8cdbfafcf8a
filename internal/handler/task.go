package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/internal/resputil"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/board"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTaskMgr)
}

type TaskMgr struct {
	name  string
	db    *gorm.DB
	board *board.Service
}

func NewTaskMgr(conf *RegisterConfig) Manager {
	return &TaskMgr{
		name:  "tasks",
		db:    conf.DB,
		board: conf.Board,
	}
}

func (mgr *TaskMgr) GetName() string { return mgr.name }

func (mgr *TaskMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *TaskMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.POST("", mgr.Create)
	g.PUT("/:id", mgr.Update)
	g.PUT("/:id/move", mgr.Move)
	g.DELETE("/:id", mgr.Delete)

	g.GET("/:id/comments", mgr.ListComments)
	g.POST("/:id/comments", mgr.CreateComment)
	g.GET("/:id/attachments", mgr.ListAttachments)
	g.POST("/:id/attachments", mgr.AddAttachment)
}

func (mgr *TaskMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type TaskIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

type ListTasksReq struct {
	ProjectID uint `form:"projectId" binding:"required"`
}

type CreateTaskReq struct {
	Title       string          `json:"title" binding:"required"`
	ProjectID   uint            `json:"projectId" binding:"required"`
	Description string          `json:"description"`
	Priority    *model.Priority `json:"priority"`
	AssigneeID  *uint           `json:"assigneeId"`
	ColumnID    *uint           `json:"columnId"`
	DueDate     *time.Time      `json:"dueDate"`
	LabelIDs    []uint          `json:"labelIds"`
}

type MoveTaskReq struct {
	ColumnID uint `json:"columnId" binding:"required"`
	// Index is the target visual position; 0 is a valid value, so no
	// required tag.
	Index int `json:"index"`
}

type CreateCommentReq struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

type AddAttachmentReq struct {
	Filename string `json:"filename" binding:"required"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// List godoc
// @Summary List a project's tasks in display order
// @Tags Task
// @Produce json
// @Security Bearer
// @Param projectId query int true "project id"
// @Success 200 {object} resputil.Response[[]model.Task] "tasks with assignee and labels"
// @Router /v1/tasks [get]
func (mgr *TaskMgr) List(c *gin.Context) {
	var req ListTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var tasks []model.Task
	err := mgr.db.WithContext(c).
		Where("project_id = ?", req.ProjectID).
		Preload("Assignee").
		Preload("Labels").
		Order(`"order" ASC, id ASC`).
		Find(&tasks).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, tasks)
}

// Create godoc
// @Summary Create a task appended to its column
// @Tags Task
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[model.Task] "new task"
// @Failure 403 {object} resputil.Response[any] "no edit permission on the project"
// @Router /v1/tasks [post]
func (mgr *TaskMgr) Create(c *gin.Context) {
	var req CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	task, err := mgr.board.CreateTask(c, util.GetActor(c), board.CreateTaskCmd{
		Title:       req.Title,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ColumnID:    req.ColumnID,
		DueDate:     req.DueDate,
		LabelIDs:    req.LabelIDs,
	})
	if err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, task)
}

// Update applies a partial update. Absent fields stay unchanged; an
// explicit null clears the clearable fields (assignee, due date,
// priority); labelIds replaces the whole label set when present.
func (mgr *TaskMgr) Update(c *gin.Context) {
	var uriReq TaskIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var cmd board.TaskUpdate
	if err := c.ShouldBindJSON(&cmd); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.UpdateTask(c, util.GetActor(c), uriReq.ID, cmd); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}

// Move godoc
// @Summary Move a task to a column at a visual index
// @Tags Task
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "task id"
// @Success 200 {object} resputil.Response[string] "moved (or no-op)"
// @Router /v1/tasks/{id}/move [put]
func (mgr *TaskMgr) Move(c *gin.Context) {
	var uriReq TaskIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req MoveTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.MoveTask(c, util.GetActor(c), uriReq.ID, req.ColumnID, req.Index); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}

func (mgr *TaskMgr) Delete(c *gin.Context) {
	var req TaskIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.DeleteTask(c, util.GetActor(c), req.ID); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}

// ListComments returns top-level comments newest first, each with its
// replies oldest first. Deeper nesting is flattened into the first reply
// level here rather than rejected on write.
func (mgr *TaskMgr) ListComments(c *gin.Context) {
	var req TaskIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var comments []model.Comment
	err := mgr.db.WithContext(c).
		Where("task_id = ? AND parent_id IS NULL", req.ID).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Preload("Author")
		}).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, comments)
}

func (mgr *TaskMgr) CreateComment(c *gin.Context) {
	var uriReq TaskIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	comment, err := mgr.board.CreateComment(c, util.GetActor(c), uriReq.ID, req.Content, req.ParentID)
	if err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, comment)
}

func (mgr *TaskMgr) ListAttachments(c *gin.Context) {
	var req TaskIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var attachments []model.Attachment
	err := mgr.db.WithContext(c).
		Where("task_id = ?", req.ID).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, attachments)
}

func (mgr *TaskMgr) AddAttachment(c *gin.Context) {
	var uriReq TaskIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req AddAttachmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	attachment, err := mgr.board.AddAttachment(c, util.GetActor(c), board.AddAttachmentCmd{
		TaskID:   uriReq.ID,
		Filename: req.Filename,
		Size:     req.Size,
		MimeType: req.MimeType,
	})
	if err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, attachment)
}
