package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/internal/resputil"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/board"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewLabelMgr)
}

type LabelMgr struct {
	name  string
	db    *gorm.DB
	board *board.Service
}

func NewLabelMgr(conf *RegisterConfig) Manager {
	return &LabelMgr{
		name:  "labels",
		db:    conf.DB,
		board: conf.Board,
	}
}

func (mgr *LabelMgr) GetName() string { return mgr.name }

func (mgr *LabelMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *LabelMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.POST("", mgr.Create)
}

func (mgr *LabelMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type ListLabelsReq struct {
	ProjectID uint `form:"projectId" binding:"required"`
}

type CreateLabelReq struct {
	ProjectID uint   `json:"projectId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Color     string `json:"color"`
}

// List godoc
// @Summary List a project's labels
// @Tags Label
// @Produce json
// @Security Bearer
// @Param projectId query int true "project id"
// @Success 200 {object} resputil.Response[[]model.Label] "labels"
// @Router /v1/labels [get]
func (mgr *LabelMgr) List(c *gin.Context) {
	var req ListLabelsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var labels []model.Label
	err := mgr.db.WithContext(c).
		Where("project_id = ?", req.ProjectID).
		Order("name ASC").
		Find(&labels).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, labels)
}

// Create godoc
// @Summary Create a label in a project
// @Tags Label
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[model.Label] "new label"
// @Failure 403 {object} resputil.Response[any] "no edit permission on the project"
// @Router /v1/labels [post]
func (mgr *LabelMgr) Create(c *gin.Context) {
	var req CreateLabelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	label, err := mgr.board.CreateLabel(c, util.GetActor(c), req.ProjectID, req.Name, req.Color)
	if err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, label)
}
