package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/taskflow/internal/resputil"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/board"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewColumnMgr)
}

type ColumnMgr struct {
	name  string
	board *board.Service
}

func NewColumnMgr(conf *RegisterConfig) Manager {
	return &ColumnMgr{
		name:  "columns",
		board: conf.Board,
	}
}

func (mgr *ColumnMgr) GetName() string { return mgr.name }

func (mgr *ColumnMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ColumnMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("", mgr.Create)
	g.PUT("/reorder", mgr.Reorder)
	g.PUT("/:id", mgr.Update)
	g.DELETE("/:id", mgr.Delete)
}

func (mgr *ColumnMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type ColumnIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateColumnReq struct {
	ProjectID uint   `json:"projectId" binding:"required"`
	Title     string `json:"title" binding:"required"`
}

type UpdateColumnReq struct {
	Title string `json:"title" binding:"required"`
}

type ReorderColumnsReq struct {
	ProjectID uint                   `json:"projectId" binding:"required"`
	Items     []board.RankAssignment `json:"items" binding:"required"`
}

// Create godoc
// @Summary Create a column at the right edge of the board
// @Tags Column
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[model.Column] "new column"
// @Failure 403 {object} resputil.Response[any] "no edit permission on the project"
// @Router /v1/columns [post]
func (mgr *ColumnMgr) Create(c *gin.Context) {
	var req CreateColumnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	column, err := mgr.board.CreateColumn(c, util.GetActor(c), req.ProjectID, req.Title)
	if err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, column)
}

func (mgr *ColumnMgr) Update(c *gin.Context) {
	var uriReq ColumnIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req UpdateColumnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.UpdateColumn(c, util.GetActor(c), uriReq.ID, req.Title); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}

// Delete removes the column; its tasks stay in the project without a
// column placement.
func (mgr *ColumnMgr) Delete(c *gin.Context) {
	var req ColumnIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.DeleteColumn(c, util.GetActor(c), req.ID); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}

// Reorder godoc
// @Summary Persist a full drag-and-drop column ordering
// @Description All rank updates commit in one transaction; a mix of old and new ranks is never observable
// @Tags Column
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[string] "reordered"
// @Router /v1/columns/reorder [put]
func (mgr *ColumnMgr) Reorder(c *gin.Context) {
	var req ReorderColumnsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.ReorderColumns(c, util.GetActor(c), req.ProjectID, req.Items); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}
