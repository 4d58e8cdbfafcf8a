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
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name  string
	db    *gorm.DB
	board *board.Service
}

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name:  "projects",
		db:    conf.DB,
		board: conf.Board,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.ListVisible)
	g.GET("/stats", mgr.DashboardStats)
	g.GET("/:id/columns", mgr.ListColumns)
	g.PUT("/:id/status", mgr.UpdateStatus)
}

func (mgr *ProjectMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.Create)
	g.DELETE("/:id", mgr.Delete)
}

type ProjectIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateProjectReq struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ManagerID   uint    `json:"managerId" binding:"required"`
	MemberIDs   []uint  `json:"memberIds"`
}

type UpdateProjectStatusReq struct {
	Status model.ProjectStatus `json:"status" binding:"required"`
}

type ProjectResp struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      model.ProjectStatus `json:"status"`
	ManagerID   uint                `json:"managerId"`
	TaskCount   int64               `json:"taskCount"`
}

type DashboardStatsResp struct {
	TotalProjects  int64 `json:"totalProjects"`
	ActiveProjects int64 `json:"activeProjects"`
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
}

// visibleProjects scopes a project query to what the actor may see:
// admin everything, manager their managed projects, member the projects
// they belong to.
func (mgr *ProjectMgr) visibleProjects(c *gin.Context, token util.JWTMessage) *gorm.DB {
	q := mgr.db.WithContext(c).Model(&model.Project{})
	switch token.Role {
	case model.RoleAdmin:
		return q
	case model.RoleManager:
		return q.Where("manager_id = ?", token.UserID)
	default:
		return q.Where(
			"id IN (?)",
			mgr.db.Table("project_members").Select("project_id").Where("user_id = ?", token.UserID),
		)
	}
}

// ListVisible godoc
// @Summary List the actor's visible projects
// @Tags Project
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]ProjectResp] "projects, most recently updated first"
// @Router /v1/projects [get]
func (mgr *ProjectMgr) ListVisible(c *gin.Context) {
	token := util.GetToken(c)

	var projects []model.Project
	if err := mgr.visibleProjects(c, token).Order("updated_at DESC").Find(&projects).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resp := make([]ProjectResp, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		var taskCount int64
		if err := mgr.db.WithContext(c).Model(&model.Task{}).
			Where("project_id = ?", p.ID).Count(&taskCount).Error; err != nil {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
			return
		}
		resp = append(resp, ProjectResp{
			ID: p.ID, Title: p.Title, Description: p.Description,
			Status: p.Status, ManagerID: p.ManagerID, TaskCount: taskCount,
		})
	}
	resputil.Success(c, resp)
}

// DashboardStats aggregates counts over the actor's visible projects.
func (mgr *ProjectMgr) DashboardStats(c *gin.Context) {
	token := util.GetToken(c)

	var stats DashboardStatsResp
	if err := mgr.visibleProjects(c, token).Count(&stats.TotalProjects).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := mgr.visibleProjects(c, token).
		Where("status = ?", model.ProjectActive).Count(&stats.ActiveProjects).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	projectIDs := mgr.visibleProjects(c, token).Select("id")
	if err := mgr.db.WithContext(c).Model(&model.Task{}).
		Where("project_id IN (?)", projectIDs).Count(&stats.TotalTasks).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := mgr.db.WithContext(c).Model(&model.Task{}).
		Where("project_id IN (?) AND status = ?", projectIDs, model.StatusDone).
		Count(&stats.CompletedTasks).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, stats)
}

// ListColumns returns the project's columns in display order: rank
// ascending, id as the stable tie-break.
func (mgr *ProjectMgr) ListColumns(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var columns []model.Column
	if err := mgr.db.WithContext(c).
		Where("project_id = ?", req.ID).
		Order(`"order" ASC, id ASC`).
		Find(&columns).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, columns)
}

// Create godoc
// @Summary Create a project with its default board
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[uint] "new project id"
// @Router /v1/admin/projects [post]
func (mgr *ProjectMgr) Create(c *gin.Context) {
	var req CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	project, err := mgr.board.CreateProject(c, util.GetActor(c), board.CreateProjectCmd{
		Title:       req.Title,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, project.ID)
}

func (mgr *ProjectMgr) UpdateStatus(c *gin.Context) {
	var uriReq ProjectIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req UpdateProjectStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.UpdateProjectStatus(c, util.GetActor(c), uriReq.ID, req.Status); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}

func (mgr *ProjectMgr) Delete(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	if err := mgr.board.DeleteProject(c, util.GetActor(c), req.ID); err != nil {
		resputil.BoardError(c, err)
		return
	}
	resputil.Success(c, "")
}
