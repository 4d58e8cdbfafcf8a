package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/internal/payload"
	"github.com/raids-lab/taskflow/internal/resputil"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewUserMgr)
}

type UserMgr struct {
	name string
	db   *gorm.DB
}

func NewUserMgr(conf *RegisterConfig) Manager {
	return &UserMgr{
		name: "users",
		db:   conf.DB,
	}
}

func (mgr *UserMgr) GetName() string { return mgr.name }

func (mgr *UserMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *UserMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/managers", mgr.ListManagers)
	g.PUT("/profile", mgr.UpdateProfile)
	g.PUT("/password", mgr.ChangePassword)
}

func (mgr *UserMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListUsers)
	g.PUT("/:id/role", mgr.UpdateRole)
	g.PUT("/:id/status", mgr.UpdateStatus)
}

type UserResp struct {
	ID         uint                                    `json:"id"`
	Name       string                                  `json:"name"`
	Email      string                                  `json:"email"`
	Role       model.Role                              `json:"role"`
	Status     model.UserStatus                        `json:"status"`
	CreatedAt  time.Time                               `json:"createdAt"`
	Attributes datatypes.JSONType[model.UserAttribute] `json:"attributes"`
}

type UserIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

type UpdateRoleReq struct {
	Role model.Role `json:"role" binding:"required"`
}

type UpdateStatusReq struct {
	Status model.UserStatus `json:"status" binding:"required"`
}

type UpdateProfileReq struct {
	Name       string              `json:"name" binding:"required"`
	Attributes model.UserAttribute `json:"attributes"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ListUsers godoc
// @Summary List all accounts
// @Tags User
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[payload.ListResp[UserResp]] "all users, newest first"
// @Router /v1/admin/users [get]
func (mgr *UserMgr) ListUsers(c *gin.Context) {
	var users []model.User
	if err := mgr.db.WithContext(c).Order("created_at DESC").Find(&users).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	items := lo.Map(users, func(u model.User, _ int) UserResp {
		return UserResp{
			ID: u.ID, Name: u.Name, Email: u.Email,
			Role: u.Role, Status: u.Status,
			CreatedAt: u.CreatedAt, Attributes: u.Attributes,
		}
	})
	resputil.Success(c, payload.ListResp[UserResp]{Items: items, Count: int64(len(items))})
}

// ListManagers returns users holding the MANAGER role, for the project
// creation dialog.
func (mgr *UserMgr) ListManagers(c *gin.Context) {
	var users []model.User
	if err := mgr.db.WithContext(c).
		Where("role = ?", model.RoleManager).
		Order("name ASC").Find(&users).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(users, func(u model.User, _ int) UserResp {
		return UserResp{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status, CreatedAt: u.CreatedAt}
	}))
}

// UpdateRole godoc
// @Summary Change a user's platform role
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "user id"
// @Success 200 {object} resputil.Response[string] "updated"
// @Router /v1/admin/users/{id}/role [put]
func (mgr *UserMgr) UpdateRole(c *gin.Context) {
	var uriReq UserIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	res := mgr.db.WithContext(c).Model(&model.User{}).
		Where("id = ?", uriReq.ID).Update("role", req.Role)
	if res.Error != nil {
		resputil.Error(c, res.Error.Error(), resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, http.StatusNotFound, "user not found", resputil.NotFound)
		return
	}
	resputil.Success(c, "")
}

// UpdateStatus verifies or rejects a pending account.
func (mgr *UserMgr) UpdateStatus(c *gin.Context) {
	var uriReq UserIDReq
	if err := c.ShouldBindUri(&uriReq); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	res := mgr.db.WithContext(c).Model(&model.User{}).
		Where("id = ?", uriReq.ID).Update("status", req.Status)
	if res.Error != nil {
		resputil.Error(c, res.Error.Error(), resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, http.StatusNotFound, "user not found", resputil.NotFound)
		return
	}
	logutils.Log.Infof("user %d status set to %d", uriReq.ID, req.Status)
	resputil.Success(c, "")
}

func (mgr *UserMgr) UpdateProfile(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	token := util.GetToken(c)
	err := mgr.db.WithContext(c).Model(&model.User{}).
		Where("id = ?", token.UserID).
		Updates(map[string]any{
			"name":       req.Name,
			"attributes": datatypes.NewJSONType(req.Attributes),
		}).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}

func (mgr *UserMgr) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	token := util.GetToken(c)

	var user model.User
	if err := mgr.db.WithContext(c).First(&user, token.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "user not found", resputil.NotFound)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "incorrect current password", resputil.InvalidCredentials)
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		resputil.Error(c, "failed to hash password", resputil.NotSpecified)
		return
	}
	if err := mgr.db.WithContext(c).Model(&user).Update("password", string(hashed)).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}
