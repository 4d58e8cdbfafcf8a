package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/taskflow/internal/resputil"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/notify"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewNotificationMgr)
}

type NotificationMgr struct {
	name     string
	notifier *notify.Aggregator
}

func NewNotificationMgr(conf *RegisterConfig) Manager {
	return &NotificationMgr{
		name:     "notifications",
		notifier: conf.Notifier,
	}
}

func (mgr *NotificationMgr) GetName() string { return mgr.name }

func (mgr *NotificationMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *NotificationMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.PUT("/:id/read", mgr.MarkAsRead)
}

func (mgr *NotificationMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type NotificationIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// List godoc
// @Summary List the caller's latest notifications
// @Tags Notification
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]model.Notification] "latest notifications, newest first"
// @Router /v1/notifications [get]
func (mgr *NotificationMgr) List(c *gin.Context) {
	token := util.GetToken(c)
	notifications, err := mgr.notifier.GetForUser(c, token.UserID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, notifications)
}

// MarkAsRead godoc
// @Summary Mark one of the caller's notifications as read
// @Tags Notification
// @Produce json
// @Security Bearer
// @Param id path int true "notification id"
// @Success 200 {object} resputil.Response[string] "ok"
// @Router /v1/notifications/{id}/read [put]
func (mgr *NotificationMgr) MarkAsRead(c *gin.Context) {
	var req NotificationIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}
	token := util.GetToken(c)
	if err := mgr.notifier.MarkAsRead(c, token.UserID, req.ID); err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}
