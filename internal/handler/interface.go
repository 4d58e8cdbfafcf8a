package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/pkg/board"
	"github.com/raids-lab/taskflow/pkg/notify"
)

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared dependencies injected into every
// handler at registration time.
type RegisterConfig struct {
	DB       *gorm.DB
	Board    *board.Service
	Notifier *notify.Aggregator
}

type Register func(conf *RegisterConfig) Manager

// Registers collects the handler constructors; each handler file appends
// its own in init().
var Registers []Register
