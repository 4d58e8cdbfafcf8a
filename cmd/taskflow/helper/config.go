package helper

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/raids-lab/taskflow/dao"
	"github.com/raids-lab/taskflow/internal/handler"
	"github.com/raids-lab/taskflow/pkg/board"
	"github.com/raids-lab/taskflow/pkg/config"
	"github.com/raids-lab/taskflow/pkg/notify"
)

// ConfigInitializer wires configuration into the service dependencies.
type ConfigInitializer struct {
	backendConfig *config.Config
}

func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{
		backendConfig: config.GetConfig(),
	}
}

func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	return ci.backendConfig
}

// LoadDebugEnvironment loads .debug.env when running in debug mode so
// local ports do not collide with a deployed instance.
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}

	err := godotenv.Load(".debug.env")
	if err != nil {
		return err
	}

	be := os.Getenv("TASKFLOW_BE_PORT")
	if be == "" {
		panic("TASKFLOW_BE_PORT is not set")
	}
	ms := os.Getenv("TASKFLOW_MS_PORT")
	if ms == "" {
		panic("TASKFLOW_MS_PORT is not set")
	}

	ci.backendConfig.ServerAddr = ":" + be
	ci.backendConfig.MetricsAddr = ":" + ms

	return nil
}

// InitializeRegisterConfig opens the database, runs migrations and builds
// the board service graph shared by all handlers.
func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	registerConfig := &handler.RegisterConfig{}

	db := dao.GetDB()
	if err := dao.Migrate(db); err != nil {
		return nil, err
	}
	registerConfig.DB = db

	window := time.Duration(ci.backendConfig.Notify.AggregationWindowMinutes) * time.Minute
	notifier := notify.NewAggregator(db, window, notify.NewSMTPMailer())
	registerConfig.Notifier = notifier

	registerConfig.Board = board.NewService(
		db,
		board.NewPermissionEvaluator(db),
		board.NewOrderingEngine(db),
		notifier,
		board.NewViewInvalidator(),
		ci.backendConfig.Storage.BaseURL,
	)

	return registerConfig, nil
}
