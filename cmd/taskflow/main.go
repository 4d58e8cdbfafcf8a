package main

import (
	"github.com/raids-lab/taskflow/cmd/taskflow/helper"
	"github.com/raids-lab/taskflow/pkg/logutils"
)

// @title						TaskFlow API
// @version						1.0.0
// @description					This is the API server for TaskFlow, a Kanban-style project management dashboard.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description					Call /login to obtain a TOKEN, then fill in 'Bearer ${TOKEN}' to access protected endpoints
func main() {
	// Initialize configuration
	configInit := helper.NewConfigInitializer()
	backendConfig := configInit.GetBackendConfig()

	// Load debug environment if needed
	if err := configInit.LoadDebugEnvironment(); err != nil {
		logutils.Log.Fatalf("Failed to load env: %s", err)
	}

	// Initialize register config and dependencies
	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		logutils.Log.Fatalf("Failed to register config: %s\n", err)
	}

	// Start background jobs and serve
	serverRunner := helper.NewServerRunner(backendConfig)
	serverRunner.StartCronJobs(registerConfig)
	serverRunner.StartMetricsServer()
	serverRunner.StartServer(registerConfig)
}
