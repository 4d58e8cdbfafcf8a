package config

import (
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/raids-lab/taskflow/pkg/logutils"
)

type Config struct {
	// Port Settings
	Host        string `yaml:"host"`        // The domain name of the server.
	ServerAddr  string `yaml:"serverAddr"`  // The address the server endpoint binds to.
	MetricsAddr string `yaml:"metricsAddr"` // The address the metric endpoint binds to.

	Auth struct {
		AccessTokenSecret      string `yaml:"accessTokenSecret"`
		RefreshTokenSecret     string `yaml:"refreshTokenSecret"`
		AccessTokenExpiryHour  int    `yaml:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `yaml:"refreshTokenExpiryHour"`
	} `yaml:"auth"`

	Postgres struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		DBName   string `yaml:"dbname"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		SSLMode  string `yaml:"sslmode"`
		TimeZone string `yaml:"TimeZone"`
		// Optional read replica DSNs, routed via dbresolver.
		Replicas []string `yaml:"replicas"`
	} `yaml:"postgres"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`

	Storage struct {
		// BaseURL prefixes attachment storage keys to form download URLs.
		BaseURL string `yaml:"baseURL"`
	} `yaml:"storage"`

	Notify struct {
		// AggregationWindowMinutes merges same-type unread notifications to
		// the same user inside this window. Defaults to 5.
		AggregationWindowMinutes int `yaml:"aggregationWindowMinutes"`
		// RetentionDays controls how long read notifications are kept
		// before the cleanup job purges them. Defaults to 30.
		RetentionDays int `yaml:"retentionDays"`
	} `yaml:"notify"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file. In debug mode the path can be
// overridden with TASKFLOW_DEBUG_CONFIG_PATH; in production the file comes
// from the deployment ConfigMap.
func initConfig() *Config {
	config := &Config{}
	var configPath string
	if IsDebugMode() {
		if os.Getenv("TASKFLOW_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("TASKFLOW_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		logutils.Log.Fatalf("read config file %s: %v", configPath, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		logutils.Log.Fatalf("parse config file %s: %v", configPath, err)
	}

	if config.Auth.AccessTokenExpiryHour == 0 {
		config.Auth.AccessTokenExpiryHour = 2
	}
	if config.Auth.RefreshTokenExpiryHour == 0 {
		config.Auth.RefreshTokenExpiryHour = 168
	}
	if config.Notify.AggregationWindowMinutes == 0 {
		config.Notify.AggregationWindowMinutes = 5
	}
	if config.Notify.RetentionDays == 0 {
		config.Notify.RetentionDays = 30
	}
	return config
}
