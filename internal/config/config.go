package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port               int              `json:"port"`
	LogConfig          logger.LogConfig `json:"log_config"`
	Database           DatabaseConfig   `json:"database"`
	FileStore          FileStoreConfig  `json:"file_store"`
	UploadTimeoutSec   int              `json:"upload_timeout_sec"`
	UploadRateLimitSec int              `json:"upload_rate_limit_sec"`
	TempDir            string           `json:"temp_dir"`
	TempMaxAgeHours    int              `json:"temp_max_age_hours"`
	CleanupSpec        string           `json:"cleanup_spec"`
	CORSAllowlist      []string         `json:"cors_allowlist"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.DBName == "" {
		return nil, fmt.Errorf("database.dsn or database.db_name is required")
	}
	if cfg.FileStore.Type == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.UploadTimeoutSec <= 0 {
		cfg.UploadTimeoutSec = 30
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.TempMaxAgeHours <= 0 {
		cfg.TempMaxAgeHours = 24
	}
	if cfg.CleanupSpec == "" {
		cfg.CleanupSpec = "0 * * * *"
	}
	return &cfg, nil
}
