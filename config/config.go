package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the application
type Configuration struct {
	MongoDB_ConnectionURI    string `env:"MONGODB_CONNECTION_URI" envDefault:"mongodb://localhost:27017"` // MongoDB connection string
	MongoDB_DBName           string `env:"MONGODB_DBNAME" envDefault:"shop_pos"`                          // Database holding every collection
	MongoDB_ConnectTimeout   int    `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"5"`                        // Seconds
	MongoDB_OperationTimeout int    `env:"MONGODB_OPERATION_TIMEOUT" envDefault:"10"`                     // Seconds, per Load/Save step
	MongoDB_MaxPoolSize      int    `env:"MONGODB_MAX_POOL_SIZE" envDefault:"10"`                         // Single user desktop app, small pool
	DataJSONPath             string `env:"MONGODB_DATA_PATH" envDefault:"./data/mongodb"`                 // JSON cache directory
	DataExcelPath            string `env:"EXCEL_DATA_PATH" envDefault:"./data/excel"`                     // Workbook directory
	CredentialsFile          string `env:"CREDENTIALS_FILE" envDefault:"./shop_credentials.txt"`          // username,password file
	StoreBatchSize           int    `env:"STORE_BATCH_SIZE" envDefault:"100"`                             // Documents per InsertMany
	MetricsTextfile          string `env:"METRICS_TEXTFILE"`                                              // Prometheus textfile written at exit, empty disables
}

// ConnectTimeout returns MongoDB_ConnectTimeout as a duration
func (c *Configuration) ConnectTimeout() time.Duration {
	return time.Duration(c.MongoDB_ConnectTimeout) * time.Second
}

// OperationTimeout returns MongoDB_OperationTimeout as a duration
func (c *Configuration) OperationTimeout() time.Duration {
	return time.Duration(c.MongoDB_OperationTimeout) * time.Second
}

// getEnvPath returns config/env/<GO_ENV>.env, searched from the working directory upwards
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig reads the configuration. Extra env files in files are loaded first,
// then config/env/<GO_ENV>.env when it exists. Variables already set in the
// process environment always win.
func NewConfig(files ...string) (*Configuration, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("load env file %s: %w", envPath, err)
			}
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.StoreBatchSize <= 0 {
		cfg.StoreBatchSize = 100
	}

	return &cfg, nil
}
