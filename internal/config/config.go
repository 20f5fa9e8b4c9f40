package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // Uses Database.DSN
	DriverMySQL    DatabaseDriver = "mysql"    // Uses Database.DSN
)

type (
	Config struct {
		HTTP
		Global
		Database
		Security
		Importer
		Audit
		Tasks
		Snapshot
		Client
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // SQLite file path
		DSN      string // Connection string for postgres/mysql
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	Security struct {
		AllowedOrigins []string
		CSRFSecret     string // Empty disables CSRF protection
		SecureCookies  bool   // Set to false for local dev without HTTPS
		ReadOnly       bool   // Block all write operations
	}
	Importer struct {
		File string
	}
	Audit struct {
		Dir string // Empty disables import reports
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Snapshot struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string
	}
	Client struct {
		APIURL string
	}
)

// loadDotEnv reads .env from the working directory if present.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("csrf_secret", "")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("read_only", false)

	v.SetDefault("import_file", DefaultImportFile)
	v.SetDefault("audit_dir", "./audit")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Snapshot defaults
	v.SetDefault("snapshot_enabled", false)
	v.SetDefault("snapshot_schedule", "0 3 * * *")
	v.SetDefault("snapshot_dir", "./snapshots")

	v.SetDefault("api_url", DefaultAPIURL)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Security: Security{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			CSRFSecret:     v.GetString("CSRF_SECRET"),
			SecureCookies:  v.GetBool("SECURE_COOKIES"),
			ReadOnly:       v.GetBool("READ_ONLY"),
		},
		Importer: Importer{
			File: v.GetString("IMPORT_FILE"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Snapshot: Snapshot{
			Enabled:  v.GetBool("SNAPSHOT_ENABLED"),
			Schedule: v.GetString("SNAPSHOT_SCHEDULE"),
			Dir:      v.GetString("SNAPSHOT_DIR"),
		},
		Client: Client{
			APIURL: v.GetString("API_URL"),
		},
	}
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
