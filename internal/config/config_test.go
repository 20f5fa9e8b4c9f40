package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Empty(t, cfg.Security.CSRFSecret)
	assert.False(t, cfg.Security.ReadOnly)
	assert.Equal(t, DefaultImportFile, cfg.Importer.File)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.False(t, cfg.Snapshot.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Snapshot.Schedule)
}

func TestNewConfig_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ,http://example.com")

	cfg := NewConfig()

	assert.Equal(t, int32(8081), cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, []string{"http://localhost:5173", "http://example.com"}, cfg.Security.AllowedOrigins)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "*", []string{"*"}},
		{"trims blanks", " a , b ,, ", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitList(tt.input))
		})
	}
}
