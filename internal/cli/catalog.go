package cli

import (
	"fmt"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

// openCatalog opens the configured database. A non-empty path overrides the
// SQLite file and forces the SQLite driver.
func openCatalog(cfg config.Database, path string) (*database.Database, error) {
	if path != "" {
		cfg.Driver = config.DriverSQLite
		cfg.Path = path
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "silent"
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return db, nil
}
