package interfaces

// Compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/client"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.HealthChecker = (*database.Database)(nil)
var _ importers.BookInserter = (*books.Repository)(nil)
var _ exporters.BookLister = (*books.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.ImportQueue = (*tasks.Client)(nil)
var _ http.Snapshotter = (*scheduler.SnapshotScheduler)(nil)
var _ exporters.BookExporter = (*exporters.JSONExporter)(nil)
var _ importers.ReportSaver = (*audit.Auditor)(nil)
var _ http.ImportReports = (*audit.Auditor)(nil)

// =============================================================================
// HTTP Client
// =============================================================================

var _ client.Catalog = (*client.API)(nil)
