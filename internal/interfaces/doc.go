// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: catalog CRUD used by the books API (internal/http/stores.go)
//   - HealthChecker: database ping for /health (internal/http/stores.go)
//   - BookInserter: single-row insert used by imports (internal/importers/pipeline.go)
//   - BookLister: whole-catalog read used by snapshots (internal/exporters/generic.go)
//
// All four are implemented by books.Repository or database.Database.
//
// ## Background Work Interfaces
//
//   - ImportQueue: queued imports behind POST /api/imports (internal/http/stores.go)
//   - Snapshotter: on-demand snapshots behind POST /api/snapshots (internal/http/stores.go)
//   - BookExporter: writes a list of books somewhere (internal/exporters/generic.go)
//   - ReportSaver: persists import reports (internal/importers/pipeline.go)
//
// ## Client Interfaces
//
//   - Catalog: the five book operations as seen by client.Session (internal/client/session.go)
//   - View: where a session renders books, forms and notifications (internal/client/session.go)
//
// # Adding a New Storage Backend
//
// The catalog is reached only through BookStore, BookInserter and BookLister.
// A new backend needs a repository with:
//
//	func (r *Repository) List(filter string) ([]entities.Book, error)
//	func (r *Repository) Get(id uint) (*entities.Book, error)
//	func (r *Repository) Insert(book *entities.Book) error
//	func (r *Repository) Update(id uint, patch entities.BookPatch) (*entities.Book, error)
//	func (r *Repository) Delete(id uint) (int64, error)
//	func (r *Repository) Count() (int64, error)
//
// Get returns books.ErrNotFound for a missing id; Delete returns the number
// of rows removed.
//
// # Adding a New Snapshot Format
//
//  1. Implement BookExporter in internal/exporters/
//
//     type CSVExporter struct { Dir string }
//
//     func (e *CSVExporter) Export(books []entities.Book) (ExportResult, error)
//
//  2. Hand it to exporters.ExportCatalog or the snapshot scheduler.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
