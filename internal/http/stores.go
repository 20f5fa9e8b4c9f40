package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

// BookStore is the catalog storage used by the books API.
// Implemented by books.Repository.
type BookStore interface {
	List(filter string) ([]entities.Book, error)
	Get(id uint) (*entities.Book, error)
	Insert(book *entities.Book) error
	Update(id uint, patch entities.BookPatch) (*entities.Book, error)
	Delete(id uint) (int64, error)
	Count() (int64, error)
}

// HealthChecker reports whether the database answers.
// Implemented by database.Database.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ImportQueue runs uploaded import documents in the background.
// Implemented by tasks.Client.
type ImportQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Snapshotter writes a catalog snapshot on demand and reports the state of
// the scheduled job. Implemented by scheduler.SnapshotScheduler.
type Snapshotter interface {
	RunNow() (exporters.ExportResult, error)
	IsRunning() bool
	LastResult() (*exporters.ExportResult, error)
	NextRunTime() *time.Time
}

// ImportReports lists the stored import run reports.
// Implemented by audit.Auditor.
type ImportReports interface {
	List() ([]string, error)
}
