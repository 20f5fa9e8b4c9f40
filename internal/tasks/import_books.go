package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/importers"
)

// ImportBooksTask imports a JSON document that was uploaded through the API.
type ImportBooksTask struct {
	Source   string `json:"source"`
	Document []byte `json:"document"`
}

// Config returns the queue configuration for import tasks.
// Imports are not idempotent, so a failed run is never retried.
func (t ImportBooksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_books",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportBooksProcessor creates a processor function for ImportBooksTask.
func ImportBooksProcessor(inserter importers.BookInserter, saver importers.ReportSaver) backlite.QueueProcessor[ImportBooksTask] {
	return func(ctx context.Context, task ImportBooksTask) error {
		if inserter == nil {
			return fmt.Errorf("book inserter not configured")
		}

		pipeline := importers.NewPipeline(inserter)
		if saver != nil {
			pipeline.SetReportSaver(saver)
		}

		report, err := pipeline.ImportBytes(task.Document, task.Source)
		if err != nil {
			return fmt.Errorf("import %s: %w", task.Source, err)
		}

		log.Printf("[TASK] Imported %s: %d inserted, %d failed (run %s)",
			task.Source, report.Inserted, report.Failed, report.RunID)
		return nil
	}
}

// NewImportBooksQueue creates a backlite queue for import tasks.
func NewImportBooksQueue(inserter importers.BookInserter, saver importers.ReportSaver) backlite.Queue {
	return backlite.NewQueue(ImportBooksProcessor(inserter, saver))
}
