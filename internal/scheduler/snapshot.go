package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard 5-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// SnapshotScheduler writes catalog snapshots on a cron schedule.
type SnapshotScheduler struct {
	lister   exporters.BookLister
	exporter exporters.BookExporter
	config   config.Snapshot

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	last      *exporters.ExportResult
	lastErr   error
}

func NewSnapshotScheduler(lister exporters.BookLister, cfg config.Snapshot) *SnapshotScheduler {
	return &SnapshotScheduler{
		lister:   lister,
		exporter: exporters.NewJSONExporter(cfg.Dir),
		config:   cfg,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the snapshot job if snapshots are enabled. The scheduler
// stops when ctx is cancelled.
func (s *SnapshotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Snapshot scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		_, _ = s.RunNow()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Snapshot scheduler: started with schedule '%s', writing to %s", s.config.Schedule, s.config.Dir)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running snapshot to finish.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	entryID := s.entryID
	s.mu.Unlock()

	// RunNow takes s.mu, so wait for the job without holding it.
	<-s.cron.Stop().Done()
	s.cron.Remove(entryID)

	log.Printf("Snapshot scheduler: stopped")
}

// RunNow writes a snapshot immediately.
func (s *SnapshotScheduler) RunNow() (exporters.ExportResult, error) {
	start := time.Now()
	result, err := exporters.ExportCatalog(s.lister, s.exporter)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.last = &result
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("Snapshot: failed: %v", err)
		return exporters.ExportResult{}, err
	}
	log.Printf("Snapshot: wrote %d books to %s in %v", result.BooksProcessed, result.Path, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// IsRunning returns whether the cron job is active.
func (s *SnapshotScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastResult returns the most recent successful snapshot and the error of
// the most recent attempt.
func (s *SnapshotScheduler) LastResult() (*exporters.ExportResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastErr
}

// NextRunTime returns when the next snapshot will be taken.
func (s *SnapshotScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}
