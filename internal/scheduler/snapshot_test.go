package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type stubLister struct {
	books []entities.Book
	err   error
}

func (s stubLister) List(filter string) ([]entities.Book, error) {
	return s.books, s.err
}

func snapshotConfig(t *testing.T, enabled bool, schedule string) config.Snapshot {
	return config.Snapshot{
		Enabled:  enabled,
		Schedule: schedule,
		Dir:      filepath.Join(t.TempDir(), "snapshots"),
	}
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"))
	assert.Error(t, ValidateSchedule("daily"))
}

func TestSnapshotScheduler_Disabled(t *testing.T) {
	s := NewSnapshotScheduler(stubLister{}, snapshotConfig(t, false, "0 3 * * *"))

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestSnapshotScheduler_InvalidSchedule(t *testing.T) {
	s := NewSnapshotScheduler(stubLister{}, snapshotConfig(t, true, "not a schedule"))

	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestSnapshotScheduler_StartStop(t *testing.T) {
	s := NewSnapshotScheduler(stubLister{}, snapshotConfig(t, true, "0 3 * * *"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRunTime())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestSnapshotScheduler_RunNow(t *testing.T) {
	books := []entities.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert"}}
	s := NewSnapshotScheduler(stubLister{books: books}, snapshotConfig(t, false, ""))

	result, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksProcessed)
	assert.FileExists(t, result.Path)

	last, lastErr := s.LastResult()
	require.NotNil(t, last)
	assert.NoError(t, lastErr)
	assert.Equal(t, result.Path, last.Path)
}

func TestSnapshotScheduler_RunNowError(t *testing.T) {
	s := NewSnapshotScheduler(stubLister{err: errors.New("db down")}, snapshotConfig(t, false, ""))

	_, err := s.RunNow()
	assert.Error(t, err)

	last, lastErr := s.LastResult()
	assert.Nil(t, last)
	assert.Error(t, lastErr)
}
