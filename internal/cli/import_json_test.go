package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/importers"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{
			Driver:   config.DriverSQLite,
			Path:     filepath.Join(dir, "bookshelf.db"),
			LogLevel: "silent",
		},
		Importer: config.Importer{File: config.DefaultImportFile},
		Audit:    config.Audit{Dir: filepath.Join(dir, "audit")},
		Snapshot: config.Snapshot{Dir: filepath.Join(dir, "snapshots")},
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func countBooks(t *testing.T, path string) int64 {
	t.Helper()
	db, err := database.NewSQLiteDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	count, err := books.NewRepository(db.DB).Count()
	require.NoError(t, err)
	return count
}

func TestImportJSONCommand_Run(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, `{"library":[
		{"title":"Dune","author":"Frank Herbert","year":1965},
		{"name":"Emma","writer":"Jane Austen"},
		42
	]}`)

	var out bytes.Buffer
	cmd := NewImportJSONCommand(cfg)
	cmd.out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-file", path, "-verbose"}))

	report, err := cmd.run()
	require.NoError(t, err, "per-entry failures do not fail the command")

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, int64(2), countBooks(t, cfg.Database.Path))

	assert.Contains(t, out.String(), `nested ("library")`)
	assert.Contains(t, out.String(), "Imported: 2")
	assert.Contains(t, out.String(), "FAILED")

	reports, err := filepath.Glob(filepath.Join(cfg.Audit.Dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestImportJSONCommand_DryRun(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, `[{"title":"Dune","author":"Herbert"}]`)

	cmd := NewImportJSONCommand(cfg)
	cmd.out = &bytes.Buffer{}
	require.NoError(t, cmd.ParseFlags([]string{"-file", path, "-dry-run"}))

	report, err := cmd.run()
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, int64(0), countBooks(t, cfg.Database.Path))
}

func TestImportJSONCommand_DatabaseOverride(t *testing.T) {
	cfg := testConfig(t)
	other := filepath.Join(t.TempDir(), "other.db")
	path := writeFile(t, `{"title":"Dune","author":"Herbert"}`)

	cmd := NewImportJSONCommand(cfg)
	cmd.out = &bytes.Buffer{}
	require.NoError(t, cmd.ParseFlags([]string{"-file", path, "-db", other}))
	require.NoError(t, cmd.Run())

	assert.Equal(t, int64(1), countBooks(t, other))
}

func TestImportJSONCommand_FatalInputErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cmd := NewImportJSONCommand(testConfig(t))
		cmd.out = &bytes.Buffer{}
		require.NoError(t, cmd.ParseFlags([]string{"-file", filepath.Join(t.TempDir(), "nope.json")}))

		assert.ErrorIs(t, cmd.Run(), importers.ErrFileNotFound)
	})

	t.Run("unparsable file", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewImportJSONCommand(cfg)
		cmd.out = &bytes.Buffer{}
		require.NoError(t, cmd.ParseFlags([]string{"-file", writeFile(t, `[{"title":`)}))

		assert.ErrorIs(t, cmd.Run(), importers.ErrInvalidDocument)
		assert.Equal(t, int64(0), countBooks(t, cfg.Database.Path))
	})

	t.Run("scalar document", func(t *testing.T) {
		cmd := NewImportJSONCommand(testConfig(t))
		cmd.out = &bytes.Buffer{}
		require.NoError(t, cmd.ParseFlags([]string{"-file", writeFile(t, `"books"`)}))

		assert.ErrorIs(t, cmd.Run(), importers.ErrInvalidDocument)
	})
}

func TestImportJSONCommand_DefaultFile(t *testing.T) {
	cmd := NewImportJSONCommand(testConfig(t))
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, config.DefaultImportFile, cmd.FilePath)
}
