package exporters

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/importers"
)

type stubLister struct {
	books []entities.Book
	err   error
}

func (s stubLister) List(filter string) ([]entities.Book, error) {
	return s.books, s.err
}

func TestJSONExporter_Export(t *testing.T) {
	year := 1965
	books := []entities.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: &year},
		{ID: 2, Title: "Emma", Author: "Jane Austen"},
	}

	exporter := NewJSONExporter(filepath.Join(t.TempDir(), "snapshots"))
	exporter.Now = func() time.Time { return time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC) }

	result, err := exporter.Export(books)
	require.NoError(t, err)
	assert.Equal(t, 2, result.BooksProcessed)
	assert.Equal(t, "books-20261015-030000.json", filepath.Base(result.Path))

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"title": "Dune"`)
	assert.Contains(t, string(content), `"genre": null`)
}

func TestJSONExporter_RoundTripsThroughImporter(t *testing.T) {
	rating := 4.5
	genre := "Sci-Fi"
	books := []entities.Book{
		{ID: 7, Title: "Dune", Author: "Frank Herbert", Genre: &genre, Rating: &rating},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, books))

	doc, err := importers.ParseDocument(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)

	book, err := importers.ResolveBook(doc.Entries[0])
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Sci-Fi", *book.Genre)
	assert.Equal(t, 4.5, *book.Rating)
}

func TestWriteJSON_EmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportCatalog(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes listed books", func(t *testing.T) {
		result, err := ExportCatalog(stubLister{books: []entities.Book{{ID: 1, Title: "A", Author: "B"}}}, NewJSONExporter(dir))
		require.NoError(t, err)
		assert.Equal(t, 1, result.BooksProcessed)
		assert.FileExists(t, result.Path)
	})

	t.Run("list error", func(t *testing.T) {
		_, err := ExportCatalog(stubLister{err: errors.New("db down")}, NewJSONExporter(dir))
		assert.EqualError(t, err, "db down")
	})
}
