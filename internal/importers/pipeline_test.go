package importers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type fakeInserter struct {
	books  []entities.Book
	failOn string
	nextID uint
}

func (f *fakeInserter) Insert(book *entities.Book) error {
	if f.failOn != "" && book.Title == f.failOn {
		return errors.New("constraint failed")
	}
	f.nextID++
	book.ID = f.nextID
	f.books = append(f.books, *book)
	return nil
}

type fakeSaver struct {
	saved []any
	err   error
}

func (f *fakeSaver) SaveJSON(data any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, data)
	return "report.json", nil
}

func TestPipeline_ImportsEveryEntryWithDefaults(t *testing.T) {
	inserter := &fakeInserter{}
	pipeline := NewPipeline(inserter)

	report, err := pipeline.ImportBytes([]byte(`[
		{"title":"Dune","author":"Frank Herbert","year":1965},
		{"name":"Emma","writer":"Jane Austen"},
		{"titulo":"Rayuela","autor":"Cortázar"},
		{"isbn":"000"}
	]`), "inline")
	require.NoError(t, err)

	require.Len(t, inserter.books, 4)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 4, report.Inserted)
	assert.Equal(t, 0, report.Failed)

	last := inserter.books[3]
	assert.Equal(t, PlaceholderTitle, last.Title)
	assert.Equal(t, PlaceholderAuthor, last.Author)
	assert.Equal(t, uint(4), report.Results[3].ID)
}

func TestPipeline_FailuresDoNotAbort(t *testing.T) {
	inserter := &fakeInserter{failOn: "Broken"}
	pipeline := NewPipeline(inserter)

	var progress []Result
	pipeline.SetProgress(func(r Result) { progress = append(progress, r) })

	report, err := pipeline.ImportBytes([]byte(`{"books":[
		{"title":"First","author":"A"},
		{"title":"Broken","author":"B"},
		"not an object",
		{"title":"Last","author":"C"}
	]}`), "inline")
	require.NoError(t, err)

	assert.Equal(t, ShapeNested, report.Shape)
	assert.Equal(t, "books", report.Key)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 2, report.Failed)
	assert.Len(t, progress, 4)

	assert.True(t, report.Results[1].Failed())
	assert.Contains(t, report.Results[1].Error, "constraint failed")
	assert.True(t, report.Results[2].Failed())
	assert.Equal(t, "Last", inserter.books[1].Title)
}

func TestPipeline_DryRun(t *testing.T) {
	inserter := &fakeInserter{}
	pipeline := NewPipeline(inserter)
	pipeline.SetDryRun(true)

	report, err := pipeline.ImportBytes([]byte(`[{"title":"Dune"},{"title":"Emma"}]`), "inline")
	require.NoError(t, err)

	assert.Empty(t, inserter.books)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, "Emma", report.Results[1].Title)
}

func TestPipeline_SavesReport(t *testing.T) {
	saver := &fakeSaver{}
	pipeline := NewPipeline(&fakeInserter{})
	pipeline.SetReportSaver(saver)

	report, err := pipeline.ImportBytes([]byte(`{"title":"Dune","author":"Herbert"}`), "single.json")
	require.NoError(t, err)

	require.Len(t, saver.saved, 1)
	saved := saver.saved[0].(Report)
	assert.Equal(t, report.RunID, saved.RunID)
	assert.Equal(t, ShapeSingle, saved.Shape)
	assert.NotEmpty(t, report.RunID)
}

func TestPipeline_SaveErrorIsNotFatal(t *testing.T) {
	pipeline := NewPipeline(&fakeInserter{})
	pipeline.SetReportSaver(&fakeSaver{err: errors.New("disk full")})

	report, err := pipeline.ImportBytes([]byte(`[{"title":"Dune"}]`), "inline")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
}

func TestPipeline_ImportFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := NewPipeline(&fakeInserter{}).ImportFile(filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("invalid document", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		inserter := &fakeInserter{}
		_, err := NewPipeline(inserter).ImportFile(path)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Empty(t, inserter.books)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "books.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"title":"Dune","author":"Herbert"}]`), 0o644))

		report, err := NewPipeline(&fakeInserter{}).ImportFile(path)
		require.NoError(t, err)
		assert.Equal(t, path, report.Source)
		assert.Equal(t, 1, report.Inserted)
	})
}
