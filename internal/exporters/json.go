package exporters

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// JSONExporter writes the catalog as a JSON array that import-json accepts
// unchanged.
type JSONExporter struct {
	Dir string
	Now func() time.Time
}

func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{
		Dir: dir,
		Now: time.Now,
	}
}

// Export writes books to <Dir>/books-<timestamp>.json.
func (e *JSONExporter) Export(books []entities.Book) (ExportResult, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(e.Dir, fmt.Sprintf("books-%s.json", e.Now().UTC().Format("20060102-150405")))
	file, err := os.Create(path)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	if err := WriteJSON(file, books); err != nil {
		return ExportResult{}, err
	}

	log.Printf("Exported %d books to %s", len(books), path)
	return ExportResult{BooksProcessed: len(books), Path: path}, nil
}

// WriteJSON encodes books as an indented array. A nil slice is written as [].
func WriteJSON(w io.Writer, books []entities.Book) error {
	if books == nil {
		books = []entities.Book{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("failed to encode books: %w", err)
	}
	return nil
}
