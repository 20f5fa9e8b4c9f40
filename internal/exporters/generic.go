package exporters

import "github.com/mrlokans/bookshelf/internal/entities"

type BookExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed int    `json:"books_processed"`
	Path           string `json:"path"`
}

// BookLister reads the whole catalog; an empty filter matches every book.
type BookLister interface {
	List(filter string) ([]entities.Book, error)
}

// ExportCatalog lists every book and hands the result to exporter.
func ExportCatalog(lister BookLister, exporter BookExporter) (ExportResult, error) {
	books, err := lister.List("")
	if err != nil {
		return ExportResult{}, err
	}
	return exporter.Export(books)
}
