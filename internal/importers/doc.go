// Package importers bulk-loads books from loosely structured JSON documents.
//
// # Architecture
//
//	JSON bytes → ParseDocument → Document.Entries → ResolveBook → BookInserter
//
// ParseDocument finds the collection of entries (top-level array, an
// array-valued property, or a single object). ResolveBook maps each entry to
// an entities.Book through ordered synonym keys, so exports from other tools
// ("name", "writer", "publishedDate", ...) import without conversion.
// Pipeline inserts entries one by one and returns a Report with one Result per
// entry; a failing entry never aborts the run.
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(booksRepo)
//	report, err := pipeline.ImportFile("books.json")
//	fmt.Printf("%d inserted, %d failed\n", report.Inserted, report.Failed)
//
// The same pipeline backs the import-json command and the queued imports
// of POST /api/imports.
package importers
