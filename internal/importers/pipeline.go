package importers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrFileNotFound is returned when the import file does not exist.
var ErrFileNotFound = errors.New("import file not found")

// BookInserter persists one book and writes its generated ID back.
type BookInserter interface {
	Insert(book *entities.Book) error
}

// Result is the outcome of importing a single entry.
type Result struct {
	Index int    `json:"index"`
	ID    uint   `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Error string `json:"error,omitempty"`
}

// Failed reports whether the entry could not be imported.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Report summarises one import run.
type Report struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	Shape      Shape     `json:"shape"`
	Key        string    `json:"key,omitempty"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Inserted   int       `json:"inserted"`
	Failed     int       `json:"failed"`
	Results    []Result  `json:"results"`
}

// ReportSaver persists finished reports (see audit.Auditor).
type ReportSaver interface {
	SaveJSON(data any) (string, error)
}

// Pipeline imports book entries one at a time. A failing entry is recorded
// and the run continues with the next one.
type Pipeline struct {
	inserter BookInserter
	saver    ReportSaver
	progress func(Result)
	dryRun   bool
}

// NewPipeline creates a new import pipeline writing through inserter.
func NewPipeline(inserter BookInserter) *Pipeline {
	return &Pipeline{inserter: inserter}
}

// SetReportSaver stores every finished report through saver.
func (p *Pipeline) SetReportSaver(saver ReportSaver) {
	p.saver = saver
}

// SetProgress registers a callback invoked after each entry.
func (p *Pipeline) SetProgress(fn func(Result)) {
	p.progress = fn
}

// SetDryRun resolves entries without inserting them.
func (p *Pipeline) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// ImportFile reads and imports a JSON document from disk.
func (p *Pipeline) ImportFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Report{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return Report{}, fmt.Errorf("failed to read import file: %w", err)
	}
	return p.ImportBytes(data, path)
}

// ImportBytes parses and imports an in-memory JSON document.
func (p *Pipeline) ImportBytes(data []byte, source string) (Report, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return Report{}, err
	}
	return p.Import(doc, source), nil
}

// Import inserts every entry of doc sequentially and sums the outcomes.
func (p *Pipeline) Import(doc *Document, source string) Report {
	report := Report{
		RunID:     uuid.New().String(),
		Source:    source,
		Shape:     doc.Shape,
		Key:       doc.Key,
		DryRun:    p.dryRun,
		StartedAt: time.Now(),
		Total:     len(doc.Entries),
		Results:   make([]Result, 0, len(doc.Entries)),
	}

	for i, raw := range doc.Entries {
		result := p.importEntry(i, raw)
		report.Results = append(report.Results, result)
		if p.progress != nil {
			p.progress(result)
		}
	}

	for _, r := range report.Results {
		if r.Failed() {
			report.Failed++
		} else {
			report.Inserted++
		}
	}
	report.FinishedAt = time.Now()

	if p.saver != nil {
		if _, err := p.saver.SaveJSON(report); err != nil {
			log.Printf("WARNING: failed to save import report %s: %v", report.RunID, err)
		}
	}

	return report
}

func (p *Pipeline) importEntry(index int, raw json.RawMessage) Result {
	result := Result{Index: index}

	book, err := ResolveBook(raw)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Title = book.Title

	if p.dryRun {
		return result
	}

	if err := p.inserter.Insert(&book); err != nil {
		result.Error = err.Error()
		return result
	}
	result.ID = book.ID
	return result
}
