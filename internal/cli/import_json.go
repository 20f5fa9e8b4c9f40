package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/importers"
)

// ImportJSONCommand loads a JSON document of books straight into the catalog.
type ImportJSONCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool
	Verbose      bool

	cfg *config.Config
	out io.Writer
}

func NewImportJSONCommand(cfg *config.Config) *ImportJSONCommand {
	return &ImportJSONCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *ImportJSONCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-json", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", cmd.cfg.Importer.File, "Path to the JSON document to import")
	fs.StringVar(&cmd.DatabasePath, "db", "", "SQLite catalog to import into (default: DATABASE_PATH)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Resolve every entry without inserting anything")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print one line per entry")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-json [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books from a JSON document. The document may be an array of books,\n")
		fmt.Fprintf(os.Stderr, "an object wrapping such an array, or a single book object. Field names are\n")
		fmt.Fprintf(os.Stderr, "matched against common synonyms (name/writer/publishedDate/...).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-json -file goodreads.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-json -file books.json -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportJSONCommand) Run() error {
	_, err := cmd.run()
	return err
}

func (cmd *ImportJSONCommand) run() (importers.Report, error) {
	fmt.Fprintln(cmd.out, "JSON Import")
	fmt.Fprintln(cmd.out, "===========")
	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No changes will be made")
	}
	fmt.Fprintf(cmd.out, "File: %s\n", cmd.FilePath)

	if _, err := os.Stat(cmd.FilePath); os.IsNotExist(err) {
		return importers.Report{}, fmt.Errorf("%w: %s", importers.ErrFileNotFound, cmd.FilePath)
	}

	db, err := openCatalog(cmd.cfg.Database, cmd.DatabasePath)
	if err != nil {
		return importers.Report{}, err
	}
	defer db.Close()

	pipeline := importers.NewPipeline(books.NewRepository(db.DB))
	pipeline.SetDryRun(cmd.DryRun)
	if cmd.cfg.Audit.Dir != "" {
		pipeline.SetReportSaver(audit.NewAuditor(cmd.cfg.Audit.Dir))
	}
	if cmd.Verbose {
		pipeline.SetProgress(func(r importers.Result) {
			if r.Failed() {
				fmt.Fprintf(cmd.out, "  [%d] FAILED: %s\n", r.Index, r.Error)
				return
			}
			fmt.Fprintf(cmd.out, "  [%d] %s (id %d)\n", r.Index, r.Title, r.ID)
		})
	}

	report, err := pipeline.ImportFile(cmd.FilePath)
	if err != nil {
		return report, err
	}

	fmt.Fprintln(cmd.out)
	fmt.Fprintln(cmd.out, "=== Summary ===")
	fmt.Fprintf(cmd.out, "Run:      %s\n", report.RunID)
	fmt.Fprintf(cmd.out, "Shape:    %s\n", describeShape(report))
	fmt.Fprintf(cmd.out, "Entries:  %d\n", report.Total)
	fmt.Fprintf(cmd.out, "Imported: %d\n", report.Inserted)
	fmt.Fprintf(cmd.out, "Failed:   %d\n", report.Failed)

	return report, nil
}

func describeShape(report importers.Report) string {
	if report.Key != "" {
		return fmt.Sprintf("%s (%q)", report.Shape, report.Key)
	}
	return string(report.Shape)
}
