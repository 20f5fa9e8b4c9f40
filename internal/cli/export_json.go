package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportJSONCommand writes the catalog as a JSON array that import-json
// reads back unchanged.
type ExportJSONCommand struct {
	DatabasePath string
	OutputDir    string
	OutputFile   string
	Search       string

	cfg *config.Config
	out io.Writer
}

const exportSearchUsage = "Only export books whose title, author or genre contains this text"

func NewExportJSONCommand(cfg *config.Config) *ExportJSONCommand {
	return &ExportJSONCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *ExportJSONCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-json", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "", "SQLite catalog to export (default: DATABASE_PATH)")
	fs.StringVar(&cmd.OutputDir, "dir", cmd.cfg.Snapshot.Dir, "Directory for a timestamped books-*.json snapshot")
	fs.StringVar(&cmd.OutputFile, "output", "", "Write to this file instead (\"-\" for stdout)")
	fs.StringVar(&cmd.Search, "search", "", exportSearchUsage)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-json [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export the catalog as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-json -dir ./snapshots\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-json -output - -search tolkien\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" && cmd.OutputFile == "" {
		return fmt.Errorf("one of -dir or -output is required")
	}
	return nil
}

func (cmd *ExportJSONCommand) Run() error {
	_, err := cmd.run()
	return err
}

func (cmd *ExportJSONCommand) run() (exporters.ExportResult, error) {
	db, err := openCatalog(cmd.cfg.Database, cmd.DatabasePath)
	if err != nil {
		return exporters.ExportResult{}, err
	}
	defer db.Close()

	list, err := books.NewRepository(db.DB).List(cmd.Search)
	if err != nil {
		return exporters.ExportResult{}, fmt.Errorf("failed to list books: %w", err)
	}

	switch cmd.OutputFile {
	case "":
		result, err := exporters.NewJSONExporter(cmd.OutputDir).Export(list)
		if err != nil {
			return result, err
		}
		fmt.Fprintf(cmd.out, "Exported %d books to %s\n", result.BooksProcessed, result.Path)
		return result, nil

	case "-":
		if err := exporters.WriteJSON(cmd.out, list); err != nil {
			return exporters.ExportResult{}, err
		}
		return exporters.ExportResult{BooksProcessed: len(list), Path: "-"}, nil

	default:
		file, err := os.Create(cmd.OutputFile)
		if err != nil {
			return exporters.ExportResult{}, fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporters.WriteJSON(file, list); err != nil {
			return exporters.ExportResult{}, err
		}
		fmt.Fprintf(cmd.out, "Exported %d books to %s\n", len(list), cmd.OutputFile)
		return exporters.ExportResult{BooksProcessed: len(list), Path: cmd.OutputFile}, nil
	}
}
