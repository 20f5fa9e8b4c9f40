package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/bookshelf/internal/client"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var bookActions = map[string]bool{
	"list":   true,
	"get":    true,
	"add":    true,
	"edit":   true,
	"delete": true,
}

// BooksCommand manages the catalog of a running server through its HTTP API.
type BooksCommand struct {
	APIURL string
	Yes    bool
	Action string

	args []string
	out  io.Writer
	in   io.Reader
}

func NewBooksCommand(apiURL string) *BooksCommand {
	return &BooksCommand{APIURL: apiURL, out: os.Stdout, in: os.Stdin}
}

const listSearchUsage = "Filter by title, author or genre"

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)

	fs.StringVar(&cmd.APIURL, "api", cmd.APIURL, "Base URL of the bookshelf server")
	fs.BoolVar(&cmd.Yes, "yes", false, "Do not ask for confirmation before deleting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books [-api URL] [-yes] <action> [args]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Actions:\n")
		fmt.Fprintf(os.Stderr, "  list [-search text]          List books matching title, author or genre\n")
		fmt.Fprintf(os.Stderr, "  get <id>                     Show one book\n")
		fmt.Fprintf(os.Stderr, "  add -title T -author A ...   Add a book (-year -genre -rating -description)\n")
		fmt.Fprintf(os.Stderr, "  edit <id> [-title T ...]     Change the given fields of a book\n")
		fmt.Fprintf(os.Stderr, "  delete <id>                  Delete a book\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("missing action (list, get, add, edit, delete)")
	}
	if !bookActions[rest[0]] {
		return fmt.Errorf("unknown action: %s", rest[0])
	}
	cmd.Action = rest[0]
	cmd.args = rest[1:]
	return nil
}

func (cmd *BooksCommand) Run() error {
	ctx := context.Background()
	api := client.NewAPI(cmd.APIURL)
	view := &textView{out: cmd.out}
	session := client.NewSession(api, view)
	defer session.Close()

	switch cmd.Action {
	case "list":
		fs := flag.NewFlagSet("books list", flag.ContinueOnError)
		search := fs.String("search", "", listSearchUsage)
		if err := fs.Parse(cmd.args); err != nil {
			return err
		}
		session.SetSearch(*search)
		return session.Load(ctx)

	case "get":
		id, _, err := parseBookID(cmd.args)
		if err != nil {
			return err
		}
		book, err := api.Get(ctx, id)
		if err != nil {
			return err
		}
		printBook(cmd.out, *book)
		return nil

	case "add":
		var form client.Form
		if _, err := parseFormFlags("books add", cmd.args, &form); err != nil {
			return err
		}
		if err := api.PrimeCSRF(ctx); err != nil {
			return err
		}
		return session.Submit(ctx, form)

	case "edit":
		id, rest, err := parseBookID(cmd.args)
		if err != nil {
			return err
		}
		if err := session.Edit(ctx, id); err != nil {
			return err
		}
		form := view.form
		set, err := parseFormFlags("books edit", rest, &form)
		if err != nil {
			return err
		}
		if set == 0 {
			return fmt.Errorf("nothing to change: pass at least one of -title -author -year -genre -rating -description")
		}
		if err := api.PrimeCSRF(ctx); err != nil {
			return err
		}
		return session.Submit(ctx, form)

	case "delete":
		id, _, err := parseBookID(cmd.args)
		if err != nil {
			return err
		}
		confirmed := cmd.Yes || cmd.confirm(fmt.Sprintf("Delete book %d? [y/N] ", id))
		if !confirmed {
			fmt.Fprintln(cmd.out, "Cancelled")
			return nil
		}
		if err := api.PrimeCSRF(ctx); err != nil {
			return err
		}
		return session.Delete(ctx, id, true)
	}

	return fmt.Errorf("unknown action: %s", cmd.Action)
}

func (cmd *BooksCommand) confirm(prompt string) bool {
	fmt.Fprint(cmd.out, prompt)
	answer, _ := bufio.NewReader(cmd.in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func parseBookID(args []string) (uint, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("missing book id")
	}
	id, err := strconv.ParseUint(args[0], 10, 0)
	if err != nil || id == 0 {
		return 0, nil, fmt.Errorf("invalid book id: %s", args[0])
	}
	return uint(id), args[1:], nil
}

// parseFormFlags overrides the fields of form that appear in args and
// returns how many were given.
func parseFormFlags(name string, args []string, form *client.Form) (int, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&form.Title, "title", form.Title, "Book title")
	fs.StringVar(&form.Author, "author", form.Author, "Book author")
	fs.StringVar(&form.Year, "year", form.Year, "Publication year")
	fs.StringVar(&form.Genre, "genre", form.Genre, "Genre")
	fs.StringVar(&form.Rating, "rating", form.Rating, "Rating, e.g. 4.5")
	fs.StringVar(&form.Description, "description", form.Description, "Description")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	set := 0
	fs.Visit(func(*flag.Flag) { set++ })
	return set, nil
}

// textView prints session output as plain text.
type textView struct {
	out  io.Writer
	form client.Form
}

func (v *textView) Render(books []entities.Book) {
	if len(books) == 0 {
		fmt.Fprintln(v.out, "No books found")
		return
	}

	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tGENRE\tRATING")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Title, b.Author, optionalInt(b.Year), optionalString(b.Genre), optionalFloat(b.Rating))
	}
	w.Flush()
}

func (v *textView) ShowForm(form client.Form, editing bool) {
	v.form = form
}

func (v *textView) Notify(message string, kind client.NotifyKind) {
	if kind == client.NotifyError {
		fmt.Fprintf(v.out, "! %s\n", message)
		return
	}
	fmt.Fprintln(v.out, message)
}

func printBook(out io.Writer, b entities.Book) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", b.ID)
	fmt.Fprintf(w, "Title:\t%s\n", b.Title)
	fmt.Fprintf(w, "Author:\t%s\n", b.Author)
	fmt.Fprintf(w, "Year:\t%s\n", optionalInt(b.Year))
	fmt.Fprintf(w, "Genre:\t%s\n", optionalString(b.Genre))
	fmt.Fprintf(w, "Rating:\t%s\n", optionalFloat(b.Rating))
	fmt.Fprintf(w, "Description:\t%s\n", optionalString(b.Description))
	w.Flush()
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optionalString(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
