package client

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// NotifyKind selects how a notification is shown.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// View displays what the session produces. Calls may come from the search
// debounce goroutine.
type View interface {
	Render(books []entities.Book)
	ShowForm(form Form, editing bool)
	Notify(message string, kind NotifyKind)
}

// Catalog is the server API the session talks to. Implemented by API.
type Catalog interface {
	List(ctx context.Context, search string) ([]entities.Book, error)
	Get(ctx context.Context, id uint) (*entities.Book, error)
	Create(ctx context.Context, input BookInput) (*entities.Book, error)
	Update(ctx context.Context, id uint, input BookInput) (*entities.Book, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// Session drives the catalog screen: list, search, create, edit and delete,
// with the edit state held explicitly in State.
type Session struct {
	catalog   Catalog
	view      View
	debouncer *Debouncer

	mu     sync.Mutex
	state  State
	search string
}

func NewSession(catalog Catalog, view View) *Session {
	return &Session{
		catalog:   catalog,
		view:      view,
		debouncer: NewDebouncer(SearchDelay),
	}
}

// State returns the current edit state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SearchText returns the current search input.
func (s *Session) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Load fetches the books matching the current search text and renders them.
func (s *Session) Load(ctx context.Context) error {
	books, err := s.catalog.List(ctx, s.SearchText())
	if err != nil {
		s.view.Notify("Error loading books", NotifyError)
		log.Printf("load books: %v", err)
		return err
	}
	s.view.Render(books)
	return nil
}

// SetSearch records the search text used by the next Load.
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
}

// Search records the search text and reloads once typing pauses. Earlier
// pending searches are dropped; requests already sent are not cancelled.
func (s *Session) Search(text string) {
	s.SetSearch(text)
	s.debouncer.Trigger(func() {
		_ = s.Load(context.Background())
	})
}

// Submit creates a book, or updates the one being edited.
func (s *Session) Submit(ctx context.Context, form Form) error {
	input, err := form.Input()
	if err != nil {
		s.view.Notify("Title and Author are required", NotifyError)
		return err
	}

	state := s.State()
	if state.Editing() {
		_, err = s.catalog.Update(ctx, *state.EditingID, input)
	} else {
		_, err = s.catalog.Create(ctx, input)
	}
	if err != nil {
		s.view.Notify("Operation failed", NotifyError)
		return err
	}

	if state.Editing() {
		s.view.Notify("Book updated successfully!", NotifySuccess)
	} else {
		s.view.Notify("Book added successfully!", NotifySuccess)
	}
	s.Cancel()
	return s.Load(ctx)
}

// Edit loads a book into the form.
func (s *Session) Edit(ctx context.Context, id uint) error {
	book, err := s.catalog.Get(ctx, id)
	if err != nil {
		s.view.Notify("Failed to load book details", NotifyError)
		return err
	}

	s.mu.Lock()
	s.state = s.state.BeginEdit(book.ID)
	s.mu.Unlock()

	s.view.ShowForm(FormFromBook(*book), true)
	return nil
}

// Delete removes a book when confirmed and reloads the list either way the
// request went. Deleting the book being edited resets the form.
func (s *Session) Delete(ctx context.Context, id uint, confirmed bool) error {
	if !confirmed {
		return nil
	}

	_, err := s.catalog.Delete(ctx, id)
	if err != nil {
		s.view.Notify("Failed to delete book", NotifyError)
	} else {
		s.view.Notify("Book deleted successfully", NotifySuccess)
		if s.State().IsEditing(id) {
			s.Cancel()
		}
	}

	loadErr := s.Load(ctx)
	return errors.Join(err, loadErr)
}

// Cancel leaves edit mode without contacting the server.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.state = s.state.Reset()
	s.mu.Unlock()

	s.view.ShowForm(Form{}, false)
}

// Close drops a pending search.
func (s *Session) Close() {
	s.debouncer.Stop()
}
