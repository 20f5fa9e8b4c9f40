package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrNotFound is returned when the server answers 404 for a book.
var ErrNotFound = errors.New("book not found")

const csrfHeader = "X-CSRF-Token"

// APIError is a non-2xx answer other than 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// BookInput is the body of create and update requests. On update a nil
// field leaves the stored value unchanged.
type BookInput struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Changes int64           `json:"changes"`
	Error   string          `json:"error"`
}

// API is a typed client for the books endpoints. It keeps cookies and echoes
// the CSRF token the server hands out, so it works against a server with
// CSRF protection enabled.
type API struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	csrfToken string
}

// NewAPI creates a client for the server at baseURL (e.g. http://localhost:3000).
func NewAPI(baseURL string) *API {
	jar, _ := cookiejar.New(nil)
	return &API{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// List returns the books matching search, or all books when it is empty.
func (a *API) List(ctx context.Context, search string) ([]entities.Book, error) {
	path := "/api/books"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	books := []entities.Book{}
	if _, err := a.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (a *API) Get(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if _, err := a.do(ctx, http.MethodGet, bookPath(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (a *API) Create(ctx context.Context, input BookInput) (*entities.Book, error) {
	var book entities.Book
	if _, err := a.do(ctx, http.MethodPost, "/api/books", input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (a *API) Update(ctx context.Context, id uint, input BookInput) (*entities.Book, error) {
	var book entities.Book
	if _, err := a.do(ctx, http.MethodPut, bookPath(id), input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book and returns the number of deleted rows.
func (a *API) Delete(ctx context.Context, id uint) (int64, error) {
	env, err := a.do(ctx, http.MethodDelete, bookPath(id), nil, nil)
	if err != nil {
		return 0, err
	}
	return env.Changes, nil
}

func bookPath(id uint) string {
	return fmt.Sprintf("/api/books/%d", id)
}

func (a *API) do(ctx context.Context, method, path string, body any, out any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if token := a.token(); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if token := resp.Header.Get(csrfHeader); token != "" {
		a.setToken(token)
	}

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &env, nil
}

// PrimeCSRF fetches the book list once so the server hands out a CSRF
// token before the first write.
func (a *API) PrimeCSRF(ctx context.Context) error {
	_, err := a.List(ctx, "")
	return err
}

func (a *API) token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.csrfToken
}

func (a *API) setToken(token string) {
	a.mu.Lock()
	a.csrfToken = token
	a.mu.Unlock()
}
