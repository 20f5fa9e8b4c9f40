package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	msgInvalidBody      = "Invalid JSON body"
	msgRequiredFields   = "Title and author are required"
	msgEmptyFieldUpdate = "Title and author cannot be empty"
)

var validate = validator.New()

// CreateBookRequest is the body of POST /api/books.
type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

func (r CreateBookRequest) Book() entities.Book {
	return entities.Book{
		Title:       r.Title,
		Author:      r.Author,
		Year:        r.Year,
		Genre:       r.Genre,
		Description: r.Description,
		Rating:      r.Rating,
	}
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
	}
}

// List handles GET /api/books?search=
func (controller *BooksController) List(c *gin.Context) {
	result, err := controller.store.List(c.Query("search"))
	if err != nil {
		respondStorageError(c, err, "list books")
		return
	}
	respondOK(c, result)
}

// Get handles GET /api/books/:id
func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.Get(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondStorageError(c, err, "get book")
		return
	}
	respondOK(c, book)
}

// Create handles POST /api/books
func (controller *BooksController) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, msgRequiredFields)
		return
	}

	book := req.Book()
	if err := controller.store.Insert(&book); err != nil {
		respondStorageError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

// Update handles PUT /api/books/:id. Only fields present in the body change;
// null counts as absent.
func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch entities.BookPatch
	if err := bindPatch(c, &patch); err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}
	if (patch.Title != nil && *patch.Title == "") || (patch.Author != nil && *patch.Author == "") {
		respondBadRequest(c, msgEmptyFieldUpdate)
		return
	}

	book, err := controller.store.Update(id, patch)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondStorageError(c, err, "update book")
		return
	}
	respondOK(c, book)
}

// bindPatch decodes an update body. A missing or empty body is an empty patch.
func bindPatch(c *gin.Context, patch *entities.BookPatch) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return nil
	}
	err := c.ShouldBindJSON(patch)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Delete handles DELETE /api/books/:id
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	changes, err := controller.store.Delete(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondStorageError(c, err, "delete book")
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Message: "deleted", Changes: changes})
}
