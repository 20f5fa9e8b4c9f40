// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	all, err := repo.List("dune")
//	book, err := repo.Get(123)
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrNotFound is returned when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// likeEscape is portable across sqlite, postgres and mysql, unlike backslash.
const likeEscape = "!"

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all books in insertion order. A non-empty filter keeps only
// books whose title, author or genre contains it, ignoring case.
func (r *Repository) List(filter string) ([]entities.Book, error) {
	books := make([]entities.Book, 0)
	query := r.db.Order("id ASC")
	if filter != "" {
		pattern := "%" + escapeLike(filter) + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) ESCAPE '!' OR LOWER(author) LIKE LOWER(?) ESCAPE '!' OR LOWER(genre) LIKE LOWER(?) ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}
	if err := query.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Get retrieves a book by its ID.
func (r *Repository) Get(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

// Insert persists a new book; the generated ID is written back into book.
func (r *Repository) Insert(book *entities.Book) error {
	book.ID = 0
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Update overwrites the fields present in patch and returns the stored row.
// An empty patch only checks that the book exists.
func (r *Repository) Update(id uint, patch entities.BookPatch) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&entities.Book{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		book = entities.Book{}
		return tx.First(&book, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	return &book, nil
}

// Delete removes a book and returns the number of rows removed.
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected, nil
}

// Count returns the number of stored books.
func (r *Repository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&entities.Book{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}
