package client

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrMissingFields is returned for a form without title or author.
var ErrMissingFields = errors.New("title and author are required")

// Form holds the raw text of the book form.
type Form struct {
	Title       string
	Author      string
	Year        string
	Genre       string
	Rating      string
	Description string
}

// FormFromBook fills a form with a stored book.
func FormFromBook(book entities.Book) Form {
	form := Form{
		Title:  book.Title,
		Author: book.Author,
	}
	if book.Year != nil {
		form.Year = strconv.Itoa(*book.Year)
	}
	if book.Genre != nil {
		form.Genre = *book.Genre
	}
	if book.Rating != nil {
		form.Rating = strconv.FormatFloat(*book.Rating, 'f', -1, 64)
	}
	if book.Description != nil {
		form.Description = *book.Description
	}
	return form
}

// Input trims the form and converts it into a request body. Blank optional
// fields become null; unparseable numbers are treated as blank.
func (f Form) Input() (BookInput, error) {
	title := strings.TrimSpace(f.Title)
	author := strings.TrimSpace(f.Author)
	if title == "" || author == "" {
		return BookInput{}, ErrMissingFields
	}

	input := BookInput{Title: &title, Author: &author}
	if year, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil {
		input.Year = &year
	}
	if rating, err := strconv.ParseFloat(strings.TrimSpace(f.Rating), 64); err == nil {
		input.Rating = &rating
	}
	if genre := strings.TrimSpace(f.Genre); genre != "" {
		input.Genre = &genre
	}
	if description := strings.TrimSpace(f.Description); description != "" {
		input.Description = &description
	}
	return input, nil
}
