package importers

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Placeholders used when an entry has no usable title or author.
const (
	PlaceholderTitle  = "Untitled"
	PlaceholderAuthor = "Unknown author"
)

// ErrNotAnObject marks an entry that is not a JSON object.
var ErrNotAnObject = errors.New("entry is not a JSON object")

// Source keys per target field, tried in order.
var (
	titleKeys       = []string{"title", "name", "titulo", "nombre"}
	authorKeys      = []string{"author", "autor", "writer"}
	yearKeys        = []string{"year", "publishedDate", "anio", "año", "publicacion"}
	genreKeys       = []string{"genre", "category", "genero", "categoria", "edicion"}
	descriptionKeys = []string{"description", "summary", "descripcion", "resumen", "intro"}
	ratingKeys      = []string{"rating", "puntuacion", "score"}
)

var leadingInteger = regexp.MustCompile(`^\s*(-?\d+)`)

// ResolveBook maps one raw entry onto a Book using the synonym key lists.
// Values that are missing, null, empty, zero or false fall through to the
// next key.
func ResolveBook(raw json.RawMessage) (entities.Book, error) {
	entry, err := decodeEntry(raw)
	if err != nil {
		return entities.Book{}, err
	}

	book := entities.Book{
		Title:  PlaceholderTitle,
		Author: PlaceholderAuthor,
	}
	if title, ok := firstText(entry, titleKeys); ok {
		book.Title = title
	}
	if author, ok := firstText(entry, authorKeys); ok {
		book.Author = author
	}
	if year, ok := firstValue(entry, yearKeys, asYear); ok {
		book.Year = &year
	}
	if genre, ok := firstText(entry, genreKeys); ok {
		book.Genre = &genre
	}
	if description, ok := firstText(entry, descriptionKeys); ok {
		book.Description = &description
	}
	if rating, ok := firstValue(entry, ratingKeys, asRating); ok {
		book.Rating = &rating
	}
	return book, nil
}

func decodeEntry(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotAnObject
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var entry map[string]any
	if err := dec.Decode(&entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func firstText(entry map[string]any, keys []string) (string, bool) {
	return firstValue(entry, keys, asText)
}

func firstValue[T any](entry map[string]any, keys []string, convert func(any) (T, bool)) (T, bool) {
	for _, key := range keys {
		value, present := entry[key]
		if !present {
			continue
		}
		if v, ok := convert(value); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func asText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case json.Number:
		if f, err := v.Float64(); err != nil || f == 0 {
			return "", false
		}
		return v.String(), true
	case bool:
		return "true", v
	case []any:
		var parts []string
		for _, item := range v {
			if s, ok := asText(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), len(parts) > 0
	default:
		return "", false
	}
}

func asYear(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil || f == 0 {
			return 0, false
		}
		return int(f), true
	case string:
		m := leadingInteger.FindStringSubmatch(v)
		if m == nil {
			return 0, false
		}
		year, err := strconv.Atoi(m[1])
		return year, err == nil
	default:
		return 0, false
	}
}

func asRating(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil && f != 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
