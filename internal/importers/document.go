package importers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when the import input cannot be used at all.
var ErrInvalidDocument = errors.New("invalid import document")

// Shape describes how the book collection was found in the document.
type Shape string

const (
	ShapeArray  Shape = "array"  // [ {...}, {...} ]
	ShapeNested Shape = "nested" // { "books": [ {...} ] }
	ShapeSingle Shape = "single" // { "title": ... }
)

// Document is a parsed import input: one raw JSON value per book entry.
type Document struct {
	Shape   Shape
	Key     string // property holding the array when Shape is ShapeNested
	Entries []json.RawMessage
}

// ParseDocument accepts a top-level array, an object with an array-valued
// property (the first one in document order wins) or a single object.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return &Document{Shape: ShapeArray, Entries: entries}, nil

	case '{':
		fields, err := orderedFields(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		for _, f := range fields {
			value := bytes.TrimSpace(f.value)
			if len(value) == 0 || value[0] != '[' {
				continue
			}
			var entries []json.RawMessage
			if err := json.Unmarshal(value, &entries); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
			}
			return &Document{Shape: ShapeNested, Key: f.key, Entries: entries}, nil
		}
		return &Document{Shape: ShapeSingle, Entries: []json.RawMessage{trimmed}}, nil

	default:
		return nil, fmt.Errorf("%w: top-level value must be an array or an object", ErrInvalidDocument)
	}
}

type field struct {
	key   string
	value json.RawMessage
}

// orderedFields returns the members of a JSON object in document order,
// which a map decode would lose.
func orderedFields(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}
