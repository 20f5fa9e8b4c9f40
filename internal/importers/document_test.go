package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		shape   Shape
		key     string
		entries int
	}{
		{"top-level array", `[{"title":"A"},{"title":"B"}]`, ShapeArray, "", 2},
		{"empty array", `[]`, ShapeArray, "", 0},
		{"wrapped array", `{"books":[{"title":"A"}]}`, ShapeNested, "books", 1},
		{"first array property wins", `{"meta":{"v":1},"items":[{}],"other":[{},{}]}`, ShapeNested, "items", 1},
		{"single object", `{"title":"Dune","author":"Herbert"}`, ShapeSingle, "", 1},
		{"surrounding whitespace", "\n  [{}]\n", ShapeArray, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.shape, doc.Shape)
			assert.Equal(t, tt.key, doc.Key)
			assert.Len(t, doc.Entries, tt.entries)
		})
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"malformed", `[{"title":`},
		{"string", `"books"`},
		{"number", `42`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}
