package entities

// Book is a single catalog record. Optional fields are nil when absent and
// serialise as JSON null.
type Book struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Author      string   `gorm:"not null" json:"author"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

func (Book) TableName() string {
	return "books"
}

// BookPatch carries a partial update. A nil field is left untouched, so both
// an omitted key and an explicit null keep the stored value.
type BookPatch struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

// Columns returns the column/value pairs present in the patch.
func (p BookPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Author != nil {
		cols["author"] = *p.Author
	}
	if p.Year != nil {
		cols["year"] = *p.Year
	}
	if p.Genre != nil {
		cols["genre"] = *p.Genre
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Rating != nil {
		cols["rating"] = *p.Rating
	}
	return cols
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Apply copies the present fields onto book.
func (p BookPatch) Apply(book *Book) {
	if p.Title != nil {
		book.Title = *p.Title
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.Year != nil {
		book.Year = p.Year
	}
	if p.Genre != nil {
		book.Genre = p.Genre
	}
	if p.Description != nil {
		book.Description = p.Description
	}
	if p.Rating != nil {
		book.Rating = p.Rating
	}
}
