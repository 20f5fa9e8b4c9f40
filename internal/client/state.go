package client

// State is the client's edit state. EditingID is nil when the form creates
// a new book.
type State struct {
	EditingID *uint
}

func (s State) Editing() bool {
	return s.EditingID != nil
}

// IsEditing reports whether id is the book currently in the form.
func (s State) IsEditing(id uint) bool {
	return s.EditingID != nil && *s.EditingID == id
}

// BeginEdit returns the state for editing id.
func (s State) BeginEdit(id uint) State {
	return State{EditingID: &id}
}

// Reset returns the state for creating a new book.
func (s State) Reset() State {
	return State{}
}
