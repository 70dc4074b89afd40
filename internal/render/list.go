package render

import "html/template"

// List is the rendered workout list. Rows are always inserted directly after
// the form, so the newest row comes first.
type List struct {
	rows []Entry
}

type Entry struct {
	ID   string
	HTML template.HTML
}

func NewList() *List {
	return &List{}
}

func (l *List) InsertAfterForm(id string, row template.HTML) {
	l.rows = append([]Entry{{ID: id, HTML: row}}, l.rows...)
}

// Rows returns the entries in display order.
func (l *List) Rows() []Entry {
	out := make([]Entry, len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *List) Len() int { return len(l.rows) }

func (l *List) Clear() { l.rows = nil }
