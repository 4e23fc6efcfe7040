// Package book provides the book domain model and repository interfaces.
package book

// Status is a book's reading status.
type Status string

const (
	StatusWantToRead       Status = "want_to_read"
	StatusCurrentlyReading Status = "currently_reading"
	StatusFinished         Status = "finished"
)

// Book is a single book record as provided by the book repository.
// Date fields hold raw strings because source data is occasionally messy;
// the streak engine parses and silently drops what it cannot use.
type Book struct {
	ID           string  `db:"id" yaml:"id" json:"id"`
	Title        string  `db:"title" yaml:"title" json:"title"`
	Author       string  `db:"author" yaml:"author,omitempty" json:"author,omitempty"`
	Status       Status  `db:"status" yaml:"status" json:"status"`
	Progress     float64 `db:"progress" yaml:"progress,omitempty" json:"progress,omitempty"`
	Notes        string  `db:"notes" yaml:"notes,omitempty" json:"notes,omitempty"`
	DateAdded    string  `db:"date_added" yaml:"date_added,omitempty" json:"dateAdded,omitempty"`
	DateStarted  string  `db:"date_started" yaml:"date_started,omitempty" json:"dateStarted,omitempty"`
	DateFinished string  `db:"date_finished" yaml:"date_finished,omitempty" json:"dateFinished,omitempty"`
	DateModified string  `db:"date_modified" yaml:"date_modified,omitempty" json:"dateModified,omitempty"`
}
