// Package data provides the data models and database interaction logic
// for the books service.
package data

import (
	"encoding/json"
	"errors"

	"github.com/aoideee/bookshelf/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID     int64  `json:"id"`     // Unique identifier assigned by the database
	Title  string `json:"title"`  // Title of the book
	Author string `json:"author"` // Author of the book
}

// ErrNotText is returned when a text field holds an object, array or boolean.
var ErrNotText = errors.New("value must be a string or a number")

// Text is a free-form string field that also accepts a JSON number, keeping
// the number's literal spelling: 1 becomes "1", 2.50 becomes "2.50".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return ErrNotText
	}
	switch c := b[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		*t = Text(b)
		return nil
	}
	return ErrNotText
}

// CreateBookInput holds the fields a client must supply when creating a new book.
// Both fields are pointers so we can tell a missing or null key (nil) apart
// from an empty string, which is accepted.
type CreateBookInput struct {
	Title  *Text `json:"title"`
	Author *Text `json:"author"`
}

// ValidateCreateBookInput records an error on v for every required key that
// was absent from the request body.
func ValidateCreateBookInput(v *validator.Validator, input CreateBookInput) {
	v.Check(validator.Present(input.Title), "title", "must be provided")
	v.Check(validator.Present(input.Author), "author", "must be provided")
}

// Book converts a validated input into a Book ready for Insert.
func (in CreateBookInput) Book() *Book {
	book := &Book{}
	if in.Title != nil {
		book.Title = string(*in.Title)
	}
	if in.Author != nil {
		book.Author = string(*in.Author)
	}
	return book
}
