package domain

import "strings"

// Book validation errors.
var (
	ErrEmptyTitle      = newValidationError("title cannot be empty")
	ErrInvalidQuantity = newValidationError("quantity cannot be negative")
)

// Book is a catalog title with the number of copies currently on the shelf.
// Quantity is decremented by a borrow and incremented by a return; it never
// goes below zero.
type Book struct {
	ID       int64  `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Quantity int    `json:"quantity"`
}

// NewBook creates a Book that has not been stored yet (ID is zero).
// Surrounding whitespace is trimmed from the text fields.
func NewBook(title, author, genre string, quantity int) (*Book, error) {
	book := &Book{
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		Genre:    strings.TrimSpace(genre),
		Quantity: quantity,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// IsAvailable reports whether at least one copy can be borrowed.
func (b *Book) IsAvailable() bool {
	return b.Quantity > 0
}
