package domain

import (
	"errors"
	"testing"
)

func TestNewBook(t *testing.T) {
	book, err := NewBook("  The Hobbit ", "J.R.R. Tolkien", "Fantasy", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.ID != 0 {
		t.Errorf("Expected unsaved book to have zero ID, got %d", book.ID)
	}
	if book.Title != "The Hobbit" {
		t.Errorf("Expected trimmed title, got %q", book.Title)
	}
	if book.Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", book.Quantity)
	}
	if !book.IsAvailable() {
		t.Error("Expected book with copies to be available")
	}

	// Zero copies is a valid catalog entry, just not available.
	empty, err := NewBook("Dune", "Frank Herbert", "SF", 0)
	if err != nil {
		t.Fatalf("Expected no error for zero quantity, got %v", err)
	}
	if empty.IsAvailable() {
		t.Error("Expected book with zero copies to be unavailable")
	}
}

func TestBookValidate(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want error
	}{
		{"valid", Book{Title: "Emma", Quantity: 1}, nil},
		{"empty title", Book{Title: "", Quantity: 1}, ErrEmptyTitle},
		{"negative quantity", Book{Title: "Emma", Quantity: -1}, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Validate()
			if err != tt.want {
				t.Errorf("Expected error %v, got %v", tt.want, err)
			}
			if tt.want != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Expected %v to match ErrValidation", err)
			}
		})
	}
}
