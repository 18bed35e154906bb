package api

// AddBookRequest is the body of POST /api/books.
type AddBookRequest struct {
	Title    string `json:"title"    validate:"required,max=255"`
	Author   string `json:"author"   validate:"max=255"`
	Genre    string `json:"genre"    validate:"max=100"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

// RegisterUserRequest is the body of POST /api/users.
type RegisterUserRequest struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=32"`
}

// BorrowRequest is the body of POST /api/loans.
type BorrowRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}
