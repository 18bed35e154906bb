package domain

import "time"

// Loan records one copy of a book lent to a user. A loan is open until it is
// returned; ReturnDate and LateFee are either both nil or both set.
type Loan struct {
	ID         int64      `json:"transaction_id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
	LateFee    *float64   `json:"late_fee"`
}

// NewLoan creates an open Loan that has not been stored yet.
func NewLoan(userID, bookID int64, borrowDate time.Time) (*Loan, error) {
	loan := &Loan{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: DateOf(borrowDate),
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	return loan, nil
}

// Validate checks if the Loan has valid data.
func (l *Loan) Validate() error {
	if l.UserID <= 0 || l.BookID <= 0 {
		return ErrInvalidID
	}
	if l.BorrowDate.IsZero() {
		return newValidationError("borrow date cannot be empty")
	}
	if (l.ReturnDate == nil) != (l.LateFee == nil) {
		return newValidationError("return date and late fee must be set together")
	}
	if l.LateFee != nil && *l.LateFee < 0 {
		return newValidationError("late fee cannot be negative")
	}
	return nil
}

// IsOpen reports whether the loan has not been returned yet.
func (l *Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// MarkReturned closes the loan on returnDate with the given fee.
func (l *Loan) MarkReturned(returnDate time.Time, fee float64) error {
	if !l.IsOpen() {
		return ErrLoanClosed
	}
	date := DateOf(returnDate)
	l.ReturnDate = &date
	l.LateFee = &fee
	return nil
}

// OpenLoan is the read model shown when listing a user's borrowed books.
type OpenLoan struct {
	LoanID     int64     `json:"transaction_id"`
	BookTitle  string    `json:"title"`
	BorrowDate time.Time `json:"borrow_date"`
	LateFee    *float64  `json:"late_fee"`
}
