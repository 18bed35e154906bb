package console

import "github.com/phrazzld/shelf/internal/domain"

// Kind tells a renderer which fields of a Result are set.
type Kind string

// Result kinds.
const (
	KindBookAdded      Kind = "book_added"
	KindBooks          Kind = "books"
	KindUserRegistered Kind = "user_registered"
	KindBorrowed       Kind = "borrowed"
	KindReturned       Kind = "returned"
	KindOpenLoans      Kind = "open_loans"
	KindNotice         Kind = "notice"
	KindUsage          Kind = "usage"
	KindError          Kind = "error"
)

// OperationInfo describes one operation for help output.
type OperationInfo struct {
	Name    string `json:"name"`
	Args    string `json:"args"`
	Summary string `json:"summary"`
}

// Result is the outcome of one dispatched operation.
type Result struct {
	Kind Kind
	// OK is false for refused operations, usage problems and failures.
	OK      bool
	Message string

	Book      *domain.Book
	Books     []domain.Book
	User      *domain.User
	Loan      *domain.Loan
	OpenLoans []domain.OpenLoan
	Usage     []OperationInfo
}

func notice(msg string) *Result {
	return &Result{Kind: KindNotice, Message: msg}
}
