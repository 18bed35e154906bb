package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/phrazzld/shelf/internal/domain"
)

// Output formats understood by NewRenderer.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer writes a Result to w.
type Renderer interface {
	Render(w io.Writer, r *Result) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case FormatText:
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// TextRenderer prints confirmations as sentences and listings as aligned columns.
type TextRenderer struct{}

// dateLayout prints calendar dates the way the store keeps them.
const dateLayout = "2006-01-02"

// Render implements Renderer.
func (TextRenderer) Render(w io.Writer, r *Result) error {
	switch r.Kind {
	case KindBookAdded:
		_, err := fmt.Fprintf(w, "Book added successfully! (book id %d)\n", r.Book.ID)
		return err
	case KindUserRegistered:
		_, err := fmt.Fprintf(w, "User registered successfully! (user id %d)\n", r.User.ID)
		return err
	case KindBorrowed:
		_, err := fmt.Fprintf(w, "Book borrowed successfully! (transaction id %d)\n", r.Loan.ID)
		return err
	case KindReturned:
		_, err := fmt.Fprintf(w, "Book returned successfully with a late fee of %.2f\n", *r.Loan.LateFee)
		return err
	case KindBooks:
		return writeBooks(w, r.Books)
	case KindOpenLoans:
		return writeOpenLoans(w, r.OpenLoans)
	case KindUsage:
		return writeUsage(w, r.Message, r.Usage)
	default:
		_, err := fmt.Fprintln(w, r.Message)
		return err
	}
}

func writeBooks(w io.Writer, books []domain.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOOK ID\tTITLE\tAUTHOR\tGENRE\tQUANTITY")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", b.ID, b.Title, b.Author, b.Genre, b.Quantity)
	}
	return tw.Flush()
}

func writeOpenLoans(w io.Writer, loans []domain.OpenLoan) error {
	if len(loans) == 0 {
		_, err := fmt.Fprintln(w, "No borrowed books.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRANSACTION ID\tBOOK TITLE\tBORROW DATE\tLATE FEE")
	for _, l := range loans {
		fee := 0.0
		if l.LateFee != nil {
			fee = *l.LateFee
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", l.LoanID, l.BookTitle, l.BorrowDate.Format(dateLayout), fee)
	}
	return tw.Flush()
}

func writeUsage(w io.Writer, header string, ops []OperationInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if header != "" {
		fmt.Fprintln(tw, header)
	}
	fmt.Fprintln(tw, "Operations:")
	for _, op := range ops {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", op.Name, op.Args, op.Summary)
	}
	return tw.Flush()
}

// JSONRenderer prints one JSON object per result.
type JSONRenderer struct{}

type envelope struct {
	Kind    Kind        `json:"kind"`
	OK      bool        `json:"ok"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, r *Result) error {
	env := envelope{Kind: r.Kind, OK: r.OK, Message: r.Message}

	switch r.Kind {
	case KindBookAdded:
		env.Data = r.Book
	case KindUserRegistered:
		env.Data = r.User
	case KindBorrowed, KindReturned:
		env.Data = r.Loan
	case KindBooks:
		if r.Books == nil {
			r.Books = []domain.Book{}
		}
		env.Data = r.Books
	case KindOpenLoans:
		if r.OpenLoans == nil {
			r.OpenLoans = []domain.OpenLoan{}
		}
		env.Data = r.OpenLoans
	case KindUsage:
		env.Data = r.Usage
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(env)
}
