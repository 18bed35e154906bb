package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/redact"
	"github.com/phrazzld/shelf/internal/service"
)

var (
	// ErrQuit is returned by Dispatch for the quit operation.
	ErrQuit = errors.New("quit")

	// ErrUsage is returned by Dispatch for an unknown operation or bad arguments.
	ErrUsage = errors.New("usage error")
)

type operation struct {
	info    OperationInfo
	minArgs int
	maxArgs int // -1 for no limit
	run     func(ctx context.Context, args []string) (*Result, error)
}

// Dispatcher runs named operations against the services and renders their results.
type Dispatcher struct {
	catalog  service.CatalogService
	members  service.MembershipService
	loans    service.LoanService
	renderer Renderer
	out      io.Writer
	logger   *slog.Logger

	ops   map[string]*operation
	order []string
}

// NewDispatcher creates a Dispatcher writing to out.
// It returns an error if any service, the renderer or out is nil.
func NewDispatcher(
	catalog service.CatalogService,
	members service.MembershipService,
	loans service.LoanService,
	renderer Renderer,
	out io.Writer,
	log *slog.Logger,
) (*Dispatcher, error) {
	if catalog == nil || members == nil || loans == nil {
		return nil, errors.New("console: services cannot be nil")
	}
	if renderer == nil || out == nil {
		return nil, errors.New("console: renderer and output cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		catalog:  catalog,
		members:  members,
		loans:    loans,
		renderer: renderer,
		out:      out,
		logger:   log.With("component", "console"),
		ops:      make(map[string]*operation),
	}
	d.register()
	return d, nil
}

func (d *Dispatcher) register() {
	d.add(&operation{
		info:    OperationInfo{Name: "add-book", Args: "<title> <author> <genre> <quantity>", Summary: "add copies of a title to the catalog"},
		minArgs: 4,
		maxArgs: 4,
		run:     d.addBook,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "search", Args: "<query>", Summary: "find books by title, author or genre"},
		minArgs: 0,
		maxArgs: -1,
		run:     d.search,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "available", Args: "", Summary: "list books with copies on the shelf"},
		minArgs: 0,
		maxArgs: 0,
		run:     d.available,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "borrow", Args: "<user-id> <book-id>", Summary: "lend a copy of a book"},
		minArgs: 2,
		maxArgs: 2,
		run:     d.borrow,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "return", Args: "<transaction-id>", Summary: "take a book back and charge any late fee"},
		minArgs: 1,
		maxArgs: 1,
		run:     d.returnBook,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "loans", Args: "<user-id>", Summary: "list a member's borrowed books"},
		minArgs: 1,
		maxArgs: 1,
		run:     d.openLoans,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "register", Args: "<name> <email> [phone]", Summary: "register a library member"},
		minArgs: 2,
		maxArgs: 3,
		run:     d.registerUser,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "help", Args: "", Summary: "show this list"},
		minArgs: 0,
		maxArgs: -1,
		run:     d.help,
	})
	d.add(&operation{
		info:    OperationInfo{Name: "quit", Args: "", Summary: "leave the console"},
		minArgs: 0,
		maxArgs: -1,
		run:     d.quit,
	})
}

func (d *Dispatcher) add(op *operation) {
	d.ops[op.info.Name] = op
	d.order = append(d.order, op.info.Name)
}

// Operations lists the operations in help order.
func (d *Dispatcher) Operations() []OperationInfo {
	infos := make([]OperationInfo, 0, len(d.order))
	for _, name := range d.order {
		infos = append(infos, d.ops[name].info)
	}
	return infos
}

// Dispatch runs the operation called name with args and renders the result.
//
// It returns nil when the operation ran, including refused outcomes such as an
// unavailable book; ErrQuit for quit; an error wrapping ErrUsage for an
// unknown name or bad arguments; and the service error for a failure.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []string) error {
	op, ok := d.ops[name]
	if !ok {
		d.render(ctx, d.usage(fmt.Sprintf("Unknown operation %q.", name)))
		return fmt.Errorf("%w: unknown operation %q", ErrUsage, name)
	}
	if len(args) < op.minArgs || (op.maxArgs >= 0 && len(args) > op.maxArgs) {
		d.render(ctx, notice("usage: "+usageLine(op.info)))
		return fmt.Errorf("%w: %s takes %s", ErrUsage, name, op.info.Args)
	}

	log := logger.FromContextOrDefault(ctx, d.logger).With(
		"operation", name,
		"operation_id", uuid.NewString(),
	)
	ctx = logger.WithLogger(ctx, log)

	res, err := op.run(ctx, args)
	switch {
	case err == nil:
		d.render(ctx, res)
		return nil
	case errors.Is(err, ErrQuit):
		return err
	case errors.Is(err, ErrUsage):
		d.render(ctx, notice(fmt.Sprintf("%s. usage: %s", strings.TrimPrefix(err.Error(), ErrUsage.Error()+": "), usageLine(op.info))))
		return err
	}

	if res, ok := outcome(err); ok {
		d.render(ctx, res)
		return nil
	}

	log.Error("operation failed", "error", err, "args", len(args))
	d.render(ctx, &Result{Kind: KindError, Message: "Error: " + redact.Error(err)})
	return err
}

// Line tokenizes and dispatches one input line. Blank lines do nothing.
func (d *Dispatcher) Line(ctx context.Context, line string) error {
	tokens, err := Tokenize(line)
	if err != nil {
		d.render(ctx, notice("Could not read line: "+err.Error()+"."))
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(tokens) == 0 {
		return nil
	}
	return d.Dispatch(ctx, strings.ToLower(tokens[0]), tokens[1:])
}

func (d *Dispatcher) render(ctx context.Context, r *Result) {
	if err := d.renderer.Render(d.out, r); err != nil {
		logger.FromContextOrDefault(ctx, d.logger).Warn("failed to write output", "error", err)
	}
}

func (d *Dispatcher) usage(header string) *Result {
	return &Result{Kind: KindUsage, OK: header == "", Message: header, Usage: d.Operations()}
}

func usageLine(info OperationInfo) string {
	if info.Args == "" {
		return info.Name
	}
	return info.Name + " " + info.Args
}

// outcome turns an expected service error into the message shown for it.
func outcome(err error) (*Result, bool) {
	switch {
	case errors.Is(err, service.ErrUnavailable):
		return notice("Book not available."), true
	case errors.Is(err, service.ErrLoanNotFound):
		return notice("Transaction not found."), true
	case errors.Is(err, service.ErrAlreadyReturned):
		return notice("Book already returned."), true
	case errors.Is(err, service.ErrBookNotFound):
		return notice("Book not found."), true
	case errors.Is(err, service.ErrUserNotFound):
		return notice("User not found."), true
	case errors.Is(err, service.ErrInvalidInput):
		msg := err.Error()
		return notice(strings.ToUpper(msg[:1]) + msg[1:] + "."), true
	}
	return nil, false
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrUsage, name)
	}
	return id, nil
}

func (d *Dispatcher) help(context.Context, []string) (*Result, error) {
	return d.usage(""), nil
}

func (d *Dispatcher) quit(context.Context, []string) (*Result, error) {
	return nil, ErrQuit
}

func (d *Dispatcher) addBook(ctx context.Context, args []string) (*Result, error) {
	quantity, err := strconv.Atoi(args[3])
	if err != nil {
		return nil, fmt.Errorf("%w: quantity must be a whole number", ErrUsage)
	}
	book, err := d.catalog.AddBook(ctx, args[0], args[1], args[2], quantity)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindBookAdded, OK: true, Book: book}, nil
}

func (d *Dispatcher) search(ctx context.Context, args []string) (*Result, error) {
	books, err := d.catalog.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindBooks, OK: true, Books: books}, nil
}

func (d *Dispatcher) available(ctx context.Context, _ []string) (*Result, error) {
	books, err := d.catalog.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindBooks, OK: true, Books: books}, nil
}

func (d *Dispatcher) borrow(ctx context.Context, args []string) (*Result, error) {
	userID, err := parseID("user id", args[0])
	if err != nil {
		return nil, err
	}
	bookID, err := parseID("book id", args[1])
	if err != nil {
		return nil, err
	}
	loan, err := d.loans.Borrow(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindBorrowed, OK: true, Loan: loan}, nil
}

func (d *Dispatcher) returnBook(ctx context.Context, args []string) (*Result, error) {
	loanID, err := parseID("transaction id", args[0])
	if err != nil {
		return nil, err
	}
	loan, err := d.loans.Return(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindReturned, OK: true, Loan: loan}, nil
}

func (d *Dispatcher) openLoans(ctx context.Context, args []string) (*Result, error) {
	userID, err := parseID("user id", args[0])
	if err != nil {
		return nil, err
	}
	loans, err := d.loans.ListOpenLoans(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindOpenLoans, OK: true, OpenLoans: loans}, nil
}

func (d *Dispatcher) registerUser(ctx context.Context, args []string) (*Result, error) {
	phone := ""
	if len(args) == 3 {
		phone = args[2]
	}
	user, err := d.members.Register(ctx, args[0], args[1], phone)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindUserRegistered, OK: true, User: user}, nil
}
