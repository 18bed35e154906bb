// Package console is the librarian's front end: a dispatcher that runs named
// operations (add-book, search, borrow, ...) against the services, a REPL that
// reads them line by line, and renderers that print results as aligned text
// or JSON lines.
//
// Expected outcomes such as "Book not available." are printed and are not
// errors. A data-access failure is logged in full, printed as one redacted
// line, and returned so a one-shot invocation can exit non-zero; the REPL
// carries on.
package console
