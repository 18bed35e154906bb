package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/phrazzld/shelf/internal/api/middleware"
	"github.com/phrazzld/shelf/internal/service"
)

// Services groups the application services the router exposes.
type Services struct {
	Catalog    service.CatalogService
	Membership service.MembershipService
	Loans      service.LoanService
}

// NewRouter builds the HTTP handler for the library API.
func NewRouter(svc Services, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	books := NewBookHandler(svc.Catalog, logger)
	users := NewUserHandler(svc.Membership, svc.Loans, logger)
	loans := NewLoanHandler(svc.Loans, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.NewTraceMiddleware(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Post("/", books.AddBook)
			r.Get("/", books.Search)
			r.Get("/available", books.ListAvailable)
			r.Get("/{id}", books.GetBook)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.Register)
			r.Get("/{id}", users.GetUser)
			r.Get("/{id}/loans", users.ListOpenLoans)
		})
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", loans.Borrow)
			r.Post("/{id}/return", loans.Return)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
