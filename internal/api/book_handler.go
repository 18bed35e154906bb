package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/shelf/internal/api/shared"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/service"
)

// BookHandler serves the catalog endpoints.
type BookHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(catalog service.CatalogService, log *slog.Logger) *BookHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BookHandler{
		catalog: catalog,
		logger:  log.With("component", "book_handler"),
	}
}

// AddBook handles POST /api/books.
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req AddBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.catalog.AddBook(r.Context(), req.Title, req.Author, req.Genre, *req.Quantity)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("book added", slog.Int64("book_id", book.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, book)
}

// Search handles GET /api/books?q=. An empty query lists every book.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, books)
}

// ListAvailable handles GET /api/books/available.
func (h *BookHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.ListAvailable(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, books)
}

// GetBook handles GET /api/books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}
