package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/shelf/internal/api/shared"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/service"
)

// LoanHandler serves the borrow and return endpoints.
type LoanHandler struct {
	loans  service.LoanService
	logger *slog.Logger
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loans service.LoanService, log *slog.Logger) *LoanHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LoanHandler{
		loans:  loans,
		logger: log.With("component", "loan_handler"),
	}
}

// Borrow handles POST /api/loans.
func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req BorrowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loan, err := h.loans.Borrow(r.Context(), req.UserID, req.BookID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("book borrowed",
			slog.Int64("transaction_id", loan.ID),
			slog.Int64("user_id", loan.UserID),
			slog.Int64("book_id", loan.BookID))
	shared.RespondWithJSON(w, r, http.StatusCreated, loan)
}

// Return handles POST /api/loans/{id}/return.
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	loan, err := h.loans.Return(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("book returned", slog.Int64("transaction_id", loan.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, loan)
}
