package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/shelf/internal/api/shared"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/service"
)

// UserHandler serves the membership endpoints and a member's open loans.
type UserHandler struct {
	members service.MembershipService
	loans   service.LoanService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(members service.MembershipService, loans service.LoanService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		members: members,
		loans:   loans,
		logger:  log.With("component", "user_handler"),
	}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.members.Register(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("user registered", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// GetUser handles GET /api/users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.members.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListOpenLoans handles GET /api/users/{id}/loans. An unknown user is a 404
// rather than an empty list.
func (h *UserHandler) ListOpenLoans(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if _, err := h.members.GetUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	loans, err := h.loans.ListOpenLoans(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, loans)
}
