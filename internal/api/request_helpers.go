package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/shelf/internal/api/shared"
)

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", errBadPath, paramName)
	}
	return id, nil
}

// decodeAndValidate reads the JSON body into req and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}
