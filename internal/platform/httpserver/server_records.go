package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	recordserrors "healthpass/contexts/health-records/record-registry/domain/errors"
	recordshttp "healthpass/contexts/health-records/record-registry/transport/http"
)

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeRecordsError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	var req recordshttp.AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.AddRecordHandler(
		r.Context(),
		caller,
		r.PathValue("owner"),
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleGetRecords serves authorized reads through the access gateway, so a
// non-owner caller passes the merged allow-list/consent decision or gets 403.
func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeRecordsError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	resp, err := s.access.Handler.AuthorizedRecordsHandler(r.Context(), caller, r.PathValue("owner"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRecordsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recordserrors.ErrNotOwner):
		writeRecordsError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, recordserrors.ErrInvalidRecord):
		writeRecordsError(w, http.StatusBadRequest, "invalid_record", err.Error())
	case errors.Is(err, recordserrors.ErrIdempotencyKeyRequired):
		writeRecordsError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, recordserrors.ErrIdempotencyConflict):
		writeRecordsError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	default:
		writeRecordsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRecordsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, recordshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
