package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	grantserrors "healthpass/contexts/health-records/access-grants/domain/errors"
	grantshttp "healthpass/contexts/health-records/access-grants/transport/http"
)

func (s *Server) handleGrantAccess(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeGrantsError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	var req grantshttp.GrantAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGrantsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.grants.Handler.GrantAccessHandler(r.Context(), caller, r.PathValue("owner"), req)
	if err != nil {
		writeGrantsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeAccess(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeGrantsError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	var req grantshttp.GrantAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGrantsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.grants.Handler.RevokeAccessHandler(r.Context(), caller, r.PathValue("owner"), req)
	if err != nil {
		writeGrantsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckGrant(w http.ResponseWriter, r *http.Request) {
	resp, err := s.grants.Handler.CheckAccessHandler(r.Context(), r.PathValue("owner"), r.PathValue("accessor"))
	if err != nil {
		writeGrantsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAccessors(w http.ResponseWriter, r *http.Request) {
	resp, err := s.grants.Handler.ListAccessorsHandler(r.Context(), r.PathValue("owner"))
	if err != nil {
		writeGrantsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeGrantsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, grantserrors.ErrNotOwner):
		writeGrantsError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, grantserrors.ErrInvalidGrant):
		writeGrantsError(w, http.StatusBadRequest, "invalid_grant", err.Error())
	default:
		writeGrantsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGrantsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, grantshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
