package httpserver

import (
	"errors"
	"net/http"

	accesserrors "healthpass/contexts/health-records/access-gateway/domain/errors"
	accesshttp "healthpass/contexts/health-records/access-gateway/transport/http"
)

func (s *Server) handleCheckAuthorization(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.access.Handler.CheckAuthorizationHandler(
		r.Context(),
		r.PathValue("owner"),
		query.Get("accessor"),
		query.Get("record_type"),
	)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEmergencyAccess is the break-glass route. It authenticates the caller
// but performs no authorization at all; denial can only come from the audit
// log being unavailable.
func (s *Server) handleEmergencyAccess(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	resp, err := s.access.Handler.EmergencyAccessHandler(r.Context(), caller, r.PathValue("subject"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.AuditTrailHandler(r.Context(), r.PathValue("subject"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrUnauthorized):
		writeAccessError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, accesserrors.ErrAuditUnavailable):
		writeAccessError(w, http.StatusServiceUnavailable, "audit_unavailable", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidRequest):
		writeAccessError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
