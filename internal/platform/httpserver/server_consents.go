package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	consenterrors "healthpass/contexts/health-records/consent-manager/domain/errors"
	consenthttp "healthpass/contexts/health-records/consent-manager/transport/http"
)

func (s *Server) handleGiveConsent(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeConsentError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	var req consenthttp.GiveConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeConsentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.consents.Handler.GiveConsentHandler(r.Context(), caller, r.PathValue("owner"), req)
	if err != nil {
		writeConsentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeConsent(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeConsentError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	var req consenthttp.RevokeConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeConsentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.consents.Handler.RevokeConsentHandler(r.Context(), caller, r.PathValue("owner"), req)
	if err != nil {
		writeConsentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckConsent(w http.ResponseWriter, r *http.Request) {
	recordType := r.URL.Query().Get("record_type")
	if recordType == "" {
		recordType = "*"
	}
	resp, err := s.consents.Handler.CheckConsentHandler(
		r.Context(),
		r.PathValue("owner"),
		r.PathValue("accessor"),
		recordType,
	)
	if err != nil {
		writeConsentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeConsentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, consenterrors.ErrNotOwner):
		writeConsentError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, consenterrors.ErrInvalidConsent):
		writeConsentError(w, http.StatusBadRequest, "invalid_consent", err.Error())
	default:
		writeConsentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeConsentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, consenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
