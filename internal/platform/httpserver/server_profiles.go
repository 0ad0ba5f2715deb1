package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	profileerrors "healthpass/contexts/identity-access/profile-directory/domain/errors"
	profilehttp "healthpass/contexts/identity-access/profile-directory/transport/http"
)

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	caller := callerPrincipal(r)
	if caller == "" {
		writeProfileError(w, http.StatusUnauthorized, "missing_principal", "X-Principal-Id header is required")
		return
	}

	var req profilehttp.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.profiles.Handler.UpsertProfileHandler(r.Context(), caller, r.PathValue("principal"), req)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := s.profiles.Handler.GetProfileHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeProfileDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profileerrors.ErrNotOwner):
		writeProfileError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, profileerrors.ErrInvalidProfile):
		writeProfileError(w, http.StatusBadRequest, "invalid_profile", err.Error())
	case errors.Is(err, profileerrors.ErrProfileNotFound):
		writeProfileError(w, http.StatusNotFound, "profile_not_found", err.Error())
	default:
		writeProfileError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeProfileError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, profilehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
