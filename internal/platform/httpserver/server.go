package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	accessgateway "healthpass/contexts/health-records/access-gateway"
	accessgrants "healthpass/contexts/health-records/access-grants"
	consentmanager "healthpass/contexts/health-records/consent-manager"
	recordregistry "healthpass/contexts/health-records/record-registry"
	profiledirectory "healthpass/contexts/identity-access/profile-directory"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "healthpass/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	records  recordregistry.Module
	grants   accessgrants.Module
	consents consentmanager.Module
	access   accessgateway.Module
	profiles profiledirectory.Module
}

func New(
	records recordregistry.Module,
	grants accessgrants.Module,
	consents consentmanager.Module,
	access accessgateway.Module,
	profiles profiledirectory.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		records:  records,
		grants:   grants,
		consents: consents,
		access:   access,
		profiles: profiles,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/records/v1/owners/{owner}/records", s.handleAddRecord)
	s.mux.HandleFunc("GET /api/records/v1/owners/{owner}/records", s.handleGetRecords)

	s.mux.HandleFunc("POST /api/grants/v1/owners/{owner}/grant", s.handleGrantAccess)
	s.mux.HandleFunc("POST /api/grants/v1/owners/{owner}/revoke", s.handleRevokeAccess)
	s.mux.HandleFunc("GET /api/grants/v1/owners/{owner}/accessors/{accessor}", s.handleCheckGrant)
	s.mux.HandleFunc("GET /api/grants/v1/owners/{owner}/accessors", s.handleListAccessors)

	s.mux.HandleFunc("POST /api/consents/v1/owners/{owner}/consents", s.handleGiveConsent)
	s.mux.HandleFunc("POST /api/consents/v1/owners/{owner}/consents/revoke", s.handleRevokeConsent)
	s.mux.HandleFunc("GET /api/consents/v1/owners/{owner}/accessors/{accessor}", s.handleCheckConsent)

	s.mux.HandleFunc("GET /api/access/v1/owners/{owner}/check", s.handleCheckAuthorization)
	s.mux.HandleFunc("POST /api/access/v1/subjects/{subject}/emergency", s.handleEmergencyAccess)
	s.mux.HandleFunc("GET /api/access/v1/subjects/{subject}/audit", s.handleAuditTrail)

	s.mux.HandleFunc("PUT /api/profiles/v1/{principal}", s.handleUpsertProfile)
	s.mux.HandleFunc("GET /api/profiles/v1/{principal}", s.handleGetProfile)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// callerPrincipal resolves the authenticated principal attached upstream.
// Requests arrive here only after gateway authentication has stamped the
// header, so a blank value means an unauthenticated caller.
func callerPrincipal(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Principal-Id"))
}
