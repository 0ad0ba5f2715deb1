package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	accessgateway "healthpass/contexts/health-records/access-gateway"
	gatewaypg "healthpass/contexts/health-records/access-gateway/adapters/postgres"
	gatewayworkers "healthpass/contexts/health-records/access-gateway/application/workers"
	accessgrants "healthpass/contexts/health-records/access-grants"
	grantspg "healthpass/contexts/health-records/access-grants/adapters/postgres"
	grantsworkers "healthpass/contexts/health-records/access-grants/application/workers"
	consentmanager "healthpass/contexts/health-records/consent-manager"
	consentpg "healthpass/contexts/health-records/consent-manager/adapters/postgres"
	recordregistry "healthpass/contexts/health-records/record-registry"
	recordspg "healthpass/contexts/health-records/record-registry/adapters/postgres"
	profiledirectory "healthpass/contexts/identity-access/profile-directory"
	profilepg "healthpass/contexts/identity-access/profile-directory/adapters/postgres"
	"healthpass/internal/platform/commitlog"
	"healthpass/internal/platform/config"
	"healthpass/internal/platform/db"
	"healthpass/internal/platform/httpserver"
	"healthpass/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres         *db.Postgres
	grantsRelay      grantsworkers.OutboxRelay
	grantsProjection grantsworkers.GrantsProjectionConsumer
	auditRelay       gatewayworkers.AuditRelay
	enableGrants     bool
	enableProjection bool
	enableAudit      bool
	pollInterval     time.Duration
	logger           *slog.Logger
}

// Modules groups the in-memory composition used by local runs and the
// end-to-end unit tests.
type Modules struct {
	Records  recordregistry.Module
	Grants   accessgrants.Module
	Consents consentmanager.Module
	Access   accessgateway.Module
	Profiles profiledirectory.Module
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	commits := commitlog.NewPostgres(pg.DB)

	recordsRepo := recordspg.NewRepository(pg.DB, logger)
	records := recordregistry.NewModule(recordregistry.Dependencies{
		Repository:     recordsRepo,
		Idempotency:    recordsRepo,
		Commits:        commits,
		Clock:          recordspg.SystemClock{},
		IDGenerator:    recordspg.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})

	grantsRepo := grantspg.NewRepository(pg.DB, logger)
	grants := accessgrants.NewModule(accessgrants.Dependencies{
		Repository:  grantsRepo,
		Outbox:      grantsRepo,
		Projection:  grantsRepo,
		Publisher:   nil,
		Subscriber:  nil,
		Commits:     commits,
		Clock:       grantspg.SystemClock{},
		IDGenerator: grantspg.UUIDGenerator{},
		Logger:      logger,
	})

	consentsRepo := consentpg.NewRepository(pg.DB, logger)
	consents := consentmanager.NewModule(consentmanager.Dependencies{
		Repository: consentsRepo,
		Commits:    commits,
		Clock:      consentpg.SystemClock{},
		Logger:     logger,
	})

	gatewayRepo := gatewaypg.NewRepository(pg.DB, logger)
	access := accessgateway.NewModule(accessgateway.Dependencies{
		Records:     recordSourceAdapter{repo: recordsRepo},
		ACL:         standingAccessAdapter{check: grants.CheckAccess},
		Consent:     consents.Service,
		Audit:       gatewayRepo,
		Outbox:      gatewayRepo,
		Publisher:   nil,
		Commits:     commits,
		Clock:       gatewaypg.SystemClock{},
		IDGenerator: gatewaypg.UUIDGenerator{},
		Logger:      logger,
	})

	profilesRepo := profilepg.NewRepository(pg.DB, logger)
	profiles := profiledirectory.NewModule(profiledirectory.Dependencies{
		Repository: profilesRepo,
		Commits:    commits,
		Logger:     logger,
	})

	server := httpserver.New(records, grants, consents, access, profiles, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	grantsRepo := grantspg.NewRepository(pg.DB, logger)
	gatewayRepo := gatewaypg.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		grantsRelay: grantsworkers.OutboxRelay{
			Outbox:    grantsRepo,
			Publisher: kafka,
			Clock:     grantspg.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		grantsProjection: grantsworkers.GrantsProjectionConsumer{
			Subscriber: kafka,
			Projection: grantsRepo,
			Logger:     logger,
		},
		auditRelay: gatewayworkers.AuditRelay{
			Outbox:    gatewayRepo,
			Publisher: kafka,
			Clock:     gatewaypg.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		enableGrants:     cfg.EnableGrantsRelay,
		enableProjection: cfg.EnableGrantsProjection,
		enableAudit:      cfg.EnableAuditRelay,
		pollInterval:     2 * time.Second,
		logger:           logger,
	}, nil
}

// BuildInMemory wires every module over in-memory stores and a shared
// in-process commit log. Used by local development and black-box tests.
func BuildInMemory(logger *slog.Logger) Modules {
	if logger == nil {
		logger = slog.Default()
	}
	commits := commitlog.NewMemory()

	records := recordregistry.NewInMemoryModule(commits, logger)
	grants := accessgrants.NewInMemoryModule(commits, logger)
	consents := consentmanager.NewInMemoryModule(commits, logger)
	access := accessgateway.NewInMemoryModule(
		recordSourceAdapter{repo: records.Store},
		standingAccessAdapter{check: grants.CheckAccess},
		consents.Service,
		commits,
		logger,
	)
	profiles := profiledirectory.NewInMemoryModule(commits, logger)

	return Modules{
		Records:  records,
		Grants:   grants,
		Consents: consents,
		Access:   access,
		Profiles: profiles,
	}
}

// NewInMemoryServer is the single-process composition used by HTTP-level
// tests and local development without Postgres.
func NewInMemoryServer(logger *slog.Logger, addr string) *httpserver.Server {
	modules := BuildInMemory(logger)
	return httpserver.New(
		modules.Records,
		modules.Grants,
		modules.Consents,
		modules.Access,
		modules.Profiles,
		logger,
		addr,
	)
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.enableProjection {
		if err := w.grantsProjection.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.enableGrants {
			if err := w.grantsRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableAudit {
			if err := w.auditRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
