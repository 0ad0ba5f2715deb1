package recordregistry

import (
	"log/slog"
	"time"

	httpadapter "healthpass/contexts/health-records/record-registry/adapters/http"
	"healthpass/contexts/health-records/record-registry/adapters/memory"
	postgresadapter "healthpass/contexts/health-records/record-registry/adapters/postgres"
	"healthpass/contexts/health-records/record-registry/application"
	"healthpass/contexts/health-records/record-registry/ports"
)

// Module is the record-registry composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository     ports.Repository
	Idempotency    ports.IdempotencyStore
	Commits        ports.CommitLog
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:           deps.Repository,
		Idempotency:    deps.Idempotency,
		Commits:        deps.Commits,
		IDGenerator:    deps.IDGenerator,
		Clock:          deps.Clock,
		Logger:         deps.Logger,
		IdempotencyTTL: deps.IdempotencyTTL,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The commit log is shared process-wide, so the caller supplies it.
func NewInMemoryModule(commits ports.CommitLog, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:     store,
		Idempotency:    store,
		Commits:        commits,
		Clock:          postgresadapter.SystemClock{},
		IDGenerator:    postgresadapter.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
