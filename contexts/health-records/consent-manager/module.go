package consentmanager

import (
	"log/slog"

	httpadapter "healthpass/contexts/health-records/consent-manager/adapters/http"
	"healthpass/contexts/health-records/consent-manager/adapters/memory"
	postgresadapter "healthpass/contexts/health-records/consent-manager/adapters/postgres"
	"healthpass/contexts/health-records/consent-manager/application"
	"healthpass/contexts/health-records/consent-manager/ports"
)

// Module is the consent-manager composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Commits    ports.CommitLog
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Commits: deps.Commits,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
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
		Repository: store,
		Commits:    commits,
		Clock:      postgresadapter.SystemClock{},
		Logger:     logger,
	})
	module.Store = store
	return module
}
