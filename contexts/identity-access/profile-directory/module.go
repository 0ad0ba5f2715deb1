package profiledirectory

import (
	"log/slog"

	httpadapter "healthpass/contexts/identity-access/profile-directory/adapters/http"
	"healthpass/contexts/identity-access/profile-directory/adapters/memory"
	"healthpass/contexts/identity-access/profile-directory/application"
	"healthpass/contexts/identity-access/profile-directory/ports"
)

// Module is the profile-directory composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Commits    ports.CommitLog
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Commits: deps.Commits,
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

// NewInMemoryModule builds a development/testing module with an in-memory
// repository. The commit log is shared process-wide, so the caller supplies
// it.
func NewInMemoryModule(commits ports.CommitLog, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Commits:    commits,
		Logger:     logger,
	})
	module.Store = store
	return module
}
