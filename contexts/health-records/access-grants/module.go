package accessgrants

import (
	"log/slog"

	eventsadapter "healthpass/contexts/health-records/access-grants/adapters/events"
	httpadapter "healthpass/contexts/health-records/access-grants/adapters/http"
	"healthpass/contexts/health-records/access-grants/adapters/memory"
	postgresadapter "healthpass/contexts/health-records/access-grants/adapters/postgres"
	"healthpass/contexts/health-records/access-grants/application/commands"
	"healthpass/contexts/health-records/access-grants/application/queries"
	"healthpass/contexts/health-records/access-grants/application/workers"
	"healthpass/contexts/health-records/access-grants/ports"
)

// Module is the access-grants composition root exposed to runtime wiring.
type Module struct {
	Handler     httpadapter.Handler
	CheckAccess queries.CheckAccessUseCase
	OutboxRelay workers.OutboxRelay
	Projection  workers.GrantsProjectionConsumer
	Store       *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Outbox      ports.OutboxRepository
	Projection  ports.GrantsProjection
	Publisher   ports.EventPublisher
	Subscriber  ports.EventSubscriber
	Commits     ports.CommitLog
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	grantAccess := commands.GrantAccessUseCase{
		Repository:  deps.Repository,
		Commits:     deps.Commits,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	revokeAccess := commands.RevokeAccessUseCase{
		Repository:  deps.Repository,
		Commits:     deps.Commits,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	checkAccess := queries.CheckAccessUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listAccessors := queries.ListAccessorsUseCase{
		Projection: deps.Projection,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			GrantAccess:   grantAccess,
			RevokeAccess:  revokeAccess,
			CheckAccess:   checkAccess,
			ListAccessors: listAccessors,
			Logger:        deps.Logger,
		},
		CheckAccess: checkAccess,
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: 100,
			Logger:    deps.Logger,
		},
		Projection: workers.GrantsProjectionConsumer{
			Subscriber: deps.Subscriber,
			Projection: deps.Projection,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and a log-only event publisher. The commit log is shared
// process-wide, so the caller supplies it.
func NewInMemoryModule(commits ports.CommitLog, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Outbox:      store,
		Projection:  store,
		Publisher:   eventsadapter.NewPublisher(logger),
		Commits:     commits,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})
	module.Store = store
	return module
}
