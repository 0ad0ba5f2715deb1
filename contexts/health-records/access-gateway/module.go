package accessgateway

import (
	"log/slog"

	eventsadapter "healthpass/contexts/health-records/access-gateway/adapters/events"
	httpadapter "healthpass/contexts/health-records/access-gateway/adapters/http"
	"healthpass/contexts/health-records/access-gateway/adapters/memory"
	postgresadapter "healthpass/contexts/health-records/access-gateway/adapters/postgres"
	"healthpass/contexts/health-records/access-gateway/application/commands"
	"healthpass/contexts/health-records/access-gateway/application/queries"
	"healthpass/contexts/health-records/access-gateway/application/workers"
	"healthpass/contexts/health-records/access-gateway/ports"
)

// Module is the access-gateway composition root exposed to runtime wiring.
type Module struct {
	Handler       httpadapter.Handler
	Authorization queries.AuthorizationQuery
	Records       queries.AuthorizedRecordsQuery
	Emergency     commands.EmergencyAccessUseCase
	AuditTrail    queries.AuditTrailQuery
	AuditRelay    workers.AuditRelay
	Store         *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
// Records, ACL and Consent are read ports served by sibling modules; the
// runtime supplies glue adapters over their composition roots.
type Dependencies struct {
	Records     ports.RecordSource
	ACL         ports.StandingAccessChecker
	Consent     ports.ConsentChecker
	Audit       ports.AuditLog
	Outbox      ports.OutboxRepository
	Publisher   ports.EventPublisher
	Commits     ports.CommitLog
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	authorization := queries.AuthorizationQuery{
		ACL:     deps.ACL,
		Consent: deps.Consent,
		Logger:  deps.Logger,
	}
	records := queries.AuthorizedRecordsQuery{
		Records:       deps.Records,
		Authorization: authorization,
		Logger:        deps.Logger,
	}
	emergency := commands.EmergencyAccessUseCase{
		Records:     deps.Records,
		Audit:       deps.Audit,
		Commits:     deps.Commits,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	auditTrail := queries.AuditTrailQuery{Audit: deps.Audit}

	return Module{
		Handler: httpadapter.Handler{
			Authorization: authorization,
			Records:       records,
			AuditTrail:    auditTrail,
			Emergency:     emergency,
			Logger:        deps.Logger,
		},
		Authorization: authorization,
		Records:       records,
		Emergency:     emergency,
		AuditTrail:    auditTrail,
		AuditRelay: workers.AuditRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: 100,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with an in-memory
// audit log and a log-only event publisher. The commit log and the sibling
// read ports are shared process-wide, so the caller supplies them.
func NewInMemoryModule(
	records ports.RecordSource,
	acl ports.StandingAccessChecker,
	consent ports.ConsentChecker,
	commits ports.CommitLog,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Records:     records,
		ACL:         acl,
		Consent:     consent,
		Audit:       store,
		Outbox:      store,
		Publisher:   eventsadapter.NewPublisher(logger),
		Commits:     commits,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})
	module.Store = store
	return module
}
