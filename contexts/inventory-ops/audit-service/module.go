package auditservice

import (
	"log/slog"

	httpadapter "stockroom/contexts/inventory-ops/audit-service/adapters/http"
	"stockroom/contexts/inventory-ops/audit-service/adapters/memory"
	"stockroom/contexts/inventory-ops/audit-service/application"
	"stockroom/contexts/inventory-ops/audit-service/ports"
)

// Module is the composition surface for the audit context. Service is
// exposed alongside Handler because the inventory orchestrator records
// events through it (wired in bootstrap).
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		IDs:    deps.IDs,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		IDs:    store,
		Logger: logger,
	})
	module.Store = store
	return module
}
