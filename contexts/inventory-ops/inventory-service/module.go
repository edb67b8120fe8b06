package inventoryservice

import (
	"log/slog"

	httpadapter "stockroom/contexts/inventory-ops/inventory-service/adapters/http"
	"stockroom/contexts/inventory-ops/inventory-service/adapters/memory"
	"stockroom/contexts/inventory-ops/inventory-service/application"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

// Module is the composition surface for the inventory context.
// Runtime wiring should consume Handler; Store is exposed for tests.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Events ports.EventRecorder
	Clock  ports.Clock
	Actor  string
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Events: deps.Events,
		Clock:  deps.Clock,
		Actor:  deps.Actor,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the inventory use cases against the in-memory
// store, used by tests and the memory storage driver.
func NewInMemoryModule(events ports.EventRecorder, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Events: events,
		Clock:  store,
		Actor:  "admin",
		Logger: logger,
	})
	module.Store = store
	return module
}
