package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	auditservice "stockroom/contexts/inventory-ops/audit-service"
	auditmongo "stockroom/contexts/inventory-ops/audit-service/adapters/mongo"
	auditpostgres "stockroom/contexts/inventory-ops/audit-service/adapters/postgres"
	auditports "stockroom/contexts/inventory-ops/audit-service/ports"
	inventoryservice "stockroom/contexts/inventory-ops/inventory-service"
	"stockroom/contexts/inventory-ops/inventory-service/adapters/async"
	inventorymongo "stockroom/contexts/inventory-ops/inventory-service/adapters/mongo"
	inventorypostgres "stockroom/contexts/inventory-ops/inventory-service/adapters/postgres"
	inventoryports "stockroom/contexts/inventory-ops/inventory-service/ports"
	"stockroom/internal/platform/config"
	"stockroom/internal/platform/db"
	"stockroom/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server     *httpserver.Server
	postgres   *db.Postgres
	mongo      *db.Mongo
	asyncAudit *async.Recorder
	logger     *slog.Logger
}

// auditRecorder bridges inventory mutations into the audit context. The
// inventory service only sees its own EventRecorder port, so the two
// contexts stay decoupled everywhere outside this composition root.
type auditRecorder struct {
	audit auditservice.Module
}

func (r auditRecorder) Record(ctx context.Context, entry inventoryports.EventEntry) error {
	_, err := r.audit.Service.Append(ctx, auditports.EventLog{
		EventType:   entry.EventType,
		Timestamp:   entry.Timestamp,
		User:        entry.User,
		ProductID:   entry.ProductID,
		Data:        entry.Data,
		Description: entry.Description,
	})
	return err
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	app := &APIApp{logger: logger}

	var auditModule auditservice.Module
	var inventoryModule inventoryservice.Module

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("POSTGRES_DSN is required for the postgres storage driver")
		}
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.postgres = pg

		if err := inventorypostgres.AutoMigrate(pg.DB); err != nil {
			return nil, err
		}
		if err := auditpostgres.AutoMigrate(pg.DB); err != nil {
			return nil, err
		}

		auditModule = auditservice.NewModule(auditservice.Dependencies{
			Repo:   auditpostgres.NewRepository(pg.DB, logger),
			IDs:    auditpostgres.UUIDGenerator{},
			Logger: logger,
		})
		inventoryModule = inventoryservice.NewModule(inventoryservice.Dependencies{
			Repo:   inventorypostgres.NewRepository(pg.DB, logger),
			Events: app.recorder(cfg, auditModule, logger),
			Clock:  inventorypostgres.SystemClock{},
			Actor:  "admin",
			Logger: logger,
		})

	case config.DriverMongo:
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return nil, errors.New("MONGO_URI is required for the mongo storage driver")
		}
		mg, err := db.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		app.mongo = mg

		inventoryRepo := inventorymongo.NewRepository(mg.Database, logger)
		if err := inventoryRepo.EnsureIndexes(context.Background()); err != nil {
			return nil, err
		}

		// The mongo event log assigns ObjectId identifiers on insert, so
		// no IDGenerator is wired here.
		auditModule = auditservice.NewModule(auditservice.Dependencies{
			Repo:   auditmongo.NewRepository(mg.Database, logger),
			Logger: logger,
		})
		inventoryModule = inventoryservice.NewModule(inventoryservice.Dependencies{
			Repo:   inventoryRepo,
			Events: app.recorder(cfg, auditModule, logger),
			Clock:  inventorymongo.SystemClock{},
			Actor:  "admin",
			Logger: logger,
		})

	default:
		auditModule = auditservice.NewInMemoryModule(logger)
		inventoryModule = inventoryservice.NewInMemoryModule(app.recorder(cfg, auditModule, logger), logger)
	}

	app.server = httpserver.New(inventoryModule, auditModule, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

func (a *APIApp) recorder(cfg config.Config, audit auditservice.Module, logger *slog.Logger) inventoryports.EventRecorder {
	recorder := auditRecorder{audit: audit}
	if !cfg.AuditAsync {
		return recorder
	}
	a.asyncAudit = async.NewRecorder(recorder, cfg.AuditQueueSize, logger)
	return a.asyncAudit
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
	// Drain pending audit entries before the stores go away.
	if a.asyncAudit != nil {
		a.asyncAudit.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	if a.mongo != nil {
		return a.mongo.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":5000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
