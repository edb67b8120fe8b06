package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "stockroom/contexts/inventory-ops/audit-service/domain/errors"
	"stockroom/contexts/inventory-ops/audit-service/ports"
)

// Service owns the append-only event log. Appends are best-effort from the
// caller's point of view: failures are logged here and reported back, but
// callers are expected to drop them.
type Service struct {
	Repo   ports.Repository
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

// Append persists one audit record. A record with an identical timestamp
// already present makes the call a silent no-op; the returned bool reports
// whether a record was actually written.
func (s Service) Append(ctx context.Context, log ports.EventLog) (bool, error) {
	if strings.TrimSpace(log.EventType) == "" ||
		strings.TrimSpace(log.User) == "" ||
		strings.TrimSpace(log.Description) == "" {
		return false, domainerrors.ErrInvalidEvent
	}

	exists, err := s.Repo.HasTimestamp(ctx, log.Timestamp)
	if err != nil {
		s.warn("audit lookup failed", log, err)
		return false, err
	}
	if exists {
		s.logger().Debug("event log already exists for this timestamp",
			"event", "audit_append_skipped",
			"module", "inventory-ops/audit-service",
			"layer", "application",
			"event_type", log.EventType,
			"timestamp", log.Timestamp,
		)
		return false, nil
	}

	if log.EventID == "" && s.IDs != nil {
		id, err := s.IDs.NewID(ctx)
		if err != nil {
			s.warn("audit id generation failed", log, err)
			return false, err
		}
		log.EventID = id
	}

	if err := s.Repo.AppendEvent(ctx, log); err != nil {
		s.warn("audit append failed", log, err)
		return false, err
	}
	return true, nil
}

func (s Service) ListAll(ctx context.Context) ([]ports.EventLog, error) {
	return s.Repo.ListEvents(ctx)
}

func (s Service) warn(msg string, log ports.EventLog, err error) {
	s.logger().Warn(msg,
		"event", "audit_append_failed",
		"module", "inventory-ops/audit-service",
		"layer", "application",
		"event_type", log.EventType,
		"product_id", log.ProductID,
		"error", err.Error(),
	)
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
