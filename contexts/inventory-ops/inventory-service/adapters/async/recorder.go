package async

import (
	"context"
	"log/slog"
	"sync"

	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

// Recorder decouples audit emission from the request path: entries go onto
// a bounded queue drained by a single worker goroutine. When the queue is
// full the entry is dropped with a warning, which keeps Record non-blocking
// and preserves the rule that audit outcome never affects the mutation.
type Recorder struct {
	next   ports.EventRecorder
	queue  chan ports.EventEntry
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewRecorder(next ports.EventRecorder, queueSize int, logger *slog.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = 128
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		next:   next,
		queue:  make(chan ports.EventEntry, queueSize),
		logger: logger,
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Recorder) Record(_ context.Context, entry ports.EventEntry) error {
	select {
	case r.queue <- entry:
	default:
		r.logger.Warn("dropping audit entry for full queue",
			"event", "audit_queue_drop",
			"module", "inventory-ops/inventory-service",
			"layer", "adapters",
			"event_type", entry.EventType,
			"product_id", entry.ProductID,
		)
	}
	return nil
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for entry := range r.queue {
		if err := r.next.Record(context.Background(), entry); err != nil {
			r.logger.Warn("audit entry delivery failed",
				"event", "audit_queue_delivery_failed",
				"module", "inventory-ops/inventory-service",
				"layer", "adapters",
				"event_type", entry.EventType,
				"product_id", entry.ProductID,
				"error", err.Error(),
			)
		}
	}
}

// Close stops accepting entries and waits for the worker to drain the queue.
func (r *Recorder) Close() {
	close(r.queue)
	r.wg.Wait()
}

var _ ports.EventRecorder = (*Recorder)(nil)
