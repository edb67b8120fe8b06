package ports

import (
	"context"
	"time"
)

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventLog is one append-only audit record. ProductID is a historical
// reference, not an enforced relation: the product it names may be gone.
type EventLog struct {
	EventID     string
	EventType   string
	Timestamp   time.Time
	User        string
	ProductID   string
	Data        any
	Description string
}

type Repository interface {
	HasTimestamp(ctx context.Context, timestamp time.Time) (bool, error)
	AppendEvent(ctx context.Context, log EventLog) error
	// ListEvents returns every record ordered by timestamp descending.
	ListEvents(ctx context.Context) ([]EventLog, error)
}
