package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

type captureRecorder struct {
	mu      sync.Mutex
	entries []ports.EventEntry
}

func (c *captureRecorder) Record(_ context.Context, entry ports.EventEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	return nil
}

func (c *captureRecorder) snapshot() []ports.EventEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.EventEntry(nil), c.entries...)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, ports.EventEntry) error {
	return errors.New("sink unavailable")
}

func TestRecorderDeliversEntriesInOrder(t *testing.T) {
	capture := &captureRecorder{}
	recorder := NewRecorder(capture, 8, nil)

	for i, eventType := range []string{"CREATE_PRODUCT", "UPDATE_PRODUCT", "DELETE_PRODUCT"} {
		err := recorder.Record(context.Background(), ports.EventEntry{
			EventType: eventType,
			Timestamp: time.Now().UTC(),
			User:      "admin",
			ProductID: "p-1",
		})
		if err != nil {
			t.Fatalf("record %d returned error: %v", i, err)
		}
	}
	recorder.Close()

	entries := capture.snapshot()
	if len(entries) != 3 {
		t.Fatalf("expected 3 delivered entries, got %d", len(entries))
	}
	want := []string{"CREATE_PRODUCT", "UPDATE_PRODUCT", "DELETE_PRODUCT"}
	for i, eventType := range want {
		if entries[i].EventType != eventType {
			t.Fatalf("position %d: expected %s, got %s", i, eventType, entries[i].EventType)
		}
	}
}

func TestRecorderSwallowsSinkFailures(t *testing.T) {
	recorder := NewRecorder(failingRecorder{}, 2, nil)

	err := recorder.Record(context.Background(), ports.EventEntry{
		EventType: "CREATE_PRODUCT",
		Timestamp: time.Now().UTC(),
		User:      "admin",
	})
	if err != nil {
		t.Fatalf("record must never surface sink errors, got %v", err)
	}
	recorder.Close()
}
