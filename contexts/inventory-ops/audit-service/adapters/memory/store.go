package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockroom/contexts/inventory-ops/audit-service/ports"
)

type Store struct {
	mu     sync.RWMutex
	events []ports.EventLog
	seen   map[int64]struct{}
}

func NewStore() *Store {
	return &Store{
		seen: make(map[int64]struct{}),
	}
}

func (s *Store) HasTimestamp(ctx context.Context, timestamp time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.seen[timestamp.UTC().UnixNano()]
	return ok, nil
}

func (s *Store) AppendEvent(ctx context.Context, log ports.EventLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, log)
	s.seen[log.Timestamp.UTC().UnixNano()] = struct{}{}
	return nil
}

func (s *Store) ListEvents(ctx context.Context) ([]ports.EventLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]ports.EventLog(nil), s.events...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
