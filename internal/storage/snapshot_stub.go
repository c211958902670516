package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// StubSnapshots is an in-memory Snapshots implementation backing service
// tests. It round-trips values through JSON so tests observe the same
// marshalling behaviour as the real store.
type StubSnapshots struct {
	mu   sync.Mutex
	data map[int]map[string][]byte
}

func NewStubSnapshots() *StubSnapshots {
	return &StubSnapshots{data: map[int]map[string][]byte{}}
}

func (s *StubSnapshots) Load(ctx context.Context, userId int, collection string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[userId][collection]
	if !ok {
		return ErrNoSnapshot
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("snapshot %q holds malformed data: %w", collection, err)
	}
	return nil
}

func (s *StubSnapshots) Save(ctx context.Context, userId int, collection string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode snapshot %q: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[userId] == nil {
		s.data[userId] = map[string][]byte{}
	}
	s.data[userId][collection] = raw
	return nil
}

func (s *StubSnapshots) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[int]map[string][]byte{}
}
