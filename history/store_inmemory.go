package history

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Interface implementation assertion.
var _ Store = new(InMemoryStore)

// InMemoryStore is a thread-safe, in-memory history.Store implementation.
type InMemoryStore struct {
	mx      sync.RWMutex
	entries []Entry
	ids     map[uuid.UUID]struct{}
}

// NewInMemoryStore creates a new history.InMemoryStore instance.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		mx:  sync.RWMutex{},
		ids: make(map[uuid.UUID]struct{}),
	}
}

func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("history.InMemoryStore: context error, %w", err)
	}

	return nil
}

// Stream streams the recorded Entries matching the Selector onto the
// provided stream, in recording order.
//
// This method fails only when the context is canceled.
func (s *InMemoryStore) Stream(ctx context.Context, stream StreamWrite, selector Selector) error {
	s.mx.RLock()
	defer s.mx.RUnlock()
	defer close(stream)

	for _, entry := range s.entries {
		if !selector.Matches(entry) {
			continue
		}

		select {
		case stream <- entry:
		case <-ctx.Done():
			return contextErr(ctx)
		}
	}

	return nil
}

// Append records the provided Entries.
//
// Either all the Entries are recorded or, if one of them has already
// been recorded, none is and a DuplicateEntryError is returned.
func (s *InMemoryStore) Append(ctx context.Context, entries ...Entry) error {
	if err := contextErr(ctx); err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(entries))

	for _, entry := range entries {
		_, recorded := s.ids[entry.ID]
		_, duplicated := seen[entry.ID]

		if recorded || duplicated {
			return fmt.Errorf("history.InMemoryStore: failed to append entries, %w", DuplicateEntryError{ID: entry.ID})
		}

		seen[entry.ID] = struct{}{}
	}

	for _, entry := range entries {
		entry.Arguments = maps.Clone(entry.Arguments)
		s.entries = append(s.entries, entry)
		s.ids[entry.ID] = struct{}{}
	}

	return nil
}
