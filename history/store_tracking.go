package history

import (
	"context"
	"slices"
	"sync"
)

// TrackingStore is an Appender wrapper to track the Entries
// successfully appended to the inner Appender.
//
// Useful for tests assertion.
type TrackingStore struct {
	Appender

	mx       sync.RWMutex
	recorded []Entry
}

// NewTrackingStore wraps an Appender to capture the Entries that get appended to it.
func NewTrackingStore(appender Appender) *TrackingStore {
	return &TrackingStore{Appender: appender}
}

// Recorded returns the list of Entries that have been appended.
func (s *TrackingStore) Recorded() []Entry {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return slices.Clone(s.recorded)
}

// Append forwards the call to the wrapped Appender and, if the operation
// concludes successfully, records the Entries internally.
func (s *TrackingStore) Append(ctx context.Context, entries ...Entry) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if err := s.Appender.Append(ctx, entries...); err != nil {
		return err
	}

	s.recorded = append(s.recorded, entries...)

	return nil
}
