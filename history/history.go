// Package history contains the call history model of the command Registry:
// the Entry recorded for every dispatch, and the interfaces to store and
// stream these entries.
//
// Durable implementations live in the postgres and firestore packages.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Entry is a single recorded command call.
//
// Arguments holds the validated arguments of the call. Durable stores
// use JSON semantics, so numbers are read back as float64.
type Entry struct {
	ID         uuid.UUID
	Command    string
	Arguments  map[string]any
	Error      string
	RecordedAt time.Time
}

// Failed reports whether the Entry records a failed dispatch.
func (e Entry) Failed() bool { return e.Error != "" }

// Selector specifies which Entries to select when streaming the history.
type Selector struct {
	// Command selects only the calls of the named command.
	// The empty value selects all calls.
	Command string
}

// SelectAll is a Selector value that returns the whole history.
var SelectAll = Selector{}

// Matches reports whether the Entry is selected by the Selector.
func (s Selector) Matches(entry Entry) bool {
	return s.Command == "" || s.Command == entry.Command
}

// StreamWrite is the write-end of a channel used to stream Entries.
type StreamWrite chan<- Entry

// StreamRead is the read-end of a channel used to stream Entries.
type StreamRead <-chan Entry

// Appender records new Entries in the history.
type Appender interface {
	Append(ctx context.Context, entries ...Entry) error
}

// Streamer streams the recorded Entries selected by the Selector,
// in recording order.
//
// Implementations close the stream channel when they return.
type Streamer interface {
	Stream(ctx context.Context, stream StreamWrite, selector Selector) error
}

// Store is a full history store implementation.
type Store interface {
	Appender
	Streamer
}

// FusedStore fuses an Appender and a Streamer together, useful when
// only one of the two sides needs to be extended.
type FusedStore struct {
	Appender
	Streamer
}

// DuplicateEntryError is returned by a Store when appending an Entry
// whose ID has already been recorded.
type DuplicateEntryError struct {
	ID uuid.UUID
}

func (err DuplicateEntryError) Error() string {
	return fmt.Sprintf("history: entry %s already recorded", err.ID)
}

// StreamToSlice synchronously exhausts a Stream to a slice of Entries,
// and returns an error if the stream origin, passed here as a closure,
// fails with an error.
func StreamToSlice(ctx context.Context, f func(ctx context.Context, stream StreamWrite) error) ([]Entry, error) {
	ch := make(chan Entry, 1)
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error { return f(ctx, ch) })

	var entries []Entry
	for entry := range ch {
		entries = append(entries, entry)
	}

	return entries, group.Wait()
}

// Names returns the command names of the provided entries, in order.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Command)
	}

	return names
}
