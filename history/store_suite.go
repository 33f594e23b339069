package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// StoreSuite is a full testing suite for a history.Store implementation.
//
// Durable stores run it against a real backend in their integration tests.
type StoreSuite struct {
	suite.Suite

	storeFactory func() Store
	store        Store // NOTE: this instance is initialized in SetupTest.
}

// NewStoreSuite creates a new Store testing suite using the provided factory.
func NewStoreSuite(factory func() Store) *StoreSuite {
	ss := new(StoreSuite)
	ss.storeFactory = factory

	return ss
}

// SetupTest creates a new, fresh Store instance for each test in the suite.
func (ss *StoreSuite) SetupTest() {
	ss.store = ss.storeFactory()
}

func suiteEntries() []Entry {
	start := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	return []Entry{
		{
			ID:         uuid.New(),
			Command:    "say",
			Arguments:  map[string]any{"text": "hello"},
			RecordedAt: start,
		},
		{
			ID:         uuid.New(),
			Command:    "add",
			Arguments:  map[string]any{"a": 1.0, "b": 2.5, "verbose": true},
			RecordedAt: start.Add(time.Second),
		},
		{
			ID:         uuid.New(),
			Command:    "say",
			Arguments:  map[string]any{"text": "'quoted'", "to": nil},
			Error:      "command: handler failed",
			RecordedAt: start.Add(2 * time.Second),
		},
	}
}

// TestStream appends some Entries and streams them back, with and without
// a command Selector.
func (ss *StoreSuite) TestStream() {
	ctx := context.Background()
	entries := suiteEntries()

	ss.Require().NoError(ss.store.Append(ctx, entries[0]))
	ss.Require().NoError(ss.store.Append(ctx, entries[1:]...))

	all, err := StreamToSlice(ctx, func(ctx context.Context, stream StreamWrite) error {
		return ss.store.Stream(ctx, stream, SelectAll)
	})

	ss.Require().NoError(err)
	ss.Equal(entries, all)

	says, err := StreamToSlice(ctx, func(ctx context.Context, stream StreamWrite) error {
		return ss.store.Stream(ctx, stream, Selector{Command: "say"})
	})

	ss.Require().NoError(err)
	ss.Equal([]Entry{entries[0], entries[2]}, says)
}

// TestStreamEmpty checks that streaming an empty history succeeds.
func (ss *StoreSuite) TestStreamEmpty() {
	ctx := context.Background()

	entries, err := StreamToSlice(ctx, func(ctx context.Context, stream StreamWrite) error {
		return ss.store.Stream(ctx, stream, Selector{Command: "missing"})
	})

	ss.NoError(err)
	ss.Empty(entries)
}

// TestAppendDuplicate checks that recording the same Entry twice fails
// with a DuplicateEntryError, without recording anything else.
func (ss *StoreSuite) TestAppendDuplicate() {
	ctx := context.Background()
	entries := suiteEntries()

	ss.Require().NoError(ss.store.Append(ctx, entries[0]))

	err := ss.store.Append(ctx, entries[1], entries[0])

	var duplicateErr DuplicateEntryError
	if ss.True(errors.As(err, &duplicateErr)) {
		ss.Equal(entries[0].ID, duplicateErr.ID)
	}

	recorded, err := StreamToSlice(ctx, func(ctx context.Context, stream StreamWrite) error {
		return ss.store.Stream(ctx, stream, SelectAll)
	})

	ss.Require().NoError(err)
	ss.Equal([]Entry{entries[0]}, recorded)
}
