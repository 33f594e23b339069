package history_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/get-eventually/go-commander/history"
)

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, history.NewStoreSuite(func() history.Store {
		return history.NewInMemoryStore()
	}))
}

func TestInMemoryStore_StreamCanceledContext(t *testing.T) {
	store := history.NewInMemoryStore()

	require.NoError(t, store.Append(context.Background(),
		history.Entry{ID: uuid.New(), Command: "a"},
		history.Entry{ID: uuid.New(), Command: "b"},
	))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := make(chan history.Entry)
	err := store.Stream(ctx, stream, history.SelectAll)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemoryStore_AppendCopiesArguments(t *testing.T) {
	ctx := context.Background()
	store := history.NewInMemoryStore()
	args := map[string]any{"text": "hello"}

	require.NoError(t, store.Append(ctx, history.Entry{ID: uuid.New(), Command: "say", Arguments: args}))

	args["text"] = "changed"

	entries, err := history.StreamToSlice(ctx, func(ctx context.Context, stream history.StreamWrite) error {
		return store.Stream(ctx, stream, history.SelectAll)
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Arguments["text"])
}

func TestTrackingStore(t *testing.T) {
	ctx := context.Background()
	tracking := history.NewTrackingStore(history.NewInMemoryStore())

	entry := history.Entry{ID: uuid.New(), Command: "say"}

	require.NoError(t, tracking.Append(ctx, entry))
	assert.Error(t, tracking.Append(ctx, entry))

	recorded := tracking.Recorded()
	assert.Equal(t, []history.Entry{entry}, recorded)
	assert.Equal(t, []string{"say"}, history.Names(recorded))

	t.Run("recorded entries are a snapshot", func(t *testing.T) {
		recorded[0].Command = "changed"
		require.NoError(t, tracking.Append(ctx, history.Entry{ID: uuid.New(), Command: "add"}))

		assert.Len(t, recorded, 1)
		assert.Equal(t, []string{"say", "add"}, history.Names(tracking.Recorded()))
	})
}
