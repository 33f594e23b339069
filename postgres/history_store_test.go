package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/get-eventually/go-commander/command"
	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/postgres"
	"github.com/get-eventually/go-commander/postgres/internal"
)

func TestHistoryStore(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
	}

	ctx := context.Background()

	container, err := internal.NewPostgresContainer(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	require.NoError(t, postgres.RunMigrations(container.ConnectionDSN))
	// Running them twice must be a no-op.
	require.NoError(t, postgres.RunMigrations(container.ConnectionDSN))

	pool, err := container.Pool(ctx)
	require.NoError(t, err)

	t.Cleanup(pool.Close)

	truncate := func() {
		_, err := pool.Exec(ctx, "TRUNCATE command_calls")
		assert.NoError(t, err)
	}

	t.Run("store suite", func(t *testing.T) {
		suite.Run(t, history.NewStoreSuite(func() history.Store {
			truncate()
			return postgres.NewHistoryStore(pool)
		}))
	})

	t.Run("registry records calls durably", func(t *testing.T) {
		truncate()

		store := postgres.NewHistoryStore(pool)
		now := time.Date(2024, time.April, 1, 8, 30, 0, 0, time.UTC)
		id := uuid.New()

		registry := command.NewRegistry(
			command.WithRecorder(store),
			command.WithClock(func() time.Time { return now }),
			command.WithIDGenerator(func() uuid.UUID { return id }),
		)

		require.NoError(t, registry.Add(command.NewTyped("add",
			func(context.Context, command.Arguments) error { return nil },
			command.P("a", command.TypeInteger),
			command.P("b", command.TypeFloat),
		)))

		require.NoError(t, registry.Execute(ctx, "add", command.Tokens{"1", "2.5"}))

		entries, err := history.StreamToSlice(ctx, func(ctx context.Context, stream history.StreamWrite) error {
			return store.Stream(ctx, stream, history.Selector{Command: "add"})
		})
		require.NoError(t, err)

		assert.Equal(t, []history.Entry{{
			ID:         id,
			Command:    "add",
			Arguments:  map[string]any{"a": float64(1), "b": 2.5},
			RecordedAt: now,
		}}, entries)
	})
}
