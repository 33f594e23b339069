package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer is a handle on a Postgres container started
// through testcontainers.
type PostgresContainer struct {
	*postgres.PostgresContainer

	ConnectionDSN string
}

// NewPostgresContainer starts a new Postgres container and returns a
// handle to manage its lifecycle.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	withContext := func(msg string, err error) error {
		return fmt.Errorf("internal.NewPostgresContainer: %s, %w", msg, err)
	}

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("commander"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("notasecret"),
		testcontainers.WithWaitStrategy(
			//nolint:mnd // It's ok to use a magic number here.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, withContext("failed to run new container", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, withContext("failed to get connection dsn", err)
	}

	return &PostgresContainer{
		PostgresContainer: container,
		ConnectionDSN:     dsn,
	}, nil
}

// Pool opens a new pgx connection pool to the container database.
func (c *PostgresContainer) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, c.ConnectionDSN)
	if err != nil {
		return nil, fmt.Errorf("internal.PostgresContainer: failed to open pool, %w", err)
	}

	return pool, nil
}
