// Package postgres contains a PostgreSQL implementation of history.Store,
// backed by a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/postgres/internal"
	"github.com/get-eventually/go-commander/serde"
)

const uniqueViolationCode = "23505"

var _ history.Store = &HistoryStore{}

// HistoryStore is a history.Store implementation that records calls
// in the "command_calls" table created by RunMigrations.
type HistoryStore struct {
	conn      *pgxpool.Pool
	serde     serde.Serde[map[string]any, []byte]
	txOptions pgx.TxOptions
}

// NewHistoryStore returns a new HistoryStore using the provided pool.
func NewHistoryStore(conn *pgxpool.Pool, options ...Option[*HistoryStore]) *HistoryStore {
	store := &HistoryStore{
		conn:  conn,
		serde: serde.NewArgumentsJSON(),
		txOptions: pgx.TxOptions{
			IsoLevel:   pgx.ReadCommitted,
			AccessMode: pgx.ReadWrite,
		},
	}

	for _, opt := range options {
		opt.apply(store)
	}

	return store
}

// Append implements the history.Appender interface.
//
// All the Entries are inserted in the same transaction: either all of them
// are recorded, or none is.
func (hs *HistoryStore) Append(ctx context.Context, entries ...history.Entry) error {
	err := internal.RunTransaction(ctx, hs.conn, hs.txOptions, func(ctx context.Context, tx pgx.Tx) error {
		for _, entry := range entries {
			if err := hs.insert(ctx, tx, entry); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("postgres.HistoryStore: failed to append entries, %w", err)
	}

	return nil
}

func (hs *HistoryStore) insert(ctx context.Context, tx pgx.Tx, entry history.Entry) error {
	arguments := entry.Arguments
	if arguments == nil {
		arguments = map[string]any{}
	}

	data, err := hs.serde.Serialize(arguments)
	if err != nil {
		return fmt.Errorf("failed to serialize arguments of entry %s, %w", entry.ID, err)
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO command_calls (id, command_name, arguments, error, recorded_at)
		VALUES ($1::UUID, $2, $3::JSONB, $4, $5)`,
		entry.ID.String(), entry.Command, string(data), entry.Error, entry.RecordedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return history.DuplicateEntryError{ID: entry.ID}
	}

	if err != nil {
		return fmt.Errorf("failed to insert entry %s, %w", entry.ID, err)
	}

	return nil
}

// Stream implements the history.Streamer interface.
func (hs *HistoryStore) Stream(ctx context.Context, stream history.StreamWrite, selector history.Selector) error {
	defer close(stream)

	rows, err := hs.conn.Query(
		ctx,
		`SELECT id::TEXT, command_name, arguments, error, recorded_at FROM command_calls
		WHERE $1::TEXT = '' OR command_name = $1::TEXT
		ORDER BY sequence`,
		selector.Command,
	)
	if err != nil {
		return fmt.Errorf("postgres.HistoryStore: failed to query command_calls table, %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		entry, err := hs.scan(rows)
		if err != nil {
			return fmt.Errorf("postgres.HistoryStore: %w", err)
		}

		select {
		case stream <- entry:
		case <-ctx.Done():
			return fmt.Errorf("postgres.HistoryStore: context error, %w", ctx.Err())
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres.HistoryStore: failed while reading rows, %w", err)
	}

	return nil
}

func (hs *HistoryStore) scan(rows pgx.Rows) (history.Entry, error) {
	var (
		entry        history.Entry
		rawID        string
		rawArguments []byte
		recordedAt   time.Time
	)

	if err := rows.Scan(&rawID, &entry.Command, &rawArguments, &entry.Error, &recordedAt); err != nil {
		return history.Entry{}, fmt.Errorf("failed to scan next row, %w", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to parse entry id, %w", err)
	}

	arguments, err := hs.serde.Deserialize(rawArguments)
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to deserialize arguments of entry %s, %w", id, err)
	}

	entry.ID = id
	entry.Arguments = arguments
	entry.RecordedAt = recordedAt.UTC()

	return entry, nil
}
