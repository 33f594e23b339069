// Package internal contains the pgx plumbing shared by the postgres
// history store and its tests.
package internal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is implemented by pgx components that can open transactions,
// such as *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}

// RunTransaction runs do in a new transaction, which is committed when do
// succeeds and rolled back otherwise.
func RunTransaction(
	ctx context.Context,
	db TxBeginner,
	options pgx.TxOptions, //nolint:gocritic // The pgx API uses value semantics, will do the same here.
	do func(ctx context.Context, tx pgx.Tx) error,
) (err error) {
	tx, err := db.BeginTx(ctx, options)
	if err != nil {
		return fmt.Errorf("failed to begin transaction, %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			err = fmt.Errorf("failed to rollback transaction, %w (caused by: %w)", rollbackErr, err)
		}
	}()

	if err = do(ctx, tx); err != nil {
		return fmt.Errorf("failed to perform transaction, %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction, %w", err)
	}

	return nil
}
