package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/get-eventually/go-commander/serde"
)

// Option can be used to change the configuration of an object.
type Option[T any] interface {
	apply(T)
}

type option[T any] func(T)

func newOption[T any](f func(T)) option[T] { return option[T](f) }

func (apply option[T]) apply(val T) { apply(val) }

// WithArgumentsSerde changes how call arguments are mapped to the
// JSONB arguments column. Defaults to serde.NewArgumentsJSON.
func WithArgumentsSerde(s serde.Serde[map[string]any, []byte]) Option[*HistoryStore] {
	return newOption(func(store *HistoryStore) {
		store.serde = s
	})
}

// WithTxOptions changes the options of the transaction used by Append.
func WithTxOptions(options pgx.TxOptions) Option[*HistoryStore] { //nolint:gocritic // pgx uses value semantics.
	return newOption(func(store *HistoryStore) {
		store.txOptions = options
	})
}
