package commanderfirestore

import "github.com/get-eventually/go-commander/serde"

// DefaultCollection is the collection HistoryStore writes entries to,
// unless WithCollection is used.
const DefaultCollection = "CommandCalls"

// Option changes the configuration of a HistoryStore.
type Option interface {
	apply(*HistoryStore)
}

type option func(*HistoryStore)

func (apply option) apply(hs *HistoryStore) { apply(hs) }

// WithCollection changes the collection entries are written to.
// The sequence counter lives in the "Counters" collection, in a document
// named after the entries collection.
func WithCollection(name string) Option {
	return option(func(hs *HistoryStore) {
		hs.collection = name
	})
}

// WithArgumentsSerde changes how call arguments are mapped to the
// document payload. Defaults to serde.NewArgumentsProtoJSON.
func WithArgumentsSerde(s serde.Serde[map[string]any, []byte]) Option {
	return option(func(hs *HistoryStore) {
		hs.serde = s
	})
}
