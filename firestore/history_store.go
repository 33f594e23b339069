// Package commanderfirestore contains a Google Cloud Firestore
// implementation of history.Store.
package commanderfirestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/serde"
)

var _ history.Store = &HistoryStore{}

type callDocument struct {
	Sequence   int64     `firestore:"sequence"`
	Command    string    `firestore:"command_name"`
	Arguments  []byte    `firestore:"arguments"`
	Error      string    `firestore:"error"`
	RecordedAt time.Time `firestore:"recorded_at"`
}

// HistoryStore is a history.Store implementation backed by a Firestore
// collection, with one document per Entry keyed by the Entry ID.
//
// Recording order is kept through a sequence counter updated in the same
// transaction as the appended documents.
type HistoryStore struct {
	client     *firestore.Client
	collection string
	serde      serde.Serde[map[string]any, []byte]
}

// NewHistoryStore returns a new HistoryStore using the provided client.
func NewHistoryStore(client *firestore.Client, options ...Option) *HistoryStore {
	hs := &HistoryStore{
		client:     client,
		collection: DefaultCollection,
		serde:      serde.NewArgumentsProtoJSON(),
	}

	for _, opt := range options {
		opt.apply(hs)
	}

	return hs
}

func (hs *HistoryStore) calls() *firestore.CollectionRef {
	return hs.client.Collection(hs.collection)
}

func (hs *HistoryStore) counter() *firestore.DocumentRef {
	return hs.client.Collection("Counters").Doc(hs.collection)
}

func (hs *HistoryStore) lastSequence(tx *firestore.Transaction) (int64, error) {
	doc, err := tx.Get(hs.counter())
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get sequence counter, %w", err)
	}

	sequence, ok := doc.Data()["last_sequence"].(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected sequence counter value, %v", doc.Data()["last_sequence"])
	}

	return sequence, nil
}

func (hs *HistoryStore) checkDuplicates(tx *firestore.Transaction, entries []history.Entry) error {
	refs := make([]*firestore.DocumentRef, 0, len(entries))
	seen := make(map[uuid.UUID]struct{}, len(entries))

	for _, entry := range entries {
		if _, ok := seen[entry.ID]; ok {
			return history.DuplicateEntryError{ID: entry.ID}
		}

		seen[entry.ID] = struct{}{}
		refs = append(refs, hs.calls().Doc(entry.ID.String()))
	}

	docs, err := tx.GetAll(refs)
	if err != nil {
		return fmt.Errorf("failed to check existing entries, %w", err)
	}

	for i, doc := range docs {
		if doc.Exists() {
			return history.DuplicateEntryError{ID: entries[i].ID}
		}
	}

	return nil
}

// Append implements the history.Appender interface.
//
// All the Entries are created in the same transaction: either all of them
// are recorded, or none is.
func (hs *HistoryStore) Append(ctx context.Context, entries ...history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	err := hs.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		sequence, err := hs.lastSequence(tx)
		if err != nil {
			return err
		}

		if err := hs.checkDuplicates(tx, entries); err != nil {
			return err
		}

		for _, entry := range entries {
			sequence++

			if err := hs.create(tx, sequence, entry); err != nil {
				return err
			}
		}

		if err := tx.Set(hs.counter(), map[string]any{"last_sequence": sequence}); err != nil {
			return fmt.Errorf("failed to update sequence counter, %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("commanderfirestore.HistoryStore.Append: failed to commit transaction, %w", err)
	}

	return nil
}

func (hs *HistoryStore) create(tx *firestore.Transaction, sequence int64, entry history.Entry) error {
	arguments := entry.Arguments
	if arguments == nil {
		arguments = map[string]any{}
	}

	payload, err := hs.serde.Serialize(arguments)
	if err != nil {
		return fmt.Errorf("failed to serialize arguments of entry %s, %w", entry.ID, err)
	}

	if err := tx.Create(hs.calls().Doc(entry.ID.String()), callDocument{
		Sequence:   sequence,
		Command:    entry.Command,
		Arguments:  payload,
		Error:      entry.Error,
		RecordedAt: entry.RecordedAt,
	}); err != nil {
		return fmt.Errorf("failed to create entry %s, %w", entry.ID, err)
	}

	return nil
}

// Stream implements the history.Streamer interface.
func (hs *HistoryStore) Stream(ctx context.Context, stream history.StreamWrite, selector history.Selector) error {
	defer close(stream)

	query := hs.calls().Query
	if selector.Command != "" {
		query = query.Where("command_name", "==", selector.Command)
	}

	iter := query.OrderBy("sequence", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("commanderfirestore.HistoryStore.Stream: failed while reading iterator, %w", err)
		}

		entry, err := hs.decode(doc)
		if err != nil {
			return fmt.Errorf("commanderfirestore.HistoryStore.Stream: %w", err)
		}

		select {
		case stream <- entry:
		case <-ctx.Done():
			return fmt.Errorf("commanderfirestore.HistoryStore.Stream: context error, %w", ctx.Err())
		}
	}
}

func (hs *HistoryStore) decode(doc *firestore.DocumentSnapshot) (history.Entry, error) {
	id, err := uuid.Parse(doc.Ref.ID)
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to parse document id, %w", err)
	}

	var call callDocument
	if err := doc.DataTo(&call); err != nil {
		return history.Entry{}, fmt.Errorf("failed to decode entry %s, %w", id, err)
	}

	arguments, err := hs.serde.Deserialize(call.Arguments)
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to deserialize arguments of entry %s, %w", id, err)
	}

	return history.Entry{
		ID:         id,
		Command:    call.Command,
		Arguments:  arguments,
		Error:      call.Error,
		RecordedAt: call.RecordedAt.UTC(),
	}, nil
}
