package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// EventRepository implements storage.EventRepository for BadgerDB.
type EventRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository.
func NewEventRepository(backend *Backend) (*EventRepository, error) {
	idSeq, err := backend.GetSequence(eventIDSeq)
	if err != nil {
		return nil, err
	}
	return &EventRepository{backend: backend, idSeq: idSeq}, nil
}

// Close releases the ID sequence.
func (r *EventRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *EventRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEvents appends one or more events.
func (r *EventRepository) AddEvents(ctx context.Context, events ...*core.BotEvent) ([]*core.BotEvent, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, event := range events {
			if event.Id == 0 {
				id, err := nextID(r.idSeq)
				if err != nil {
					return err
				}
				event.Id = id
			}
			if event.CreatedAt.IsZero() {
				event.CreatedAt = time.Now().UTC()
			}

			value := storage.MarshalEvent(event)
			if err := tx.Set(makeEventKey(event.Id), value); err != nil {
				return err
			}
			if err := tx.Set(makeEventUserKey(event.UserId, event.Id), storage.MarshalID(event.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeEventTimeKey(event.CreatedAt.UnixMicro(), event.Id), storage.MarshalID(event.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	return events, err
}

// GetRecentEvents retrieves the N most recent events, newest first.
func (r *EventRepository) GetRecentEvents(ctx context.Context, limit int) ([]*core.BotEvent, error) {
	var result []*core.BotEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventTimePrefix + ":")
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration needs a seek past the prefix range.
		seek := append([]byte(eventTimePrefix+":"), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		seek = append(seek, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

		for iter.Seek(seek); iter.Valid() && len(result) < limit; iter.Next() {
			var eventId core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				eventId, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			event, err := readEvent(tx, makeEventKey(eventId))
			if err != nil {
				return err
			}
			if event != nil {
				result = append(result, event)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetUserEvents retrieves the N most recent events of one user, newest first.
func (r *EventRepository) GetUserEvents(ctx context.Context, userId int64, limit int) ([]*core.BotEvent, error) {
	var result []*core.BotEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialEventUserKey(userId)
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		seek := append(makePartialEventUserKey(userId), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

		for iter.Seek(seek); iter.Valid() && len(result) < limit; iter.Next() {
			var eventId core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				eventId, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			event, err := readEvent(tx, makeEventKey(eventId))
			if err != nil {
				return err
			}
			if event != nil {
				result = append(result, event)
			}
		}
		return nil
	}, false)
	return result, err
}

func readEvent(tx *badger.Txn, key []byte) (*core.BotEvent, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var event *core.BotEvent
	err = item.Value(func(val []byte) error {
		var err error
		event, err = storage.UnmarshalEvent(val)
		return err
	})
	return event, err
}
