package badger

import (
	"bytes"
	"context"
	"errors"
	"iter"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/storage"
)

// RestaurantRepository implements storage.RestaurantRepository for BadgerDB.
type RestaurantRepository struct {
	backend   *Backend
	idSeq     *badger.Sequence
	ownsStore bool
}

var _ storage.RestaurantRepository = (*RestaurantRepository)(nil)

// NewRestaurantRepository creates a repository on an open backend.
// Closing the repository releases the ID sequence but leaves the backend open.
func NewRestaurantRepository(backend *Backend) (*RestaurantRepository, error) {
	idSeq, err := backend.GetSequence(restaurantIDSeq)
	if err != nil {
		return nil, err
	}

	return &RestaurantRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// NewRepository opens a BadgerDB database at path and returns a repository
// that owns it. Closing the repository closes the database.
func NewRepository(path string) (storage.RestaurantRepository, error) {
	return openRepository(path, false)
}

func openRepository(path string, inMemory bool) (*RestaurantRepository, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}
	repo, err := NewRestaurantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsStore = true
	return repo, nil
}

// Close releases the ID sequence, and the backend when the repository owns it.
func (r *RestaurantRepository) Close() error {
	err := r.idSeq.Release()
	if r.ownsStore {
		err = errors.Join(err, r.backend.Close())
	}
	return err
}

// AddRestaurants stores records in a single write batch. Records with ID=0
// receive the next ID from the sequence; records with an ID overwrite it.
func (r *RestaurantRepository) AddRestaurants(ctx context.Context, records ...*core.Restaurant) ([]*core.Restaurant, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	err := r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if record.Id == 0 {
				nextID, err := r.nextID()
				if err != nil {
					return err
				}
				record.Id = nextID
			}
			if err := wb.Set(makeRestaurantKey(record.Id), storage.MarshalRestaurant(record)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("stored restaurants", "count", len(records))
	return records, nil
}

// nextID returns the next sequence value, skipping 0 which means "unassigned".
func (r *RestaurantRepository) nextID() (core.ID, error) {
	for {
		next, err := r.idSeq.Next()
		if err != nil {
			return 0, err
		}
		if next != 0 {
			return core.ID(next), nil
		}
	}
}

// GetRestaurant retrieves a single restaurant by ID.
func (r *RestaurantRepository) GetRestaurant(ctx context.Context, id core.ID) (*core.Restaurant, error) {
	var result *core.Restaurant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRestaurantKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalRestaurant(val)
			return err
		})
	}, false)
	return result, err
}

// AllRestaurants iterates over every stored restaurant in key order, which is
// insertion order for sequence-assigned IDs.
func (r *RestaurantRepository) AllRestaurants(ctx context.Context) iter.Seq2[*core.Restaurant, error] {
	return func(yield func(*core.Restaurant, error) bool) {
		stopped := false
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(restaurantPrefix)
			it := tx.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				var record *core.Restaurant
				err := it.Item().Value(func(val []byte) error {
					var err error
					record, err = storage.UnmarshalRestaurant(val)
					return err
				})
				if err != nil {
					return err
				}
				if !yield(record, nil) {
					stopped = true
					return nil
				}
			}
			return nil
		}, false)
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// Count returns the number of stored restaurants without decoding them.
func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(restaurantPrefix)
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// DeleteAll removes every stored restaurant. The ID sequence keeps counting,
// so records added afterwards still sort after any earlier ones.
func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.DropPrefix([]byte(restaurantPrefix))
}

// DeleteRange removes the restaurants with IDs in [from, to) in one write
// batch. A zero to means no upper bound.
func (r *RestaurantRepository) DeleteRange(ctx context.Context, from, to core.ID) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	var end []byte
	if to != 0 {
		end = makeRestaurantKey(to)
	}

	deleted := 0
	err := r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		return r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(restaurantPrefix)
			opts.PrefetchValues = false
			it := tx.NewIterator(opts)
			defer it.Close()

			for it.Seek(makeRestaurantKey(from)); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				key := it.Item().KeyCopy(nil)
				if end != nil && bytes.Compare(key, end) >= 0 {
					break
				}
				if err := wb.Delete(key); err != nil {
					return err
				}
				deleted++
			}
			return nil
		}, false)
	})
	if err != nil {
		return err
	}

	r.backend.logger.Debug("deleted restaurants", "count", deleted, "from", from, "to", to)
	return nil
}
