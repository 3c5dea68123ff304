package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// UserRepository implements storage.UserRepository for BadgerDB.
type UserRepository struct {
	backend *Backend
}

var _ storage.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(backend *Backend) (*UserRepository, error) {
	return &UserRepository{backend: backend}, nil
}

// Close releases resources. UserRepository has no resources to release.
func (r *UserRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *UserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertUser creates the user or refreshes its profile fields.
// PremiumUntil and CreatedAt are preserved on update.
func (r *UserRepository) UpsertUser(ctx context.Context, user *core.User) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUserKey(user.TelegramId)
		old, err := readUser(tx, key)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if old == nil {
			result = &core.User{
				TelegramId: user.TelegramId,
				Username:   user.Username,
				FirstName:  user.FirstName,
				LastName:   user.LastName,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		} else {
			result = old
			changed := old.Username != user.Username ||
				old.FirstName != user.FirstName ||
				old.LastName != user.LastName
			if !changed {
				return nil
			}
			result.Username = user.Username
			result.FirstName = user.FirstName
			result.LastName = user.LastName
			result.UpdatedAt = now
		}

		if err := tx.Set(key, storage.MarshalUser(result)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return result, err
}

// GetUser retrieves a user by Telegram ID.
func (r *UserRepository) GetUser(ctx context.Context, telegramId int64) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readUser(tx, makeUserKey(telegramId))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// SetPremiumUntil updates a user's premium expiry.
func (r *UserRepository) SetPremiumUntil(ctx context.Context, telegramId int64, until time.Time) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUserKey(telegramId)
		user, err := readUser(tx, key)
		if err != nil {
			return err
		}
		if user == nil {
			return storage.ErrNotFound
		}

		user.PremiumUntil = until
		user.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalUser(user)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddPayment records a received payment, keyed by charge ID.
func (r *UserRepository) AddPayment(ctx context.Context, payment *core.StarPayment) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if payment.CreatedAt.IsZero() {
			payment.CreatedAt = time.Now().UTC()
		}
		if err := tx.Set(makePaymentKey(payment.ChargeId), storage.MarshalPayment(payment)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetPayment retrieves a payment by charge ID.
func (r *UserRepository) GetPayment(ctx context.Context, chargeId string) (*core.StarPayment, error) {
	var result *core.StarPayment
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePaymentKey(chargeId))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalPayment(val)
			return err
		})
	}, false)
	return result, err
}

func readUser(tx *badger.Txn, key []byte) (*core.User, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var user *core.User
	err = item.Value(func(val []byte) error {
		var err error
		user, err = storage.UnmarshalUser(val)
		return err
	})
	return user, err
}
