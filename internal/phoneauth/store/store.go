package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrEmailInUse    = errors.New("store: email already in use")

	// ErrExhausted reports a counter that has already reached its cap.
	ErrExhausted = errors.New("store: limit reached")

	// ErrUnavailable wraps failures to reach a backing store, as opposed to
	// a lookup that simply found nothing.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the durable data access interface. The sqlite driver implements
// it. Sub-repositories are exposed as methods so that a Tx-scoped Store can
// hand out the same repositories bound to the transaction.
type Store interface {
	Users() Users
	Phones() Phones
	OTPLogins() OTPLogins

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Only the
	// repositories of tx may be used inside fn.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used to keep emails unique across accounts.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UsernameExists reports whether a username is taken.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken and
	// ErrEmailInUse when the email belongs to another account.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateName sets name, first_name and last_name and bumps updated_at.
	UpdateName(ctx context.Context, userID, name, first, last string) error

	// UpdateEmail sets the legacy email attribute. Returns ErrEmailInUse
	// when the email belongs to another account.
	UpdateEmail(ctx context.Context, userID, email string) error

	// UpdatePhone sets the legacy single-value phone attribute.
	UpdatePhone(ctx context.Context, userID, phone string) error

	// DeleteUser cascades to user_phones (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Phones interface {
	// GetActiveByPhone returns the active record for phone.
	GetActiveByPhone(ctx context.Context, phone string) (domain.PhoneRecord, error)

	// ListActiveByUser returns the user's active records, newest first.
	ListActiveByUser(ctx context.Context, userID string) ([]domain.PhoneRecord, error)

	// DeactivateOthers deactivates every active phone of userID except keep
	// and returns the phones it deactivated.
	DeactivateOthers(ctx context.Context, userID, keep string, now time.Time) ([]string, error)

	// DeactivateAll deactivates every phone of userID and returns them.
	DeactivateAll(ctx context.Context, userID string, now time.Time) ([]string, error)

	// Upsert reactivates the (user, phone) row or inserts it as active.
	// Returns ErrAlreadyExists when another user holds the phone active.
	Upsert(ctx context.Context, rec domain.PhoneRecord) error
}

type OTPLogins interface {
	// CreateOTPLogin writes a durable copy of an issued code.
	CreateOTPLogin(ctx context.Context, l domain.OTPLogin) error

	// GetLatestUnverified returns the newest unverified, unexpired row for phone.
	GetLatestUnverified(ctx context.Context, phone string, now time.Time) (domain.OTPLogin, error)

	// MarkVerified consumes a row. Returns ErrNotFound if it was already used.
	MarkVerified(ctx context.Context, id string) error

	// MarkPhoneVerified consumes every unverified row for phone.
	MarkPhoneVerified(ctx context.Context, phone string) error

	// DeleteExpiredOTPLogins is housekeeping.
	DeleteExpiredOTPLogins(ctx context.Context, now time.Time) (int64, error)
}
