package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s *Store, username, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:       idx.New().String(),
		Username: username,
		Email:    email,
		Role:     "subscriber",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := createUser(t, s, "asha", "Asha@Example.com")

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "asha", got.Username)
		require.Equal(t, "asha@example.com", got.Email)

		got, err = s.Users().GetUserByEmail(ctx, "ASHA@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)

		_, err = s.Users().GetUserByEmail(ctx, "")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("username uniqueness", func(t *testing.T) {
		exists, err := s.Users().UsernameExists(ctx, "asha")
		require.NoError(t, err)
		require.True(t, exists)

		err = s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "asha", Role: "subscriber"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("email uniqueness", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{
			ID:       idx.New().String(),
			Username: "other",
			Email:    "asha@example.com",
			Role:     "subscriber",
		})
		require.ErrorIs(t, err, store.ErrEmailInUse)
	})

	t.Run("users without email do not collide", func(t *testing.T) {
		createUser(t, s, "noemail1", "")
		createUser(t, s, "noemail2", "")
	})

	t.Run("updates", func(t *testing.T) {
		require.NoError(t, s.Users().UpdateName(ctx, u.ID, "Asha Rani", "Asha", "Rani"))
		require.NoError(t, s.Users().UpdatePhone(ctx, u.ID, "+919876543210"))
		require.NoError(t, s.Users().UpdateEmail(ctx, u.ID, "asha.rani@example.com"))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Asha Rani", got.Name)
		require.Equal(t, "Rani", got.LastName)
		require.Equal(t, "+919876543210", got.Phone)
		require.Equal(t, "asha.rani@example.com", got.Email)

		require.ErrorIs(t, s.Users().UpdatePhone(ctx, "missing", "+919876543210"), store.ErrNotFound)
	})
}

func TestPhones(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "alice", "")
	bob := createUser(t, s, "bob", "")
	now := time.Now()

	rec := func(userID, phone string, at time.Time) domain.PhoneRecord {
		return domain.PhoneRecord{ID: idx.New().String(), UserID: userID, Phone: phone, CreatedAt: at, UpdatedAt: at}
	}

	t.Run("one active owner per phone", func(t *testing.T) {
		require.NoError(t, s.Phones().Upsert(ctx, rec(alice.ID, "+919876543210", now)))

		err := s.Phones().Upsert(ctx, rec(bob.ID, "+919876543210", now))
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		got, err := s.Phones().GetActiveByPhone(ctx, "+919876543210")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.UserID)
	})

	t.Run("upsert reactivates instead of duplicating", func(t *testing.T) {
		require.NoError(t, s.Phones().Upsert(ctx, rec(alice.ID, "+919876543211", now.Add(time.Second))))

		deactivated, err := s.Phones().DeactivateOthers(ctx, alice.ID, "+919876543211", now)
		require.NoError(t, err)
		require.Equal(t, []string{"+919876543210"}, deactivated)

		require.NoError(t, s.Phones().Upsert(ctx, rec(alice.ID, "+919876543210", now.Add(2*time.Second))))

		active, err := s.Phones().ListActiveByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, active, 2)
		require.Equal(t, "+919876543211", active[0].Phone, "newest first")
	})

	t.Run("deactivated phone can be claimed", func(t *testing.T) {
		deactivated, err := s.Phones().DeactivateAll(ctx, alice.ID, now)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"+919876543210", "+919876543211"}, deactivated)

		require.NoError(t, s.Phones().Upsert(ctx, rec(bob.ID, "+919876543210", now)))

		_, err = s.Phones().GetActiveByPhone(ctx, "+919876543211")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting a user deletes its phones", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, bob.ID))

		_, err := s.Phones().GetActiveByPhone(ctx, "+919876543210")
		require.ErrorIs(t, err, store.ErrNotFound)

		active, err := s.Phones().ListActiveByUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Empty(t, active)
	})
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "carol", "")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePhone(ctx, u.ID, "+919876543210"); err != nil {
			return err
		}
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got.Phone)
}

func TestOTPLogins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now()
	phone := "+919876543210"

	older := domain.OTPLogin{ID: idx.New().String(), Phone: phone, CodeHash: "old", ExpiresAt: now.Add(time.Minute), CreatedAt: now.Add(-time.Second)}
	newer := domain.OTPLogin{ID: idx.New().String(), Phone: phone, CodeHash: "new", ExpiresAt: now.Add(time.Minute), CreatedAt: now}
	expired := domain.OTPLogin{ID: idx.New().String(), Phone: "+919876543211", CodeHash: "gone", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}

	for _, l := range []domain.OTPLogin{older, newer, expired} {
		require.NoError(t, s.OTPLogins().CreateOTPLogin(ctx, l))
	}

	got, err := s.OTPLogins().GetLatestUnverified(ctx, phone, now)
	require.NoError(t, err)
	require.Equal(t, "new", got.CodeHash)

	require.NoError(t, s.OTPLogins().MarkVerified(ctx, newer.ID))
	require.ErrorIs(t, s.OTPLogins().MarkVerified(ctx, newer.ID), store.ErrNotFound, "single use")

	got, err = s.OTPLogins().GetLatestUnverified(ctx, phone, now)
	require.NoError(t, err)
	require.Equal(t, "old", got.CodeHash)

	require.NoError(t, s.OTPLogins().MarkPhoneVerified(ctx, phone))
	_, err = s.OTPLogins().GetLatestUnverified(ctx, phone, now)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.OTPLogins().GetLatestUnverified(ctx, "+919876543211", now)
	require.ErrorIs(t, err, store.ErrNotFound, "expired rows are ignored")

	deleted, err := s.OTPLogins().DeleteExpiredOTPLogins(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}
