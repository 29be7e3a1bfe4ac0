package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/idx"
)

// DirectoryCacheTTL bounds how long a cached lookup may be served. The
// database stays authoritative; every write invalidates what it touches.
const DirectoryCacheTTL = 600 * time.Second

// PhoneDirectory is the authority on which user owns which phone.
type PhoneDirectory struct {
	Store  store.Store
	Cache  store.Cache // optional
	Logger *slog.Logger
	Now    func() time.Time
}

func userIDCacheKey(phone string) string {
	return "uid:" + phone
}

func phoneListCacheKey(userID string) string {
	return "phones:" + userID
}

func (d *PhoneDirectory) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// ResolveUser returns the user holding phone as an active number.
func (d *PhoneDirectory) ResolveUser(ctx context.Context, phone string) (string, bool, error) {
	if id, ok := d.cacheGet(ctx, userIDCacheKey(phone)); ok && id != "" {
		return id, true, nil
	}

	rec, err := d.Store.Phones().GetActiveByPhone(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolve phone: %w", err)
	}

	d.cacheSet(ctx, userIDCacheKey(phone), rec.UserID)

	// A write that committed between the read and the set has already run
	// its invalidation, so the entry above could outlive it by the full TTL.
	// Read again and drop the entry if the owner moved.
	if d.Cache != nil {
		again, err := d.Store.Phones().GetActiveByPhone(ctx, phone)
		if err != nil || again.UserID != rec.UserID {
			d.dropCached(ctx, userIDCacheKey(phone))
		}
	}
	return rec.UserID, true, nil
}

// ListPhones returns the user's active phones, newest first, followed by
// the legacy single-value phone when it is not already listed.
func (d *PhoneDirectory) ListPhones(ctx context.Context, userID string) ([]string, error) {
	if v, ok := d.cacheGet(ctx, phoneListCacheKey(userID)); ok {
		if v == "" {
			return []string{}, nil
		}
		return strings.Split(v, ","), nil
	}

	recs, err := d.Store.Phones().ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}

	phones := make([]string, 0, len(recs)+1)
	for _, r := range recs {
		phones = append(phones, r.Phone)
	}

	u, err := d.Store.Users().GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("list phones: %w", err)
	case u.Phone != "" && !slices.Contains(phones, u.Phone):
		phones = append(phones, u.Phone)
	}

	d.cacheSet(ctx, phoneListCacheKey(userID), strings.Join(phones, ","))
	return phones, nil
}

// Activate makes phone the user's only active phone. It fails with
// ErrPhoneConflict when another user holds phone active; the unique index
// on active phones decides between racing claims.
func (d *PhoneDirectory) Activate(ctx context.Context, userID, phone string) error {
	now := d.now()
	var deactivated []string

	err := d.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		deactivated, err = tx.Phones().DeactivateOthers(ctx, userID, phone, now)
		if err != nil {
			return fmt.Errorf("deactivate phones: %w", err)
		}

		err = tx.Phones().Upsert(ctx, domain.PhoneRecord{
			ID:        idx.NewAt(now).String(),
			UserID:    userID,
			Phone:     phone,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrPhoneConflict
		}
		if err != nil {
			return fmt.Errorf("upsert phone: %w", err)
		}

		if err := tx.Users().UpdatePhone(ctx, userID, phone); err != nil {
			return fmt.Errorf("update legacy phone: %w", err)
		}
		return nil
	})

	// Deactivations roll back with the tx, so only purge them on success.
	if err != nil {
		deactivated = nil
	}
	d.invalidate(ctx, userID, append(deactivated, phone)...)
	return err
}

// DeactivateAll deactivates every phone of userID.
func (d *PhoneDirectory) DeactivateAll(ctx context.Context, userID string) error {
	phones, err := d.Store.Phones().DeactivateAll(ctx, userID, d.now())
	if err != nil {
		return fmt.Errorf("deactivate phones: %w", err)
	}
	d.invalidate(ctx, userID, phones...)
	return nil
}

// PhoneInUse reports whether someone other than excludeUserID holds phone.
func (d *PhoneDirectory) PhoneInUse(ctx context.Context, phone, excludeUserID string) (bool, error) {
	rec, err := d.Store.Phones().GetActiveByPhone(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("phone in use: %w", err)
	}
	return rec.UserID != excludeUserID, nil
}

// Forget drops every cache entry for the user and the given phones.
func (d *PhoneDirectory) Forget(ctx context.Context, userID string, phones ...string) {
	d.invalidate(ctx, userID, phones...)
}

func (d *PhoneDirectory) invalidate(ctx context.Context, userID string, phones ...string) {
	if d.Cache == nil {
		return
	}

	keys := []string{phoneListCacheKey(userID)}
	for _, p := range phones {
		keys = append(keys, userIDCacheKey(p))
	}
	if err := d.Cache.Delete(ctx, keys...); err != nil {
		d.log().Warn("phone cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (d *PhoneDirectory) dropCached(ctx context.Context, key string) {
	if err := d.Cache.Delete(ctx, key); err != nil {
		d.log().Warn("phone cache invalidation failed", "error", err)
	}
}

func (d *PhoneDirectory) cacheGet(ctx context.Context, key string) (string, bool) {
	if d.Cache == nil {
		return "", false
	}
	v, err := d.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			d.log().Warn("phone cache read failed", "error", err)
		}
		return "", false
	}
	return v, true
}

func (d *PhoneDirectory) cacheSet(ctx context.Context, key, value string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Set(ctx, key, value, DirectoryCacheTTL); err != nil {
		d.log().Warn("phone cache write failed", "error", err)
	}
}

func (d *PhoneDirectory) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
