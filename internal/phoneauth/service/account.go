package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
	"github.com/aussiebroadwan/phoneauth/pkg/idx"
)

const (
	nameSuffixTries = 100 // name, name_1 ... name_100
	phoneTries      = 100 // user_<digits>, user_<digits>_1 ... _99, or 100 random suffixes
)

// AccountResolver finds the account behind a verified phone or provisions one.
type AccountResolver struct {
	Store     store.Store
	Directory *PhoneDirectory
	Logger    *slog.Logger
	Now       func() time.Time
}

// Resolve returns the owner of phone, creating the account when nobody
// holds the phone. created reports which of the two happened.
func (r *AccountResolver) Resolve(ctx context.Context, phone string, ob domain.Onboarding, settings domain.Settings) (domain.User, bool, error) {
	ob.Email = strings.TrimSpace(ob.Email)
	ob.Name = strings.TrimSpace(ob.Name)

	userID, found, err := r.Directory.ResolveUser(ctx, phone)
	if err != nil {
		return domain.User{}, false, err
	}
	if found {
		u, err := r.updateExisting(ctx, userID, ob)
		return u, false, err
	}

	u, err := r.provision(ctx, phone, ob, settings)
	return u, err == nil, err
}

// updateExisting applies supplied onboarding fields without clearing any.
func (r *AccountResolver) updateExisting(ctx context.Context, userID string, ob domain.Onboarding) (domain.User, error) {
	users := r.Store.Users()

	if ob.Name != "" {
		first, last := domain.SplitName(ob.Name)
		if err := users.UpdateName(ctx, userID, ob.Name, first, last); err != nil {
			return domain.User{}, fmt.Errorf("update name: %w", err)
		}
	}

	if ob.Email != "" && domain.ValidEmail(ob.Email) {
		err := users.UpdateEmail(ctx, userID, ob.Email)
		switch {
		case errors.Is(err, store.ErrEmailInUse):
			r.log().Warn("onboarding email belongs to another account, not updated", "user_id", userID)
		case err != nil:
			return domain.User{}, fmt.Errorf("update email: %w", err)
		}
	}

	u, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (r *AccountResolver) provision(ctx context.Context, phone string, ob domain.Onboarding, settings domain.Settings) (domain.User, error) {
	if err := r.checkRegistration(ctx, ob, settings); err != nil {
		if !errors.Is(err, errRegistrationInvalid) {
			return domain.User{}, err
		}
		r.log().Info("registration rejected", maskedPhone(phone), "reason", err)
		return domain.User{}, ErrRegistrationRejected
	}

	first, last := domain.SplitName(ob.Name)
	now := r.now()
	u := domain.User{
		ID:        idx.NewAt(now).String(),
		Email:     ob.Email,
		Name:      ob.Name,
		FirstName: first,
		LastName:  last,
		Role:      settings.UserRole,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created := false
	for candidate, err := range usernameCandidates(ob.Name, phone, settings.UsernameGeneration) {
		if err != nil {
			return domain.User{}, err
		}

		taken, err := r.Store.Users().UsernameExists(ctx, candidate)
		if err != nil {
			return domain.User{}, fmt.Errorf("check username: %w", err)
		}
		if taken {
			continue
		}

		u.Username = candidate
		err = r.Store.Users().CreateUser(ctx, u)
		if errors.Is(err, store.ErrAlreadyExists) {
			continue // lost a race for this username
		}
		if errors.Is(err, store.ErrEmailInUse) {
			return domain.User{}, ErrRegistrationRejected
		}
		if err != nil {
			return domain.User{}, fmt.Errorf("create user: %w", err)
		}
		created = true
		break
	}
	if !created {
		return domain.User{}, ErrUsernameExhausted
	}

	if err := r.Directory.Activate(ctx, u.ID, phone); err != nil {
		if derr := r.Store.Users().DeleteUser(ctx, u.ID); derr != nil {
			r.log().Error("failed to remove user after phone activation failed", "user_id", u.ID, "error", derr)
		}
		if errors.Is(err, ErrPhoneConflict) {
			// Someone claimed the phone first. Reported like any other rejection.
			r.log().Warn("phone claimed concurrently during registration", maskedPhone(phone))
			return domain.User{}, ErrRegistrationRejected
		}
		return domain.User{}, err
	}

	u.Phone = phone
	r.log().Info("user provisioned", "user_id", u.ID, "username", u.Username)
	return u, nil
}

var errRegistrationInvalid = errors.New("registration invalid")

// checkRegistration returns the specific reason, for logs only.
func (r *AccountResolver) checkRegistration(ctx context.Context, ob domain.Onboarding, settings domain.Settings) error {
	if settings.RequireEmail && ob.Email == "" {
		return fmt.Errorf("%w: email missing", errRegistrationInvalid)
	}
	if settings.RequireName && ob.Name == "" {
		return fmt.Errorf("%w: name missing", errRegistrationInvalid)
	}
	if ob.Email == "" {
		return nil
	}
	if !domain.ValidEmail(ob.Email) {
		return fmt.Errorf("%w: email malformed", errRegistrationInvalid)
	}

	_, err := r.Store.Users().GetUserByEmail(ctx, ob.Email)
	switch {
	case err == nil:
		return fmt.Errorf("%w: email in use", errRegistrationInvalid)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("email lookup: %w", err)
	}
}

// usernameCandidates yields usernames in order of preference: the name
// slug with numeric suffixes, then phone based names per mode.
func usernameCandidates(name, phone string, mode domain.UsernameMode) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if slug := usernameSlug(name); slug != "" {
			if !yield(slug, nil) {
				return
			}
			for i := 1; i <= nameSuffixTries; i++ {
				if !yield(slug+"_"+strconv.Itoa(i), nil) {
					return
				}
			}
		}

		digits := domain.PhoneDigits(phone)
		if mode == domain.UsernameFull {
			if !yield("user_"+digits, nil) {
				return
			}
			for i := 1; i < phoneTries; i++ {
				if !yield("user_"+digits+"_"+strconv.Itoa(i), nil) {
					return
				}
			}
			return
		}

		last4 := digits[max(0, len(digits)-4):]
		for range phoneTries {
			suffix, err := cryptox.RandomAlphanumeric(4)
			if !yield("user_"+last4+"_"+suffix, err) || err != nil {
				return
			}
		}
	}
}

// usernameSlug keeps the ASCII letters and digits of name, lower-cased.
func usernameSlug(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c + ('a' - 'A'))
		}
	}
	return b.String()
}

func (r *AccountResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *AccountResolver) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
