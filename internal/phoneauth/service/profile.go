package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
)

// Profile is a user with their phones, primary first.
type Profile struct {
	User   domain.User
	Phones []string
}

// ProfileUpdate carries the fields an operator wants to change. Nil fields
// are left alone.
type ProfileUpdate struct {
	Phone *string
	Name  *string
	Email *string
}

// ProfileService is the operator view of an account.
type ProfileService struct {
	Store     store.Store
	Directory *PhoneDirectory
	Settings  func() domain.Settings
	Logger    *slog.Logger
}

func (s *ProfileService) Get(ctx context.Context, userID string) (Profile, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return Profile{}, ErrUserNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load user: %w", err)
	}

	phones, err := s.Directory.ListPhones(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: u, Phones: phones}, nil
}

// Update applies upd. A phone change that collides with another account
// fails with ErrPhoneConflict and changes nothing else. A taken email fails
// with ErrEmailInUse before any phone change.
func (s *ProfileService) Update(ctx context.Context, userID string, upd ProfileUpdate) (Profile, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email != "" && !domain.ValidEmail(email) {
			return Profile{}, ErrInvalidEmail
		}
		upd.Email = &email

		// Checked before the phone moves so a taken email leaves the
		// account untouched.
		if email != "" {
			owner, err := s.Store.Users().GetUserByEmail(ctx, email)
			switch {
			case err == nil && owner.ID != userID:
				return Profile{}, ErrEmailInUse
			case err != nil && !errors.Is(err, store.ErrNotFound):
				return Profile{}, fmt.Errorf("check email: %w", err)
			}
		}
	}

	if upd.Phone != nil && strings.TrimSpace(*upd.Phone) != "" {
		phone := domain.NormalizePhone(*upd.Phone, s.Settings().CountryCode)
		if !domain.ValidPhone(phone) {
			return Profile{}, ErrInvalidPhone
		}

		if len(current.Phones) == 0 || current.Phones[0] != phone {
			inUse, err := s.Directory.PhoneInUse(ctx, phone, userID)
			if err != nil {
				return Profile{}, err
			}
			if inUse {
				return Profile{}, ErrPhoneConflict
			}
			if err := s.Directory.Activate(ctx, userID, phone); err != nil {
				return Profile{}, err
			}
		}
	}

	users := s.Store.Users()
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		first, last := domain.SplitName(name)
		if err := users.UpdateName(ctx, userID, name, first, last); err != nil {
			return Profile{}, fmt.Errorf("update name: %w", err)
		}
	}
	if upd.Email != nil {
		err := users.UpdateEmail(ctx, userID, *upd.Email)
		if errors.Is(err, store.ErrEmailInUse) {
			return Profile{}, ErrEmailInUse
		}
		if err != nil {
			return Profile{}, fmt.Errorf("update email: %w", err)
		}
	}

	s.Directory.Forget(ctx, userID)
	return s.Get(ctx, userID)
}

// Delete removes the account. Its phone rows go with it.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	phones, err := s.Directory.ListPhones(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Directory.DeactivateAll(ctx, userID); err != nil {
		return err
	}

	err = s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.Directory.Forget(ctx, userID, phones...)
	if s.Logger != nil {
		s.Logger.Info("user deleted", "user_id", userID)
	}
	return nil
}
