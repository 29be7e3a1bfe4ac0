package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, store.ErrNotFound
	}

	row, err := r.q.GetUserByEmail(ctx, mapStringNull(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	count, err := r.q.CountUsersByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:        u.ID,
		Username:  u.Username,
		Email:     mapStringNull(normalizeEmail(u.Email)),
		Name:      u.Name,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Phone:     mapStringNull(u.Phone),
		CreatedAt: toMillis(u.CreatedAt),
		UpdatedAt: toMillis(u.UpdatedAt),
	})
	return mapUnique(err)
}

func (r *usersRepo) UpdateName(ctx context.Context, userID, name, first, last string) error {
	n, err := r.q.UpdateUserName(ctx, gen.UpdateUserNameParams{
		Name:      name,
		FirstName: first,
		LastName:  last,
		UpdatedAt: toMillis(time.Now()),
		ID:        userID,
	})
	return affected(n, err)
}

func (r *usersRepo) UpdateEmail(ctx context.Context, userID, email string) error {
	n, err := r.q.UpdateUserEmail(ctx, gen.UpdateUserEmailParams{
		Email:     mapStringNull(normalizeEmail(email)),
		UpdatedAt: toMillis(time.Now()),
		ID:        userID,
	})
	return affected(n, mapUnique(err))
}

func (r *usersRepo) UpdatePhone(ctx context.Context, userID, phone string) error {
	n, err := r.q.UpdateUserPhone(ctx, gen.UpdateUserPhoneParams{
		Phone:     mapStringNull(phone),
		UpdatedAt: toMillis(time.Now()),
		ID:        userID,
	})
	return affected(n, err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	n, err := r.q.DeleteUser(ctx, userID)
	return affected(n, err)
}

// affected reports ErrNotFound for statements that matched no row.
func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Emails are compared case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
