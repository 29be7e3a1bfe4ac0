package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/sqlite/gen"
)

type otpLoginsRepo struct {
	q *gen.Queries
}

func (r *otpLoginsRepo) CreateOTPLogin(ctx context.Context, l domain.OTPLogin) error {
	return mapUnique(r.q.CreateOTPLogin(ctx, gen.CreateOTPLoginParams{
		ID:        l.ID,
		Phone:     l.Phone,
		CodeHash:  l.CodeHash,
		Attempts:  int64(l.Attempts),
		ExpiresAt: toMillis(l.ExpiresAt),
		CreatedAt: toMillis(l.CreatedAt),
	}))
}

func (r *otpLoginsRepo) GetLatestUnverified(ctx context.Context, phone string, now time.Time) (domain.OTPLogin, error) {
	row, err := r.q.GetLatestUnverifiedOTPLogin(ctx, gen.GetLatestUnverifiedOTPLoginParams{
		Phone:     phone,
		ExpiresAt: toMillis(now),
	})
	if err != nil {
		return domain.OTPLogin{}, mapNotFound(err)
	}
	return mapOTPLogin(row), nil
}

func (r *otpLoginsRepo) MarkVerified(ctx context.Context, id string) error {
	n, err := r.q.MarkOTPLoginVerified(ctx, id)
	return affected(n, err)
}

func (r *otpLoginsRepo) MarkPhoneVerified(ctx context.Context, phone string) error {
	return r.q.MarkPhoneOTPLoginsVerified(ctx, phone)
}

func (r *otpLoginsRepo) DeleteExpiredOTPLogins(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredOTPLogins(ctx, toMillis(now))
}
