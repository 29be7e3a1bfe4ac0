package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/sqlite/gen"
)

type phonesRepo struct {
	q *gen.Queries
}

func (r *phonesRepo) GetActiveByPhone(ctx context.Context, phone string) (domain.PhoneRecord, error) {
	row, err := r.q.GetActivePhone(ctx, phone)
	if err != nil {
		return domain.PhoneRecord{}, mapNotFound(err)
	}
	return mapPhone(row), nil
}

func (r *phonesRepo) ListActiveByUser(ctx context.Context, userID string) ([]domain.PhoneRecord, error) {
	rows, err := r.q.ListActivePhonesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PhoneRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPhone(row))
	}
	return out, nil
}

func (r *phonesRepo) DeactivateOthers(ctx context.Context, userID, keep string, now time.Time) ([]string, error) {
	return r.q.DeactivateOtherPhones(ctx, gen.DeactivateOtherPhonesParams{
		UpdatedAt: toMillis(now),
		UserID:    userID,
		Phone:     keep,
	})
}

func (r *phonesRepo) DeactivateAll(ctx context.Context, userID string, now time.Time) ([]string, error) {
	return r.q.DeactivateAllPhones(ctx, gen.DeactivateAllPhonesParams{
		UpdatedAt: toMillis(now),
		UserID:    userID,
	})
}

func (r *phonesRepo) Upsert(ctx context.Context, rec domain.PhoneRecord) error {
	err := r.q.UpsertPhone(ctx, gen.UpsertPhoneParams{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Phone:     rec.Phone,
		CreatedAt: toMillis(rec.CreatedAt),
		UpdatedAt: toMillis(rec.UpdatedAt),
	})
	return mapUnique(err)
}
