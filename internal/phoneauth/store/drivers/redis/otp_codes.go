package redis

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
)

const (
	fieldCodeHash  = "code_hash"
	fieldExpiresAt = "expires_at"
	fieldAttempts  = "attempts"
	fieldEmail     = "email"
	fieldName      = "name"
)

// KEYS[1] otp key, ARGV[1] code hash, ARGV[2] max attempts.
// Returns -1 if the record is gone or was replaced, -2 if it is at max.
var incrementAttemptsScript = goredis.NewScript(`
local h = redis.call('HGET', KEYS[1], 'code_hash')
if not h or h ~= ARGV[1] then
	return -1
end
local n = tonumber(redis.call('HGET', KEYS[1], 'attempts') or '0')
if n >= tonumber(ARGV[2]) then
	return -2
end
return redis.call('HINCRBY', KEYS[1], 'attempts', 1)
`)

// KEYS[1] otp key, ARGV[1] code hash, ARGV[2] max attempts.
var consumeScript = goredis.NewScript(`
local h = redis.call('HGET', KEYS[1], 'code_hash')
if not h or h ~= ARGV[1] then
	return 0
end
local n = tonumber(redis.call('HGET', KEYS[1], 'attempts') or '0')
if n >= tonumber(ARGV[2]) then
	return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// KEYS[1] otp key, ARGV: code hash, expires at, attempts, email, name, ttl ms.
var restoreScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'code_hash', ARGV[1], 'expires_at', ARGV[2], 'attempts', ARGV[3], 'email', ARGV[4], 'name', ARGV[5])
redis.call('PEXPIRE', KEYS[1], ARGV[6])
return 1
`)

// OTPCodes stores one hash per phone at phoneauth:otp:<phone>.
type OTPCodes struct {
	client *goredis.Client
	now    func() time.Time
}

func otpKey(phone string) string { return otpPrefix + phone }

func (o *OTPCodes) PutOTP(ctx context.Context, rec domain.OTPRecord, ttl time.Duration) error {
	key := otpKey(rec.Phone)

	pipe := o.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		fieldCodeHash:  rec.CodeHash,
		fieldExpiresAt: rec.ExpiresAt.UnixMilli(),
		fieldAttempts:  0,
		fieldEmail:     rec.Onboarding.Email,
		fieldName:      rec.Onboarding.Name,
	})
	pipe.PExpire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrap("put otp", err)
	}
	return nil
}

func (o *OTPCodes) GetOTP(ctx context.Context, phone string) (domain.OTPRecord, error) {
	values, err := o.client.HGetAll(ctx, otpKey(phone)).Result()
	if err != nil {
		return domain.OTPRecord{}, wrap("get otp", err)
	}
	if len(values) == 0 || values[fieldCodeHash] == "" {
		return domain.OTPRecord{}, store.ErrNotFound
	}

	expires, _ := strconv.ParseInt(values[fieldExpiresAt], 10, 64)
	attempts, _ := strconv.Atoi(values[fieldAttempts])

	return domain.OTPRecord{
		Phone:     phone,
		CodeHash:  values[fieldCodeHash],
		ExpiresAt: time.UnixMilli(expires).UTC(),
		Attempts:  attempts,
		Onboarding: domain.Onboarding{
			Email: values[fieldEmail],
			Name:  values[fieldName],
		},
	}, nil
}

func (o *OTPCodes) IncrementAttempts(ctx context.Context, phone, codeHash string, max int) (int, error) {
	n, err := incrementAttemptsScript.Run(ctx, o.client, []string{otpKey(phone)}, codeHash, max).Int()
	if err != nil {
		return 0, wrap("increment attempts", err)
	}
	switch n {
	case -1:
		return 0, store.ErrNotFound
	case -2:
		return 0, store.ErrExhausted
	}
	return n, nil
}

func (o *OTPCodes) ConsumeOTP(ctx context.Context, phone, codeHash string, max int) (bool, error) {
	n, err := consumeScript.Run(ctx, o.client, []string{otpKey(phone)}, codeHash, max).Int()
	if err != nil {
		return false, wrap("consume otp", err)
	}
	return n == 1, nil
}

// RestoreOTP is a no-op once the record would already have expired.
func (o *OTPCodes) RestoreOTP(ctx context.Context, rec domain.OTPRecord) error {
	ttl := rec.ExpiresAt.Sub(o.now())
	if ttl <= 0 {
		return nil
	}

	err := restoreScript.Run(ctx, o.client, []string{otpKey(rec.Phone)},
		rec.CodeHash,
		rec.ExpiresAt.UnixMilli(),
		rec.Attempts,
		rec.Onboarding.Email,
		rec.Onboarding.Name,
		ttl.Milliseconds(),
	).Err()
	if err != nil {
		return wrap("restore otp", err)
	}
	return nil
}

var _ store.OTPCodes = (*OTPCodes)(nil)
