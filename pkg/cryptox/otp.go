package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"github.com/pquerna/otp"
	"golang.org/x/crypto/blake2b"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateNumericCode returns a uniformly random code of exactly length
// decimal digits, leading zeros included. length must be between 1 and 9.
func GenerateNumericCode(length int) (string, error) {
	if length < 1 || length > 9 {
		return "", fmt.Errorf("cryptox: code length must be 1-9, got %d", length)
	}

	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to generate code: %w", err)
	}

	return otp.Digits(length).Format(int32(n.Int64())), nil
}

// RandomAlphanumeric returns n random characters from [a-zA-Z0-9].
func RandomAlphanumeric(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: length must be positive, got %d", n)
	}

	limit := big.NewInt(int64(len(alphanumeric)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("cryptox: failed to generate random string: %w", err)
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out), nil
}

// OTPHasher computes keyed digests of one-time codes so that codes are
// never kept at rest in clear text. The digest is bound to the phone it
// was issued for.
type OTPHasher struct {
	key []byte
}

// NewOTPHasher creates a hasher keyed with pepper (at most 64 bytes).
func NewOTPHasher(pepper string) (*OTPHasher, error) {
	if pepper == "" {
		return nil, errors.New("cryptox: empty pepper")
	}
	if len(pepper) > blake2b.Size {
		return nil, fmt.Errorf("cryptox: pepper longer than %d bytes", blake2b.Size)
	}
	return &OTPHasher{key: []byte(pepper)}, nil
}

// Digest returns the base64url keyed BLAKE2b-256 digest of phone and code.
func (h *OTPHasher) Digest(phone, code string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// Key length is checked in NewOTPHasher.
		panic(fmt.Sprintf("cryptox: blake2b: %v", err))
	}
	mac.Write([]byte(phone))
	mac.Write([]byte{0})
	mac.Write([]byte(code))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Matches reports in constant time whether code hashes to digest.
func (h *OTPHasher) Matches(phone, code, digest string) bool {
	return EqualDigest(h.Digest(phone, code), digest)
}

// EqualDigest compares two digests in constant time.
func EqualDigest(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
