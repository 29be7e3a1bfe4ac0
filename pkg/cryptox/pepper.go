package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// pepperLength is the size of a generated pepper in bytes.
const pepperLength = 32

// LoadOrCreatePepper returns the OTP digest pepper stored at path. A
// missing file is created with a fresh random pepper, readable only by
// the owner.
func LoadOrCreatePepper(path string) (string, error) {
	data, err := loadOrCreate(path, func() ([]byte, error) {
		raw := make([]byte, pepperLength)
		if _, err := rand.Read(raw); err != nil {
			return nil, err
		}
		return []byte(base64.RawURLEncoding.EncodeToString(raw)), nil
	})
	if err != nil {
		return "", err
	}

	p := strings.TrimSpace(string(data))
	if p == "" {
		return "", fmt.Errorf("cryptox: pepper file %s is empty", path)
	}
	return p, nil
}
