package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
)

var ErrUnknownKey = errors.New("jwtx: unknown signing key")

// KeySet is the set of keys session tokens may be signed with. The JWKS
// handler and verifiers read it concurrently.
type KeySet struct {
	mu   sync.RWMutex
	keys []JWK
	pub  map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{pub: map[string]ed25519.PublicKey{}}
}

// AddSigner publishes the signer's public key.
func (k *KeySet) AddSigner(s Signer) error {
	j := s.PublicJWK()
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, dup := k.pub[j.Kid]; dup {
		return nil
	}
	k.pub[j.Kid] = pub
	k.keys = append(k.keys, j)
	return nil
}

// Lookup returns the key registered under kid.
func (k *KeySet) Lookup(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pub, ok := k.pub[kid]
	if !ok {
		return nil, ErrUnknownKey
	}
	return pub, nil
}

// PublicJWKS returns a copy safe to serialize.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: append([]JWK(nil), k.keys...)}
}

// IsReady reports whether any key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
