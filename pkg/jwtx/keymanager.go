package jwtx

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
)

// KeyManager ties the session signing key to its verifier and to the
// KeySet served at the JWKS endpoint.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Issuer is the iss claim written and required on verify.
	Issuer string

	// Audience values (aud) validated on verify. Empty means no check.
	Audience []string

	// PrivateKeyPEM is a PKCS8 Ed25519 key. When empty an ephemeral key
	// is generated and tokens do not survive a restart.
	PrivateKeyPEM []byte
}

func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	pemKey := opts.PrivateKeyPEM
	if len(pemKey) == 0 {
		var err error
		if pemKey, err = cryptox.GenerateEd25519Key(); err != nil {
			return nil, err
		}
	}

	signer, err := NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, err
	}
	if err := signer.Validate(); err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: publish signing key: %w", err)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewVerifierEdDSA(keys, opts.Issuer, opts.Audience),
		KeySet:   keys,
	}, nil
}
