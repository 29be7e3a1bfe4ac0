package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
)

// InitSessionKeys creates the KeyManager that signs session tokens.
//
// With no SessionKeyFile an ephemeral key is generated and every session
// dies with the process. Otherwise the key is read from the file, which is
// created with a fresh key the first time.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{Issuer: cfg.Issuer}

	if cfg.SessionKeyFile == "" {
		logger.Warn("no session key file configured, sessions will not survive a restart")
	} else {
		pemKey, err := cryptox.LoadOrCreateEd25519Key(cfg.SessionKeyFile)
		if err != nil {
			return nil, err
		}
		opts.PrivateKeyPEM = pemKey
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	logger.Info("session signing key ready",
		"issuer", cfg.Issuer,
		"kid", km.Signer.KID(),
		"persistent", cfg.SessionKeyFile != "",
	)
	return km, nil
}
