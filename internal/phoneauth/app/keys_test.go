package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

func TestSessionKeyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "session.pem")
	cfg := Config{Issuer: "phoneauth", SessionKeyFile: path}

	first, err := InitSessionKeys(cfg, slogx.Discard())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := InitSessionKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first.Signer.KID(), second.Signer.KID())

	// A token from before the restart still verifies.
	token, err := first.Signer.Sign(jwtx.NewSessionClaims(
		"user", "sid", "asha", "subscriber", []string{"otp"}, time.Hour, cfg.Issuer, nil, time.Now(),
	))
	require.NoError(t, err)
	_, err = second.Verifier.Verify(token)
	require.NoError(t, err)
}

func TestEphemeralSessionKey(t *testing.T) {
	a, err := InitSessionKeys(Config{Issuer: "phoneauth"}, slogx.Discard())
	require.NoError(t, err)
	b, err := InitSessionKeys(Config{Issuer: "phoneauth"}, slogx.Discard())
	require.NoError(t, err)
	require.NotEqual(t, a.Signer.KID(), b.Signer.KID())
}

func TestSessionKeyRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0o600))

	_, err := InitSessionKeys(Config{Issuer: "phoneauth", SessionKeyFile: path}, slogx.Discard())
	require.Error(t, err)
}
