package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
)

// LoadSettings reads operator settings from a YAML file. Fields absent from
// the file keep their defaults and a missing file yields the defaults. The
// result is normalized and validated.
func LoadSettings(path string) (domain.Settings, error) {
	s := domain.DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return domain.Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// SettingsStore publishes the current settings snapshot. Readers never see
// a partially applied reload.
type SettingsStore struct {
	path   string
	logger *slog.Logger
	cur    atomic.Pointer[domain.Settings]
}

func NewSettingsStore(path string, logger *slog.Logger) (*SettingsStore, error) {
	s := &SettingsStore{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the latest snapshot.
func (s *SettingsStore) Current() domain.Settings {
	return *s.cur.Load()
}

// Reload re-reads the file. On error the previous snapshot stays in place.
func (s *SettingsStore) Reload() error {
	next, err := LoadSettings(s.path)
	if err != nil {
		return err
	}
	s.cur.Store(&next)

	s.logger.Info("settings loaded",
		"path", s.path,
		"gateway_configured", next.GatewayConfigured(),
		"otp_length", next.OTPLength,
		"otp_expiry", next.OTPExpiry(),
		"onboarding_timing", next.OnboardingTiming,
	)
	return nil
}

// WatchSIGHUP reloads on every SIGHUP until ctx is done.
func (s *SettingsStore) WatchSIGHUP(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := s.Reload(); err != nil {
					s.logger.Error("settings reload failed, keeping previous", "path", s.path, "error", err)
				}
			}
		}
	}()
}
