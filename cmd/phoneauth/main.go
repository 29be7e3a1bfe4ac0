package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/app"
)

func main() {
	envFile := flag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	settingsFile := flag.String("settings", "", "operator settings YAML (overrides PHONEAUTH_SETTINGS_FILE)")
	flag.Parse()

	// Variables already set in the environment win over the file.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load %s: %v", *envFile, err)
	}

	cfg := app.LoadConfig()
	if *settingsFile != "" {
		cfg.SettingsFile = *settingsFile
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
