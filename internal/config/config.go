package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	DefaultJournalName string          `json:"defaultJournalName"`
	JournalNameRegex   string          `json:"journalNameRegex"`
	MaxJournals        int             `json:"maxJournals"`
	JournalDefaults    JournalDefaults `json:"journalDefaults"`
}

// JournalDefaults captures per-journal baseline limits.
type JournalDefaults struct {
	PayloadMaxBytes int `json:"payloadMaxBytes"`
	// ReplayGapCapMs bounds a single simulated replay pause, in
	// milliseconds. Zero means uncapped.
	ReplayGapCapMs int `json:"replayGapCapMs"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DefaultJournalName: "default",
		JournalNameRegex:   "[a-z0-9-_]{1,64}",
		JournalDefaults: JournalDefaults{
			PayloadMaxBytes: 1 << 20,
			ReplayGapCapMs:  0,
		},
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported yet; use JSON for now")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
