package config

import (
	"os"
	"strconv"
)

// FromEnv overlays REEL_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("REEL_DEFAULT_JOURNAL_NAME"); v != "" {
		cfg.DefaultJournalName = v
	}
	if v := os.Getenv("REEL_JOURNAL_NAME_REGEX"); v != "" {
		cfg.JournalNameRegex = v
	}
	if v := os.Getenv("REEL_MAX_JOURNALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxJournals = n
		}
	}
	if v := os.Getenv("REEL_JOURNAL_DEFAULTS_PAYLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.JournalDefaults.PayloadMaxBytes = n
		}
	}
	if v := os.Getenv("REEL_JOURNAL_DEFAULTS_REPLAY_GAP_CAP_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.JournalDefaults.ReplayGapCapMs = n
		}
	}
}
