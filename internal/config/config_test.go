package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != "8080" {
		t.Errorf("unexpected default port %q", cfg.Port)
	}
	if cfg.NightActionWindow != 30*time.Second {
		t.Errorf("unexpected night window %v", cfg.NightActionWindow)
	}
	if cfg.DayVoteWindow != 60*time.Second {
		t.Errorf("unexpected vote window %v", cfg.DayVoteWindow)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("NIGHT_ACTION_SECONDS", "7")
	t.Setenv("DAY_VOTE_SECONDS", "junk")
	t.Setenv("MAX_HISTORY_SIZE", "50")

	cfg := LoadFromEnv()

	if cfg.Port != "9000" {
		t.Errorf("port override failed: %q", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origin parsing failed: %v", cfg.AllowedOrigins)
	}
	if cfg.NightActionWindow != 7*time.Second {
		t.Errorf("night window override failed: %v", cfg.NightActionWindow)
	}
	if cfg.DayVoteWindow != 60*time.Second {
		t.Errorf("invalid env value must keep the default, got %v", cfg.DayVoteWindow)
	}
	if cfg.MaxHistorySize != 50 {
		t.Errorf("history size override failed: %d", cfg.MaxHistorySize)
	}
}

func TestGameConfigMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NightActionWindow = 11 * time.Second

	gc := cfg.GameConfig()
	if gc.NightActionWindow != 11*time.Second {
		t.Errorf("mapping lost the night window: %v", gc.NightActionWindow)
	}
	if gc.PhaseDelay != cfg.PhaseDelay {
		t.Errorf("mapping lost the phase delay")
	}
}
