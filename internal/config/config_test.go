package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.DeadZone != 20 {
		t.Errorf("DeadZone = %d; want default 20", cfg.DeadZone)
	}
	if cfg.InitialHold != 2*time.Second {
		t.Errorf("InitialHold = %v; want 2s", cfg.InitialHold)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazesync.yaml")
	data := "dead_zone: 35\nrepeat_delay: 150ms\nweb_port: \"9000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DeadZone != 35 {
		t.Errorf("DeadZone = %d; want 35", cfg.DeadZone)
	}
	if cfg.RepeatDelay != 150*time.Millisecond {
		t.Errorf("RepeatDelay = %v; want 150ms", cfg.RepeatDelay)
	}
	if cfg.WebPort != "9000" {
		t.Errorf("WebPort = %q; want 9000", cfg.WebPort)
	}
	// Untouched fields keep their defaults.
	if cfg.Sustain != time.Second {
		t.Errorf("Sustain = %v; want 1s", cfg.Sustain)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazesync.yaml")
	if err := os.WriteFile(path, []byte("web_port: \"9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GAZESYNC_WEB_PORT", "9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WebPort != "9999" {
		t.Errorf("WebPort = %q; want env override 9999", cfg.WebPort)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dead zone", func(c *Config) { c.DeadZone = 0 }},
		{"negative initial hold", func(c *Config) { c.InitialHold = -time.Second }},
		{"zero repeat delay", func(c *Config) { c.RepeatDelay = 0 }},
		{"sustain below repeat delay", func(c *Config) { c.Sustain = 100 * time.Millisecond }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
