// Package config provides configuration for the GazeSync application.
// Defaults work out of the box; a YAML file and environment variables can
// override individual fields. Flag parsing is done in cmd/gazesync/main.go;
// this struct is data only.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultCameraDevice = 0
	DefaultSampleRate   = 16000
	DefaultWebPort      = "8090"
)

// Config holds all tunable parameters for GazeSync.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug"`

	// Camera / landmark extraction.
	CameraDevice int    `yaml:"camera_device"` // V4L2 device index
	YuNetModel   string `yaml:"yunet_model"`   // Path to YuNet ONNX model

	// Speech recognition.
	WhisperModel string `yaml:"whisper_model"` // Path to whisper.cpp GGML model
	AudioDevice  string `yaml:"audio_device"`  // ALSA capture device ("" = default)
	SampleRate   int    `yaml:"sample_rate"`   // Microphone sample rate in Hz

	// Gaze control thresholds. These are the contract values from the
	// calibration and debounce state machines; change with care.
	InitialHold  time.Duration `yaml:"initial_hold"`  // Steady hold before first calibration
	RecalHold    time.Duration `yaml:"recal_hold"`    // Steady hold before auto recalibration
	DeadZone     int           `yaml:"dead_zone"`     // Pixel margin around calibrated points
	Sustain      time.Duration `yaml:"sustain"`       // Hold duration before continuous scroll
	RepeatDelay  time.Duration `yaml:"repeat_delay"`  // Spacing between repeated scrolls
	SleepTimeout time.Duration `yaml:"sleep_timeout"` // No-face duration before sleep mode

	// Voice dispatcher.
	FuzzyMatch bool `yaml:"fuzzy_match"` // Enable phonetic fallback matching

	// Dashboard.
	WebEnabled bool   `yaml:"web_enabled"`
	WebPort    string `yaml:"web_port"`
}

// Default returns the recommended configuration.
func Default() Config {
	return Config{
		CameraDevice: DefaultCameraDevice,
		YuNetModel:   "models/face_detection_yunet.onnx",
		WhisperModel: "models/ggml-base.en.bin",
		SampleRate:   DefaultSampleRate,

		InitialHold:  2 * time.Second,
		RecalHold:    3 * time.Second,
		DeadZone:     20,
		Sustain:      1 * time.Second,
		RepeatDelay:  300 * time.Millisecond,
		SleepTimeout: 5 * time.Second,

		WebEnabled: true,
		WebPort:    DefaultWebPort,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		cfg.LoadEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LoadEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.LoadEnv()
	return cfg, nil
}

// LoadEnv applies environment variable overrides.
// Call this after file loading so the environment wins.
func (c *Config) LoadEnv() {
	if v := os.Getenv("GAZESYNC_YUNET_MODEL"); v != "" {
		c.YuNetModel = v
	}
	if v := os.Getenv("GAZESYNC_WHISPER_MODEL"); v != "" {
		c.WhisperModel = v
	}
	if v := os.Getenv("GAZESYNC_AUDIO_DEVICE"); v != "" {
		c.AudioDevice = v
	}
	if v := os.Getenv("GAZESYNC_WEB_PORT"); v != "" {
		c.WebPort = v
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.DeadZone <= 0 {
		return errors.New("config: dead_zone must be positive")
	}
	if c.InitialHold <= 0 || c.RecalHold <= 0 {
		return errors.New("config: calibration hold durations must be positive")
	}
	if c.RepeatDelay <= 0 {
		return errors.New("config: repeat_delay must be positive")
	}
	if c.Sustain < c.RepeatDelay {
		return errors.New("config: sustain must not be shorter than repeat_delay")
	}
	if c.SampleRate <= 0 {
		return errors.New("config: sample_rate must be positive")
	}
	return nil
}
