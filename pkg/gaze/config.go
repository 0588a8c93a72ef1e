// Package gaze turns noisy head-landmark positions into discrete scroll
// actions: a drift-tolerant calibration scheme, a per-direction debounced
// trigger state machine, and a sleep monitor for prolonged face absence.
package gaze

import "time"

// Config holds all tunable parameters for gaze control.
type Config struct {
	// Calibration
	InitialHold time.Duration // Steady hold before the first calibration completes
	RecalHold   time.Duration // Steady in-zone hold before zones are silently refreshed
	DeadZone    int           // Pixel margin around each calibrated landmark

	// Scroll debouncing
	Sustain     time.Duration // Continuous-trigger duration before repeated scrolling begins
	RepeatDelay time.Duration // Minimum spacing between repeated scroll actions

	// Sleep
	SleepTimeout time.Duration // No-face duration before entering sleep mode
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		InitialHold:  2 * time.Second,
		RecalHold:    3 * time.Second,
		DeadZone:     20,
		Sustain:      1 * time.Second,
		RepeatDelay:  300 * time.Millisecond,
		SleepTimeout: 5 * time.Second,
	}
}
