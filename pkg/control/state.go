// Package control holds the shared control state coordinated between the
// frame-processing loop and the voice-command loop. All access goes through
// a single mutex; every write is an idempotent latest-value-wins assignment,
// so no ordering guarantees beyond visibility are needed between the two
// loops.
package control

import (
	"sync"
	"time"
)

// State is the shared mutable control state. The voice loop flips
// ScrollEnabled and forces recalibration; the frame loop owns the
// calibration fields. Both may read concurrently.
type State struct {
	mu sync.RWMutex

	scrollEnabled bool
	calibrated    bool

	// Zero time means "unset" for both timers.
	calibrationStart time.Time
	recalTimerStart  time.Time
}

// Snapshot is a consistent copy of the state for status reporting.
type Snapshot struct {
	ScrollEnabled    bool      `json:"scroll_enabled"`
	Calibrated       bool      `json:"calibrated"`
	CalibrationStart time.Time `json:"calibration_start,omitzero"`
	RecalTimerStart  time.Time `json:"recal_timer_start,omitzero"`
}

// New returns the startup state: scrolling enabled, not yet calibrated.
func New() *State {
	return &State{scrollEnabled: true}
}

// ScrollEnabled reports whether scroll actions may be emitted.
func (s *State) ScrollEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollEnabled
}

// SetScrollEnabled is called by the voice dispatcher on start/stop commands.
func (s *State) SetScrollEnabled(enabled bool) {
	s.mu.Lock()
	s.scrollEnabled = enabled
	s.mu.Unlock()
}

// Calibrated reports whether calibration zones currently exist.
func (s *State) Calibrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calibrated
}

// SetCalibrated marks the initial calibration as complete (or not).
func (s *State) SetCalibrated(calibrated bool) {
	s.mu.Lock()
	s.calibrated = calibrated
	s.mu.Unlock()
}

// CalibrationStart returns the initial-calibration hold start.
// The bool is false when the timer is unset.
func (s *State) CalibrationStart() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calibrationStart, !s.calibrationStart.IsZero()
}

// SetCalibrationStart records the start of the initial-calibration hold.
func (s *State) SetCalibrationStart(t time.Time) {
	s.mu.Lock()
	s.calibrationStart = t
	s.mu.Unlock()
}

// ClearCalibrationStart unsets the initial-calibration hold timer.
func (s *State) ClearCalibrationStart() {
	s.mu.Lock()
	s.calibrationStart = time.Time{}
	s.mu.Unlock()
}

// RecalTimerStart returns the auto-recalibration hysteresis start.
// The bool is false when the timer is unset.
func (s *State) RecalTimerStart() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recalTimerStart, !s.recalTimerStart.IsZero()
}

// SetRecalTimerStart records the start of the auto-recalibration hold.
func (s *State) SetRecalTimerStart(t time.Time) {
	s.mu.Lock()
	s.recalTimerStart = t
	s.mu.Unlock()
}

// ClearRecalTimer unsets the auto-recalibration hold timer.
func (s *State) ClearRecalTimer() {
	s.mu.Lock()
	s.recalTimerStart = time.Time{}
	s.mu.Unlock()
}

// ForceRecalibration drops the current calibration and restarts the
// initial-calibration hold at now. Used by the voice "recalibrate" command.
func (s *State) ForceRecalibration(now time.Time) {
	s.mu.Lock()
	s.calibrated = false
	s.calibrationStart = now
	s.recalTimerStart = time.Time{}
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of all fields.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ScrollEnabled:    s.scrollEnabled,
		Calibrated:       s.calibrated,
		CalibrationStart: s.calibrationStart,
		RecalTimerStart:  s.recalTimerStart,
	}
}
