package gaze

import (
	"sync"
	"time"

	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/landmark"
)

// CalEvent describes what a calibration step did.
type CalEvent int

const (
	// CalNone means no calibration state changed this frame.
	CalNone CalEvent = iota
	// CalHoldStarted means the initial-calibration hold timer was armed.
	CalHoldStarted
	// CalCompleted means initial calibration finished and zones now exist.
	CalCompleted
	// CalRecalPending means the auto-recalibration hold timer was armed.
	CalRecalPending
	// CalRecalibrated means zones were silently re-centered.
	CalRecalibrated
)

// Calibrator establishes and refreshes the calibrated zones.
//
// Initial calibration: once a face is present, the hold timer is armed and
// zones are snapshotted after InitialHold of wall-clock time. The timer is
// wall-clock, not attendance-gated: a face dropout during the hold does not
// reset it. This is documented behavior, not a bug.
//
// Auto recalibration: while calibrated, holding every tracked landmark
// inside its zone for RecalHold re-centers all zones on the current
// positions. Any interruption clears the hold timer with no partial credit.
type Calibrator struct {
	cfg   Config
	state *control.State

	mu    sync.RWMutex
	zones Zones
}

// NewCalibrator creates a calibrator bound to the shared control state.
func NewCalibrator(cfg Config, state *control.State) *Calibrator {
	return &Calibrator{cfg: cfg, state: state}
}

// Zones returns the current calibrated zones. Only meaningful while the
// control state reports calibrated.
func (c *Calibrator) Zones() Zones {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.zones
}

// Step runs one frame of calibration logic. It must only be called on
// frames where a face was detected; frames without a face suspend
// calibration entirely (the wall-clock hold timer keeps running).
func (c *Calibrator) Step(set landmark.Set, now time.Time) CalEvent {
	if !c.state.Calibrated() {
		return c.stepInitial(set, now)
	}
	return c.stepAuto(set, now)
}

func (c *Calibrator) stepInitial(set landmark.Set, now time.Time) CalEvent {
	start, ok := c.state.CalibrationStart()
	if !ok {
		c.state.SetCalibrationStart(now)
		return CalHoldStarted
	}
	if now.Sub(start) < c.cfg.InitialHold {
		return CalNone
	}

	c.setZones(SnapshotZones(set, c.cfg.DeadZone))
	c.state.SetCalibrated(true)
	c.state.ClearCalibrationStart()
	return CalCompleted
}

func (c *Calibrator) stepAuto(set landmark.Set, now time.Time) CalEvent {
	if !c.Zones().AllInside(set) {
		c.state.ClearRecalTimer()
		return CalNone
	}

	start, ok := c.state.RecalTimerStart()
	if !ok {
		c.state.SetRecalTimerStart(now)
		return CalRecalPending
	}
	if now.Sub(start) < c.cfg.RecalHold {
		return CalNone
	}

	c.setZones(SnapshotZones(set, c.cfg.DeadZone))
	c.state.ClearRecalTimer()
	return CalRecalibrated
}

func (c *Calibrator) setZones(z Zones) {
	c.mu.Lock()
	c.zones = z
	c.mu.Unlock()
}
