package gaze

import (
	"testing"
	"time"

	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/landmark"
)

func TestCalibrator_InitialCalibration(t *testing.T) {
	cfg := DefaultConfig()
	state := control.New()
	cal := NewCalibrator(cfg, state)
	set := centeredSet(320, 240)
	t0 := time.Now()

	// First frame arms the hold timer, no zones yet.
	if ev := cal.Step(set, t0); ev != CalHoldStarted {
		t.Fatalf("first step = %v; want CalHoldStarted", ev)
	}
	if state.Calibrated() {
		t.Fatal("must not be calibrated before the hold elapses")
	}

	// Still holding at 1.9s.
	if ev := cal.Step(set, t0.Add(1900*time.Millisecond)); ev != CalNone {
		t.Errorf("step before hold elapsed = %v; want CalNone", ev)
	}

	// Hold satisfied at 2.0s: zones snapshot from the current positions.
	moved := centeredSet(330, 245)
	if ev := cal.Step(moved, t0.Add(2*time.Second)); ev != CalCompleted {
		t.Fatalf("step at hold boundary = %v; want CalCompleted", ev)
	}
	if !state.Calibrated() {
		t.Error("state should be calibrated")
	}
	if _, ok := state.CalibrationStart(); ok {
		t.Error("calibration start should be cleared")
	}

	// Zone geometry per contract: (x-dz, x+dz, y-dz, y+dz).
	z := cal.Zones()[landmark.NoseBridge]
	want := Zone{Left: 310, Right: 350, Top: 225, Bottom: 265}
	if z != want {
		t.Errorf("nose bridge zone = %+v; want %+v", z, want)
	}
}

func TestCalibrator_WallClockHoldSurvivesDropout(t *testing.T) {
	// A face dropout during the hold does not reset the timer; the step is
	// simply not called for faceless frames, and wall-clock time still
	// accumulates.
	cfg := DefaultConfig()
	state := control.New()
	cal := NewCalibrator(cfg, state)
	set := centeredSet(320, 240)
	t0 := time.Now()

	cal.Step(set, t0)
	// Face returns 2.5s later; the hold has already elapsed.
	if ev := cal.Step(set, t0.Add(2500*time.Millisecond)); ev != CalCompleted {
		t.Errorf("step after dropout = %v; want CalCompleted", ev)
	}
}

func calibrated(t *testing.T, cfg Config, state *control.State, set landmark.Set, t0 time.Time) *Calibrator {
	t.Helper()
	cal := NewCalibrator(cfg, state)
	cal.Step(set, t0)
	if ev := cal.Step(set, t0.Add(cfg.InitialHold)); ev != CalCompleted {
		t.Fatalf("setup calibration failed: %v", ev)
	}
	return cal
}

func TestCalibrator_AutoRecalibration(t *testing.T) {
	cfg := DefaultConfig()
	state := control.New()
	set := centeredSet(320, 240)
	t0 := time.Now()
	cal := calibrated(t, cfg, state, set, t0)
	base := t0.Add(cfg.InitialHold)

	// Drift within the zones: hold timer arms.
	drifted := centeredSet(330, 245)
	if ev := cal.Step(drifted, base.Add(time.Second)); ev != CalRecalPending {
		t.Fatalf("in-zone step = %v; want CalRecalPending", ev)
	}

	// Still inside at +2.9s of hold: nothing yet.
	if ev := cal.Step(drifted, base.Add(time.Second).Add(2900*time.Millisecond)); ev != CalNone {
		t.Errorf("step before recal hold = %v; want CalNone", ev)
	}

	// 3s of continuous hold: zones re-center on the current positions.
	if ev := cal.Step(drifted, base.Add(time.Second).Add(3*time.Second)); ev != CalRecalibrated {
		t.Fatalf("step at recal hold = %v; want CalRecalibrated", ev)
	}
	if _, ok := state.RecalTimerStart(); ok {
		t.Error("recal timer should be cleared after refresh")
	}

	z := cal.Zones()[landmark.NoseBridge]
	want := Zone{Left: 310, Right: 350, Top: 225, Bottom: 265}
	if z != want {
		t.Errorf("refreshed zone = %+v; want %+v", z, want)
	}
}

func TestCalibrator_RecalInterruptionNoPartialCredit(t *testing.T) {
	cfg := DefaultConfig()
	state := control.New()
	set := centeredSet(320, 240)
	t0 := time.Now()
	cal := calibrated(t, cfg, state, set, t0)
	base := t0.Add(cfg.InitialHold)
	original := cal.Zones()

	// Arm the hold, then leave the zones at 2.5s.
	cal.Step(set, base.Add(time.Second))
	outside := centeredSet(320+50, 240)
	if ev := cal.Step(outside, base.Add(time.Second).Add(2500*time.Millisecond)); ev != CalNone {
		t.Errorf("out-of-zone step = %v; want CalNone", ev)
	}
	if _, ok := state.RecalTimerStart(); ok {
		t.Error("interruption must clear the hold timer immediately")
	}

	// Coming back inside restarts the hold from scratch.
	if ev := cal.Step(set, base.Add(5*time.Second)); ev != CalRecalPending {
		t.Errorf("return step = %v; want CalRecalPending (fresh hold)", ev)
	}
	if cal.Zones() != original {
		t.Error("zones must be unchanged after an interrupted hold")
	}
}

func TestCalibrator_VoiceForcedRecalibration(t *testing.T) {
	cfg := DefaultConfig()
	state := control.New()
	set := centeredSet(320, 240)
	t0 := time.Now()
	cal := calibrated(t, cfg, state, set, t0)

	// Voice dispatcher forces recalibration.
	forcedAt := t0.Add(10 * time.Second)
	state.ForceRecalibration(forcedAt)

	// Next frame re-enters the initial-calibration path; the hold was
	// already armed by the voice command.
	if ev := cal.Step(set, forcedAt.Add(time.Second)); ev != CalNone {
		t.Errorf("step during forced hold = %v; want CalNone", ev)
	}
	if ev := cal.Step(set, forcedAt.Add(cfg.InitialHold)); ev != CalCompleted {
		t.Errorf("step after forced hold = %v; want CalCompleted", ev)
	}
}
