package voice

import (
	"testing"
	"time"

	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/gaze"
	"github.com/Rayan-Ghosh/GazeSync/pkg/input"
)

func newDispatcher(mode Mode) (*Dispatcher, *control.State, *input.Mock) {
	state := control.New()
	sim := input.NewMock()
	deb := gaze.NewDebouncer(gaze.DefaultConfig(), state, sim)
	return NewDispatcher(mode, state, sim, deb), state, sim
}

func TestDispatcher_StopStart(t *testing.T) {
	d, state, _ := newDispatcher(ModeVoiceGaze)
	now := time.Now()

	if !d.Dispatch(CmdStop, now) {
		t.Fatal("stop should apply")
	}
	if state.ScrollEnabled() {
		t.Error("stop must disable scrolling")
	}

	if !d.Dispatch(CmdStart, now) {
		t.Fatal("start should apply")
	}
	if !state.ScrollEnabled() {
		t.Error("start must re-enable scrolling")
	}
}

func TestDispatcher_StopDoesNotTouchCalibration(t *testing.T) {
	d, state, _ := newDispatcher(ModeVoiceGaze)
	state.SetCalibrated(true)

	d.Dispatch(CmdStop, time.Now())
	if !state.Calibrated() {
		t.Error("stop must leave calibration intact")
	}
}

func TestDispatcher_Recalibrate(t *testing.T) {
	d, state, _ := newDispatcher(ModeVoiceGaze)
	state.SetCalibrated(true)
	state.SetRecalTimerStart(time.Now())
	now := time.Now().Add(time.Second)

	if !d.Dispatch(CmdRecalibrate, now) {
		t.Fatal("recalibrate should apply")
	}
	if state.Calibrated() {
		t.Error("recalibrate must drop calibration")
	}
	start, ok := state.CalibrationStart()
	if !ok || !start.Equal(now) {
		t.Errorf("calibration hold should restart at dispatch time, got %v %v", start, ok)
	}
	if _, ok := state.RecalTimerStart(); ok {
		t.Error("recalibrate must clear the auto-recal timer")
	}
}

func TestDispatcher_Zoom(t *testing.T) {
	d, _, sim := newDispatcher(ModeVoiceGaze)
	now := time.Now()

	d.Dispatch(CmdZoomIn, now)
	d.Dispatch(CmdZoomOut, now)
	d.Dispatch(CmdZoomReset, now)

	want := []input.ZoomMode{input.ZoomIn, input.ZoomOut, input.ZoomReset}
	got := sim.Zooms()
	if len(got) != len(want) {
		t.Fatalf("zooms = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("zoom %d = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestDispatcher_DirectionalVoiceOnly(t *testing.T) {
	d, _, sim := newDispatcher(ModeVoiceOnly)

	if !d.Dispatch(CmdScrollLeft, time.Now()) {
		t.Fatal("directional command should apply in voice-only mode")
	}
	scrolls := sim.Scrolls()
	if len(scrolls) != 1 || scrolls[0] != input.Left {
		t.Errorf("scrolls = %v; want [left]", scrolls)
	}
}

func TestDispatcher_DirectionalIgnoredWithGaze(t *testing.T) {
	d, _, sim := newDispatcher(ModeVoiceGaze)

	if d.Dispatch(CmdScrollDown, time.Now()) {
		t.Error("directional command must not apply in voice+gaze mode")
	}
	if len(sim.Scrolls()) != 0 {
		t.Errorf("scrolls = %v; want none", sim.Scrolls())
	}
}

func TestDispatcher_DirectionalRespectsScrollEnabled(t *testing.T) {
	d, state, sim := newDispatcher(ModeVoiceOnly)
	state.SetScrollEnabled(false)

	if d.Dispatch(CmdScrollUp, time.Now()) {
		t.Error("directional command must not apply while scrolling is disabled")
	}
	if len(sim.Scrolls()) != 0 {
		t.Errorf("scrolls = %v; want none", sim.Scrolls())
	}

	// Zoom and control commands still work while scrolling is disabled.
	if !d.Dispatch(CmdZoomIn, time.Now()) {
		t.Error("zoom should apply regardless of scroll state")
	}
}
