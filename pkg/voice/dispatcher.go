package voice

import (
	"time"

	"github.com/Rayan-Ghosh/GazeSync/internal/log"
	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/gaze"
	"github.com/Rayan-Ghosh/GazeSync/pkg/input"
)

// Mode selects which input channels drive scrolling.
type Mode int

const (
	// ModeVoiceGaze runs both the camera loop and the voice loop; scroll
	// comes from gaze, voice handles the control commands.
	ModeVoiceGaze Mode = iota
	// ModeVoiceOnly runs the voice loop alone; the directional voice
	// commands become the only way to scroll.
	ModeVoiceOnly
)

func (m Mode) String() string {
	if m == ModeVoiceOnly {
		return "voice-only"
	}
	return "voice+gaze"
}

// Dispatcher applies recognized commands to the control state, the zoom
// simulator, and the scroll path.
type Dispatcher struct {
	mode      Mode
	state     *control.State
	sim       input.Simulator
	debouncer *gaze.Debouncer
}

// NewDispatcher creates a dispatcher. The debouncer carries one-shot scrolls
// for directional commands; it may be nil in voice+gaze mode where those
// commands are ignored anyway.
func NewDispatcher(mode Mode, state *control.State, sim input.Simulator, debouncer *gaze.Debouncer) *Dispatcher {
	return &Dispatcher{mode: mode, state: state, sim: sim, debouncer: debouncer}
}

// Dispatch executes one command. It returns whether the command had an
// effect: directional commands are dropped outside voice-only mode and while
// scrolling is disabled.
func (d *Dispatcher) Dispatch(cmd Command, now time.Time) bool {
	switch cmd {
	case CmdStop:
		d.state.SetScrollEnabled(false)
		return true

	case CmdStart:
		d.state.SetScrollEnabled(true)
		return true

	case CmdRecalibrate:
		d.state.ForceRecalibration(now)
		return true

	case CmdZoomIn:
		return d.zoom(input.ZoomIn)
	case CmdZoomOut:
		return d.zoom(input.ZoomOut)
	case CmdZoomReset:
		return d.zoom(input.ZoomReset)

	case CmdScrollUp:
		return d.scroll(input.Up)
	case CmdScrollDown:
		return d.scroll(input.Down)
	case CmdScrollLeft:
		return d.scroll(input.Left)
	case CmdScrollRight:
		return d.scroll(input.Right)
	}
	return false
}

func (d *Dispatcher) zoom(mode input.ZoomMode) bool {
	if err := d.sim.Zoom(mode); err != nil {
		log.Warn("zoom failed", "mode", mode, "error", err)
		return false
	}
	return true
}

// scroll emits one directional action. Spoken directions are only honored in
// voice-only mode and while scrolling is enabled; in voice+gaze mode the
// gaze loop owns scrolling.
func (d *Dispatcher) scroll(dir input.Direction) bool {
	if d.mode != ModeVoiceOnly || d.debouncer == nil {
		return false
	}
	if !d.state.ScrollEnabled() {
		return false
	}
	d.debouncer.ScrollOnce(dir)
	return true
}
