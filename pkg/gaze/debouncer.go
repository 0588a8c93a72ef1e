package gaze

import (
	"sync"
	"time"

	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/input"
)

// dirState tracks one direction's trigger timing.
// startTime is non-zero iff the trigger condition has been continuously
// true since it was last set.
type dirState struct {
	startTime  time.Time
	lastScroll time.Time
}

// Debouncer turns a sustained per-direction boolean condition into discrete
// scroll actions: one action on the rising edge, then a repeat stream at
// RepeatDelay intervals once the condition has held for Sustain.
type Debouncer struct {
	cfg   Config
	state *control.State
	sim   input.Simulator

	mu   sync.Mutex
	dirs [4]dirState

	// OnScroll is called after each emitted action (for the event log).
	OnScroll func(d input.Direction)
}

// NewDebouncer creates a debouncer emitting actions through sim.
func NewDebouncer(cfg Config, state *control.State, sim input.Simulator) *Debouncer {
	return &Debouncer{cfg: cfg, state: state, sim: sim}
}

// Process runs one frame of the debounce state machine for a direction.
//
// With scrolling disabled no action is emitted and the per-direction timer
// state is left untouched, not reset. On the rising edge one action fires
// immediately; while the condition holds, repeats start after Sustain and
// fire every RepeatDelay. A false condition returns the direction to idle.
func (d *Debouncer) Process(dir input.Direction, condition bool, now time.Time) {
	if !d.state.ScrollEnabled() {
		return
	}

	d.mu.Lock()
	st := &d.dirs[dir]

	if !condition {
		st.startTime = time.Time{}
		d.mu.Unlock()
		return
	}

	fire := false
	if st.startTime.IsZero() {
		st.startTime = now
		st.lastScroll = now
		fire = true
	} else if now.Sub(st.startTime) >= d.cfg.Sustain && now.Sub(st.lastScroll) >= d.cfg.RepeatDelay {
		st.lastScroll = now
		fire = true
	}
	d.mu.Unlock()

	if fire {
		d.emit(dir)
	}
}

// ProcessAll runs one frame of the state machine for all four directions.
func (d *Debouncer) ProcessAll(c Conditions, now time.Time) {
	d.Process(input.Left, c.Left, now)
	d.Process(input.Right, c.Right, now)
	d.Process(input.Up, c.Up, now)
	d.Process(input.Down, c.Down, now)
}

// ScrollOnce emits exactly one scroll action, bypassing the debounce state
// machine. Voice-triggered directional commands use this path.
func (d *Debouncer) ScrollOnce(dir input.Direction) {
	d.emit(dir)
}

func (d *Debouncer) emit(dir input.Direction) {
	// Injection failures are per-cycle transient; the next trigger retries.
	_ = d.sim.Scroll(dir)
	if d.OnScroll != nil {
		d.OnScroll(dir)
	}
}
