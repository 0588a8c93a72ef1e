package gaze

import (
	"context"
	"time"

	"github.com/Rayan-Ghosh/GazeSync/internal/log"
	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/input"
	"github.com/Rayan-Ghosh/GazeSync/pkg/landmark"
)

// StatusSink receives frame-loop state updates for presentation.
// All methods must be non-blocking.
type StatusSink interface {
	UpdateControl(snap control.Snapshot, asleep bool)
	UpdateZones(zones Zones)
	AddEvent(kind, message string)
}

// Engine is the frame-processing loop. Each cycle it polls the landmark
// source and runs the calibrator, gaze evaluator, scroll debouncer, and
// sleep monitor synchronously. The camera read paces the loop.
type Engine struct {
	cfg    Config
	source landmark.Source
	state  *control.State

	calibrator *Calibrator
	debouncer  *Debouncer
	sleep      *SleepMonitor

	sink StatusSink
}

// NewEngine wires the frame-loop components together.
func NewEngine(cfg Config, source landmark.Source, state *control.State, sim input.Simulator) *Engine {
	return &Engine{
		cfg:        cfg,
		source:     source,
		state:      state,
		calibrator: NewCalibrator(cfg, state),
		debouncer:  NewDebouncer(cfg, state, sim),
		sleep:      NewSleepMonitor(cfg.SleepTimeout, time.Now()),
	}
}

// SetStatusSink attaches a presentation sink (the web dashboard).
func (e *Engine) SetStatusSink(sink StatusSink) {
	e.sink = sink
	if sink != nil {
		e.debouncer.OnScroll = func(d input.Direction) {
			sink.AddEvent("scroll", "scroll "+d.String())
		}
	}
}

// Debouncer exposes the scroll debouncer so the voice dispatcher can issue
// one-shot scrolls through the same simulator path.
func (e *Engine) Debouncer() *Debouncer {
	return e.debouncer
}

// Run executes the frame loop until the context is cancelled. A single
// frame read failure skips the frame; the loop itself only ends with the
// context.
func (e *Engine) Run(ctx context.Context) error {
	log.Info("gaze engine started",
		"initial_hold", e.cfg.InitialHold,
		"recal_hold", e.cfg.RecalHold,
		"dead_zone", e.cfg.DeadZone,
	)
	log.Info("hold your head steady to calibrate", "duration", e.cfg.InitialHold)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		set, found, err := e.source.Next()
		if err != nil {
			// Transient: skip this frame, the next poll retries.
			log.Debug("frame skipped", "error", err)
			continue
		}

		e.processFrame(set, found, time.Now())
	}
}

// processFrame runs one synchronous cycle of all frame-path components.
func (e *Engine) processFrame(set landmark.Set, found bool, now time.Time) {
	if changed, asleep := e.sleep.Observe(found, now); changed {
		if asleep {
			log.Info("no face detected, entering sleep mode")
			e.event("sleep", "entering sleep mode")
		} else {
			log.Info("face detected, waking up")
			e.event("sleep", "waking up")
		}
	}

	if found {
		switch e.calibrator.Step(set, now) {
		case CalHoldStarted:
			log.Debug("calibration hold started")
		case CalCompleted:
			log.Info("initial calibration complete")
			e.event("calibration", "initial calibration complete")
			e.pushZones()
		case CalRecalPending:
			log.Debug("recalibrating soon")
		case CalRecalibrated:
			log.Info("recalibrated")
			e.event("calibration", "zones re-centered")
			e.pushZones()
		}

		if e.state.Calibrated() {
			e.debouncer.ProcessAll(Evaluate(set, e.calibrator.Zones()), now)
		}
	}

	if e.sink != nil {
		e.sink.UpdateControl(e.state.Snapshot(), e.sleep.Asleep())
	}
}

func (e *Engine) event(kind, msg string) {
	if e.sink != nil {
		e.sink.AddEvent(kind, msg)
	}
}

func (e *Engine) pushZones() {
	if e.sink != nil {
		e.sink.UpdateZones(e.calibrator.Zones())
	}
}
