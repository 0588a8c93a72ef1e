package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// RobotgoSimulator injects events via the robotgo library. It drives the
// desktop the user is looking at, so there is exactly one per process.
type RobotgoSimulator struct{}

// NewRobotgo returns a Simulator backed by robotgo.
func NewRobotgo() *RobotgoSimulator {
	return &RobotgoSimulator{}
}

// Scroll performs one scroll action.
func (s *RobotgoSimulator) Scroll(d Direction) error {
	switch d {
	case Up:
		robotgo.Scroll(0, ScrollAmount)
	case Down:
		robotgo.Scroll(0, -ScrollAmount)
	case Left, Right:
		for i := 0; i < NavKeyRepeat; i++ {
			if err := robotgo.KeyTap(d.String()); err != nil {
				return fmt.Errorf("input: key tap %s: %w", d, err)
			}
		}
	default:
		return fmt.Errorf("input: unknown direction %d", d)
	}
	return nil
}

// Zoom performs one zoom hotkey action (browser-style ctrl shortcuts).
func (s *RobotgoSimulator) Zoom(m ZoomMode) error {
	var key string
	switch m {
	case ZoomIn:
		key = "+"
	case ZoomOut:
		key = "-"
	case ZoomReset:
		key = "0"
	default:
		return fmt.Errorf("input: unknown zoom mode %d", m)
	}
	if err := robotgo.KeyTap(key, "ctrl"); err != nil {
		return fmt.Errorf("input: zoom %s: %w", m, err)
	}
	return nil
}
