// Package input simulates OS-level scroll, key, and zoom input.
package input

// Direction is a scroll/navigation direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all directions in a fixed order for iteration.
var Directions = [4]Direction{Up, Down, Left, Right}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ZoomMode selects a zoom action.
type ZoomMode int

const (
	ZoomIn ZoomMode = iota
	ZoomOut
	ZoomReset
)

// String returns the zoom mode name.
func (m ZoomMode) String() string {
	switch m {
	case ZoomIn:
		return "in"
	case ZoomOut:
		return "out"
	case ZoomReset:
		return "reset"
	default:
		return "unknown"
	}
}

const (
	// ScrollAmount is the vertical scroll delta per action.
	ScrollAmount = 300

	// NavKeyRepeat is how many times the arrow key is pressed per
	// horizontal action, a deliberately larger jump than a single press.
	NavKeyRepeat = 3
)

// Simulator injects input events into the OS.
type Simulator interface {
	// Scroll performs one scroll action: a vertical wheel delta for
	// up/down, repeated arrow key presses for left/right.
	Scroll(d Direction) error

	// Zoom performs one zoom hotkey action.
	Zoom(m ZoomMode) error
}
