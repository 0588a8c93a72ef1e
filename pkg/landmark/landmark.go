// Package landmark provides face landmark extraction for gaze control.
// A Source yields, per frame, the pixel positions of the three tracked
// head points (forehead, chin, nose bridge) that drive calibration and
// gaze evaluation.
package landmark

// Role identifies a tracked head point.
type Role int

const (
	// Forehead is the top-center point of the face; its vertical position
	// drives the "up" trigger.
	Forehead Role = iota
	// Chin is the bottom-center point; its vertical position drives the
	// "down" trigger.
	Chin
	// NoseBridge is the central point between the eyes; it stabilizes the
	// horizontal average against head tilt.
	NoseBridge

	// NumTracked is the fixed size of the tracked landmark set.
	NumTracked = 3
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case Forehead:
		return "forehead"
	case Chin:
		return "chin"
	case NoseBridge:
		return "nose_bridge"
	default:
		return "unknown"
	}
}

// Roles lists the tracked roles in their fixed order.
var Roles = [NumTracked]Role{Forehead, Chin, NoseBridge}

// Point is a pixel position in frame coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Set is one frame's tracked landmark positions plus the frame dimensions
// used for the normalized-to-pixel conversion.
type Set struct {
	Points      [NumTracked]Point
	FrameWidth  int
	FrameHeight int
}

// Point returns the pixel position for a role.
func (s Set) Point(r Role) Point {
	return s.Points[r]
}

// AvgX returns the mean x coordinate of the tracked set, the horizontal
// gaze signal.
func (s Set) AvgX() int {
	sum := 0
	for _, p := range s.Points {
		sum += p.X
	}
	return sum / NumTracked
}

// Source produces at most one face's landmark set per frame.
type Source interface {
	// Next captures and processes one frame. found is false when no face
	// was detected; err is non-nil only for frame-level failures, which
	// callers should treat as a skipped frame.
	Next() (set Set, found bool, err error)

	// Close releases the capture device and detector.
	Close() error
}
