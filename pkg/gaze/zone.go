package gaze

import "github.com/Rayan-Ghosh/GazeSync/pkg/landmark"

// Zone is the neutral tolerance rectangle around a calibrated landmark
// position. Head movement outside it triggers scrolling.
type Zone struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Contains reports whether the point lies inside the zone (inclusive).
func (z Zone) Contains(p landmark.Point) bool {
	return z.Left <= p.X && p.X <= z.Right && z.Top <= p.Y && p.Y <= z.Bottom
}

// ZoneFor builds the zone centered on a landmark's position, expanded by
// the dead-zone margin on every side.
func ZoneFor(p landmark.Point, deadZone int) Zone {
	return Zone{
		Left:   p.X - deadZone,
		Right:  p.X + deadZone,
		Top:    p.Y - deadZone,
		Bottom: p.Y + deadZone,
	}
}

// Zones holds one zone per tracked landmark, in landmark.Roles order.
// Zones are always replaced wholesale on (re)calibration, never partially.
type Zones [landmark.NumTracked]Zone

// SnapshotZones builds a full zone set from the current landmark positions.
func SnapshotZones(set landmark.Set, deadZone int) Zones {
	var z Zones
	for _, role := range landmark.Roles {
		z[role] = ZoneFor(set.Point(role), deadZone)
	}
	return z
}

// AllInside reports whether every tracked landmark lies inside its zone.
// This is the auto-recalibration hold condition.
func (z Zones) AllInside(set landmark.Set) bool {
	for _, role := range landmark.Roles {
		if !z[role].Contains(set.Point(role)) {
			return false
		}
	}
	return true
}

// Conditions are the four per-direction trigger booleans produced each
// frame; they are the sole input to the scroll debouncer.
type Conditions struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Evaluate derives the trigger conditions from the current landmark
// positions and the calibrated zones. Horizontal triggers compare the mean
// x of the tracked set against the overall zone bounds; vertical triggers
// compare the forehead and chin against their own zones. No smoothing is
// applied beyond the dead-zone margins themselves.
func Evaluate(set landmark.Set, zones Zones) Conditions {
	overallLeft := zones[0].Left
	overallRight := zones[0].Right
	for _, z := range zones[1:] {
		if z.Left < overallLeft {
			overallLeft = z.Left
		}
		if z.Right > overallRight {
			overallRight = z.Right
		}
	}

	avgX := set.AvgX()
	return Conditions{
		Left:  avgX < overallLeft,
		Right: avgX > overallRight,
		Up:    set.Point(landmark.Forehead).Y < zones[landmark.Forehead].Top,
		Down:  set.Point(landmark.Chin).Y > zones[landmark.Chin].Bottom,
	}
}
