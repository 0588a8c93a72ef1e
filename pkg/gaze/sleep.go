package gaze

import "time"

// SleepMonitor suppresses the visual feed after a prolonged absence of a
// detected face. Sleep is presentation-only: it never touches the control
// state or the debounce timers.
type SleepMonitor struct {
	timeout      time.Duration
	lastFaceSeen time.Time
	asleep       bool
}

// NewSleepMonitor creates a monitor. The face is considered seen at start
// so the monitor does not fire before the first frame arrives.
func NewSleepMonitor(timeout time.Duration, now time.Time) *SleepMonitor {
	return &SleepMonitor{timeout: timeout, lastFaceSeen: now}
}

// Observe records one frame's face presence and returns whether the sleep
// state flipped this frame along with the current state. A detected face
// wakes the monitor immediately; absence longer than the timeout puts it
// to sleep.
func (m *SleepMonitor) Observe(faceFound bool, now time.Time) (changed, asleep bool) {
	if faceFound {
		m.lastFaceSeen = now
		if m.asleep {
			m.asleep = false
			return true, false
		}
		return false, false
	}

	if !m.asleep && now.Sub(m.lastFaceSeen) > m.timeout {
		m.asleep = true
		return true, true
	}
	return false, m.asleep
}

// Asleep reports the current sleep state.
func (m *SleepMonitor) Asleep() bool {
	return m.asleep
}
