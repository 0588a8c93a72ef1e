package input

import "sync"

// Mock records simulated input actions for tests.
type Mock struct {
	mu      sync.Mutex
	scrolls []Direction
	zooms   []ZoomMode
}

// NewMock returns an empty recording simulator.
func NewMock() *Mock {
	return &Mock{}
}

// Scroll records the direction.
func (m *Mock) Scroll(d Direction) error {
	m.mu.Lock()
	m.scrolls = append(m.scrolls, d)
	m.mu.Unlock()
	return nil
}

// Zoom records the mode.
func (m *Mock) Zoom(mode ZoomMode) error {
	m.mu.Lock()
	m.zooms = append(m.zooms, mode)
	m.mu.Unlock()
	return nil
}

// Scrolls returns a copy of the recorded scroll directions.
func (m *Mock) Scrolls() []Direction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Direction, len(m.scrolls))
	copy(out, m.scrolls)
	return out
}

// Zooms returns a copy of the recorded zoom modes.
func (m *Mock) Zooms() []ZoomMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ZoomMode, len(m.zooms))
	copy(out, m.zooms)
	return out
}

// Reset clears all recorded actions.
func (m *Mock) Reset() {
	m.mu.Lock()
	m.scrolls = nil
	m.zooms = nil
	m.mu.Unlock()
}
