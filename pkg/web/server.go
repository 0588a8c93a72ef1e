// Package web provides a real-time status dashboard for the controller.
// It mirrors the shared control state, the calibrated zones, and a rolling
// event log over plain JSON endpoints and websocket push.
package web

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/Rayan-Ghosh/GazeSync/internal/log"
	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/gaze"
	"github.com/Rayan-Ghosh/GazeSync/pkg/hub"
	"github.com/Rayan-Ghosh/GazeSync/pkg/landmark"
)

// Status is the dashboard view of the controller state.
type Status struct {
	Mode          string    `json:"mode"`
	ScrollEnabled bool      `json:"scroll_enabled"`
	Calibrated    bool      `json:"calibrated"`
	Calibrating   bool      `json:"calibrating"`
	Asleep        bool      `json:"asleep"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Event is one entry in the rolling dashboard log.
type Event struct {
	Time    string `json:"time"`
	Kind    string `json:"kind"` // scroll, voice, calibration, sleep
	Message string `json:"message"`
}

// maxEvents bounds the rolling event buffer.
const maxEvents = 500

// Server is the web dashboard server. It implements the frame loop's status
// sink and the voice listener's event sink; all updates are buffered under a
// mutex and pushed to websocket clients through broadcast hubs.
type Server struct {
	app  *fiber.App
	port string

	mu     sync.RWMutex
	status Status
	zones  map[string]gaze.Zone
	events []Event

	statusHub *hub.Hub
	eventHub  *hub.Hub
}

var _ gaze.StatusSink = (*Server)(nil)

// NewServer creates a dashboard server for the given mode label.
func NewServer(port, mode string) *Server {
	s := &Server{
		port:      port,
		status:    Status{Mode: mode, ScrollEnabled: true},
		events:    make([]Event, 0, maxEvents),
		statusHub: hub.New("status"),
		eventHub:  hub.New("events"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "GazeSync Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/zones", s.handleZones)
	api.Get("/events", s.handleEvents)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Run starts the hubs and the HTTP listener, and shuts the listener down
// when the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.statusHub.Run(ctx)
	go s.eventHub.Run(ctx)

	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			log.Warn("dashboard shutdown", "error", err)
		}
	}()

	log.Info("web dashboard listening", "addr", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// UpdateControl mirrors the control state snapshot. Part of the frame loop's
// status sink; it must not block.
func (s *Server) UpdateControl(snap control.Snapshot, asleep bool) {
	s.mu.Lock()
	s.status.ScrollEnabled = snap.ScrollEnabled
	s.status.Calibrated = snap.Calibrated
	s.status.Calibrating = !snap.CalibrationStart.IsZero()
	s.status.Asleep = asleep
	s.status.UpdatedAt = time.Now()
	status := s.status
	s.mu.Unlock()

	s.statusHub.BroadcastJSON(status)
}

// UpdateZones mirrors the calibrated zones, keyed by landmark name.
func (s *Server) UpdateZones(zones gaze.Zones) {
	m := make(map[string]gaze.Zone, landmark.NumTracked)
	for _, role := range landmark.Roles {
		m[role.String()] = zones[role]
	}

	s.mu.Lock()
	s.zones = m
	s.mu.Unlock()
}

// AddEvent appends to the rolling event log and pushes it to clients.
func (s *Server) AddEvent(kind, message string) {
	entry := Event{
		Time:    time.Now().Format("15:04:05"),
		Kind:    kind,
		Message: message,
	}

	s.mu.Lock()
	s.events = append(s.events, entry)
	if len(s.events) > maxEvents {
		s.events = s.events[1:]
	}
	s.mu.Unlock()

	s.eventHub.BroadcastJSON(entry)
}
