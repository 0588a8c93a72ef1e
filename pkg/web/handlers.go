package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Rayan-Ghosh/GazeSync/pkg/hub"
)

// handleStatus returns the current controller status.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(s.status)
}

// handleZones returns the calibrated zones, or 404 before calibration.
func (s *Server) handleZones(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.zones == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not calibrated yet",
		})
	}
	return c.JSON(s.zones)
}

// handleEvents returns the rolling event log.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(s.events)
}

// handleStatusWS streams status updates. The current status is sent once on
// connect, then every change is pushed through the hub.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	if err := c.WriteJSON(status); err != nil {
		c.Close()
		return
	}

	client := hub.NewClient(s.statusHub, c)
	client.Run()
}

// handleEventsWS streams event log entries. Recent history is replayed on
// connect so a fresh dashboard is not empty.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	for _, entry := range events {
		if err := c.WriteJSON(entry); err != nil {
			c.Close()
			return
		}
	}

	client := hub.NewClient(s.eventHub, c)
	client.Run()
}
