package web

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-handcar/pkg/actions"
	"github.com/teslashibe/go-handcar/pkg/hub"
	"github.com/teslashibe/go-handcar/pkg/signaling"
)

// handleRelay forwards a browser offer upstream and returns the answer.
func (s *Server) handleRelay(c *fiber.Ctx) error {
	if s.negotiator == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("relay not configured")
	}

	offer := string(c.Body())
	if strings.TrimSpace(offer) == "" {
		return c.Status(fiber.StatusBadRequest).SendString("empty offer")
	}

	answer, err := s.negotiator.Negotiate(c.UserContext(), offer)
	if err != nil {
		s.logger.Error("relay negotiation failed", "error", err)
		var te *signaling.TransportError
		if errors.As(err, &te) {
			return c.Status(fiber.StatusBadGateway).SendString("upstream negotiation failed")
		}
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	c.Set(fiber.HeaderContentType, signaling.ContentTypeSDP)
	return c.SendString(answer)
}

// handleState returns the current session snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.session.Snapshot())
}

// handleListActions returns the action definitions.
func (s *Server) handleListActions(c *fiber.Ctx) error {
	return c.JSON(actions.Tools())
}

// handleInvoke runs an action by name with the request body as arguments.
func (s *Server) handleInvoke(c *fiber.Ctx) error {
	name := c.Params("name")
	callID := uuid.NewString()
	c.Set("X-Call-ID", callID)

	result, err := s.session.Invoke(c.UserContext(), name, c.Body())
	switch {
	case errors.Is(err, actions.ErrUnknownAction):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Info("manual action", "call_id", callID, "name", name, "success", result.Success())
	return c.JSON(result)
}

// handleStateWS streams session snapshots.
func (s *Server) handleStateWS(c *websocket.Conn) {
	hub.NewClient(s.states, c).Run()
}
