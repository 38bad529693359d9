package web

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/cardscan/go-cardscan/pkg/hub"
	"github.com/cardscan/go-cardscan/pkg/processor"
	"github.com/cardscan/go-cardscan/pkg/protocol"
	"github.com/cardscan/go-cardscan/pkg/qr"
	"github.com/cardscan/go-cardscan/pkg/session"
)

// handleStatus returns the current session state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	w, h := s.sess.Dims()
	return c.JSON(protocol.StatusData{
		State:   s.sess.State().String(),
		Busy:    s.sess.Busy(),
		Width:   w,
		Height:  h,
		Sharpen: s.sess.Sharpening(),
	})
}

// handleStart opens the camera and begins the render loop
func (s *Server) handleStart(c *fiber.Ctx) error {
	err := s.sess.Start(context.Background())
	if err != nil {
		if errors.Is(err, session.ErrAlreadyActive) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "session already active",
			})
		}
		// Camera unavailable: recoverable, the client may retry
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.broadcastStatus()
	return c.JSON(fiber.Map{"state": s.sess.State().String()})
}

// handleStop tears the session down. Safe to call when already stopped.
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.sess.Stop()
	s.broadcastStatus()
	return c.JSON(fiber.Map{"state": s.sess.State().String()})
}

// handleCapture snapshots and processes the current frame
func (s *Server) handleCapture(c *fiber.Ctx) error {
	res, err := s.sess.Capture(context.Background())
	s.broadcastStatus()
	if err != nil {
		if errors.Is(err, session.ErrNotCapturing) || errors.Is(err, processor.ErrBusy) {
			// Capture trigger is gated server-side while processing
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(res)
}

// handlePreview returns the last retained capture
func (s *Server) handlePreview(c *fiber.Ctx) error {
	res := s.sess.LastResult()
	if res == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no capture retained",
		})
	}
	return c.JSON(res)
}

// handleGetNotices returns recent notifications
func (s *Server) handleGetNotices(c *fiber.Ctx) error {
	s.noticesMu.RLock()
	defer s.noticesMu.RUnlock()
	return c.JSON(s.notices)
}

// handleGetConfig returns the current camera configuration
func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	return c.JSON(s.camMgr.GetConfigJSON())
}

// handlePatchConfig updates camera configuration fields
func (s *Server) handlePatchConfig(c *fiber.Ctx) error {
	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON body",
		})
	}

	if err := s.camMgr.UpdateConfig(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s.camMgr.GetConfigJSON())
}

// handleHandoff issues a mobile handoff link for desktop clients
func (s *Server) handleHandoff(c *fiber.Ctx) error {
	link, err := s.links.Issue()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(link)
}

// handleHandoffQR renders a handoff link as a QR code PNG.
// Wide-viewport clients show this instead of the capture UI.
func (s *Server) handleHandoffQR(c *fiber.Ctx) error {
	link, err := s.links.Issue()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	size := qr.DefaultSize
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 2048 {
			size = n
		}
	}

	png, err := qr.PNG(link, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// handlePreviewWS streams composed overlay frames to a client
func (s *Server) handlePreviewWS(c *websocket.Conn) {
	client := hub.NewClient(s.previewHub, c)
	client.Run() // Blocks until connection closes
}

// handleStatusWS streams status and notices to a client
func (s *Server) handleStatusWS(c *websocket.Conn) {
	// Send the current state so late joiners render immediately
	w, h := s.sess.Dims()
	if msg, err := protocol.NewStatusMessage(s.sess.State().String(), s.sess.Busy(), w, h, s.sess.Sharpening()); err == nil {
		if data, err := msg.Bytes(); err == nil {
			c.WriteMessage(websocket.TextMessage, data)
		}
	}

	client := hub.NewClient(s.statusHub, c)
	client.Run() // Blocks until connection closes
}
