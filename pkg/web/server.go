// Package web exposes the capture daemon over HTTP and websockets: session
// control, capture trigger, live overlay preview, camera configuration,
// and the desktop-handoff QR code.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/cardscan/go-cardscan/internal/log"
	"github.com/cardscan/go-cardscan/pkg/camera"
	"github.com/cardscan/go-cardscan/pkg/hub"
	"github.com/cardscan/go-cardscan/pkg/notify"
	"github.com/cardscan/go-cardscan/pkg/processor"
	"github.com/cardscan/go-cardscan/pkg/protocol"
	"github.com/cardscan/go-cardscan/pkg/qr"
	"github.com/cardscan/go-cardscan/pkg/session"
)

// noticeBuffer is how many recent notifications are kept for late joiners.
const noticeBuffer = 100

// Server is the capture daemon's HTTP/websocket surface.
type Server struct {
	app  *fiber.App
	port string

	sess   *session.Session
	camMgr *camera.Manager
	links  *qr.Store

	// Recent notifications (toasts) for clients that connect late
	notices   []notify.Notification
	noticesMu sync.RWMutex

	// Hubs for websocket broadcast
	previewHub *hub.Hub
	statusHub  *hub.Hub
}

// NewServer creates the server around a session. The server registers
// itself as the session's frame sink so preview clients see the composed
// overlay frames.
func NewServer(port string, sess *session.Session, camMgr *camera.Manager, links *qr.Store) *Server {
	s := &Server{
		port:       port,
		sess:       sess,
		camMgr:     camMgr,
		links:      links,
		notices:    make([]notify.Notification, 0, noticeBuffer),
		previewHub: hub.New("preview"),
		statusHub:  hub.New("status"),
	}

	sess.OnFrame = func(jpegData []byte, width, height int, frameID uint64) {
		s.previewHub.BroadcastBinary(jpegData)
	}
	// Config patches reach the live session and its camera source.
	camMgr.OnConfigChange = sess.ApplyCameraConfig
	sess.OnResult = func(res *processor.Result) {
		if msg, err := protocol.NewResultMessage(res.ID, "", res.Width, res.Height); err == nil {
			s.broadcast(msg)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "cardscan",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/session/start", s.handleStart)
	api.Post("/session/stop", s.handleStop)
	api.Post("/capture", s.handleCapture)
	api.Get("/preview", s.handlePreview)
	api.Get("/notices", s.handleGetNotices)
	api.Get("/config", s.handleGetConfig)
	api.Patch("/config", s.handlePatchConfig)
	api.Get("/handoff", s.handleHandoff)
	api.Get("/handoff/qr", s.handleHandoffQR)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start starts the web server and its broadcast hubs.
func (s *Server) Start() error {
	log.Info("capture API listening", "port", s.port)

	go s.previewHub.Run()
	go s.statusHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "err", err)
		}
	}()
}

// Notify implements notify.Notifier: the toast is buffered for late
// joiners and broadcast to status clients.
func (s *Server) Notify(n notify.Notification) {
	s.noticesMu.Lock()
	s.notices = append(s.notices, n)
	if len(s.notices) > noticeBuffer {
		s.notices = s.notices[1:]
	}
	s.noticesMu.Unlock()

	if msg, err := protocol.NewNoticeMessage(n.Level, n.Message); err == nil {
		s.broadcast(msg)
	}
}

// broadcast pushes a protocol message to all status clients.
func (s *Server) broadcast(msg *protocol.Message) {
	data, err := msg.Bytes()
	if err != nil {
		return
	}
	s.statusHub.Broadcast(hub.NewJSONMessage(data))
}

// broadcastStatus pushes the current session state to all status clients.
func (s *Server) broadcastStatus() {
	w, h := s.sess.Dims()
	msg, err := protocol.NewStatusMessage(s.sess.State().String(), s.sess.Busy(), w, h, s.sess.Sharpening())
	if err != nil {
		return
	}
	s.broadcast(msg)
}

// PreviewHub returns the preview hub for external use.
func (s *Server) PreviewHub() *hub.Hub {
	return s.previewHub
}

// StatusHub returns the status hub for external use.
func (s *Server) StatusHub() *hub.Hub {
	return s.statusHub
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
