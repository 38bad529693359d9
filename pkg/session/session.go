// Package session owns the capture session lifecycle: the camera source,
// the guide-overlay render loop, and the state machine gating captures.
package session

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"sync"
	"time"

	"github.com/cardscan/go-cardscan/internal/log"
	"github.com/cardscan/go-cardscan/pkg/camera"
	"github.com/cardscan/go-cardscan/pkg/guide"
	"github.com/cardscan/go-cardscan/pkg/notify"
	"github.com/cardscan/go-cardscan/pkg/overlay"
	"github.com/cardscan/go-cardscan/pkg/processor"
	"github.com/cardscan/go-cardscan/pkg/upload"
)

// FrameSink receives composed overlay frames from the render loop.
type FrameSink func(jpegData []byte, width, height int, frameID uint64)

// ResultSink receives processed captures.
type ResultSink func(res *processor.Result)

// Config configures a capture session.
type Config struct {
	// Camera is the acquisition configuration.
	Camera camera.Config

	// Guide is the positioning rectangle.
	Guide guide.Rect

	// Instruction is the line rendered above the guide window.
	Instruction string

	// Sharpen enables the sharpening pass on captures.
	Sharpen bool

	// AutoStop stops the session after a successful upload. With AutoStop
	// off, the session keeps capturing and retains the last result for
	// preview.
	AutoStop bool
}

// DefaultConfig returns the single-shot capture configuration: sharpening
// off, session stops after the first successful upload.
func DefaultConfig() Config {
	return Config{
		Camera:      camera.DefaultConfig(),
		Guide:       guide.Default(),
		Instruction: overlay.DefaultInstruction,
		AutoStop:    true,
	}
}

// Session drives one camera from start to stop. At most one is active at
// a time; the Session exclusively owns its camera source for its lifetime.
type Session struct {
	cfg      Config
	source   camera.Source
	proc     *processor.Processor
	notifier notify.Notifier

	// OnFrame, if set, receives every composed overlay frame.
	OnFrame FrameSink

	// OnResult, if set, receives every successful capture.
	OnResult ResultSink

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	loopDone  chan struct{}
	lastFrame image.Image
	frameID   uint64
}

// New creates a session around the given camera source and uploader.
func New(cfg Config, source camera.Source, up upload.Uploader, notifier notify.Notifier) *Session {
	if notifier == nil {
		notifier = notify.Discard
	}
	proc := processor.New(up)
	proc.Guide = cfg.Guide
	proc.Sharpen = cfg.Sharpen
	proc.Retain = !cfg.AutoStop

	return &Session{
		cfg:      cfg,
		source:   source,
		proc:     proc,
		notifier: notifier,
		state:    StateIdle,
	}
}

// SetNotifier replaces the notification target. Used when the presenting
// surface (the web server) is constructed after the session.
func (s *Session) SetNotifier(n notify.Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == nil {
		n = notify.Discard
	}
	s.notifier = n
}

// ApplyCameraConfig pushes new camera settings to the session and its
// source. Resolution, framerate, and autofocus apply when the camera is
// next opened; the preview JPEG quality applies to the live loop
// immediately. Wired as the camera Manager's change callback.
func (s *Session) ApplyCameraConfig(cfg camera.Config) error {
	s.mu.Lock()
	s.cfg.Camera = cfg
	s.mu.Unlock()
	s.source.SetConfig(cfg)
	return nil
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether the camera is open (capturing or processing).
func (s *Session) Active() bool {
	return s.State() != StateIdle
}

// Busy reports whether a capture is currently processing.
func (s *Session) Busy() bool {
	return s.proc.Busy()
}

// LastResult returns the most recent retained capture, or nil.
func (s *Session) LastResult() *processor.Result {
	return s.proc.Last()
}

// Sharpening reports whether captures run the sharpening pass.
func (s *Session) Sharpening() bool {
	return s.cfg.Sharpen
}

// Dims returns the live frame dimensions, or zeros when idle.
func (s *Session) Dims() (int, int) {
	if !s.Active() {
		return 0, 0
	}
	return s.source.Dims()
}

// Start opens the camera and launches the render loop. On camera failure
// it emits an error notification and leaves the session idle so the user
// can retry.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyActive
	}

	if err := s.source.Open(); err != nil {
		s.mu.Unlock()
		s.notifier.Notify(notify.Error("Camera unavailable. Check permissions and try again."))
		log.Warn("camera open failed", "err", err)
		return fmt.Errorf("session: %w", err)
	}

	next, err := Next(s.state, EventStart)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loopDone = make(chan struct{})
	framerate := s.cfg.Camera.Framerate
	go s.renderLoop(loopCtx, s.loopDone, framerate)
	s.mu.Unlock()

	log.Info("session started", "framerate", framerate)
	return nil
}

// Stop tears the session down: cancels the render loop, closes the camera,
// and returns to Idle. Idempotent; safe to call when already stopped. An
// in-flight upload is not cancelled and still clears its own flag.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	s.state, _ = Next(s.state, EventStop)
	cancel := s.cancel
	done := s.loopDone
	s.cancel = nil
	s.loopDone = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	if err := s.source.Close(); err != nil {
		log.Warn("camera close failed", "err", err)
	}
	log.Info("session stopped")
}

// Capture snapshots the live frame and runs it through the processor.
// It is a no-op (ErrNotCapturing) unless the session is capturing, which
// also rejects a second capture while one is still processing.
func (s *Session) Capture(ctx context.Context) (*processor.Result, error) {
	s.mu.Lock()
	if s.state != StateCapturing {
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("%w (state %s)", ErrNotCapturing, state)
	}
	s.state, _ = Next(s.state, EventCapture)
	frame := s.lastFrame
	s.mu.Unlock()

	if frame == nil {
		// Render loop has not delivered yet; read straight off the device.
		var err error
		frame, err = s.source.Read()
		if err != nil {
			s.settle(EventUploadFail)
			s.notifier.Notify(notify.Error("Could not read a frame from the camera."))
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	res, err := s.proc.Capture(ctx, frame)
	if err != nil {
		s.settle(EventUploadFail)
		s.notifier.Notify(notify.Error("Upload failed. Please try again."))
		return nil, err
	}

	s.settle(EventUploadOK)
	s.notifier.Notify(notify.Success("ID card captured."))
	if s.OnResult != nil {
		s.OnResult(res)
	}

	if s.cfg.AutoStop {
		s.Stop()
	}
	return res, nil
}

// settle returns the state machine from Processing once an upload settles,
// unless the session was stopped in the meantime.
func (s *Session) settle(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateProcessing {
		return
	}
	s.state, _ = Next(s.state, e)
}

// renderLoop reads frames at the configured rate, composes the guide
// overlay, and hands the encoded frame to the sink. It re-arms only while
// the session is active and self-terminates on cancellation, so a stopped
// session never schedules another draw.
func (s *Session) renderLoop(ctx context.Context, done chan struct{}, framerate int) {
	defer close(done)

	if framerate <= 0 {
		framerate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(framerate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.State() == StateIdle {
				return
			}
			s.drawFrame()
		}
	}
}

// drawFrame renders one overlay frame and publishes it.
func (s *Session) drawFrame() {
	frame, err := s.source.Read()
	if err != nil {
		log.Debug("frame read failed", "err", err)
		return
	}

	s.mu.Lock()
	s.lastFrame = frame
	s.frameID++
	id := s.frameID
	sink := s.OnFrame
	quality := s.cfg.Camera.Quality
	s.mu.Unlock()

	if sink == nil {
		return
	}

	composed := overlay.Compose(frame, s.cfg.Guide, s.cfg.Instruction)

	var buf bytes.Buffer
	if quality <= 0 {
		quality = 85
	}
	if err := jpeg.Encode(&buf, composed, &jpeg.Options{Quality: quality}); err != nil {
		log.Warn("frame encode failed", "err", err)
		return
	}

	b := composed.Bounds()
	sink(buf.Bytes(), b.Dx(), b.Dy(), id)
}
