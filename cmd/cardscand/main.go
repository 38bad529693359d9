// cardscand is the ID-card capture daemon: it owns the camera, runs the
// guide-overlay render loop, and serves capture, preview, and handoff
// endpoints.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardscan/go-cardscan/internal/config"
	"github.com/cardscan/go-cardscan/internal/log"
	"github.com/cardscan/go-cardscan/pkg/camera"
	"github.com/cardscan/go-cardscan/pkg/qr"
	"github.com/cardscan/go-cardscan/pkg/session"
	"github.com/cardscan/go-cardscan/pkg/upload"
	"github.com/cardscan/go-cardscan/pkg/web"
)

func main() {
	port := flag.String("port", config.Port(), "HTTP listen port")
	device := flag.Int("device", config.CameraDevice(), "Capture device index")
	uploadURL := flag.String("upload-url", config.UploadURL(), "Upload endpoint (empty = mock uploader)")
	handoffURL := flag.String("handoff-url", config.HandoffURL(), "Mobile capture URL for the desktop QR code")
	sharpen := flag.Bool("sharpen", false, "Apply the sharpening pass to captures")
	autoStop := flag.Bool("auto-stop", false, "Stop the session after a successful upload")
	mockCamera := flag.Bool("mock-camera", false, "Use a synthetic camera source (no hardware)")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	// Camera configuration, adjustable at runtime via the API.
	camMgr := camera.NewManager()
	camCfg := camMgr.GetConfig()
	camCfg.Device = *device
	if err := camMgr.SetConfig(camCfg); err != nil {
		log.Error("invalid camera config", "err", err)
		os.Exit(1)
	}

	var source camera.Source
	if *mockCamera {
		log.Warn("using synthetic camera source")
		source = camera.NewMock()
	} else {
		source = camera.NewWebcam(camMgr.GetConfig())
	}

	var uploader upload.Uploader
	if *uploadURL != "" {
		uploader = upload.NewHTTP(*uploadURL)
		log.Info("uploading captures", "url", *uploadURL)
	} else {
		uploader = upload.NewMock()
		log.Warn("no upload URL configured, captures go to the mock uploader")
	}

	sessCfg := session.DefaultConfig()
	sessCfg.Camera = camMgr.GetConfig()
	sessCfg.Sharpen = *sharpen
	sessCfg.AutoStop = *autoStop

	sess := session.New(sessCfg, source, uploader, nil)
	links := qr.NewStore(*handoffURL)

	server := web.NewServer(*port, sess, camMgr, links)
	sess.SetNotifier(server)

	// Graceful shutdown: the camera must never be leaked.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		sess.Stop()
		server.Shutdown()
		cancel()
	}()

	if err := server.Start(); err != nil {
		log.Error("server exited", "err", err)
		sess.Stop()
		os.Exit(1)
	}

	<-ctx.Done()
}
