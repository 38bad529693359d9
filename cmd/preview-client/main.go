// preview-client connects to a running cardscand and writes the live
// overlay preview frames to disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8090", "cardscand host:port")
	out := flag.String("out", "preview.jpg", "File to write the latest frame to")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/preview", *host)
	fmt.Printf("connecting to %s\n", url)

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.Close()
	}()

	frameCount := 0
	startTime := time.Now()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Printf("\nconnection closed: %v\n", err)
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		frameCount++
		elapsed := time.Since(startTime).Seconds()
		fps := float64(frameCount) / elapsed

		if err := os.WriteFile(*out, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "\nwrite frame: %v\n", err)
			return
		}

		fmt.Printf("\rframe %d | %.1f fps | %d bytes     ", frameCount, fps, len(data))
	}
}
