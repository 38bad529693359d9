// Package protocol defines the WebSocket message types for the capture
// daemon's preview and status channels. This package is shared between
// cardscand and its preview clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Daemon → Client messages
	TypeFrame  MessageType = "frame"  // Composed overlay frame
	TypeStatus MessageType = "status" // Session state
	TypeNotice MessageType = "notice" // User-visible notification
	TypeResult MessageType = "result" // Processed capture

	// Client → Daemon messages
	TypeCapture MessageType = "capture" // Trigger a capture
	TypeConfig  MessageType = "config"  // Camera configuration update

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// FrameData contains a composed overlay frame
type FrameData struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"` // "jpeg", "png"
	Data    string `json:"data"`   // base64 encoded
	FrameID uint64 `json:"frame_id,omitempty"`
}

// StatusData contains the capture session state
type StatusData struct {
	State   string `json:"state"` // "idle", "capturing", "processing"
	Busy    bool   `json:"busy"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Sharpen bool   `json:"sharpen"`
}

// NoticeData is a user-visible notification (toast)
type NoticeData struct {
	Level   string `json:"level"` // "info", "success", "error"
	Message string `json:"message"`
}

// ResultData describes a processed capture
type ResultData struct {
	ID     string `json:"id"`
	Image  string `json:"image,omitempty"` // base64 encoded PNG
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ConfigData contains camera configuration changes
type ConfigData struct {
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Framerate int    `json:"framerate,omitempty"`
	Quality   int    `json:"quality,omitempty"`
	Preset    string `json:"preset,omitempty"` // "720p", "1080p"
	AfMode    string `json:"af_mode,omitempty"`
}
