package protocol

import (
	"encoding/base64"
	"testing"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "frame message",
			msgType: TypeFrame,
			data:    FrameData{Width: 640, Height: 480, Format: "jpeg"},
			wantErr: false,
		},
		{
			name:    "status message",
			msgType: TypeStatus,
			data:    StatusData{State: "capturing", Busy: false},
			wantErr: false,
		},
		{
			name:    "nil data",
			msgType: TypePing,
			data:    nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if msg == nil && !tt.wantErr {
				t.Error("NewMessage() returned nil message")
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	msg, err := NewFrameMessage(1280, 720, jpeg, 42)
	if err != nil {
		t.Fatalf("NewFrameMessage() error: %v", err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage() error: %v", err)
	}
	if parsed.Type != TypeFrame {
		t.Errorf("parsed type = %v, want %v", parsed.Type, TypeFrame)
	}

	var frame FrameData
	if err := parsed.ParseData(&frame); err != nil {
		t.Fatalf("ParseData() error: %v", err)
	}
	if frame.Width != 1280 || frame.Height != 720 || frame.FrameID != 42 {
		t.Errorf("frame metadata lost in round trip: %+v", frame)
	}

	decoded, err := base64.StdEncoding.DecodeString(frame.Data)
	if err != nil {
		t.Fatalf("frame data is not valid base64: %v", err)
	}
	if string(decoded) != string(jpeg) {
		t.Error("frame payload lost in round trip")
	}
}

func TestNoticeMessage(t *testing.T) {
	msg, err := NewNoticeMessage("error", "Camera access denied")
	if err != nil {
		t.Fatalf("NewNoticeMessage() error: %v", err)
	}

	var notice NoticeData
	if err := msg.ParseData(&notice); err != nil {
		t.Fatalf("ParseData() error: %v", err)
	}
	if notice.Level != "error" || notice.Message != "Camera access denied" {
		t.Errorf("unexpected notice: %+v", notice)
	}
}

func TestParseMessageInvalid(t *testing.T) {
	if _, err := ParseMessage([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
