package protocol

import (
	"encoding/base64"
)

// NewFrameMessage creates a frame message from raw JPEG data
func NewFrameMessage(width, height int, jpegData []byte, frameID uint64) (*Message, error) {
	return NewMessage(TypeFrame, FrameData{
		Width:   width,
		Height:  height,
		Format:  "jpeg",
		Data:    base64.StdEncoding.EncodeToString(jpegData),
		FrameID: frameID,
	})
}

// NewStatusMessage creates a status message
func NewStatusMessage(state string, busy bool, width, height int, sharpen bool) (*Message, error) {
	return NewMessage(TypeStatus, StatusData{
		State:   state,
		Busy:    busy,
		Width:   width,
		Height:  height,
		Sharpen: sharpen,
	})
}

// NewNoticeMessage creates a notification message
func NewNoticeMessage(level, text string) (*Message, error) {
	return NewMessage(TypeNotice, NoticeData{
		Level:   level,
		Message: text,
	})
}

// NewResultMessage creates a capture result message
func NewResultMessage(id, imageB64 string, width, height int) (*Message, error) {
	return NewMessage(TypeResult, ResultData{
		ID:     id,
		Image:  imageB64,
		Width:  width,
		Height: height,
	})
}

// NewPingMessage creates a ping message
func NewPingMessage() (*Message, error) {
	return NewMessage(TypePing, nil)
}

// NewPongMessage creates a pong message
func NewPongMessage() (*Message, error) {
	return NewMessage(TypePong, nil)
}
