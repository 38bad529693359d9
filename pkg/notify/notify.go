// Package notify carries user-visible notifications (toasts) from the
// capture pipeline to whatever surface presents them. Capture failures
// are recoverable, so a notification is the only side effect of an error
// the user needs to see.
package notify

import "time"

// Notification levels.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is one user-visible message.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier presents notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(n Notification)

// Notify calls f.
func (f Func) Notify(n Notification) { f(n) }

// Discard is a Notifier that drops everything, for tests and headless runs.
var Discard = Func(func(Notification) {})

// New builds a notification stamped with the current time.
func New(level, message string) Notification {
	return Notification{Level: level, Message: message, Time: time.Now()}
}

// Info builds an info notification.
func Info(message string) Notification { return New(LevelInfo, message) }

// Success builds a success notification.
func Success(message string) Notification { return New(LevelSuccess, message) }

// Error builds an error notification.
func Error(message string) Notification { return New(LevelError, message) }
