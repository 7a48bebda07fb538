package ui

import (
	"time"

	"github.com/matheus3301/papirus/internal/action"
)

// FlashMessage is a flash notification with a level and expiry.
type FlashMessage struct {
	Text    string
	Level   action.Level
	Expires time.Time
}

// FlashModel holds the current transient notification. It is owned by the
// application loop and needs no locking.
type FlashModel struct {
	current FlashMessage
	now     func() time.Time
}

// NewFlashModel creates a new flash model.
func NewFlashModel() *FlashModel {
	return &FlashModel{now: time.Now}
}

// Set stores msg with the lifetime of its level.
func (f *FlashModel) Set(msg string, level action.Level) {
	f.current = FlashMessage{
		Text:    msg,
		Level:   level,
		Expires: f.now().Add(flashDuration(level)),
	}
}

// Current returns the current flash message, or nil if expired.
func (f *FlashModel) Current() *FlashMessage {
	if f.current.Text == "" || f.now().After(f.current.Expires) {
		return nil
	}
	m := f.current
	return &m
}

// Expire clears the message once its lifetime is over. Reports whether it did.
func (f *FlashModel) Expire() bool {
	if f.current.Text != "" && f.now().After(f.current.Expires) {
		f.current = FlashMessage{}
		return true
	}
	return false
}

func flashDuration(level action.Level) time.Duration {
	switch level {
	case action.LevelWarn:
		return 8 * time.Second
	case action.LevelError:
		return 10 * time.Second
	default:
		return 5 * time.Second
	}
}
