// Package notify is the transient status banner shown to the user:
// migration results, persistence trouble, rejected mutations. One
// notification is live at a time; pushing replaces it, dismissing
// clears it.
package notify

// Tone classifies a notification for display.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
)

type Notification struct {
	Tone    Tone
	Message string
}

// Notifier is the sink the core components push through. A nil Notifier
// is valid everywhere and drops messages.
type Notifier interface {
	Push(tone Tone, message string)
}

// Center holds the latest notification.
type Center struct {
	current *Notification
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Push(tone Tone, message string) {
	c.current = &Notification{Tone: tone, Message: message}
}

// Current returns the live notification, or nil when dismissed.
func (c *Center) Current() *Notification {
	return c.current
}

func (c *Center) Dismiss() {
	c.current = nil
}
