// FilePath: internal/commands/channel.go

// Package commands holds the dashboard-to-device status channel: a sticky LED
// token and a message that is handed out once.
package commands

import "sync"

// DefaultLed is the LED token before any command arrives.
const DefaultLed = "off"

// Status is what a status read returns
type Status struct {
	Led     string `json:"led"`
	Message string `json:"mensagem"`
}

// Channel is safe for concurrent use.
type Channel struct {
	mu      sync.Mutex
	led     string
	message string
}

// New creates a channel with the LED set to DefaultLed and no message
func New() *Channel {
	return &Channel{led: DefaultLed}
}

// SetLed stores token verbatim until the next SetLed.
func (c *Channel) SetLed(token string) {
	c.mu.Lock()
	c.led = token
	c.mu.Unlock()
}

// Led returns the current token without touching the message
func (c *Channel) Led() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.led
}

// SetMessage replaces any undelivered message.
func (c *Channel) SetMessage(text string) {
	c.mu.Lock()
	c.message = text
	c.mu.Unlock()
}

// ReadStatus returns the LED token and the message, clearing the message.
func (c *Channel) ReadStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{Led: c.led, Message: c.message}
	c.message = ""
	return status
}
