// FilePath: internal/mailbox/mailbox.go

// Package mailbox hands asynchronous schedule instructions from web clients to
// the polling device. It holds at most one pending edit and one pending read
// request; a poll drains at most one of them, edits first.
package mailbox

import (
	"encoding/json"
	"sync"
)

// Kind tells the device what a poll delivered
type Kind string

const (
	KindNone        Kind = "none"
	KindEditor      Kind = "editor"
	KindReadRequest Kind = "readRequest"
)

// State is the combination of the two pending slots.
type State string

const (
	StateIdle               State = "idle"
	StateEditPending        State = "editPending"
	StateReadPending        State = "readPending"
	StateEditAndReadPending State = "editAndReadPending"
)

// Delivery is the result of a poll. Payload is set only for KindEditor.
type Delivery struct {
	Kind    Kind
	Payload json.RawMessage
}

// Mailbox is safe for concurrent use. The zero value is an idle mailbox.
type Mailbox struct {
	mu            sync.Mutex
	pendingEdit   json.RawMessage
	readRequested bool
}

// New creates an idle mailbox
func New() *Mailbox {
	return &Mailbox{}
}

// SubmitEdit replaces any pending edit with payload
func (m *Mailbox) SubmitEdit(payload json.RawMessage) {
	edit := make(json.RawMessage, len(payload))
	copy(edit, payload)

	m.mu.Lock()
	m.pendingEdit = edit
	m.mu.Unlock()
}

// RequestRead asks the device to upload its schedule on a later poll.
func (m *Mailbox) RequestRead() {
	m.mu.Lock()
	m.readRequested = true
	m.mu.Unlock()
}

// Poll drains one pending instruction. A pending edit wins and leaves the
// read request in place for the next poll.
func (m *Mailbox) Poll() Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingEdit != nil {
		edit := m.pendingEdit
		m.pendingEdit = nil
		return Delivery{Kind: KindEditor, Payload: edit}
	}
	if m.readRequested {
		m.readRequested = false
		return Delivery{Kind: KindReadRequest}
	}
	return Delivery{Kind: KindNone}
}

// State reports what is pending without draining anything.
func (m *Mailbox) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.pendingEdit != nil && m.readRequested:
		return StateEditAndReadPending
	case m.pendingEdit != nil:
		return StateEditPending
	case m.readRequested:
		return StateReadPending
	default:
		return StateIdle
	}
}
