// FilePath: internal/hubservice/hubservice.device.go
package hubservice

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/itsatony/fieldhub/internal/commands"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/mailbox"
)

// DeviceService handles the in-memory exchange with the field device
type DeviceService interface {
	SubmitScheduleEdit(payload json.RawMessage) error
	RequestScheduleRead()
	PollDevice() mailbox.Delivery
	MailboxState() mailbox.State
	SetLed(token string)
	SetMessage(text string)
	ReadStatus() commands.Status
	Led() string
}

// SubmitScheduleEdit queues payload for the device, replacing any undelivered edit.
// An empty or null payload is rejected.
func (s *HubService) SubmitScheduleEdit(payload json.RawMessage) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.NewValidationError("edit payload is required", nil)
	}
	if !json.Valid(trimmed) {
		return errors.NewValidationError("edit payload is not valid JSON", nil)
	}

	s.Mailbox.SubmitEdit(trimmed)
	s.emit(EventScheduleEditSubmitted, strconv.Itoa(len(trimmed)))
	return nil
}

// RequestScheduleRead asks the device to upload its schedule on a later poll
func (s *HubService) RequestScheduleRead() {
	s.Mailbox.RequestRead()
	s.emit(EventScheduleReadRequested, "")
}

// PollDevice drains at most one pending instruction for the device
func (s *HubService) PollDevice() mailbox.Delivery {
	delivery := s.Mailbox.Poll()
	s.emit(EventDevicePolled, string(delivery.Kind))
	return delivery
}

func (s *HubService) MailboxState() mailbox.State {
	return s.Mailbox.State()
}

func (s *HubService) SetLed(token string) {
	s.Commands.SetLed(token)
}

func (s *HubService) SetMessage(text string) {
	s.Commands.SetMessage(text)
}

// ReadStatus returns the LED token and drains the pending message
func (s *HubService) ReadStatus() commands.Status {
	return s.Commands.ReadStatus()
}

func (s *HubService) Led() string {
	return s.Commands.Led()
}
