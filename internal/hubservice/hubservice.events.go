// FilePath: internal/hubservice/hubservice.events.go
package hubservice

import (
	nuts "github.com/vaudience/go-nuts"
)

// Hub events. The subject passed to handlers is noted per event.
const (
	// EventRecordIngested carries the stored record id
	EventRecordIngested = "record.ingested"
	// EventScheduleReplaced carries the number of rows written
	EventScheduleReplaced = "schedule.replaced"
	// EventScheduleEditSubmitted carries the payload size in bytes
	EventScheduleEditSubmitted = "schedule.edit_submitted"
	// EventScheduleReadRequested carries an empty subject
	EventScheduleReadRequested = "schedule.read_requested"
	// EventDevicePolled carries the delivered mailbox kind
	EventDevicePolled = "device.polled"
)

// Events lists every event the hub emits
var Events = []string{
	EventRecordIngested,
	EventScheduleReplaced,
	EventScheduleEditSubmitted,
	EventScheduleReadRequested,
	EventDevicePolled,
}

// On registers a callback for a hub event. Handlers run synchronously on the emitting request.
func (s *HubService) On(event string, handler func(subject string)) {
	if _, err := s.events.On(event, nuts.NID("hdl", 8), handler); err != nil {
		nuts.L.Errorf("[HubService] Failed to subscribe to %s: %v", event, err)
	}
}

func (s *HubService) emit(event, subject string) {
	if err := s.events.Emit(event, subject); err != nil {
		nuts.L.Errorf("[HubService] Failed to emit %s: %v", event, err)
	}
}
