// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"github.com/itsatony/fieldhub/internal/commands"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/mailbox"
	"github.com/itsatony/fieldhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// HubService contains all repositories and the in-memory device state
type HubService struct {
	Records   repository.RecordRepository
	Schedules repository.ScheduleRepository
	// Latest is optional; nil disables the latest-record cache
	Latest   repository.LatestRecordCache
	Mailbox  *mailbox.Mailbox
	Commands *commands.Channel

	events *nuts.EventEmitter
}

// New creates a new HubService instance with a fresh mailbox and command channel
func New(
	records repository.RecordRepository,
	schedules repository.ScheduleRepository,
	latest repository.LatestRecordCache,
) *HubService {
	return &HubService{
		Records:   records,
		Schedules: schedules,
		Latest:    latest,
		Mailbox:   mailbox.New(),
		Commands:  commands.New(),
		events:    nuts.NewEventEmitter(),
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Records == nil {
		return ErrMissingRepository("records")
	}
	if s.Schedules == nil {
		return ErrMissingRepository("schedules")
	}
	if s.Mailbox == nil {
		return ErrMissingDependency("mailbox")
	}
	if s.Commands == nil {
		return ErrMissingDependency("commands")
	}
	if s.events == nil {
		return ErrMissingDependency("events")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
