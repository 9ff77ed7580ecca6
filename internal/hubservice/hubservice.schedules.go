// FilePath: internal/hubservice/hubservice.schedules.go
package hubservice

import (
	"context"
	"strconv"

	"github.com/itsatony/fieldhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ScheduleService handles the persisted timer table
type ScheduleService interface {
	ReplaceSchedule(ctx context.Context, rows []models.ScheduleRow) error
	ListSchedule(ctx context.Context) ([]*models.ScheduleRow, error)
}

// ReplaceSchedule swaps the whole schedule table for rows in one transaction
func (s *HubService) ReplaceSchedule(ctx context.Context, rows []models.ScheduleRow) error {
	if err := s.Schedules.ReplaceAll(ctx, rows); err != nil {
		return err
	}

	nuts.L.Infof("[HubService] Schedule replaced with %d rows", len(rows))
	s.emit(EventScheduleReplaced, strconv.Itoa(len(rows)))
	return nil
}

// ListSchedule returns the stored rows ordered by line
func (s *HubService) ListSchedule(ctx context.Context) ([]*models.ScheduleRow, error) {
	return s.Schedules.List(ctx)
}
