// FilePath: internal/hubservice/hubservice.records.go
package hubservice

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RecordService handles sensor record ingestion and retrieval
type RecordService interface {
	IngestRecord(ctx context.Context, record *models.SensorRecord) error
	ListRecords(ctx context.Context) ([]*models.SensorRecord, error)
	ExportRecords(ctx context.Context, w io.Writer) error
	LatestRecord(ctx context.Context, deviceID string) (*models.SensorRecord, error)
}

// IngestRecord stores one reading. A cache failure is logged and does not fail the ingestion.
func (s *HubService) IngestRecord(ctx context.Context, record *models.SensorRecord) error {
	if record == nil {
		return errors.NewValidationError("record is required", nil)
	}

	id, err := s.Records.Insert(ctx, record)
	if err != nil {
		return err
	}

	if s.Latest != nil {
		if err := s.Latest.Store(ctx, record); err != nil {
			nuts.L.Warnf("[HubService] Failed to cache record %d: %v", id, err)
		}
	}

	s.emit(EventRecordIngested, strconv.FormatInt(id, 10))
	return nil
}

// ListRecords returns every stored record, newest first
func (s *HubService) ListRecords(ctx context.Context) ([]*models.SensorRecord, error) {
	return s.Records.ListDesc(ctx)
}

// ExportRecords writes all records oldest first as tab-separated text.
// The first line is the header; lines are separated by '\n' with no trailing newline.
func (s *HubService) ExportRecords(ctx context.Context, w io.Writer) error {
	records, err := s.Records.ListAsc(ctx)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(models.RecordColumns, "\t"))
	for _, record := range records {
		bw.WriteByte('\n')
		bw.WriteString(strings.Join(record.Values(), "\t"))
	}
	if err := bw.Flush(); err != nil {
		return errors.NewInternalError("failed to write export", err)
	}
	return nil
}

// LatestRecord returns the newest record of deviceID, reading the cache first
// and refilling it from the store on a miss.
func (s *HubService) LatestRecord(ctx context.Context, deviceID string) (*models.SensorRecord, error) {
	if deviceID == "" {
		return nil, errors.NewValidationError("device id is required", nil)
	}

	if s.Latest != nil {
		record, err := s.Latest.Get(ctx, deviceID)
		if err == nil {
			return record, nil
		}
		if !errors.IsNotFound(err) {
			nuts.L.Warnf("[HubService] Latest record cache unavailable for %s: %v", deviceID, err)
		}
	}

	record, err := s.Records.LatestByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if s.Latest != nil {
		if err := s.Latest.Store(ctx, record); err != nil {
			nuts.L.Warnf("[HubService] Failed to refill cache for %s: %v", deviceID, err)
		}
	}
	return record, nil
}
