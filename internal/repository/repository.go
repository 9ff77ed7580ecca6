// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/itsatony/fieldhub/internal/database"
	"github.com/itsatony/fieldhub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
)

// RecordRepository is the append-only store of sensor readings
type RecordRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, record *models.SensorRecord) (int64, error)
	ListDesc(ctx context.Context) ([]*models.SensorRecord, error)
	ListAsc(ctx context.Context) ([]*models.SensorRecord, error)
	LatestByDevice(ctx context.Context, deviceID string) (*models.SensorRecord, error)
}

// ScheduleRepository stores the on/off timer table; the only mutation is a full replace.
type ScheduleRepository interface {
	database.Repository
	EnsureSchema(ctx context.Context) error
	ReplaceAll(ctx context.Context, rows []models.ScheduleRow) error
	List(ctx context.Context) ([]*models.ScheduleRow, error)
}

// LatestRecordCache keeps the newest record of each device in a fast store
type LatestRecordCache interface {
	Store(ctx context.Context, record *models.SensorRecord) error
	Get(ctx context.Context, deviceID string) (*models.SensorRecord, error)
}
