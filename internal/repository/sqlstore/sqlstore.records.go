// FilePath: internal/repository/sqlstore/sqlstore.records.go
package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/itsatony/fieldhub/internal/database"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/models"
	"github.com/itsatony/fieldhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const recordColumns = `id, numero_pacote, fazenda, dispositivo_id, temperatura,
	u1, u2, u3, u4, u5, fruto, data, hora, ip_local, mac`

type RecordRepo struct {
	BaseRepo
}

func NewRecordRepository(db database.DB) *RecordRepo {
	return &RecordRepo{BaseRepo: BaseRepo{db: db}}
}

// EnsureSchema creates the registros table if it does not exist yet
func (r *RecordRepo) EnsureSchema(ctx context.Context) error {
	return r.ensure(ctx, registrosDDL)
}

// Insert appends a record and returns the id the engine assigned to it.
func (r *RecordRepo) Insert(ctx context.Context, record *models.SensorRecord) (int64, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	query := r.rebind(`
		INSERT INTO registros (
			numero_pacote, fazenda, dispositivo_id, temperatura,
			u1, u2, u3, u4, u5, fruto, data, hora,
			ip_local, mac
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := r.db.GetDB().GetContext(ctx, &id, query,
		record.PacketNumber,
		record.Farm,
		record.DeviceID,
		record.Temperature,
		record.U1,
		record.U2,
		record.U3,
		record.U4,
		record.U5,
		record.Fruit,
		record.Date,
		record.Time,
		record.LocalIP,
		record.MAC,
	)
	if err != nil {
		nuts.L.Errorf("[RecordRepo] Failed to insert record: %v", err)
		return 0, errors.NewStorageError("failed to insert record", err)
	}

	record.ID = id
	return id, nil
}

// ListDesc returns every record, newest first
func (r *RecordRepo) ListDesc(ctx context.Context) ([]*models.SensorRecord, error) {
	return r.list(ctx, "DESC")
}

// ListAsc returns every record, oldest first
func (r *RecordRepo) ListAsc(ctx context.Context) ([]*models.SensorRecord, error) {
	return r.list(ctx, "ASC")
}

func (r *RecordRepo) list(ctx context.Context, order string) ([]*models.SensorRecord, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	records := []*models.SensorRecord{}
	query := `SELECT ` + recordColumns + ` FROM registros ORDER BY id ` + order

	if err := r.db.GetDB().SelectContext(ctx, &records, query); err != nil {
		nuts.L.Errorf("[RecordRepo] Failed to list records: %v", err)
		return nil, errors.NewStorageError("failed to list records", err)
	}
	return records, nil
}

// LatestByDevice returns the newest record uploaded by deviceID.
func (r *RecordRepo) LatestByDevice(ctx context.Context, deviceID string) (*models.SensorRecord, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	record := &models.SensorRecord{}
	query := r.rebind(`SELECT ` + recordColumns + ` FROM registros
		WHERE dispositivo_id = ?
		ORDER BY id DESC
		LIMIT 1`)

	err := r.db.GetDB().GetContext(ctx, record, query, deviceID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("no records for device", repository.ErrNotFound)
		}
		return nil, errors.NewStorageError("failed to get latest record", err)
	}
	return record, nil
}
