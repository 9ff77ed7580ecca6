// FilePath: internal/repository/sqlstore/sqlstore.schedules.go
package sqlstore

import (
	"context"

	"github.com/itsatony/fieldhub/internal/database"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type ScheduleRepo struct {
	BaseRepo
}

func NewScheduleRepository(db database.DB) *ScheduleRepo {
	return &ScheduleRepo{BaseRepo: BaseRepo{db: db}}
}

// EnsureSchema creates the horarios table if it does not exist yet
func (r *ScheduleRepo) EnsureSchema(ctx context.Context) error {
	return r.ensure(ctx, horariosDDL)
}

// ReplaceAll swaps the whole table for rows in one transaction. On any failure
// the previous rows stay in place.
func (r *ScheduleRepo) ReplaceAll(ctx context.Context, rows []models.ScheduleRow) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM horarios`); err != nil {
		return errors.NewStorageError("failed to clear schedule", err)
	}

	insert := tx.Rebind(`
		INSERT INTO horarios (linha, hora_ligar, hora_desligar, dias)
		VALUES (?, ?, ?, ?)`)
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insert, row.Line, row.TurnOn, row.TurnOff, row.Days); err != nil {
			return errors.NewStorageError("failed to insert schedule row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit schedule", err)
	}

	nuts.L.Infof("[ScheduleRepo] Replaced schedule with %d rows", len(rows))
	return nil
}

// List returns the schedule ordered by line number
func (r *ScheduleRepo) List(ctx context.Context) ([]*models.ScheduleRow, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	rows := []*models.ScheduleRow{}
	query := `
		SELECT id, linha, hora_ligar, hora_desligar, dias
		FROM horarios
		ORDER BY linha ASC, id ASC`

	if err := r.db.GetDB().SelectContext(ctx, &rows, query); err != nil {
		nuts.L.Errorf("[ScheduleRepo] Failed to list schedule: %v", err)
		return nil, errors.NewStorageError("failed to list schedule", err)
	}
	return rows, nil
}
