// FilePath: internal/repository/sqlstore/sqlstore.baserepo.go
package sqlstore

import (
	"context"

	"github.com/itsatony/fieldhub/internal/config"
	"github.com/itsatony/fieldhub/internal/database"
	"github.com/itsatony/fieldhub/internal/errors"
)

// BaseRepo carries the connection and dialect shared by all sql repositories
type BaseRepo struct {
	db database.DB
}

func (r *BaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewStorageError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return errors.NewStorageError("failed to ping database", err)
	}
	return nil
}

// rebind rewrites "?" placeholders for the connected driver
func (r *BaseRepo) rebind(query string) string {
	return r.db.GetDB().Rebind(query)
}

// ensure runs the driver's DDL for one table
func (r *BaseRepo) ensure(ctx context.Context, ddl map[string]string) error {
	stmt, ok := ddl[r.db.Driver()]
	if !ok {
		stmt = ddl[config.DriverSQLite]
	}
	if _, err := r.db.GetDB().ExecContext(ctx, stmt); err != nil {
		return errors.NewStorageError("failed to initialize schema", err)
	}
	return nil
}
