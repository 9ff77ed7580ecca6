// FilePath: internal/repository/sqlstore/schema.go
package sqlstore

import "github.com/itsatony/fieldhub/internal/config"

// DDL per driver. Every statement is idempotent.
var (
	registrosDDL = map[string]string{
		config.DriverSQLite: `
CREATE TABLE IF NOT EXISTS registros (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    numero_pacote INTEGER,
    fazenda TEXT,
    dispositivo_id TEXT,
    temperatura REAL,
    u1 REAL,
    u2 REAL,
    u3 REAL,
    u4 REAL,
    u5 REAL,
    fruto TEXT,
    data TEXT,
    hora TEXT,
    ip_local TEXT,
    mac TEXT
)`,
		config.DriverPostgres: `
CREATE TABLE IF NOT EXISTS registros (
    id BIGSERIAL PRIMARY KEY,
    numero_pacote BIGINT,
    fazenda TEXT,
    dispositivo_id TEXT,
    temperatura DOUBLE PRECISION,
    u1 DOUBLE PRECISION,
    u2 DOUBLE PRECISION,
    u3 DOUBLE PRECISION,
    u4 DOUBLE PRECISION,
    u5 DOUBLE PRECISION,
    fruto TEXT,
    data TEXT,
    hora TEXT,
    ip_local TEXT,
    mac TEXT
)`,
	}

	horariosDDL = map[string]string{
		config.DriverSQLite: `
CREATE TABLE IF NOT EXISTS horarios (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    linha INTEGER,
    hora_ligar TEXT,
    hora_desligar TEXT,
    dias TEXT
)`,
		config.DriverPostgres: `
CREATE TABLE IF NOT EXISTS horarios (
    id BIGSERIAL PRIMARY KEY,
    linha BIGINT,
    hora_ligar TEXT,
    hora_desligar TEXT,
    dias TEXT
)`,
	}
)
