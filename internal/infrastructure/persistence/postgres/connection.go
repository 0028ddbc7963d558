package postgres

import (
	"database/sql"
	"errors"

	"jobboard/internal/database"
)

// PostgresDB exposes the database/sql view of the shared pgx pool for
// repositories that work with prepared statements.
type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(db database.DB) (*PostgresDB, error) {
	if db == nil || db.SQLDB() == nil {
		return nil, errors.New("nil db")
	}
	return &PostgresDB{db: db.SQLDB()}, nil
}

func (p *PostgresDB) sqlDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.db
}

func (p *PostgresDB) SQLDB() *sql.DB {
	return p.sqlDB()
}
