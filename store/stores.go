// Package store provides arenas persisted in PostgreSQL.
package store

import (
	"context"
	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lefinal/flier/errors"
	"go.uber.org/zap"
)

// querier is the part of pgxpool.Pool the Mall uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// Mall implements all database operations.
type Mall struct {
	logger *zap.Logger
	// db is the actual database to perform operations in.
	db querier
	// dialect is the SQL dialect for building queries.
	dialect goqu.DialectWrapper
}

// NewMall creates a new Mall using the given database. It uses the PostgreSQL
// dialect for queries.
func NewMall(logger *zap.Logger, db *pgxpool.Pool) *Mall {
	return newMall(logger, db)
}

func newMall(logger *zap.Logger, db querier) *Mall {
	return &Mall{
		logger:  logger,
		db:      db,
		dialect: goqu.Dialect("postgres"),
	}
}

// Connect connects to the database with the given connection string and tests
// the connection.
func Connect(ctx context.Context, connStr string, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, errors.Error{
			Code:    errors.ErrFatal,
			Kind:    errors.KindDB,
			Err:     err,
			Message: "parse connection string",
		}
	}
	poolConfig.MaxConns = maxConns
	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Error{
			Code:    errors.ErrFatal,
			Kind:    errors.KindDB,
			Err:     err,
			Message: "connect to database",
		}
	}
	err = testConnection(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "test connection", nil)
	}
	return pool, nil
}

// testConnection queries 1.
func testConnection(ctx context.Context, db querier) error {
	q, _, err := goqu.Dialect("postgres").Select(goqu.V(1)).ToSQL()
	if err != nil {
		return errors.NewQueryToSQLError(err, nil)
	}
	rows, err := db.Query(ctx, q)
	if err != nil {
		return errors.NewExecQueryError(err, "test query", q)
	}
	defer rows.Close()
	if !rows.Next() {
		return errors.Error{
			Code:    errors.ErrFatal,
			Kind:    errors.KindDB,
			Err:     rows.Err(),
			Message: "test query returned no rows",
		}
	}
	var got int
	err = rows.Scan(&got)
	if err != nil {
		return errors.NewScanDBRowError(err, "scan test query result", q)
	}
	return nil
}
