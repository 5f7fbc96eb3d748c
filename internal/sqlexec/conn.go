// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"

	"carrental/cli/internal/dsn"

	"github.com/jackc/pgx/v5"
)

// Rows is the cursor returned by Conn.Query. pgx.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Conn is a single exclusive database connection.
type Conn interface {
	// Exec runs a statement and reports the number of rows affected.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close(ctx context.Context) error
}

// Connector dials a new connection to the named database.
type Connector interface {
	Connect(ctx context.Context, database string) (Conn, error)
}

// PgxConnector opens one unpooled pgx connection per Connect call, using the
// server address of Base and the given credentials. With SimpleProtocol set
// every statement, queries included, goes over the simple query protocol.
type PgxConnector struct {
	Base           *dsn.Info
	User           string
	Password       string
	SimpleProtocol bool
}

// NewPgxConnector creates a connector for the server described by base.
func NewPgxConnector(base *dsn.Info, user, password string) *PgxConnector {
	return &PgxConnector{Base: base, User: user, Password: password}
}

// DSN returns the connection string Connect would use for database.
func (c *PgxConnector) DSN(database string) string {
	return c.Base.WithDatabase(database).WithCredentials(c.User, c.Password).String()
}

// Config returns the pgx configuration Connect would use for database.
func (c *PgxConnector) Config(database string) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(c.DSN(database))
	if err != nil {
		return nil, err
	}
	if c.SimpleProtocol {
		cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	return cfg, nil
}

// Connect dials database.
func (c *PgxConnector) Connect(ctx context.Context, database string) (Conn, error) {
	cfg, err := c.Config(database)
	if err != nil {
		return nil, err
	}
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pgxConn{conn}, nil
}

type pgxConn struct {
	conn *pgx.Conn
}

func (c pgxConn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := c.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c pgxConn) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c pgxConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
