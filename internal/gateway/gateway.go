// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package gateway turns a session and an operation into a database connection
// and a stored-procedure call, and maps result sets into Car rows.
//
// Every operation:
//  1. checks the session role against the operation once, before touching the store;
//  2. resolves the target database (system or tenant) for that role;
//  3. dials one connection, runs its statement and closes the connection on
//     every path before returning.
//
// The gateway holds no per-session state. The active tenant database travels
// in the session.Session value; operations that change it return a new one.
package gateway

import (
	"context"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/session"
	"carrental/cli/internal/sqlexec"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// Operation names a gateway operation. The value is used in error messages.
type Operation string

const (
	OpCreateDatabase Operation = "create database"
	OpDropDatabase   Operation = "drop database"
	OpUseDatabase    Operation = "use database"
	OpCreateTable    Operation = "create table"
	OpClearTable     Operation = "clear table"
	OpInsertCar      Operation = "insert car"
	OpUpdateCar      Operation = "update car"
	OpDeleteCar      Operation = "delete car"
	OpSearchCar      Operation = "search car"
	OpViewCars       Operation = "view cars"
	OpInitialize     Operation = "initialize"
)

// guestAllowed lists the operations a guest session may run. Everything else
// is admin only.
var guestAllowed = map[Operation]bool{
	OpSearchCar:  true,
	OpViewCars:   true,
	OpInitialize: true,
}

// Target selects which database an operation connects to.
type Target int

const (
	// System is the fixed administrative database.
	System Target = iota
	// Tenant is the database holding the car inventory.
	Tenant
)

func (t Target) String() string {
	if t == System {
		return "system"
	}
	return "tenant"
}

// Config holds the fixed database names and statement rendering mode.
type Config struct {
	// SystemDatabase is where create/drop database procedures live.
	SystemDatabase string
	// GuestDatabase is the tenant database every guest session reads.
	GuestDatabase string
	// InlineLiterals renders arguments into the statement text (quotes
	// doubled) instead of sending $n parameters.
	InlineLiterals bool
}

const (
	DefaultSystemDatabase = "postgres"
	DefaultGuestDatabase  = "car_rental"
)

// Gateway executes role-checked operations against the store.
type Gateway struct {
	connector sqlexec.Connector
	cfg       Config
	exec      *sqlexec.Executor
	log       *pterm.Logger
}

// New creates a Gateway. Empty database names in cfg fall back to the defaults.
func New(connector sqlexec.Connector, cfg Config, log *pterm.Logger) *Gateway {
	if cfg.SystemDatabase == "" {
		cfg.SystemDatabase = DefaultSystemDatabase
	}
	if cfg.GuestDatabase == "" {
		cfg.GuestDatabase = DefaultGuestDatabase
	}
	if log == nil {
		log = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return &Gateway{
		connector: connector,
		cfg:       cfg,
		exec:      sqlexec.New(log),
		log:       log,
	}
}

// Config returns the gateway configuration after defaults were applied.
func (g *Gateway) Config() Config { return g.cfg }

// Authorize reports whether sess may run op, without touching the store.
// Callers that combine several gateway calls use it to fail before the first.
func (g *Gateway) Authorize(sess session.Session, op Operation) error {
	return cerrors.Op(string(op), g.authorize(sess, op))
}

// authorize checks the session role against op.
func (g *Gateway) authorize(sess session.Session, op Operation) error {
	switch sess.Role {
	case session.Admin:
		return nil
	case session.Guest:
		if guestAllowed[op] {
			return nil
		}
		return cerrors.Newf(cerrors.PermissionDenied, "guest sessions may only search and view cars")
	}
	return cerrors.Newf(cerrors.Configuration, "unknown role %q", sess.Role)
}

// resolve maps the session role and target to a database name.
func (g *Gateway) resolve(ctx context.Context, sess session.Session, target Target) (string, error) {
	switch sess.Role {
	case session.Admin:
		if target == System {
			return g.cfg.SystemDatabase, nil
		}
		if !sess.HasDatabase() {
			return "", cerrors.New(cerrors.Configuration, "no tenant database selected; create or select one first")
		}
		return sess.Database, nil
	case session.Guest:
		if target == System {
			return "", cerrors.New(cerrors.PermissionDenied, "guest sessions cannot use the system database")
		}
		exists, err := g.databaseExists(ctx, g.cfg.GuestDatabase)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", cerrors.Newf(cerrors.NotFound, "database %q does not exist", g.cfg.GuestDatabase)
		}
		return g.cfg.GuestDatabase, nil
	}
	return "", cerrors.Newf(cerrors.Configuration, "unknown role %q", sess.Role)
}

// databaseExists checks the system catalog over its own short-lived connection.
func (g *Gateway) databaseExists(ctx context.Context, name string) (bool, error) {
	conn, err := g.connect(ctx, g.cfg.SystemDatabase)
	if err != nil {
		return false, err
	}
	defer g.release(ctx, conn, g.cfg.SystemDatabase)

	exists, err := sqlexec.DatabaseExists(ctx, conn, name, g.cfg.InlineLiterals)
	if err != nil {
		return false, cerrors.Wrap(cerrors.Execution, "catalog lookup failed", err)
	}
	return exists, nil
}

func (g *Gateway) connect(ctx context.Context, database string) (sqlexec.Conn, error) {
	g.log.Debug("opening connection", g.log.Args("database", database))
	conn, err := g.connector.Connect(ctx, database)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.Execution, "cannot connect to database \""+database+"\"", err)
	}
	return conn, nil
}

// release closes conn even when ctx is already cancelled.
func (g *Gateway) release(ctx context.Context, conn sqlexec.Conn, database string) {
	if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
		g.log.Warn("closing connection failed", g.log.Args("database", database, "error", err))
		return
	}
	g.log.Trace("connection closed", g.log.Args("database", database))
}

// withConn authorizes op, resolves target, and runs fn on a fresh connection
// that is released before withConn returns. Errors are attributed to op.
func (g *Gateway) withConn(ctx context.Context, sess session.Session, op Operation, target Target, fn func(conn sqlexec.Conn) error) error {
	if err := g.authorize(sess, op); err != nil {
		g.log.Debug("operation rejected", g.log.Args("op", string(op), "role", sess.Role.String()))
		return cerrors.Op(string(op), err)
	}
	database, err := g.resolve(ctx, sess, target)
	if err != nil {
		return cerrors.Op(string(op), err)
	}
	conn, err := g.connect(ctx, database)
	if err != nil {
		return cerrors.Op(string(op), err)
	}
	defer g.release(ctx, conn, database)

	g.log.Debug("running operation", g.log.Args("op", string(op), "target", target.String(), "database", database))
	return cerrors.Op(string(op), fn(conn))
}

// bind prepares a statement for execution. In parameter mode decimals are
// converted to pgtype.Numeric; in inline mode all arguments are rendered into
// the text.
func (g *Gateway) bind(sql string, args []any) (string, []any, error) {
	if g.cfg.InlineLiterals {
		text, err := sqlexec.Inline(sql, args...)
		if err != nil {
			return "", nil, cerrors.Wrap(cerrors.Input, "cannot render statement", err)
		}
		return text, nil, nil
	}
	bound := make([]any, len(args))
	for i, a := range args {
		if d, ok := a.(decimal.Decimal); ok {
			bound[i] = toNumeric(d)
			continue
		}
		bound[i] = a
	}
	return sql, bound, nil
}

func (g *Gateway) execStatement(ctx context.Context, conn sqlexec.Conn, sql string, args ...any) (int64, error) {
	text, bound, err := g.bind(sql, args)
	if err != nil {
		return 0, err
	}
	g.log.Trace("exec", g.log.Args("sql", text))
	return conn.Exec(ctx, text, bound...)
}

func (g *Gateway) queryStatement(ctx context.Context, conn sqlexec.Conn, sql string, args ...any) (sqlexec.Rows, error) {
	text, bound, err := g.bind(sql, args)
	if err != nil {
		return nil, err
	}
	g.log.Trace("query", g.log.Args("sql", text))
	return conn.Query(ctx, text, bound...)
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// Verify checks that the credentials behind the connector are accepted by
// opening and closing one connection to the system database.
func (g *Gateway) Verify(ctx context.Context) error {
	conn, err := g.connect(ctx, g.cfg.SystemDatabase)
	if err != nil {
		return cerrors.Op("verify credentials", err)
	}
	g.release(ctx, conn, g.cfg.SystemDatabase)
	return nil
}
