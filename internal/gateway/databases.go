package gateway

import (
	"context"
	"strings"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/session"
	"carrental/cli/internal/sqlexec"
)

const (
	callCreateDatabase = "CALL public.sp_create_database($1)"
	callDropDatabase   = "CALL public.sp_drop_database($1)"
)

func checkDatabaseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return cerrors.New(cerrors.Input, "database name must not be empty")
	}
	return nil
}

// CreateDatabase creates a tenant database through the system database and
// returns sess with it as the active database. Admin only.
func (g *Gateway) CreateDatabase(ctx context.Context, sess session.Session, name string) (session.Session, error) {
	if err := checkDatabaseName(name); err != nil {
		return sess, cerrors.Op(string(OpCreateDatabase), err)
	}
	err := g.withConn(ctx, sess, OpCreateDatabase, System, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callCreateDatabase, name)
		return err
	})
	if err != nil {
		return sess, err
	}
	g.log.Info("database created", g.log.Args("database", name))
	return sess.WithDatabase(name), nil
}

// DropDatabase drops a tenant database. If it was the active database the
// returned session has none selected. Admin only.
func (g *Gateway) DropDatabase(ctx context.Context, sess session.Session, name string) (session.Session, error) {
	if err := checkDatabaseName(name); err != nil {
		return sess, cerrors.Op(string(OpDropDatabase), err)
	}
	err := g.withConn(ctx, sess, OpDropDatabase, System, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callDropDatabase, name)
		return err
	})
	if err != nil {
		return sess, err
	}
	g.log.Info("database dropped", g.log.Args("database", name))
	if sess.Database == name {
		return sess.WithDatabase(""), nil
	}
	return sess, nil
}

// UseDatabase selects an existing tenant database as the active one. Admin only.
func (g *Gateway) UseDatabase(ctx context.Context, sess session.Session, name string) (session.Session, error) {
	if err := checkDatabaseName(name); err != nil {
		return sess, cerrors.Op(string(OpUseDatabase), err)
	}
	err := g.withConn(ctx, sess, OpUseDatabase, System, func(conn sqlexec.Conn) error {
		exists, err := sqlexec.DatabaseExists(ctx, conn, name, g.cfg.InlineLiterals)
		if err != nil {
			return err
		}
		if !exists {
			return cerrors.Newf(cerrors.NotFound, "database %q does not exist", name)
		}
		return nil
	})
	if err != nil {
		return sess, err
	}
	return sess.WithDatabase(name), nil
}
