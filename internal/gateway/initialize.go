package gateway

import (
	"context"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/script"
	"carrental/cli/internal/session"
	"carrental/cli/internal/sqlexec"
)

// Initialize installs the stored procedures from src. The section before
// script.Marker runs on the system database and only for admin sessions; the
// tenant section runs on the session's tenant database for every role. An
// admin session with no tenant database selected installs the system section
// only, which is what makes CreateDatabase callable in the first place.
// Statements are split strictly, so a malformed script fails before anything
// is sent to the store.
func (g *Gateway) Initialize(ctx context.Context, sess session.Session, src string) error {
	op := string(OpInitialize)
	if err := g.authorize(sess, OpInitialize); err != nil {
		return cerrors.Op(op, err)
	}

	system, tenant, err := script.SplitSections(src, script.Marker)
	if err != nil {
		return cerrors.Op(op, err)
	}
	systemStmts, err := script.SplitStrict(system)
	if err != nil {
		return cerrors.Op(op, cerrors.Wrap(cerrors.Resource, "system section is malformed", err))
	}
	tenantStmts, err := script.SplitStrict(tenant)
	if err != nil {
		return cerrors.Op(op, cerrors.Wrap(cerrors.Resource, "tenant section is malformed", err))
	}

	if sess.Role == session.Admin && len(systemStmts) > 0 {
		err := g.withConn(ctx, sess, OpInitialize, System, func(conn sqlexec.Conn) error {
			return g.exec.Run(ctx, conn, systemStmts)
		})
		if err != nil {
			return err
		}
	}

	if len(tenantStmts) == 0 {
		return nil
	}
	if sess.Role == session.Admin && !sess.HasDatabase() {
		g.log.Info("no tenant database selected, skipping tenant procedures")
		return nil
	}
	return g.withConn(ctx, sess, OpInitialize, Tenant, func(conn sqlexec.Conn) error {
		return g.exec.Run(ctx, conn, tenantStmts)
	})
}
