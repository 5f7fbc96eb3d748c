// Package sqlexec provides the connection abstraction the gateway runs on and
// the helpers that execute statement lists and query the system catalog.
//
// Connections are never pooled: a Connector dials a fresh connection for every
// gateway operation and the caller closes it before returning.
package sqlexec

import (
	"context"
	"fmt"
	"strings"

	cerrors "carrental/cli/internal/errors"

	"github.com/pterm/pterm"
)

// Executor runs statement lists over a connection, one statement at a time.
type Executor struct {
	log *pterm.Logger
}

// New creates an Executor that reports progress to log.
func New(log *pterm.Logger) *Executor {
	return &Executor{log: log}
}

// Run executes statements in order and stops at the first failure. The error
// names the statement's position and its first line.
func (e *Executor) Run(ctx context.Context, conn Conn, statements []string) error {
	for i, stmt := range statements {
		e.log.Trace("executing statement", e.log.Args("index", i+1, "total", len(statements), "sql", preview(stmt)))
		if _, err := conn.Exec(ctx, stmt); err != nil {
			e.log.Debug("statement failed", e.log.Args("index", i+1, "error", err))
			return cerrors.Wrap(cerrors.Execution,
				fmt.Sprintf("statement %d of %d (%s) failed", i+1, len(statements), preview(stmt)), err)
		}
	}
	e.log.Debug("script executed", e.log.Args("statements", len(statements)))
	return nil
}

// preview returns the first line of stmt, cut to a readable length.
func preview(stmt string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(stmt), "\n")
	if len(line) > 80 {
		line = line[:77] + "..."
	}
	return line
}
