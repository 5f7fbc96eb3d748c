// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	stderrors "errors"
	"fmt"
	"strings"

	cerrors "carrental/cli/internal/errors"

	"github.com/pterm/pterm"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatError renders err as a titled block: the failing operation, a
// kind-specific explanation with the next step to take, and the masked cause.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var e *cerrors.E
	op, message, cause := "", err.Error(), ""
	if stderrors.As(err, &e) {
		op, message = e.Op, e.Message
		if e.Err != nil {
			cause = e.Err.Error()
		}
	}

	var b strings.Builder
	title := "Operation failed"
	if op != "" {
		title = "Could not " + op
	}
	b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(title))
	b.WriteString("\n\n")
	b.WriteString(Mask(message))
	b.WriteString("\n")

	if hint := hintFor(cerrors.KindOf(err)); hint != "" {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ " + hint))
		b.WriteString("\n")
	}

	if strings.TrimSpace(cause) != "" {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(cause)))
	}
	return b.String()
}

func hintFor(kind cerrors.Kind) string {
	switch kind {
	case cerrors.Configuration:
		return "Create a database with 'carrental db create <name>' or select one with 'carrental db use <name>'"
	case cerrors.NotFound:
		return "Ask an administrator to create and initialize the database"
	case cerrors.PermissionDenied:
		return "Log in as admin: 'carrental login --role admin'"
	case cerrors.Resource:
		return "Check the procedure script and its section marker"
	case cerrors.Input:
		return "Check the values you entered"
	case cerrors.Execution:
		return "The database rejected the request; see the details below"
	}
	return ""
}
