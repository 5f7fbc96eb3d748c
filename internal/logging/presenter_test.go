// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"strings"
	"testing"

	cerrors "carrental/cli/internal/errors"

	"github.com/pterm/pterm"
)

func TestFormatError(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	cause := errors.New("failed to connect to `user=admin database=fleet`: password=hunter2 rejected")
	err := cerrors.Op("insert car", cause)

	out := FormatError(err)
	for _, want := range []string{
		"Could not insert car",
		"store rejected the statement",
		"The database rejected the request",
		"Technical details: ",
		"password=***",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatError() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hunter2") {
		t.Errorf("FormatError() leaked a secret:\n%s", out)
	}
}

func TestFormatErrorPlain(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	out := FormatError(errors.New("boom"))
	if !strings.Contains(out, "Operation failed") || !strings.Contains(out, "boom") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if FormatError(nil) != "" {
		t.Error("FormatError(nil) should be empty")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"debug":   pterm.LogLevelDebug,
		" INFO ":  pterm.LogLevelInfo,
		"warning": pterm.LogLevelWarn,
		"off":     pterm.LogLevelDisabled,
		"bogus":   pterm.LogLevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
