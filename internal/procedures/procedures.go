// Package procedures ships the SQL script that installs the stored procedures
// the gateway calls. The script is embedded in the binary and addressed by name.
package procedures

import (
	"embed"
	"io/fs"
	"os"

	cerrors "carrental/cli/internal/errors"
)

// DefaultName is the name of the bundled procedure script.
const DefaultName = "stored_procedures.sql"

//go:embed *.sql
var scripts embed.FS

// Load returns the embedded script with the given name.
func Load(name string) (string, error) {
	b, err := fs.ReadFile(scripts, name)
	if err != nil {
		return "", cerrors.Wrap(cerrors.Resource, "procedure script "+name+" not found", err)
	}
	return string(b), nil
}

// LoadFile reads a procedure script from disk instead of the embedded set.
func LoadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", cerrors.Wrap(cerrors.Resource, "cannot read procedure script "+path, err)
	}
	return string(b), nil
}
