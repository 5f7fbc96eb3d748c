// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"regexp"
	"strings"
)

var rePort = regexp.MustCompile(`^\d+$`)

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DBTypePostgreSQL
	}
	return DBTypeUnknown
}

// Parse parses a server DSN. User, password and database are optional: the
// gateway fills them in per connection.
func Parse(dsn string) (*Info, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a server address such as postgres://localhost:5432/postgres")
	}
	if DetectDBType(dsn) != DBTypePostgreSQL {
		return nil, NewParseError(dsn, "unsupported database type", "use postgres:// or postgresql://")
	}

	info, err := parsePostgres(dsn)
	if err != nil {
		return nil, err
	}
	if err := validate(info); err != nil {
		return nil, err
	}
	return info, nil
}

func validate(info *Info) error {
	if strings.TrimSpace(info.Host) == "" {
		return NewParseError(info.Original, "missing host", "format should be postgres://[user[:password]@]host[:port]/database")
	}
	if !rePort.MatchString(info.Port) {
		return NewParseError(info.Original, "invalid port number: "+info.Port, "port must be numeric")
	}
	return nil
}
