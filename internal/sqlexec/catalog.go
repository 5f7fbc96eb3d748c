// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
)

const databaseExistsQuery = `SELECT EXISTS (SELECT 1 FROM pg_catalog.pg_database WHERE datname = $1)`

// DatabaseExists reports whether database is present in the server catalog.
// With inline set the name is rendered as a literal instead of a parameter.
func DatabaseExists(ctx context.Context, conn Conn, database string, inline bool) (bool, error) {
	query, args := databaseExistsQuery, []any{database}
	if inline {
		q, err := Inline(query, args...)
		if err != nil {
			return false, err
		}
		query, args = q, nil
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, err
		}
	}
	return exists, rows.Err()
}
