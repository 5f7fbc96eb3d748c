// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// QuoteLiteral renders s as a SQL string literal, doubling single quotes.
// It assumes standard_conforming_strings is on, the server default.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdent renders s as a quoted SQL identifier, doubling double quotes.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatLiteral renders v as SQL literal text. Numbers are plain decimal text,
// never scientific notation or locale formatted.
func FormatLiteral(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return QuoteLiteral(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case decimal.Decimal:
		return PlainDecimal(x), nil
	}
	return "", fmt.Errorf("cannot render %T as a SQL literal", v)
}

// PlainDecimal renders d in positional notation, keeping its scale
// ("15000.00" stays "15000.00").
func PlainDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Inline substitutes the $n placeholders of sql with the literal text of
// args in a single pass, so placeholder-like text inside a substituted value
// is left alone.
func Inline(sql string, args ...any) (string, error) {
	lits := make([]string, len(args))
	for i, a := range args {
		lit, err := FormatLiteral(a)
		if err != nil {
			return "", fmt.Errorf("argument $%d: %w", i+1, err)
		}
		lits[i] = lit
	}

	var b strings.Builder
	for i := 0; i < len(sql); i++ {
		if sql[i] != '$' {
			b.WriteByte(sql[i])
			continue
		}
		j := i + 1
		for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte('$')
			continue
		}
		n, _ := strconv.Atoi(sql[i+1 : j])
		if n < 1 || n > len(lits) {
			return "", fmt.Errorf("placeholder $%d has no argument", n)
		}
		b.WriteString(lits[n-1])
		i = j - 1
	}
	return b.String(), nil
}
