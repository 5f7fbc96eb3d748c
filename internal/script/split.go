// Package script splits SQL scripts into individually executable statements.
//
// The splitter is line oriented: it does not tokenize SQL. A line containing the
// two-character dollar-quote delimiter ($$) toggles an "inside body" flag, and a
// statement ends on a line whose trimmed text ends with ';' while the flag is
// off. Tagged delimiters such as $body$ are not recognized, and a $$ inside a
// string literal still toggles. Blank lines and lines starting with "--" are
// dropped.
package script

import (
	"bufio"
	"fmt"
	"strings"
)

// DollarQuote is the delimiter that opens and closes a procedure body.
const DollarQuote = "$$"

// SyntaxError reports input the strict splitter refuses to guess about.
type SyntaxError struct {
	Line   int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Split returns the statements of script in order. A trailing statement without
// a terminating ';' is returned as is, and so is an unterminated dollar-quoted
// block; the database gets to reject it.
func Split(script string) []string {
	stmts, _ := split(script, false)
	return stmts
}

// SplitStrict is Split but fails with a *SyntaxError when a line carries more
// than one dollar-quote delimiter or when input ends inside an open block.
func SplitStrict(script string) ([]string, error) {
	return split(script, true)
}

func split(script string, strict bool) ([]string, error) {
	var (
		stmts     []string
		buf       strings.Builder
		inBody    bool
		bodyStart int
		lineNo    int
	)

	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 0, 64*1024), len(script)+1)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}

		if n := strings.Count(line, DollarQuote); n > 0 {
			if strict && n > 1 {
				return nil, &SyntaxError{Line: lineNo, Reason: fmt.Sprintf("%d dollar-quote delimiters on one line", n)}
			}
			inBody = !inBody
			if inBody {
				bodyStart = lineNo
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if !inBody && strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, buf.String())
			buf.Reset()
		}
	}

	if buf.Len() > 0 {
		if strict && inBody {
			return nil, &SyntaxError{Line: bodyStart, Reason: "dollar-quoted block is never closed"}
		}
		stmts = append(stmts, buf.String())
	}
	return stmts, nil
}
