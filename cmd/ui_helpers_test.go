package cmd

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInlineSpinnerClearsItsLine(t *testing.T) {
	var out syncBuffer
	stop := startInlineSpinner(&out, "working", []string{"*"}, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()

	got := out.String()
	if !strings.Contains(got, "\r* working") {
		t.Fatalf("spinner output %q does not contain a frame", got)
	}
	blank := "\r" + strings.Repeat(" ", len("* working")) + "\r"
	if !strings.HasSuffix(got, blank) {
		t.Errorf("spinner output %q does not end by clearing the line", got)
	}
}

func TestProgressGoesToStderr(t *testing.T) {
	if progressOut != os.Stderr {
		t.Errorf("progressOut = %v, want os.Stderr", progressOut)
	}
}
