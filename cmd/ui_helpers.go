package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"carrental/cli/internal/terminal"

	"atomicgo.dev/cursor"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// progressOut receives spinners so that stdout carries only command output.
var progressOut = os.Stderr

// startInlineSpinner draws frames followed by text on the current line of w
// until the returned function is called, which also clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	cursor.Hide()
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		cursor.Show()
	}
}

// withSpinner runs fn while a spinner is shown. Without a terminal fn runs
// silently.
func withSpinner(text string, fn func() error) error {
	if !terminal.IsInteractive() {
		return fn()
	}
	cursor.SetTarget(progressOut)
	stop := startInlineSpinner(progressOut, text, spinnerFrames, 100*time.Millisecond)
	err := fn()
	stop()
	return err
}
