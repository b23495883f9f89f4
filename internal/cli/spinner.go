package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a message on one terminal line until stopped or until
// its context ends.
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// startSpinner draws message on out and animates it in the background.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	s := &spinner{out: out, message: message, stop: make(chan struct{})}
	s.wg.Add(1)
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.clear()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		fmt.Fprintf(s.out, "\r%s %s",
			styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
			StyleDim.Render(s.message))
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

func (s *spinner) clear() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len([]rune(s.message))+2))
}

// Stop ends the animation and blanks the line. Safe to call repeatedly.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}

// spin runs fn while a spinner shows message on stderr.
func spin[T any](ctx context.Context, message string, fn func() (T, error)) (T, error) {
	s := startSpinner(ctx, os.Stderr, message)
	defer s.Stop()
	return fn()
}
