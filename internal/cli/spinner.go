package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner is a one-line progress indicator for non-interactive commands.
// It animates the bubbles dot spinner on its own writer (stderr by default)
// and stops when its context is cancelled.
type Spinner struct {
	message string
	frames  spinner.Spinner
	w       io.Writer
	ui      printer

	ctx     context.Context
	cancel  context.CancelCauseFunc
	once    sync.Once
	stopped chan struct{}
	mu      sync.Mutex
}

// errSpinnerStopped is the cancel cause of an explicit Stop.
var errSpinnerStopped = errors.New("spinner stopped")

// newSpinner creates a spinner animating on stderr and reporting through
// the command's printer.
func (c *CLI) newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, c.ui, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, ui printer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancelCause(ctx)
	return &Spinner{
		message: message,
		frames:  spinner.MiniDot,
		w:       w,
		ui:      ui,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.frames.FPS)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				frame := s.frames.Frames[i%len(s.frames.Frames)]
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop stops the animation and clears the line. It must follow Start and
// is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel(errSpinnerStopped)
		<-s.stopped
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	s.ui.success("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	s.ui.fail("%s", message)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	cause := context.Cause(s.ctx)
	return cause != nil && !errors.Is(cause, errSpinnerStopped)
}
