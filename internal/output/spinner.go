package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Spinner displays an animated spinner with a countdown, e.g.
// "|  Waiting for /var/lib/dpkg/lock-frontend (12s remaining)".
// On a non-TTY writer it prints the message once and never animates.
type Spinner struct {
	message   string
	timeout   time.Duration
	chars     []string
	writer    io.Writer
	startTime time.Time

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSpinner creates a spinner that counts down from timeout. A zero timeout
// shows elapsed time instead.
func NewSpinner(w io.Writer, message string, timeout time.Duration) *Spinner {
	return &Spinner{
		message: message,
		timeout: timeout,
		chars:   []string{"|", "/", "-", "\\"},
		writer:  w,
		done:    make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.startTime = time.Now()

	if !writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		idx := 0
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.writer, "\r%s  %s", s.chars[idx], s.formatMessage())
				s.mu.Unlock()
				idx = (idx + 1) % len(s.chars)
			case <-s.done:
				return
			}
		}
	}()
}

// formatMessage must be called with the lock held.
func (s *Spinner) formatMessage() string {
	elapsed := time.Since(s.startTime)
	if s.timeout > 0 {
		remaining := s.timeout - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("%s (%ds remaining)", s.message, int(remaining.Seconds()))
	}
	return fmt.Sprintf("%s (%ds elapsed)", s.message, int(elapsed.Seconds()))
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()

	if writerIsTTY(s.writer) {
		// Room for the spinner glyph and the countdown suffix.
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.message)+32))
	}
}
