package debounce

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the settle interval used when none is configured
const DefaultDelay = 300 * time.Millisecond

// FiredMsg is delivered when a scheduled timer elapses without being replaced
type FiredMsg struct {
	ID  string
	Tag uint64
}

// Debouncer holds at most one pending timer. Scheduling again cancels the pending one.
type Debouncer struct {
	id    string
	delay time.Duration

	mu      sync.Mutex
	tag     uint64
	cancel  chan struct{}
	stopped bool
}

// New creates a debouncer; id tells apart the FiredMsgs of several debouncers
func New(id string, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{id: id, delay: delay}
}

// Delay returns the settle interval
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels any pending timer and starts a new one.
// The returned command yields a FiredMsg after the delay, or nil if cancelled first.
func (d *Debouncer) Schedule() tea.Cmd {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}
	d.cancelLocked()

	d.tag++
	tag := d.tag
	cancel := make(chan struct{})
	d.cancel = cancel
	delay := d.delay
	id := d.id

	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			return FiredMsg{ID: id, Tag: tag}
		case <-cancel:
			return nil
		}
	}
}

// Accept reports whether msg is the fire of the current timer and consumes it.
// Fires of replaced or cancelled timers are rejected.
func (d *Debouncer) Accept(msg FiredMsg) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || msg.ID != d.id || msg.Tag != d.tag || d.cancel == nil {
		return false
	}
	d.cancel = nil
	return true
}

// Pending reports whether a timer is waiting to fire
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// Cancel drops the pending timer, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending timer and refuses any further scheduling
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	if d.cancel != nil {
		close(d.cancel)
		d.cancel = nil
	}
}
