// Package watchdog implements a coarse, diagnostic-only liveness timer. It
// is a redesign of the original singleton Watchdog (get_instance() +
// background thread + shared mutex): here the caller owns an explicit *Dog
// and passes it by reference to whatever code should reset it, instead of
// reaching for a process-wide static. The background loop only logs a
// warning on timeout; it never cancels work.
package watchdog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Dog tracks the time of its last reset and warns if Timeout elapses without
// one. Safe for concurrent Reset calls from multiple driver goroutines.
type Dog struct {
	timeout time.Duration
	log     zerolog.Logger

	lastReset atomic.Int64 // unix nanos

	stopOnce sync.Once
	stop     chan struct{}
}

// New builds a Dog with the given timeout, not yet started.
func New(timeout time.Duration, log zerolog.Logger) *Dog {
	return &Dog{timeout: timeout, log: log, stop: make(chan struct{})}
}

// Reset records that the caller is still alive.
func (d *Dog) Reset() {
	d.lastReset.Store(time.Now().UnixNano())
}

// Run starts the cooperative check loop; it returns when ctx is done or
// Stop is called. Intended to be launched in its own goroutine by the owner.
func (d *Dog) Run(ctx context.Context) {
	d.Reset()
	ticker := time.NewTicker(d.timeout / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stop:
			return
		case <-ticker.C:
			last := time.Unix(0, d.lastReset.Load())
			if time.Since(last) > d.timeout {
				d.log.Warn().
					Dur("timeout", d.timeout).
					Dur("since_last_reset", time.Since(last)).
					Msg("watchdog deadline exceeded, pipeline may be stalled")
			}
		}
	}
}

// Stop ends the background loop; safe to call multiple times.
func (d *Dog) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}
