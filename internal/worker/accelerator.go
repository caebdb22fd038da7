package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kivppr/distfit/internal/distfit"
)

// SimAccelerator models an asynchronous offload device: it reports Ready()
// false for the duration of a simulated completion latency after accepting
// work, and can be configured to fail (modeling a kernel-compile or buffer
// allocation failure) so AcceleratorUnavailableError can be exercised
// without a real device. A real GPU/OpenCL backend would satisfy the same
// Worker interface without any farmer-side changes.
type SimAccelerator struct {
	id      uuid.UUID
	name    string
	latency time.Duration
	busy    atomic.Bool
	failing atomic.Bool
}

// NewSimAccelerator names the device (for CLI target matching and logging)
// and its simulated per-batch completion latency.
func NewSimAccelerator(name string, latency time.Duration) *SimAccelerator {
	return &SimAccelerator{id: uuid.New(), name: name, latency: latency}
}

func (a *SimAccelerator) ID() uuid.UUID { return a.id }
func (a *SimAccelerator) Name() string  { return a.name }
func (a *SimAccelerator) Ready() bool   { return !a.busy.Load() }

// SetFailing toggles injected unavailability: while set, ScanMinMax and
// BinCounts return AcceleratorUnavailableError at once (Ready stays true).
func (a *SimAccelerator) SetFailing(failing bool) { a.failing.Store(failing) }

func (a *SimAccelerator) ScanMinMax(ctx context.Context, batch []float64) (ScanResult, error) {
	a.busy.Store(true)
	defer a.busy.Store(false)

	if a.failing.Load() {
		return ScanResult{}, distfit.WrapAcceleratorUnavailableError(a.name, errors.New("device reported compile failure"))
	}

	select {
	case <-time.After(a.latency):
	case <-ctx.Done():
		return ScanResult{}, ctx.Err()
	}

	return scanMinMaxLocal(batch), nil
}

func (a *SimAccelerator) BinCounts(ctx context.Context, batch []float64, size, min float64, k int) (BinResult, error) {
	a.busy.Store(true)
	defer a.busy.Store(false)

	if a.failing.Load() {
		return BinResult{}, distfit.WrapAcceleratorUnavailableError(a.name, errors.New("device reported compile failure"))
	}

	select {
	case <-time.After(a.latency):
	case <-ctx.Done():
		return BinResult{}, ctx.Err()
	}

	return binCountsLocal(batch, size, min, k), nil
}
