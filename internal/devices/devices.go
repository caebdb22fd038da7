// Package devices resolves the CLI's TARGET argument(s) into a dispatch
// policy plus the accelerator workers to use, mirroring Initializer.cpp's
// argument parsing (ALL/SMP keywords, a single device name, a
// quoted/whitespace-separated device list, or several trailing device-name
// arguments) against a small registry of available simulated accelerators.
package devices

import (
	"strings"
	"time"

	"github.com/kivppr/distfit/internal/distfit"
	"github.com/kivppr/distfit/internal/farmer"
	"github.com/kivppr/distfit/internal/worker"
)

// Registry lists the accelerator devices this process can dispatch to. In
// lieu of a real OpenCL scan, it's a fixed catalog of simulated devices
// (each with its own completion latency) satisfying worker.Worker the same
// way a real GPU/OpenCL backend would.
type Registry struct {
	available map[string]*worker.SimAccelerator
	names     []string
}

// NewRegistry builds a registry over a fixed catalog of simulated
// accelerators. A real deployment would populate this from an OpenCL/CUDA
// platform scan instead.
func NewRegistry() *Registry {
	catalog := []struct {
		name    string
		latency time.Duration
	}{
		{"sim-gpu-0", 2 * time.Millisecond},
		{"sim-gpu-1", 2 * time.Millisecond},
		{"sim-fpga-0", 5 * time.Millisecond},
	}

	r := &Registry{available: make(map[string]*worker.SimAccelerator, len(catalog))}
	for _, c := range catalog {
		r.available[c.name] = worker.NewSimAccelerator(c.name, c.latency)
		r.names = append(r.names, c.name)
	}
	return r
}

// Names returns every discoverable device name, for error messages.
func (r *Registry) Names() []string { return r.names }

// All returns every discoverable device as a worker.Worker.
func (r *Registry) All() []worker.Worker {
	out := make([]worker.Worker, 0, len(r.available))
	for _, name := range r.names {
		out = append(out, r.available[name])
	}
	return out
}

// Lookup returns the named device, or false if unknown.
func (r *Registry) Lookup(name string) (*worker.SimAccelerator, bool) {
	d, ok := r.available[name]
	return d, ok
}

// Resolve implements the CLI target-argument semantics: a single "ALL"/"all"
// selects every device with the Both policy; "SMP"/"smp" selects none with
// CPUOnly; anything else is one or more device names (a single
// whitespace-separated argument splits into a list) validated against the
// registry, selecting AcceleratorOnly.
func Resolve(r *Registry, targets []string) (farmer.Policy, []worker.Worker, error) {
	if len(targets) == 0 {
		return 0, nil, distfit.NewArgumentError("at least one TARGET is required")
	}

	if len(targets) == 1 {
		t := targets[0]
		switch {
		case strings.EqualFold(t, "all"):
			return farmer.Both, r.All(), nil
		case strings.EqualFold(t, "smp"):
			return farmer.CPUOnly, nil, nil
		}

		if d, ok := r.Lookup(t); ok {
			return farmer.AcceleratorOnly, []worker.Worker{d}, nil
		}

		// A single quoted argument may carry several whitespace-separated
		// device names.
		names := strings.Fields(t)
		if len(names) > 1 {
			return resolveDeviceList(r, names)
		}

		return 0, nil, unknownDeviceError(r, t)
	}

	return resolveDeviceList(r, targets)
}

func resolveDeviceList(r *Registry, names []string) (farmer.Policy, []worker.Worker, error) {
	workers := make([]worker.Worker, 0, len(names))
	for _, name := range names {
		d, ok := r.Lookup(name)
		if !ok {
			return 0, nil, unknownDeviceError(r, name)
		}
		workers = append(workers, d)
	}
	return farmer.AcceleratorOnly, workers, nil
}

func unknownDeviceError(r *Registry, name string) error {
	return distfit.NewArgumentError(
		"device \"" + name + "\" is not a valid accelerator device; available devices: " + strings.Join(r.Names(), ", "),
	)
}
