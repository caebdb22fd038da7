package farmer

// Policy selects which class of worker the farmer is allowed to dispatch to,
// mirroring compute_type from the original (ALL/SMP/OPENCL) generalized to
// CPU-pool-vs-accelerator terms.
type Policy int

const (
	// Both allows dispatch to idle accelerators, falling back to the CPU
	// pool whenever none are idle.
	Both Policy = iota
	// CPUOnly always dispatches to the CPU pool, ignoring accelerators.
	CPUOnly
	// AcceleratorOnly does not fall back to the CPU pool while accelerators
	// are configured; if none is idle, the farmer busy-waits until one frees
	// up. With no accelerators configured, the CPU pool is used.
	AcceleratorOnly
)

func (p Policy) String() string {
	switch p {
	case CPUOnly:
		return "cpu-only"
	case AcceleratorOnly:
		return "accelerator-only"
	default:
		return "both"
	}
}
