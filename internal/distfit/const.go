package distfit

import "time"

// Batch size (in values) for sequential file reads; one batch per
// pass1/pass2 iteration.
const DoubleReadCountOnce = 100_000

// Minimum expected count per chi-square bin; bins below this get merged.
const MinBinExpectedCount = 5

// Size/step of the precomputed standard-normal CDF lookup table.
const (
	StandardizeDistArrSize = 4501
	StandardizeDistArrStep = 0.001
)

// Default watchdog liveness deadline.
const DefaultWatchdogTimeout = 10 * time.Second
