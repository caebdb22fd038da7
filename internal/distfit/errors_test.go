package distfit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArgumentError(t *testing.T) {
	err := NewArgumentError("bad target")
	var target *ArgumentError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "bad target", err.Error())
}

func TestWrapIOError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapIOError(cause, "write output")

	var target *IOError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "write output")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWrapAcceleratorUnavailableErrorCarriesWorkerID(t *testing.T) {
	err := WrapAcceleratorUnavailableError("sim-gpu-0", errors.New("kernel compile failed"))

	var target *AcceleratorUnavailableError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "sim-gpu-0", target.WorkerID)
}

func TestNewEmptyDatasetError(t *testing.T) {
	err := NewEmptyDatasetError()
	var target *EmptyDatasetError
	require.ErrorAs(t, err, &target)
}
