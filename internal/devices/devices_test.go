package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kivppr/distfit/internal/farmer"
)

func TestResolveAllSelectsBothPolicyAndEveryDevice(t *testing.T) {
	r := NewRegistry()
	policy, workers, err := Resolve(r, []string{"ALL"})
	require.NoError(t, err)
	assert.Equal(t, farmer.Both, policy)
	assert.Len(t, workers, len(r.Names()))
}

func TestResolveSMPIsCaseInsensitiveAndSelectsNoAccelerators(t *testing.T) {
	r := NewRegistry()
	policy, workers, err := Resolve(r, []string{"smp"})
	require.NoError(t, err)
	assert.Equal(t, farmer.CPUOnly, policy)
	assert.Empty(t, workers)
}

func TestResolveSingleDeviceName(t *testing.T) {
	r := NewRegistry()
	policy, workers, err := Resolve(r, []string{"sim-gpu-0"})
	require.NoError(t, err)
	assert.Equal(t, farmer.AcceleratorOnly, policy)
	require.Len(t, workers, 1)
}

func TestResolveQuotedWhitespaceSeparatedList(t *testing.T) {
	r := NewRegistry()
	policy, workers, err := Resolve(r, []string{"sim-gpu-0 sim-fpga-0"})
	require.NoError(t, err)
	assert.Equal(t, farmer.AcceleratorOnly, policy)
	assert.Len(t, workers, 2)
}

func TestResolveMultipleTrailingArgs(t *testing.T) {
	r := NewRegistry()
	policy, workers, err := Resolve(r, []string{"sim-gpu-0", "sim-gpu-1"})
	require.NoError(t, err)
	assert.Equal(t, farmer.AcceleratorOnly, policy)
	assert.Len(t, workers, 2)
}

func TestResolveUnknownDeviceListsAvailable(t *testing.T) {
	r := NewRegistry()
	_, _, err := Resolve(r, []string{"not-a-real-device"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sim-gpu-0")
}

func TestResolveEmptyTargetsIsArgumentError(t *testing.T) {
	r := NewRegistry()
	_, _, err := Resolve(r, nil)
	require.Error(t, err)
}
