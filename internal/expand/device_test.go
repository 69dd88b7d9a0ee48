package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/domain/infragraph"
	"github.com/servak/infragraph/internal/testutil"
)

func TestExpandComponentPath_SimpleSlice(t *testing.T) {
	infra := testutil.SingleHostNIC()
	device := infra.DeviceByName("host")

	paths, err := ExpandComponentPath(infra, device, "nic")
	require.NoError(t, err)
	assert.Equal(t, []string{"nic.0"}, paths)
}

func TestExpandComponentPath_NestedDevice(t *testing.T) {
	infra := testutil.ReplicatedInstanceWithNestedDevice()
	device := infra.DeviceByName("node")

	paths, err := ExpandComponentPath(infra, device, "nic.port[0:2]")
	require.NoError(t, err)
	assert.Equal(t, []string{"nic.0.port.0", "nic.0.port.1"}, paths)
}

func TestExpandComponentPath_UnknownComponent(t *testing.T) {
	infra := testutil.SingleHostNIC()
	device := infra.DeviceByName("host")

	_, err := ExpandComponentPath(infra, device, "missing")
	var unknown *infragraph.UnknownNameError
	assert.ErrorAs(t, err, &unknown)
}

func TestExpandComponentPath_NonTerminalNonDeviceRejected(t *testing.T) {
	infra := testutil.SingleHostNIC()
	device := infra.DeviceByName("host")

	_, err := ExpandComponentPath(infra, device, "nic.port")
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestApplyScheme_OneToOneZips(t *testing.T) {
	pairs, err := ApplyScheme(infragraph.SchemeOneToOne,
		[]string{"a.0", "a.1"}, []string{"b.0", "b.1"}, "link")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, EdgePair{From: "a.0", To: "b.0", Link: "link"}, pairs[0])
	assert.Equal(t, EdgePair{From: "a.1", To: "b.1", Link: "link"}, pairs[1])
}

func TestApplyScheme_OneToOneCardinalityMismatch(t *testing.T) {
	_, err := ApplyScheme(infragraph.SchemeOneToOne, []string{"a.0"}, []string{"b.0", "b.1"}, "link")
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestApplyScheme_OneToOneEmptySidesIsNoop(t *testing.T) {
	pairs, err := ApplyScheme(infragraph.SchemeOneToOne, nil, nil, "link")
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestApplyScheme_ManyToManyExcludesSelfPairs(t *testing.T) {
	pairs, err := ApplyScheme(infragraph.SchemeManyToMany,
		[]string{"a.0", "a.1"}, []string{"a.0", "b.0"}, "link")
	require.NoError(t, err)
	// (a.0,a.0) must be dropped as a self-loop; the other 3 combinations remain.
	assert.Len(t, pairs, 3)
	for _, p := range pairs {
		assert.NotEqual(t, p.From, p.To)
	}
}

func TestExpandDevice_DanglingLinkIsInvariantViolation(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{
				Name: "d",
				Components: []infragraph.Component{
					{Name: "a", Count: 2, Kind: infragraph.KindPort},
				},
				Edges: []infragraph.DeviceEdge{
					{
						Scheme: infragraph.SchemeOneToOne,
						Link:   "nonexistent",
						Ep1:    infragraph.DeviceEndpoint{Component: "a[0]"},
						Ep2:    infragraph.DeviceEndpoint{Component: "a[1]"},
					},
				},
			},
		},
	}

	_, err := ExpandDevice(infra, infra.DeviceByName("d"))
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}
