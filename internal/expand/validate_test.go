package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

func TestCheckAcyclic_SelfNestingDevice(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{
				Name: "node",
				Components: []infragraph.Component{
					{Name: "node", Count: 1, Kind: infragraph.KindDevice},
				},
			},
		},
	}

	err := CheckAcyclic(infra)
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestCheckAcyclic_MutuallyNestingDevices(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{
				Name: "a",
				Components: []infragraph.Component{
					{Name: "b", Count: 1, Kind: infragraph.KindDevice},
				},
			},
			{
				Name: "b",
				Components: []infragraph.Component{
					{Name: "a", Count: 1, Kind: infragraph.KindDevice},
				},
			},
		},
	}

	err := CheckAcyclic(infra)
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestCheckAcyclic_AcceptsDAG(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{
				Name: "port-carrier",
				Components: []infragraph.Component{
					{Name: "port", Count: 2, Kind: infragraph.KindPort},
				},
			},
			{
				Name: "node",
				Components: []infragraph.Component{
					{Name: "port-carrier", Count: 1, Kind: infragraph.KindDevice},
				},
			},
		},
	}

	assert.NoError(t, CheckAcyclic(infra))
}

func TestCheckUniqueNames_DuplicateDevice(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{Name: "host"},
			{Name: "host"},
		},
	}

	err := CheckUniqueNames(infra)
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestCheckUniqueNames_DuplicateComponent(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{
				Name: "host",
				Components: []infragraph.Component{
					{Name: "nic", Count: 1, Kind: infragraph.KindNIC},
					{Name: "nic", Count: 1, Kind: infragraph.KindNIC},
				},
			},
		},
	}

	err := CheckUniqueNames(infra)
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestCheckUniqueNames_DuplicateInstance(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{Name: "host"},
		},
		Instances: []infragraph.Instance{
			{Name: "host", Device: "host", Count: 1},
			{Name: "host", Device: "host", Count: 1},
		},
	}

	err := CheckUniqueNames(infra)
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestCheckUniqueNames_AcceptsUniqueDocument(t *testing.T) {
	infra := &infragraph.Infrastructure{
		Devices: []infragraph.Device{
			{
				Name: "host",
				Components: []infragraph.Component{
					{Name: "nic", Count: 1, Kind: infragraph.KindNIC},
				},
			},
		},
		Instances: []infragraph.Instance{
			{Name: "host", Device: "host", Count: 1},
		},
	}

	assert.NoError(t, CheckUniqueNames(infra))
}
