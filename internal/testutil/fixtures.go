// Package testutil provides reusable Infrastructure fixtures for
// tests across the compiler packages, mirroring the original
// Python test suite's closfabric fixture.
package testutil

import (
	"strconv"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// ClosFabric returns a 2-tier Clos fabric: 4 hosts (2 xpus + 2 nics
// each), 4 leaf switches (16 ports each), 3 spine switches (16 ports
// each), hosts many-to-many wired to their paired leaf switch, and
// every leaf many-to-many wired to every spine.
func ClosFabric() *infragraph.Infrastructure {
	server := infragraph.Device{
		Name: "server",
		Components: []infragraph.Component{
			{Name: "xpu", Count: 2, Kind: infragraph.KindXPU},
			{Name: "nic", Count: 2, Kind: infragraph.KindNIC},
		},
	}
	sw := infragraph.Device{
		Name: "switch",
		Components: []infragraph.Component{
			{Name: "port", Count: 16, Kind: infragraph.KindPort},
		},
	}

	infra := &infragraph.Infrastructure{
		Name:        "clos-fabric",
		Description: "2 Tier Clos Fabric",
		Devices:     []infragraph.Device{server, sw},
		Instances: []infragraph.Instance{
			{Name: "host", Device: "server", Count: 4},
			{Name: "leaf", Device: "switch", Count: 4},
			{Name: "spine", Device: "switch", Count: 3},
		},
		Links: []infragraph.Link{
			{Name: "leaf-link", Physical: infragraph.PhysicalMedium{BandwidthGbps: 100}},
			{Name: "spine-link", Physical: infragraph.PhysicalMedium{BandwidthGbps: 400}},
		},
	}

	for idx := 0; idx < 4; idx++ {
		infra.Edges = append(infra.Edges, infragraph.InfrastructureEdge{
			Scheme: infragraph.SchemeManyToMany,
			Link:   "leaf-link",
			Ep1: infragraph.InfrastructureEndpoint{
				Instance:  sliceOf("host", idx),
				Component: "nic",
			},
			Ep2: infragraph.InfrastructureEndpoint{
				Instance:  sliceOf("leaf", idx),
				Component: sliceRange("port", idx*2, idx*2+2),
			},
		})
	}

	for idx := 0; idx < 4; idx++ {
		infra.Edges = append(infra.Edges, infragraph.InfrastructureEdge{
			Scheme: infragraph.SchemeManyToMany,
			Link:   "spine-link",
			Ep1: infragraph.InfrastructureEndpoint{
				Instance:  sliceOf("leaf", idx),
				Component: sliceOf("port", 4+idx),
			},
			Ep2: infragraph.InfrastructureEndpoint{
				Instance:  "spine",
				Component: sliceOf("port", idx),
			},
		})
	}

	return infra
}

// SingleHostNIC returns the smallest possible fixture: one Device with
// a single NIC component replicated once, one Instance of it, no
// edges. Useful for endpoint-parsing and isolated-node tests.
func SingleHostNIC() *infragraph.Infrastructure {
	return &infragraph.Infrastructure{
		Name: "single-host",
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
}

// ReplicatedInstanceWithNestedDevice returns a fixture exercising
// nested-device inlining: a "node" Device containing a nested "nic"
// Device (itself containing two ports), replicated as an Instance with
// an intra-device ONE2ONE edge between the node's own component and
// the nested device's port.
func ReplicatedInstanceWithNestedDevice() *infragraph.Infrastructure {
	nic := infragraph.Device{
		Name: "nic",
		Components: []infragraph.Component{
			{Name: "port", Count: 2, Kind: infragraph.KindPort},
		},
	}
	node := infragraph.Device{
		Name: "node",
		Components: []infragraph.Component{
			{Name: "cpu", Count: 1, Kind: infragraph.KindCPU},
			{Name: "nic", Count: 1, Kind: infragraph.KindDevice},
		},
		Links: []infragraph.Link{{Name: "pcie"}},
		Edges: []infragraph.DeviceEdge{
			{
				Scheme: infragraph.SchemeOneToOne,
				Link:   "pcie",
				Ep1:    infragraph.DeviceEndpoint{Component: "cpu"},
				Ep2:    infragraph.DeviceEndpoint{Component: "nic.port[0:1]"},
			},
		},
	}

	return &infragraph.Infrastructure{
		Name:    "nested-device-fixture",
		Devices: []infragraph.Device{nic, node},
		Links:   []infragraph.Link{{Name: "pcie"}},
		Instances: []infragraph.Instance{
			{Name: "node", Device: "node", Count: 2},
		},
	}
}

func sliceOf(name string, idx int) string {
	return name + "[" + strconv.Itoa(idx) + "]"
}

func sliceRange(name string, start, stop int) string {
	return name + "[" + strconv.Itoa(start) + ":" + strconv.Itoa(stop) + "]"
}
