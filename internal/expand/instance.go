package expand

import (
	"fmt"
	"strconv"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// Node is one materialized compiled-graph node together with its
// reserved attributes (type, instance, instance_idx, device).
type Node struct {
	ID    string
	Attrs map[string]string
}

// Edge is one materialized intra-device edge, already instance-qualified.
type Edge struct {
	From, To, Link string
}

// MaterializedInstance is the node/edge set a single Instance
// replication emits.
type MaterializedInstance struct {
	Nodes []Node
	Edges []Edge
}

// IsNestedDeviceName reports whether deviceName is referenced as a
// kind=device Component by any Device in infra — such a Device is
// only reachable through its parent and is never separately
// materialized at the top level, mirroring the original's
// _isa_component check.
func IsNestedDeviceName(infra *infragraph.Infrastructure, deviceName string) bool {
	for i := range infra.Devices {
		for j := range infra.Devices[i].Components {
			c := &infra.Devices[i].Components[j]
			if c.Kind == infragraph.KindDevice && c.Name == deviceName {
				return true
			}
		}
	}
	return false
}

// MaterializeInstance replicates instance.Device's components and
// intra-device edges for every one of instance.Count replicas,
// recursively inlining nested-device components (spec.md §4.3).
func MaterializeInstance(infra *infragraph.Infrastructure, instance *infragraph.Instance) (*MaterializedInstance, error) {
	device := infra.DeviceByName(instance.Device)
	if device == nil {
		return nil, &infragraph.UnknownNameError{Kind: "device", Name: instance.Device, Scope: infra.Name}
	}

	result := &MaterializedInstance{}
	for idx := 0; idx < instance.Count; idx++ {
		prefix := fmt.Sprintf("%s.%d", instance.Name, idx)
		nodes, edges, err := materializeOccurrence(infra, device, prefix, instance.Name, idx, device.Name)
		if err != nil {
			return nil, err
		}
		result.Nodes = append(result.Nodes, nodes...)
		result.Edges = append(result.Edges, edges...)
	}

	for _, e := range result.Edges {
		if instancePrefix(e.From) != instancePrefix(e.To) {
			return nil, &infragraph.InvariantViolationError{
				Reason: fmt.Sprintf("intra-device edge %s-%s crosses instance replicas", e.From, e.To),
			}
		}
	}

	return result, nil
}

// materializeOccurrence emits the nodes and intra-device edges for one
// occurrence of device rooted at prefix — either the top-level
// instance.idx root, or a nested-device component's instance.idx.component.idx
// sub-root.
func materializeOccurrence(infra *infragraph.Infrastructure, device *infragraph.Device, prefix, instanceName string, instanceIdx int, topDevice string) ([]Node, []Edge, error) {
	var nodes []Node
	var edges []Edge

	for i := range device.Components {
		c := &device.Components[i]

		if c.Kind == infragraph.KindDevice {
			nested := infra.DeviceByName(c.Name)
			if nested == nil {
				return nil, nil, &infragraph.UnknownNameError{Kind: "device", Name: c.Name, Scope: infra.Name}
			}
			for j := 0; j < c.Count; j++ {
				childPrefix := prefix + "." + c.Name + "." + strconv.Itoa(j)
				childNodes, childEdges, err := materializeOccurrence(infra, nested, childPrefix, instanceName, instanceIdx, topDevice)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, childNodes...)
				edges = append(edges, childEdges...)
			}
			continue
		}

		for j := 0; j < c.Count; j++ {
			nodeID := prefix + "." + c.Name + "." + strconv.Itoa(j)
			nodes = append(nodes, Node{
				ID: nodeID,
				Attrs: map[string]string{
					infragraph.AttrType:        c.TypeAttribute(),
					infragraph.AttrInstance:    instanceName,
					infragraph.AttrInstanceIdx: strconv.Itoa(instanceIdx),
					infragraph.AttrDevice:      topDevice,
				},
			})
		}
	}

	pairs, err := ExpandDevice(infra, device)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range pairs {
		edges = append(edges, Edge{From: prefix + "." + p.From, To: prefix + "." + p.To, Link: p.Link})
	}

	return nodes, edges, nil
}

// instancePrefix returns the leading "instance.idx" portion of a fully
// qualified node id.
func instancePrefix(nodeID string) string {
	first := -1
	seen := 0
	for i := 0; i < len(nodeID); i++ {
		if nodeID[i] == '.' {
			seen++
			if seen == 2 {
				first = i
				break
			}
		}
	}
	if first < 0 {
		return nodeID
	}
	return nodeID[:first]
}
