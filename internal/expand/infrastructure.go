package expand

import (
	"fmt"

	"github.com/servak/infragraph/internal/domain/infragraph"
	"github.com/servak/infragraph/internal/slicepath"
)

// ExpandInfrastructureEndpoint resolves one InfrastructureEndpoint
// (an Instance slice crossed with a component path relative to that
// Instance's Device) into the set of fully qualified
// "instance.idx.component.idx..." node ids it denotes (spec.md §4.4).
func ExpandInfrastructureEndpoint(infra *infragraph.Infrastructure, ep *infragraph.InfrastructureEndpoint) ([]string, error) {
	name := segmentName(ep.Instance)
	instance := infra.InstanceByName(name)
	if instance == nil {
		return nil, &infragraph.UnknownNameError{Kind: "instance", Name: name, Scope: infra.Name}
	}

	slice, err := slicepath.ParseSegment(ep.Instance, instance.Count)
	if err != nil {
		return nil, err
	}

	device := infra.DeviceByName(instance.Device)
	if device == nil {
		return nil, &infragraph.UnknownNameError{Kind: "device", Name: instance.Device, Scope: infra.Name}
	}

	componentPaths, err := ExpandComponentPath(infra, device, ep.Component)
	if err != nil {
		return nil, err
	}

	deviceIndices := slice.Indices()
	out := make([]string, 0, len(deviceIndices)*len(componentPaths))
	for _, d := range deviceIndices {
		for _, c := range componentPaths {
			out = append(out, fmt.Sprintf("%s.%d.%s", instance.Name, d, c))
		}
	}
	return out, nil
}

// WireInfrastructure expands every InfrastructureEdge into inter- (or
// intra-) instance endpoint pairs.
func WireInfrastructure(infra *infragraph.Infrastructure) ([]EdgePair, error) {
	var all []EdgePair
	for _, edge := range infra.Edges {
		if !edge.Scheme.Valid() {
			return nil, &infragraph.InvariantViolationError{Reason: fmt.Sprintf("infrastructure edge has invalid scheme %q", edge.Scheme)}
		}
		if infra.LinkByName(edge.Link) == nil {
			return nil, &infragraph.InvariantViolationError{Reason: fmt.Sprintf("infrastructure edge references undefined link %q", edge.Link)}
		}

		left, err := ExpandInfrastructureEndpoint(infra, &edge.Ep1)
		if err != nil {
			return nil, err
		}
		right, err := ExpandInfrastructureEndpoint(infra, &edge.Ep2)
		if err != nil {
			return nil, err
		}

		pairs, err := ApplyScheme(edge.Scheme, left, right, edge.Link)
		if err != nil {
			return nil, err
		}
		all = append(all, pairs...)
	}
	return all, nil
}
