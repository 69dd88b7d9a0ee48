// Package expand implements the three compiler passes that turn a
// declarative Infrastructure into fully qualified, instance-scoped
// endpoint pairs: the Device Expander, the Instance Materializer, and
// the Infrastructure Wirer (spec.md §4.2-§4.4).
package expand

import (
	"fmt"
	"strings"

	"github.com/servak/infragraph/internal/domain/infragraph"
	"github.com/servak/infragraph/internal/slicepath"
)

// EdgePair is one fully qualified, undirected endpoint pair produced
// by expanding a single DeviceEdge or InfrastructureEdge.
type EdgePair struct {
	From string
	To   string
	Link string
}

// ExpandComponentPath resolves a dotted, slice-qualified component
// path ("nic[0:8:2]" or "nic.port[0:2]" when nic is a nested device)
// into the set of fully qualified paths it denotes, relative to the
// root of device. Each returned path is a dot-joined sequence of
// "name.index" pairs, e.g. "nic.3.port.1".
func ExpandComponentPath(infra *infragraph.Infrastructure, device *infragraph.Device, path string) ([]string, error) {
	segments := slicepath.SplitPath(path)
	if len(segments) == 0 || segments[0] == "" {
		return nil, &infragraph.MalformedSliceError{Segment: path, Reason: "empty component path"}
	}

	prefixes := []string{""}
	current := device

	for i, raw := range segments {
		name := segmentName(raw)
		component := current.ComponentByName(name)
		if component == nil {
			return nil, &infragraph.UnknownNameError{Kind: "component", Name: name, Scope: current.Name}
		}

		seg, err := slicepath.ParseSegment(raw, component.Count)
		if err != nil {
			return nil, err
		}

		indices := seg.Indices()
		next := make([]string, 0, len(prefixes)*len(indices))
		for _, prefix := range prefixes {
			for _, idx := range indices {
				elem := fmt.Sprintf("%s.%d", seg.Name, idx)
				if prefix == "" {
					next = append(next, elem)
				} else {
					next = append(next, prefix+"."+elem)
				}
			}
		}
		prefixes = next

		isLast := i == len(segments)-1
		if !isLast {
			if component.Kind != infragraph.KindDevice {
				return nil, &infragraph.InvariantViolationError{
					Reason: fmt.Sprintf("path segment %q is not a nested device but the path continues", raw),
				}
			}
			nested := infra.DeviceByName(component.Name)
			if nested == nil {
				return nil, &infragraph.UnknownNameError{Kind: "device", Name: component.Name, Scope: infra.Name}
			}
			current = nested
		} else if component.Kind == infragraph.KindDevice {
			return nil, &infragraph.InvariantViolationError{
				Reason: fmt.Sprintf("endpoint path %q must terminate at a non-device component", path),
			}
		}
	}

	return prefixes, nil
}

// ApplyScheme applies the ONE2ONE / MANY2MANY edge-generation algebra
// to two fully qualified endpoint lists, producing undirected pairs
// labeled with link. Pairs where both sides are identical are dropped
// (no self-loops). ONE2ONE requires equal cardinalities; an empty pair
// of sides is a no-op, not an error, since 0 == 0.
func ApplyScheme(scheme infragraph.Scheme, left, right []string, link string) ([]EdgePair, error) {
	switch scheme {
	case infragraph.SchemeOneToOne:
		if len(left) != len(right) {
			return nil, &infragraph.InvariantViolationError{
				Reason: fmt.Sprintf("ONE2ONE cardinality mismatch: %d vs %d", len(left), len(right)),
			}
		}
		pairs := make([]EdgePair, 0, len(left))
		for i := range left {
			if left[i] == right[i] {
				continue
			}
			pairs = append(pairs, EdgePair{From: left[i], To: right[i], Link: link})
		}
		return pairs, nil

	case infragraph.SchemeManyToMany:
		pairs := make([]EdgePair, 0, len(left)*len(right))
		for _, a := range left {
			for _, b := range right {
				if a == b {
					continue
				}
				pairs = append(pairs, EdgePair{From: a, To: b, Link: link})
			}
		}
		return pairs, nil

	default:
		return nil, &infragraph.InvariantViolationError{Reason: fmt.Sprintf("unknown edge scheme %q", scheme)}
	}
}

// ExpandDevice expands every DeviceEdge of device into fully qualified
// intra-device endpoint pairs relative to the device's own root (no
// instance prefix yet), so the same table can be replayed by the
// Instance Materializer for any instance count.
func ExpandDevice(infra *infragraph.Infrastructure, device *infragraph.Device) ([]EdgePair, error) {
	var all []EdgePair
	for _, edge := range device.Edges {
		if !edge.Scheme.Valid() {
			return nil, &infragraph.InvariantViolationError{Reason: fmt.Sprintf("device %q edge has invalid scheme %q", device.Name, edge.Scheme)}
		}
		if device.LinkByName(edge.Link) == nil {
			return nil, &infragraph.InvariantViolationError{Reason: fmt.Sprintf("device %q edge references undefined link %q", device.Name, edge.Link)}
		}

		left, err := ExpandComponentPath(infra, device, edge.Ep1.Component)
		if err != nil {
			return nil, err
		}
		right, err := ExpandComponentPath(infra, device, edge.Ep2.Component)
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

// segmentName returns the name portion of a "name" or "name[slice]"
// path segment, without parsing the slice itself.
func segmentName(raw string) string {
	if idx := strings.IndexByte(raw, '['); idx >= 0 {
		return raw[:idx]
	}
	return raw
}
