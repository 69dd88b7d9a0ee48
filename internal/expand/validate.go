package expand

import (
	"fmt"
	"strings"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// CheckAcyclic verifies the containment graph over Devices — the edges
// formed by kind=device Components nesting another Device — is a DAG
// (spec.md §3). It walks every Device with a three-color visiting set
// so a self-nesting or mutually-nesting pair is reported as an
// InvariantViolationError instead of recursing without bound the way
// materializeOccurrence's own traversal would if it hit one.
func CheckAcyclic(infra *infragraph.Infrastructure) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(infra.Devices))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return &infragraph.InvariantViolationError{
				Reason: fmt.Sprintf("cyclic device composition: %s", strings.Join(append(path, name), " -> ")),
			}
		}

		state[name] = visiting
		if device := infra.DeviceByName(name); device != nil {
			for i := range device.Components {
				c := &device.Components[i]
				if c.Kind != infragraph.KindDevice {
					continue
				}
				if err := visit(c.Name, append(path, name)); err != nil {
					return err
				}
			}
		}
		state[name] = done
		return nil
	}

	for i := range infra.Devices {
		if err := visit(infra.Devices[i].Name, nil); err != nil {
			return err
		}
	}
	return nil
}

// CheckUniqueNames verifies Device names are unique within the
// Infrastructure, Component names are unique within each Device, and
// Instance names are unique within the Infrastructure (spec.md §3).
func CheckUniqueNames(infra *infragraph.Infrastructure) error {
	seenDevices := make(map[string]bool, len(infra.Devices))
	for _, d := range infra.Devices {
		if seenDevices[d.Name] {
			return &infragraph.InvariantViolationError{Reason: fmt.Sprintf("duplicate device name %q", d.Name)}
		}
		seenDevices[d.Name] = true

		seenComponents := make(map[string]bool, len(d.Components))
		for _, c := range d.Components {
			if seenComponents[c.Name] {
				return &infragraph.InvariantViolationError{
					Reason: fmt.Sprintf("duplicate component name %q in device %q", c.Name, d.Name),
				}
			}
			seenComponents[c.Name] = true
		}
	}

	seenInstances := make(map[string]bool, len(infra.Instances))
	for _, inst := range infra.Instances {
		if seenInstances[inst.Name] {
			return &infragraph.InvariantViolationError{Reason: fmt.Sprintf("duplicate instance name %q", inst.Name)}
		}
		seenInstances[inst.Name] = true
	}

	return nil
}
