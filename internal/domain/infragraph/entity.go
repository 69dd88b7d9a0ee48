// Package infragraph defines the declarative data model for physical
// compute/networking infrastructure: Devices made of Components wired
// by Edges, and Infrastructures that replicate Devices as Instances
// and wire them together.
package infragraph

// Infrastructure is the top-level declarative document.
type Infrastructure struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Devices     []Device             `json:"devices" yaml:"devices"`
	Instances   []Instance           `json:"instances" yaml:"instances"`
	Links       []Link               `json:"links" yaml:"links"`
	Edges       []InfrastructureEdge `json:"edges" yaml:"edges"`
	Annotations []Annotation         `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// DeviceByName returns the Device with the given name, or nil.
func (i *Infrastructure) DeviceByName(name string) *Device {
	for idx := range i.Devices {
		if i.Devices[idx].Name == name {
			return &i.Devices[idx]
		}
	}
	return nil
}

// InstanceByName returns the Instance with the given name, or nil.
func (i *Infrastructure) InstanceByName(name string) *Instance {
	for idx := range i.Instances {
		if i.Instances[idx].Name == name {
			return &i.Instances[idx]
		}
	}
	return nil
}

// LinkByName returns the Link with the given name, or nil.
func (i *Infrastructure) LinkByName(name string) *Link {
	for idx := range i.Links {
		if i.Links[idx].Name == name {
			return &i.Links[idx]
		}
	}
	return nil
}

// Device is a reusable template describing internal components and
// their wiring. Device names are unique within an Infrastructure.
type Device struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Components  []Component  `json:"components" yaml:"components"`
	Links       []Link       `json:"links,omitempty" yaml:"links,omitempty"`
	Edges       []DeviceEdge `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// ComponentByName returns the Component with the given name, or nil.
func (d *Device) ComponentByName(name string) *Component {
	for idx := range d.Components {
		if d.Components[idx].Name == name {
			return &d.Components[idx]
		}
	}
	return nil
}

// ComponentByKind returns the first Component of the given kind, or
// nil. Mirrors the original's `InfraGraphService.get_component`, used
// by blueprint-style callers that want "the NIC" without knowing its
// declared name.
func (d *Device) ComponentByKind(kind ComponentKind) *Component {
	for idx := range d.Components {
		if d.Components[idx].Kind == kind {
			return &d.Components[idx]
		}
	}
	return nil
}

// LinkByName returns the device-scoped Link with the given name, or nil.
func (d *Device) LinkByName(name string) *Link {
	for idx := range d.Links {
		if d.Links[idx].Name == name {
			return &d.Links[idx]
		}
	}
	return nil
}

// Component is a typed sub-part of a Device with a replication count.
// When Kind is KindDevice, Name must equal the name of another Device
// in the same Infrastructure (nested composition).
type Component struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Count       int           `json:"count" yaml:"count"`
	Kind        ComponentKind `json:"kind" yaml:"kind"`
	CustomType  string        `json:"custom_type,omitempty" yaml:"custom_type,omitempty"`
	External    bool          `json:"external,omitempty" yaml:"external,omitempty"`
}

// TypeAttribute returns the value that should populate the reserved
// "type" node attribute for a node emitted from this Component: the
// custom type tag for KindCustom, otherwise the kind itself.
func (c *Component) TypeAttribute() string {
	if c.Kind == KindCustom && c.CustomType != "" {
		return c.CustomType
	}
	return string(c.Kind)
}

// Link labels edges with medium/bandwidth metadata; it carries no
// topology of its own.
type Link struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Physical    PhysicalMedium `json:"physical,omitempty" yaml:"physical,omitempty"`
}

// PhysicalMedium carries the medium/bandwidth metadata for a Link.
type PhysicalMedium struct {
	BandwidthGbps float64 `json:"bandwidth_gbps,omitempty" yaml:"bandwidth_gbps,omitempty"`
	Medium        string  `json:"medium,omitempty" yaml:"medium,omitempty"`
}

// DeviceEdge wires two endpoints of the same Device together.
type DeviceEdge struct {
	Scheme Scheme         `json:"scheme" yaml:"scheme"`
	Link   string         `json:"link" yaml:"link"`
	Ep1    DeviceEndpoint `json:"ep1" yaml:"ep1"`
	Ep2    DeviceEndpoint `json:"ep2" yaml:"ep2"`
}

// DeviceEndpoint references one or more Components of a Device, with
// an optional dotted, slice-qualified path into a nested Device.
type DeviceEndpoint struct {
	// Component is a dotted path of "name" or "name[slice]" segments,
	// e.g. "nic[0:8:2]" or "nic.port[0:2]" when nic is a nested Device.
	Component string `json:"component" yaml:"component"`
}

// Instance is a named replication of a Device within an Infrastructure.
type Instance struct {
	Name   string `json:"name" yaml:"name"`
	Device string `json:"device" yaml:"device"`
	Count  int    `json:"count" yaml:"count"`
}

// InfrastructureEdge wires two endpoints of the Infrastructure
// together, where each endpoint is qualified by an Instance slice and
// a component path relative to that Instance's Device.
type InfrastructureEdge struct {
	Scheme Scheme                 `json:"scheme" yaml:"scheme"`
	Link   string                 `json:"link" yaml:"link"`
	Ep1    InfrastructureEndpoint `json:"ep1" yaml:"ep1"`
	Ep2    InfrastructureEndpoint `json:"ep2" yaml:"ep2"`
}

// InfrastructureEndpoint references `count` replicas of an Instance
// (optionally sliced) crossed with a component path.
type InfrastructureEndpoint struct {
	// Instance is "name" or "name[slice]".
	Instance string `json:"instance" yaml:"instance"`
	// Component is a dotted, slice-qualified path relative to the
	// Instance's Device, same grammar as DeviceEndpoint.Component.
	Component string `json:"component" yaml:"component"`
}

// Annotation is a runtime request to attach an attribute to a
// compiled graph node.
type Annotation struct {
	NodeID    string `json:"node_id" yaml:"node_id"`
	Attribute string `json:"attribute" yaml:"attribute"`
	Value     string `json:"value" yaml:"value"`
}
