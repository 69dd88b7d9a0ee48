package infragraph

import "fmt"

// The error taxonomy below mirrors the kinds spec.md §7 requires
// callers to be able to distinguish with errors.As. It is grounded on
// the original Python service's GraphError / InfrastructureError /
// ValueError exception classes rather than on the teacher, which uses
// bare fmt.Errorf throughout its service layer — a typed taxonomy is
// the one place this repo departs from that idiom, because the spec
// explicitly calls for one.

// MalformedDocumentError reports a structural parse failure upstream
// of the core (schema loader, YAML/JSON decode).
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document at %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// MalformedSliceError reports an unparsable slice expression or a
// step < 1.
type MalformedSliceError struct {
	Segment string
	Reason  string
}

func (e *MalformedSliceError) Error() string {
	return fmt.Sprintf("malformed slice %q: %s", e.Segment, e.Reason)
}

// OutOfRangeError reports a slice whose start is at or past count (on a
// non-empty range) or whose stop exceeds count.
type OutOfRangeError struct {
	Segment string
	Count   int
	Start   int
	Stop    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("slice %q out of range for count %d (start=%d stop=%d)",
		e.Segment, e.Count, e.Start, e.Stop)
}

// UnknownNameError reports a component/device/instance/link name that
// does not resolve in its scope.
type UnknownNameError struct {
	Kind string // "component", "device", "instance", "link"
	Name string
	Scope string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q in %s", e.Kind, e.Name, e.Scope)
}

// InvariantViolationError reports a structural invariant failure:
// duplicate names, cyclic device composition, dangling link,
// cross-instance device edge, self-loop, or mismatched ONE2ONE
// cardinalities.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// UnknownEndpointError reports a query or annotation referencing a
// node id absent from the compiled graph.
type UnknownEndpointError struct {
	NodeID string
}

func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("unknown endpoint %q", e.NodeID)
}

// NoPathError reports that a shortest-path target is unreachable from
// its source.
type NoPathError struct {
	Src, Dst string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path between %q and %q", e.Src, e.Dst)
}

// NotInitializedError reports a query issued before the first
// successful Compile.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "graph is not initialized: call Compile first"
}

// UnknownFilterKindError reports a Query filter with an unrecognized
// kind or operator.
type UnknownFilterKindError struct {
	Kind string
}

func (e *UnknownFilterKindError) Error() string {
	return fmt.Sprintf("unknown filter kind %q", e.Kind)
}
