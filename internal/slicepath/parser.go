// Package slicepath implements the endpoint slice-notation sublanguage
// described by spec.md §6:
//
//	Path      := Segment ("." Segment)*
//	Segment   := Ident ("[" Slice "]")?
//	Slice     := Int | Int? ":" Int? (":" Int?)?
//
// It is deliberately a single tight parser: DESIGN NOTES §9 calls out
// that the original Python source scatters this logic across three
// modules via ad hoc string splits, and asks for one parser instead.
package slicepath

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// Segment is a single decoded "name" or "name[slice]" path component:
// the half-open, strided index range [Start, Stop) by Step.
type Segment struct {
	Name  string
	Start int
	Stop  int
	Step  int
}

// Indices returns the concrete index sequence this segment expands to.
func (s Segment) Indices() []int {
	if s.Start >= s.Stop {
		return nil
	}
	out := make([]int, 0, (s.Stop-s.Start+s.Step-1)/s.Step)
	for i := s.Start; i < s.Stop; i += s.Step {
		out = append(out, i)
	}
	return out
}

var (
	segmentPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(\[(.*)\])?$`)
	intPattern     = regexp.MustCompile(`^[0-9]+$`)
)

// ParseSegment decodes a single "name" or "name[expr]" path segment
// against a component of the given replication count.
func ParseSegment(raw string, count int) (Segment, error) {
	m := segmentPattern.FindStringSubmatch(raw)
	if m == nil {
		return Segment{}, &infragraph.MalformedSliceError{Segment: raw, Reason: "not a valid name[slice] segment"}
	}

	name := m[1]
	hasBrackets := m[2] != ""

	start, stop, step := 0, count, 1
	if hasBrackets {
		var err error
		start, stop, step, err = parseSlice(m[3], count)
		if err != nil {
			return Segment{}, err
		}
	}

	if step < 1 {
		return Segment{}, &infragraph.MalformedSliceError{Segment: raw, Reason: "step must be >= 1"}
	}
	if start > stop {
		return Segment{}, &infragraph.MalformedSliceError{Segment: raw, Reason: "start must be <= stop"}
	}
	if start >= count && start != stop {
		return Segment{}, &infragraph.OutOfRangeError{Segment: raw, Count: count, Start: start, Stop: stop}
	}
	if stop > count {
		return Segment{}, &infragraph.OutOfRangeError{Segment: raw, Count: count, Start: start, Stop: stop}
	}

	return Segment{Name: name, Start: start, Stop: stop, Step: step}, nil
}

// parseSlice decodes the bracket contents of a segment: "", "k",
// "a:b", "a:b:s", ":b", "a:", ":", "::s", etc.
func parseSlice(expr string, count int) (start, stop, step int, err error) {
	if expr == "" {
		return 0, count, 1, nil
	}
	if !strings.Contains(expr, ":") {
		k, convErr := parseInt(expr)
		if convErr != nil {
			return 0, 0, 0, &infragraph.MalformedSliceError{Segment: expr, Reason: "not an integer"}
		}
		return k, k + 1, 1, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > 3 {
		return 0, 0, 0, &infragraph.MalformedSliceError{Segment: expr, Reason: "too many ':' separators"}
	}

	start, stop, step = 0, count, 1
	if parts[0] != "" {
		if start, err = parseInt(parts[0]); err != nil {
			return 0, 0, 0, &infragraph.MalformedSliceError{Segment: expr, Reason: "invalid start index"}
		}
	}
	if len(parts) > 1 && parts[1] != "" {
		if stop, err = parseInt(parts[1]); err != nil {
			return 0, 0, 0, &infragraph.MalformedSliceError{Segment: expr, Reason: "invalid stop index"}
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if step, err = parseInt(parts[2]); err != nil {
			return 0, 0, 0, &infragraph.MalformedSliceError{Segment: expr, Reason: "invalid step"}
		}
	}
	return start, stop, step, nil
}

func parseInt(s string) (int, error) {
	if !intPattern.MatchString(s) {
		return 0, &infragraph.MalformedSliceError{Segment: s, Reason: "negative or non-numeric index"}
	}
	return strconv.Atoi(s)
}

// SplitPath splits a dotted endpoint path into its raw segments. Dots
// only ever appear as path separators: slice content is digits, ':'
// and brackets, so a plain split is sufficient.
func SplitPath(path string) []string {
	return strings.Split(path, ".")
}
