// Package codec adapts the declarative infrastructure document format
// (YAML) to and from internal/domain/infragraph.Infrastructure.
package codec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// Deserialize parses raw YAML bytes into an Infrastructure. Parse
// failures are reported as MalformedDocumentError so callers can
// distinguish a bad document from a structurally valid one that fails
// later invariant checks.
func Deserialize(data []byte) (*infragraph.Infrastructure, error) {
	var infra infragraph.Infrastructure
	if err := yaml.Unmarshal(data, &infra); err != nil {
		return nil, &infragraph.MalformedDocumentError{Path: "<memory>", Err: err}
	}
	return &infra, nil
}

// DeserializeFile reads and parses a declaration file from disk.
func DeserializeFile(path string) (*infragraph.Infrastructure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &infragraph.MalformedDocumentError{Path: path, Err: err}
	}
	infra, err := Deserialize(data)
	if err != nil {
		if merr, ok := err.(*infragraph.MalformedDocumentError); ok {
			merr.Path = path
		}
		return nil, err
	}
	return infra, nil
}

// Serialize encodes an Infrastructure back to YAML. The document store
// keeps raw file bytes and does not go through Serialize.
func Serialize(infra *infragraph.Infrastructure) ([]byte, error) {
	data, err := yaml.Marshal(infra)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize infrastructure: %w", err)
	}
	return data, nil
}
