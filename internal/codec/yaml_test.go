package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

const sampleDoc = `
name: sample
description: a minimal document
devices:
  - name: host
    components:
      - name: nic
        count: 1
        kind: nic
instances:
  - name: host
    device: host
    count: 1
`

func TestDeserialize_Valid(t *testing.T) {
	infra, err := Deserialize([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, "sample", infra.Name)
	require.Len(t, infra.Devices, 1)
	assert.Equal(t, infragraph.KindNIC, infra.Devices[0].Components[0].Kind)
}

func TestDeserialize_Malformed(t *testing.T) {
	_, err := Deserialize([]byte("not: valid: yaml: at all: ["))
	var malformed *infragraph.MalformedDocumentError
	assert.ErrorAs(t, err, &malformed)
}

func TestSerializeRoundTrip(t *testing.T) {
	infra, err := Deserialize([]byte(sampleDoc))
	require.NoError(t, err)

	data, err := Serialize(infra)
	require.NoError(t, err)

	roundTripped, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, infra.Name, roundTripped.Name)
	assert.Equal(t, infra.Devices[0].Components[0].Count, roundTripped.Devices[0].Components[0].Count)
}
