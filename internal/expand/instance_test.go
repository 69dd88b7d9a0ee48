package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/testutil"
)

func TestMaterializeInstance_SimpleDevice(t *testing.T) {
	infra := testutil.SingleHostNIC()
	instance := infra.InstanceByName("host")

	result, err := MaterializeInstance(infra, instance)
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)

	node := result.Nodes[0]
	assert.Equal(t, "host.0.nic.0", node.ID)
	assert.Equal(t, "nic", node.Attrs["type"])
	assert.Equal(t, "host", node.Attrs["instance"])
	assert.Equal(t, "0", node.Attrs["instance_idx"])
	assert.Equal(t, "host", node.Attrs["device"])
}

func TestMaterializeInstance_NestedDeviceInlinedAndWired(t *testing.T) {
	infra := testutil.ReplicatedInstanceWithNestedDevice()
	instance := infra.InstanceByName("node")

	result, err := MaterializeInstance(infra, instance)
	require.NoError(t, err)

	// 2 replicas x (1 cpu + 2 nested ports) = 6 nodes.
	require.Len(t, result.Nodes, 6)

	var ids []string
	for _, n := range result.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Contains(t, ids, "node.0.cpu.0")
	assert.Contains(t, ids, "node.0.nic.0.port.0")
	assert.Contains(t, ids, "node.1.nic.0.port.1")

	// every node reports the top-level device name, even nested ones.
	for _, n := range result.Nodes {
		assert.Equal(t, "node", n.Attrs["device"])
	}

	// the ONE2ONE cpu<->nic.port[0:1] edge is replicated per occurrence.
	require.Len(t, result.Edges, 2)
	assert.Equal(t, "node.0.cpu.0", result.Edges[0].From)
	assert.Equal(t, "node.0.nic.0.port.0", result.Edges[0].To)
}

func TestIsNestedDeviceName(t *testing.T) {
	infra := testutil.ReplicatedInstanceWithNestedDevice()
	assert.True(t, IsNestedDeviceName(infra, "nic"))
	assert.False(t, IsNestedDeviceName(infra, "node"))
}
