package slicepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

func TestParseSegment_NoBrackets(t *testing.T) {
	seg, err := ParseSegment("nic", 4)
	require.NoError(t, err)
	assert.Equal(t, "nic", seg.Name)
	assert.Equal(t, []int{0, 1, 2, 3}, seg.Indices())
}

func TestParseSegment_SingleIndex(t *testing.T) {
	seg, err := ParseSegment("nic[2]", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, seg.Indices())
}

func TestParseSegment_Range(t *testing.T) {
	seg, err := ParseSegment("port[0:8:2]", 16)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 6}, seg.Indices())
}

func TestParseSegment_OpenStart(t *testing.T) {
	seg, err := ParseSegment("port[:4]", 16)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, seg.Indices())
}

func TestParseSegment_OpenStop(t *testing.T) {
	seg, err := ParseSegment("port[14:]", 16)
	require.NoError(t, err)
	assert.Equal(t, []int{14, 15}, seg.Indices())
}

func TestParseSegment_EmptyBrackets(t *testing.T) {
	seg, err := ParseSegment("port[]", 16)
	require.NoError(t, err)
	assert.Len(t, seg.Indices(), 16)
}

func TestParseSegment_EmptyTailSliceIsNoop(t *testing.T) {
	// start == stop == count: an empty range, not an out-of-range error.
	seg, err := ParseSegment("port[16:16]", 16)
	require.NoError(t, err)
	assert.Empty(t, seg.Indices())
}

func TestParseSegment_StepLessThanOneIsMalformed(t *testing.T) {
	_, err := ParseSegment("port[0:4:0]", 16)
	require.Error(t, err)
	var malformed *infragraph.MalformedSliceError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseSegment_StartAfterStopIsMalformed(t *testing.T) {
	_, err := ParseSegment("port[4:2]", 16)
	var malformed *infragraph.MalformedSliceError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseSegment_OutOfRange(t *testing.T) {
	_, err := ParseSegment("port[20]", 16)
	var oob *infragraph.OutOfRangeError
	assert.ErrorAs(t, err, &oob)
}

func TestParseSegment_StopBeyondCount(t *testing.T) {
	_, err := ParseSegment("port[0:20]", 16)
	var oob *infragraph.OutOfRangeError
	assert.ErrorAs(t, err, &oob)
}

func TestParseSegment_InvalidName(t *testing.T) {
	_, err := ParseSegment("3port[0]", 16)
	var malformed *infragraph.MalformedSliceError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseSegment_NegativeIndexRejected(t *testing.T) {
	_, err := ParseSegment("port[-1]", 16)
	require.Error(t, err)
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"nic", "port[0:2]"}, SplitPath("nic.port[0:2]"))
	assert.Equal(t, []string{"nic"}, SplitPath("nic"))
}
