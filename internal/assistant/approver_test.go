package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveAllPreservesOrderAndIDs(t *testing.T) {
	calls := []ToolCall{
		{ID: "a", Name: "lookup_office_hours"},
		{ID: "b", Name: "lookup_building"},
	}

	outputs := ApproveAll(calls)

	require.Len(t, outputs, 2)
	assert.Equal(t, "a", outputs[0].ToolCallID)
	assert.Equal(t, "b", outputs[1].ToolCallID)
	for _, out := range outputs {
		assert.JSONEq(t, `{"results": "Approved"}`, out.Output)
	}
}

func TestApproveAllEmpty(t *testing.T) {
	assert.Empty(t, ApproveAll(nil))
}
