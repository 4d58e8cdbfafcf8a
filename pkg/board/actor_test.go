package board

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AbsentNullAndValue(t *testing.T) {
	var cmd TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t"}`), &cmd))
	assert.False(t, cmd.AssigneeID.Set)

	cmd = TaskUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId":null}`), &cmd))
	assert.True(t, cmd.AssigneeID.Set)
	assert.Nil(t, cmd.AssigneeID.Value)

	cmd = TaskUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId":42}`), &cmd))
	assert.True(t, cmd.AssigneeID.Set)
	require.NotNil(t, cmd.AssigneeID.Value)
	assert.Equal(t, uint(42), *cmd.AssigneeID.Value)
}
