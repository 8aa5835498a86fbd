package managers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

func TestExecutionDispatcher_CarriesTriggerItems(t *testing.T) {
	dispatcher := NewExecutionDispatcher()

	var handed []StartedExecution
	dispatcher.OnStart(func(ctx context.Context, execution StartedExecution) {
		handed = append(handed, execution)
	})

	err := dispatcher.StartExecution(context.Background(), domain.StartExecutionParams{
		WorkflowID:    "wf_1",
		TriggerNodeID: "node_1",
		Items: []domain.Item{
			map[string]any{"type": "email.delivered", "data": map[string]any{"email_id": "em_1"}},
		},
	})
	require.NoError(t, err)

	require.Len(t, handed, 1)
	assert.NotEmpty(t, handed[0].ExecutionID)
	assert.Equal(t, "wf_1", handed[0].WorkflowID)
	assert.Equal(t, 1, handed[0].ItemCount)
	assert.JSONEq(t, `[{"type":"email.delivered","data":{"email_id":"em_1"}}]`, string(handed[0].Payload))

	items, err := handed[0].Payload.ToItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestExecutionDispatcher_StartedReturnsRecordedExecutions(t *testing.T) {
	dispatcher := NewExecutionDispatcher()
	ctx := context.Background()

	require.NoError(t, dispatcher.StartExecution(ctx, domain.StartExecutionParams{
		WorkflowID:    "wf_1",
		TriggerNodeID: "node_1",
		Items:         []domain.Item{map[string]any{"type": "email.sent"}},
	}))
	require.NoError(t, dispatcher.StartExecution(ctx, domain.StartExecutionParams{
		WorkflowID:    "wf_2",
		TriggerNodeID: "node_2",
	}))

	started := dispatcher.Started()
	require.Len(t, started, 2)

	assert.Equal(t, "wf_1", started[0].WorkflowID)
	assert.JSONEq(t, `[{"type":"email.sent"}]`, string(started[0].Payload))

	assert.Equal(t, 0, started[1].ItemCount)
	assert.JSONEq(t, `[]`, string(started[1].Payload))
}
