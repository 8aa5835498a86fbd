package managers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

func TestExecutionWaitManager_SuspendThenResume(t *testing.T) {
	manager := NewExecutionWaitManager()
	ctx := context.Background()

	var resumed []SuspendedExecution
	manager.OnResumed(func(ctx context.Context, execution SuspendedExecution) {
		resumed = append(resumed, execution)
	})

	err := manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_1", NodeID: "node_1"})
	require.NoError(t, err)

	suspended, ok := manager.GetSuspended("exec_1", "node_1")
	require.True(t, ok)
	assert.NotEmpty(t, suspended.WaitID)
	assert.False(t, suspended.Resumed)

	err = manager.ResumeExecution(ctx, domain.ResumeParams{
		ExecutionID: "exec_1",
		NodeID:      "node_1",
		Payload:     domain.Payload(`[{"data":{"approved":true}}]`),
	})
	require.NoError(t, err)

	suspended, ok = manager.GetSuspended("exec_1", "node_1")
	require.True(t, ok)
	assert.True(t, suspended.Resumed)
	assert.JSONEq(t, `[{"data":{"approved":true}}]`, string(suspended.ResumePayload))

	require.Len(t, resumed, 1)
	assert.Equal(t, "exec_1", resumed[0].ExecutionID)
}

func TestExecutionWaitManager_RejectsDoubleSuspend(t *testing.T) {
	manager := NewExecutionWaitManager()
	ctx := context.Background()

	require.NoError(t, manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_1", NodeID: "node_1"}))

	err := manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_1", NodeID: "node_1"})
	require.Error(t, err)

	// The same node in a different execution is a separate wait.
	require.NoError(t, manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_2", NodeID: "node_1"}))
}

func TestExecutionWaitManager_ResumeUnknownExecutionFails(t *testing.T) {
	manager := NewExecutionWaitManager()

	err := manager.ResumeExecution(context.Background(), domain.ResumeParams{ExecutionID: "exec_missing", NodeID: "node_1"})
	require.Error(t, err)
}

func TestExecutionWaitManager_RejectsSecondResume(t *testing.T) {
	manager := NewExecutionWaitManager()
	ctx := context.Background()

	require.NoError(t, manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_1", NodeID: "node_1"}))
	require.NoError(t, manager.ResumeExecution(ctx, domain.ResumeParams{ExecutionID: "exec_1", NodeID: "node_1"}))

	err := manager.ResumeExecution(ctx, domain.ResumeParams{ExecutionID: "exec_1", NodeID: "node_1"})
	require.Error(t, err)
}

func TestExecutionWaitManager_RejectsResumeAfterDeadline(t *testing.T) {
	manager := NewExecutionWaitManager()
	ctx := context.Background()

	deadline := time.Now().Add(-time.Minute)

	require.NoError(t, manager.Suspend(ctx, domain.SuspendParams{
		ExecutionID: "exec_1",
		NodeID:      "node_1",
		WaitUntil:   &deadline,
	}))

	err := manager.ResumeExecution(ctx, domain.ResumeParams{ExecutionID: "exec_1", NodeID: "node_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestExecutionWaitManager_SuspendAgainAfterResume(t *testing.T) {
	manager := NewExecutionWaitManager()
	ctx := context.Background()

	require.NoError(t, manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_1", NodeID: "node_1"}))
	require.NoError(t, manager.ResumeExecution(ctx, domain.ResumeParams{ExecutionID: "exec_1", NodeID: "node_1"}))

	// A resumed wait no longer blocks re-suspension of the same node.
	require.NoError(t, manager.Suspend(ctx, domain.SuspendParams{ExecutionID: "exec_1", NodeID: "node_1"}))
}
