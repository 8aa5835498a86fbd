package managers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

// SuspendedExecution is one branch parked by a send-and-wait node.
type SuspendedExecution struct {
	WaitID      string
	ExecutionID string
	NodeID      string
	WaitUntil   *time.Time
	SuspendedAt time.Time

	Resumed       bool
	ResumePayload domain.Payload
	ResumedAt     time.Time
}

// ExecutionWaitManager tracks suspended executions and delivers callback
// payloads into them. It implements both sides of the wait contract:
// integrations suspend through it, the callback controller resumes through
// it.
type ExecutionWaitManager struct {
	mtx       sync.RWMutex
	byWaitKey map[string]*SuspendedExecution
	onResumed func(ctx context.Context, execution SuspendedExecution)
}

func NewExecutionWaitManager() *ExecutionWaitManager {
	return &ExecutionWaitManager{
		byWaitKey: map[string]*SuspendedExecution{},
	}
}

// OnResumed registers a hook invoked after a successful resume, used to hand
// the execution back to the workflow engine.
func (m *ExecutionWaitManager) OnResumed(hook func(ctx context.Context, execution SuspendedExecution)) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.onResumed = hook
}

func waitKey(executionID, nodeID string) string {
	return executionID + "/" + nodeID
}

func (m *ExecutionWaitManager) Suspend(ctx context.Context, params domain.SuspendParams) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := waitKey(params.ExecutionID, params.NodeID)

	if existing, ok := m.byWaitKey[key]; ok && !existing.Resumed {
		return fmt.Errorf("execution %s is already suspended at node %s", params.ExecutionID, params.NodeID)
	}

	execution := &SuspendedExecution{
		WaitID:      xid.New().String(),
		ExecutionID: params.ExecutionID,
		NodeID:      params.NodeID,
		WaitUntil:   params.WaitUntil,
		SuspendedAt: time.Now(),
	}

	m.byWaitKey[key] = execution

	log.Info().
		Str("wait_id", execution.WaitID).
		Str("execution_id", params.ExecutionID).
		Str("node_id", params.NodeID).
		Msg("execution suspended")

	return nil
}

func (m *ExecutionWaitManager) ResumeExecution(ctx context.Context, params domain.ResumeParams) error {
	m.mtx.Lock()

	key := waitKey(params.ExecutionID, params.NodeID)

	execution, ok := m.byWaitKey[key]
	if !ok {
		m.mtx.Unlock()
		return fmt.Errorf("no suspended execution %s at node %s", params.ExecutionID, params.NodeID)
	}

	if execution.Resumed {
		m.mtx.Unlock()
		return fmt.Errorf("execution %s already resumed at node %s", params.ExecutionID, params.NodeID)
	}

	now := time.Now()

	if execution.WaitUntil != nil && now.After(*execution.WaitUntil) {
		m.mtx.Unlock()
		return fmt.Errorf("wait for execution %s at node %s expired", params.ExecutionID, params.NodeID)
	}

	execution.Resumed = true
	execution.ResumePayload = params.Payload
	execution.ResumedAt = now

	resumed := *execution
	hook := m.onResumed

	m.mtx.Unlock()

	log.Info().
		Str("wait_id", resumed.WaitID).
		Str("execution_id", resumed.ExecutionID).
		Str("node_id", resumed.NodeID).
		Msg("execution resumed")

	if hook != nil {
		hook(ctx, resumed)
	}

	return nil
}

// GetSuspended returns the wait entry for an execution/node pair.
func (m *ExecutionWaitManager) GetSuspended(executionID, nodeID string) (SuspendedExecution, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	execution, ok := m.byWaitKey[waitKey(executionID, nodeID)]
	if !ok {
		return SuspendedExecution{}, false
	}

	return *execution, true
}
