package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

// StartedExecution records one execution kicked off by a webhook delivery.
// Payload carries the trigger items so the workflow engine hook receives the
// verified delivery, not just its shape.
type StartedExecution struct {
	ExecutionID   string
	WorkflowID    string
	TriggerNodeID string
	ItemCount     int
	Payload       domain.Payload
}

// ExecutionDispatcher assigns execution ids to verified trigger deliveries
// and hands them to the workflow engine hook. Without a hook it records the
// start so the delivery is not lost silently.
type ExecutionDispatcher struct {
	mtx     sync.RWMutex
	started []StartedExecution
	onStart func(ctx context.Context, execution StartedExecution)
}

func NewExecutionDispatcher() *ExecutionDispatcher {
	return &ExecutionDispatcher{}
}

func (d *ExecutionDispatcher) OnStart(hook func(ctx context.Context, execution StartedExecution)) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.onStart = hook
}

func (d *ExecutionDispatcher) StartExecution(ctx context.Context, params domain.StartExecutionParams) error {
	payload, err := domain.NewPayloadFromItems(params.Items)
	if err != nil {
		return fmt.Errorf("failed to encode trigger items: %w", err)
	}

	execution := StartedExecution{
		ExecutionID:   xid.New().String(),
		WorkflowID:    params.WorkflowID,
		TriggerNodeID: params.TriggerNodeID,
		ItemCount:     len(params.Items),
		Payload:       payload,
	}

	d.mtx.Lock()
	d.started = append(d.started, execution)
	hook := d.onStart
	d.mtx.Unlock()

	log.Info().
		Str("execution_id", execution.ExecutionID).
		Str("workflow_id", execution.WorkflowID).
		Str("trigger_node_id", execution.TriggerNodeID).
		Int("items", execution.ItemCount).
		Msg("starting execution for trigger delivery")

	if hook != nil {
		hook(ctx, execution)
	}

	return nil
}

func (d *ExecutionDispatcher) Started() []StartedExecution {
	d.mtx.RLock()
	defer d.mtx.RUnlock()

	started := make([]StartedExecution, len(d.started))
	copy(started, d.started)

	return started
}
