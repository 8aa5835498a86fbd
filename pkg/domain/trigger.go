package domain

import (
	"context"
	"strings"
)

// TriggerEvent is one inbound webhook delivery, raw. Header lookup is
// case-insensitive; proxies and hosts disagree on capitalization.
type TriggerEvent struct {
	RouteID      string
	Headers      map[string][]string
	Body         []byte
	TriggerNode  WorkflowNode
	CredentialID string
}

func (e TriggerEvent) Header(key string) string {
	for name, values := range e.Headers {
		if len(values) == 0 {
			continue
		}

		if strings.EqualFold(name, key) {
			return values[0]
		}
	}

	return ""
}

// TriggerResult carries zero or one items into the workflow. Discarded
// deliveries produce an empty result, never an error; the ingress always
// answers 200 so one bad delivery cannot break a subscription.
type TriggerResult struct {
	Items []Item
}

type IntegrationWebhookHandler interface {
	HandleWebhook(ctx context.Context, event TriggerEvent) (TriggerResult, error)
}

type StartExecutionParams struct {
	WorkflowID    string
	TriggerNodeID string
	Items         []Item
}

// ExecutionStarter hands verified trigger items to the workflow engine.
type ExecutionStarter interface {
	StartExecution(ctx context.Context, params StartExecutionParams) error
}

// WebhookLifecycle is the host's register/deregister contract for provider
// webhooks. Integrations whose provider manages webhooks in its own
// dashboard implement these as explicit no-ops.
type WebhookLifecycle interface {
	WebhookExists(ctx context.Context, node WorkflowNode) (bool, error)
	CreateWebhook(ctx context.Context, node WorkflowNode) error
	DeleteWebhook(ctx context.Context, node WorkflowNode) error
}

// WorkflowNode is the trigger node configuration as stored by the host. The
// executor re-reads it both on delivery and on HITL resume.
type WorkflowNode struct {
	ID              string          `json:"id"`
	WorkflowID      string          `json:"workflow_id"`
	IntegrationType IntegrationType `json:"integration_type"`
	CredentialID    string          `json:"credential_id"`
	Settings        map[string]any  `json:"settings"`
}
