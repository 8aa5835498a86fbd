package domain

import (
	"context"
	"errors"
)

var (
	ErrIntegrationNotFound = errors.New("integration not found")
)

type IntegrationType string
type IntegrationActionType string
type IntegrationTriggerEventType string
type IntegrationPeekableType string

const (
	IntegrationType_Empty  IntegrationType = "empty"
	IntegrationType_Resend IntegrationType = "resend"
)

type Integration struct {
	ID          IntegrationType `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`

	CredentialProperties []NodeProperty       `json:"credential_props"`
	Actions              []IntegrationAction  `json:"actions"`
	Triggers             []IntegrationTrigger `json:"triggers"`

	CanTestConnection    bool `json:"can_test_connection"`
	IsCredentialOptional bool `json:"is_credential_optional"`
}

type IntegrationAction struct {
	ID          string                `json:"id"`
	ActionType  IntegrationActionType `json:"action_type"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Properties  []NodeProperty        `json:"properties"`
}

type IntegrationTrigger struct {
	ID          string                      `json:"id"`
	EventType   IntegrationTriggerEventType `json:"event_type"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Properties  []NodeProperty              `json:"properties"`
}

type IntegrationInput struct {
	NodeID            string
	ExecutionID       string
	WorkflowID        string
	PayloadByInputID  map[string]Payload
	IntegrationParams IntegrationParams
	ActionType        IntegrationActionType

	// ContinueOnFail turns per-item failures into error items instead of
	// aborting the whole batch.
	ContinueOnFail bool
}

func (i IntegrationInput) GetItemsByInputID() (map[string][]Item, error) {
	itemsByInputID := map[string][]Item{}

	for inputID, payload := range i.PayloadByInputID {
		items, err := payload.ToItems()
		if err != nil {
			return nil, err
		}

		itemsByInputID[inputID] = items
	}

	return itemsByInputID, nil
}

func (i IntegrationInput) GetAllItems() ([]Item, error) {
	itemsByInputID, err := i.GetItemsByInputID()
	if err != nil {
		return nil, err
	}

	items := []Item{}

	for _, inputItems := range itemsByInputID {
		items = append(items, inputItems...)
	}

	return items, nil
}

type IntegrationParams struct {
	Settings map[string]any
}

type IntegrationOutput struct {
	ResultJSONByOutputID []Payload
}

type IntegrationDeps struct {
	ParameterBinder           IntegrationParameterBinder
	ExecutorCredentialManager ExecutorCredentialManager
	ResumeURLSigner           ResumeURLSigner
	ExecutionSuspender        ExecutionSuspender
	AttributionInstanceID     string
}

type IntegrationParameterBinder interface {
	BindToStruct(ctx context.Context, item any, params any, expressions map[string]any) error
}
