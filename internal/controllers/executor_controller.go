package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/internal/managers"
	"github.com/mailbridge/mailbridge/pkg/domain"
)

// ExecutorController exposes the host-facing execution surface: run an
// action, peek option lists, test a credential.
type ExecutorController struct {
	selector          domain.IntegrationSelector
	credentialManager domain.ExecutorCredentialManager
	nodes             *managers.NodeStore
}

type ExecutorControllerDependencies struct {
	Selector          domain.IntegrationSelector
	CredentialManager domain.ExecutorCredentialManager
	Nodes             *managers.NodeStore
}

func NewExecutorController(deps ExecutorControllerDependencies) *ExecutorController {
	return &ExecutorController{
		selector:          deps.Selector,
		credentialManager: deps.CredentialManager,
		nodes:             deps.Nodes,
	}
}

type ExecuteActionRequest struct {
	IntegrationType domain.IntegrationType       `json:"integration_type"`
	CredentialID    string                       `json:"credential_id"`
	ActionType      domain.IntegrationActionType `json:"action_type"`
	NodeID          string                       `json:"node_id"`
	ExecutionID     string                       `json:"execution_id"`
	WorkflowID      string                       `json:"workflow_id"`
	Settings        map[string]any               `json:"settings"`
	ContinueOnFail  bool                         `json:"continue_on_fail"`

	// PayloadByInputID carries the incoming items per input, each a JSON
	// array.
	PayloadByInputID map[string]json.RawMessage `json:"payload_by_input_id"`
}

type ExecuteActionResponse struct {
	Outputs []json.RawMessage `json:"outputs"`
}

func (c *ExecutorController) ExecuteAction(ctx fiber.Ctx) error {
	var req ExecuteActionRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	creator, err := c.selector.SelectCreator(ctx.RequestCtx(), domain.SelectIntegrationParams{
		IntegrationType: req.IntegrationType,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	executor, err := creator.CreateIntegration(ctx.RequestCtx(), domain.CreateIntegrationParams{
		CredentialID: req.CredentialID,
	})
	if err != nil {
		log.Error().Err(err).Str("credential_id", req.CredentialID).Msg("failed to create integration")

		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create integration")
	}

	payloadByInputID := map[string]domain.Payload{}
	for inputID, payload := range req.PayloadByInputID {
		payloadByInputID[inputID] = domain.Payload(payload)
	}

	// Resume callbacks rebuild form labels from the node settings, so the
	// node has to be known before the action suspends.
	if req.NodeID != "" {
		c.nodes.RegisterNode(domain.WorkflowNode{
			ID:              req.NodeID,
			WorkflowID:      req.WorkflowID,
			IntegrationType: req.IntegrationType,
			CredentialID:    req.CredentialID,
			Settings:        req.Settings,
		})
	}

	output, err := executor.Execute(ctx.RequestCtx(), domain.IntegrationInput{
		NodeID:           req.NodeID,
		ExecutionID:      req.ExecutionID,
		WorkflowID:       req.WorkflowID,
		ActionType:       req.ActionType,
		PayloadByInputID: payloadByInputID,
		IntegrationParams: domain.IntegrationParams{
			Settings: req.Settings,
		},
		ContinueOnFail: req.ContinueOnFail,
	})
	if err != nil {
		return executionError(err)
	}

	response := ExecuteActionResponse{}
	for _, payload := range output.ResultJSONByOutputID {
		response.Outputs = append(response.Outputs, json.RawMessage(payload))
	}

	return ctx.JSON(response)
}

type PeekDataRequest struct {
	IntegrationType domain.IntegrationType         `json:"integration_type"`
	PeekableType    domain.IntegrationPeekableType `json:"peekable_type"`
	PayloadJSON     json.RawMessage                `json:"payload_json"`
}

func (c *ExecutorController) PeekData(ctx fiber.Ctx) error {
	var req PeekDataRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	peeker, err := c.selector.SelectPeeker(ctx.RequestCtx(), domain.SelectIntegrationParams{
		IntegrationType: req.IntegrationType,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	result, err := peeker.Peek(ctx.RequestCtx(), domain.PeekParams{
		PeekableType: req.PeekableType,
		PayloadJSON:  req.PayloadJSON,
	})
	if err != nil {
		return executionError(err)
	}

	return ctx.JSON(result)
}

type TestConnectionRequest struct {
	IntegrationType domain.IntegrationType `json:"integration_type"`
	CredentialID    string                 `json:"credential_id"`
}

type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (c *ExecutorController) TestConnection(ctx fiber.Ctx) error {
	var req TestConnectionRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	tester, err := c.selector.SelectConnectionTester(ctx.RequestCtx(), domain.SelectIntegrationParams{
		IntegrationType: req.IntegrationType,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	payload, err := c.credentialManager.GetDecryptedCredential(ctx.RequestCtx(), req.CredentialID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Credential not found")
	}

	decrypted := map[string]any{}
	if err := json.Unmarshal(payload, &decrypted); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Invalid credential payload")
	}

	success, err := tester.TestConnection(ctx.RequestCtx(), domain.TestConnectionParams{
		Credential: domain.Credential{
			ID:               req.CredentialID,
			IntegrationType:  req.IntegrationType,
			DecryptedPayload: decrypted,
		},
	})

	response := TestConnectionResponse{Success: success}
	if err != nil {
		response.Error = err.Error()
	}

	return ctx.JSON(response)
}

// executionError maps configuration errors to 422 and provider errors to
// 502 so callers can tell whose fault the failure was.
func executionError(err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, validationErr.Error())
	}

	return fiber.NewError(fiber.StatusBadGateway, err.Error())
}
