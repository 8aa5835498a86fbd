package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"github.com/mailbridge/mailbridge/internal/managers"
)

// AdminController is the host-facing management surface: push webhook
// routes and credentials into the running executor, inspect executions
// started by trigger deliveries.
type AdminController struct {
	routes      *managers.WebhookRouteManager
	credentials *managers.FileCredentialManager
	dispatcher  *managers.ExecutionDispatcher
}

type AdminControllerDependencies struct {
	Routes      *managers.WebhookRouteManager
	Credentials *managers.FileCredentialManager
	Dispatcher  *managers.ExecutionDispatcher
}

func NewAdminController(deps AdminControllerDependencies) *AdminController {
	return &AdminController{
		routes:      deps.Routes,
		credentials: deps.Credentials,
		dispatcher:  deps.Dispatcher,
	}
}

func (c *AdminController) RegisterRoute(ctx fiber.Ctx) error {
	var route managers.WebhookRoute

	if err := ctx.Bind().Body(&route); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if route.TriggerNode.ID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "A trigger node is required")
	}

	registered := c.routes.RegisterRoute(route)

	return ctx.Status(fiber.StatusCreated).JSON(registered)
}

type SetCredentialRequest struct {
	CredentialID string          `json:"credential_id"`
	Payload      json.RawMessage `json:"payload"`
}

func (c *AdminController) SetCredential(ctx fiber.Ctx) error {
	var req SetCredentialRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.CredentialID == "" || len(req.Payload) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "A credential id and payload are required")
	}

	c.credentials.SetCredential(req.CredentialID, req.Payload)

	return ctx.SendStatus(fiber.StatusNoContent)
}

type StartedExecutionResponse struct {
	ExecutionID   string          `json:"execution_id"`
	WorkflowID    string          `json:"workflow_id"`
	TriggerNodeID string          `json:"trigger_node_id"`
	ItemCount     int             `json:"item_count"`
	Payload       json.RawMessage `json:"payload"`
}

type ListExecutionsResponse struct {
	Executions []StartedExecutionResponse `json:"executions"`
}

func (c *AdminController) ListExecutions(ctx fiber.Ctx) error {
	response := ListExecutionsResponse{
		Executions: []StartedExecutionResponse{},
	}

	for _, execution := range c.dispatcher.Started() {
		response.Executions = append(response.Executions, StartedExecutionResponse{
			ExecutionID:   execution.ExecutionID,
			WorkflowID:    execution.WorkflowID,
			TriggerNodeID: execution.TriggerNodeID,
			ItemCount:     execution.ItemCount,
			Payload:       json.RawMessage(execution.Payload),
		})
	}

	return ctx.JSON(response)
}
