package controllers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/internal/managers"
	"github.com/mailbridge/mailbridge/pkg/domain"
)

type fakeExecutor struct {
	inputs []domain.IntegrationInput
	output domain.IntegrationOutput
	err    error
}

func (e *fakeExecutor) Execute(ctx context.Context, params domain.IntegrationInput) (domain.IntegrationOutput, error) {
	e.inputs = append(e.inputs, params)

	return e.output, e.err
}

type fakeCreator struct {
	executor *fakeExecutor
}

func (c *fakeCreator) CreateIntegration(ctx context.Context, p domain.CreateIntegrationParams) (domain.IntegrationExecutor, error) {
	return c.executor, nil
}

func newExecutorApp(t *testing.T, executor *fakeExecutor, nodes *managers.NodeStore) *fiber.App {
	t.Helper()

	selector := domain.NewIntegrationSelector()
	selector.RegisterCreator(domain.IntegrationType_Resend, &fakeCreator{executor: executor})

	credentials, err := managers.NewFileCredentialManager("")
	require.NoError(t, err)

	controller := NewExecutorController(ExecutorControllerDependencies{
		Selector:          selector,
		CredentialManager: credentials,
		Nodes:             nodes,
	})

	app := fiber.New()
	app.Post("/executions", controller.ExecuteAction)

	return app
}

func TestExecuteAction_RegistersNodeForCallbacks(t *testing.T) {
	nodes, err := managers.NewNodeStore("")
	require.NoError(t, err)

	executor := &fakeExecutor{
		output: domain.IntegrationOutput{ResultJSONByOutputID: []domain.Payload{domain.Payload(`[]`)}},
	}

	app := newExecutorApp(t, executor, nodes)

	body := `{
		"integration_type": "resend",
		"credential_id": "cred_1",
		"action_type": "send_and_wait",
		"node_id": "node_1",
		"execution_id": "exec_1",
		"workflow_id": "wf_1",
		"settings": {
			"message": "Please review",
			"free_text_options": {"form_description": "What should change?"}
		},
		"payload_by_input_id": {"input_1": [{}]}
	}`

	request := httptest.NewRequest(fiber.MethodPost, "/executions", strings.NewReader(body))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	response, err := app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	node, ok := nodes.GetNode("node_1")
	require.True(t, ok, "executed nodes must be registered for resume callbacks")
	assert.Equal(t, "wf_1", node.WorkflowID)
	assert.Equal(t, "Please review", node.Settings["message"])

	require.Len(t, executor.inputs, 1)
	assert.Equal(t, domain.IntegrationActionType("send_and_wait"), executor.inputs[0].ActionType)
}

func TestExecuteAction_ValidationErrorIs422(t *testing.T) {
	nodes, err := managers.NewNodeStore("")
	require.NoError(t, err)

	executor := &fakeExecutor{
		err: domain.NewValidationError("to", "exactly one recipient is required"),
	}

	app := newExecutorApp(t, executor, nodes)

	body := `{
		"integration_type": "resend",
		"action_type": "send_and_wait",
		"node_id": "node_1",
		"settings": {}
	}`

	request := httptest.NewRequest(fiber.MethodPost, "/executions", strings.NewReader(body))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	response, err := app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, response.StatusCode)

	message, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(message), "exactly one recipient is required")
}
