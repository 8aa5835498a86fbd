package controllers

import (
	"context"
	"encoding/json"
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

type adminFixture struct {
	app         *fiber.App
	routes      *managers.WebhookRouteManager
	credentials *managers.FileCredentialManager
	dispatcher  *managers.ExecutionDispatcher
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()

	routes, err := managers.NewWebhookRouteManager("")
	require.NoError(t, err)

	credentials, err := managers.NewFileCredentialManager("")
	require.NoError(t, err)

	dispatcher := managers.NewExecutionDispatcher()

	controller := NewAdminController(AdminControllerDependencies{
		Routes:      routes,
		Credentials: credentials,
		Dispatcher:  dispatcher,
	})

	app := fiber.New()
	app.Post("/routes", controller.RegisterRoute)
	app.Post("/credentials", controller.SetCredential)
	app.Get("/executions", controller.ListExecutions)

	return adminFixture{app: app, routes: routes, credentials: credentials, dispatcher: dispatcher}
}

func TestRegisterRoute_AssignsIDAndStoresRoute(t *testing.T) {
	fixture := newAdminFixture(t)

	body := `{
		"credential_id": "cred_1",
		"trigger_node": {"id": "node_1", "integration_type": "resend", "settings": {"events": ["email.sent"]}}
	}`

	request := httptest.NewRequest(fiber.MethodPost, "/routes", strings.NewReader(body))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	response, err := fixture.app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, response.StatusCode)

	var registered managers.WebhookRoute
	require.NoError(t, json.NewDecoder(response.Body).Decode(&registered))
	require.NotEmpty(t, registered.RouteID)

	stored, ok := fixture.routes.GetRoute(registered.RouteID)
	require.True(t, ok)
	assert.Equal(t, "node_1", stored.TriggerNode.ID)
}

func TestRegisterRoute_RejectsMissingTriggerNode(t *testing.T) {
	fixture := newAdminFixture(t)

	request := httptest.NewRequest(fiber.MethodPost, "/routes", strings.NewReader(`{"credential_id": "cred_1"}`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	response, err := fixture.app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestSetCredential_MakesCredentialResolvable(t *testing.T) {
	fixture := newAdminFixture(t)

	body := `{"credential_id": "cred_1", "payload": {"api_key": "re_123"}}`

	request := httptest.NewRequest(fiber.MethodPost, "/credentials", strings.NewReader(body))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	response, err := fixture.app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, response.StatusCode)

	payload, err := fixture.credentials.GetDecryptedCredential(context.Background(), "cred_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"api_key": "re_123"}`, string(payload))
}

func TestListExecutions_IncludesTriggerPayload(t *testing.T) {
	fixture := newAdminFixture(t)

	require.NoError(t, fixture.dispatcher.StartExecution(context.Background(), domain.StartExecutionParams{
		WorkflowID:    "wf_1",
		TriggerNodeID: "node_1",
		Items:         []domain.Item{map[string]any{"type": "email.delivered"}},
	}))

	response, err := fixture.app.Test(httptest.NewRequest(fiber.MethodGet, "/executions", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var listed ListExecutionsResponse
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed.Executions, 1)

	assert.Equal(t, "wf_1", listed.Executions[0].WorkflowID)
	assert.Equal(t, 1, listed.Executions[0].ItemCount)
	assert.JSONEq(t, `[{"type":"email.delivered"}]`, string(listed.Executions[0].Payload))
}
