package managers

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/xid"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

// WebhookRoute binds one public webhook path segment to a trigger node.
type WebhookRoute struct {
	RouteID      string              `json:"route_id"`
	CredentialID string              `json:"credential_id"`
	TriggerNode  domain.WorkflowNode `json:"trigger_node"`
}

// WebhookRouteManager resolves inbound webhook deliveries to the trigger
// node that should handle them. Routes load from a JSON file at startup and
// can be registered at runtime.
type WebhookRouteManager struct {
	mtx    sync.RWMutex
	routes map[string]WebhookRoute
}

func NewWebhookRouteManager(path string) (*WebhookRouteManager, error) {
	manager := &WebhookRouteManager{
		routes: map[string]WebhookRoute{},
	}

	if path == "" {
		return manager, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	var routes []WebhookRoute

	if err := json.Unmarshal(contents, &routes); err != nil {
		return nil, fmt.Errorf("failed to parse routes file: %w", err)
	}

	for _, route := range routes {
		if route.RouteID == "" {
			route.RouteID = xid.New().String()
		}

		manager.routes[route.RouteID] = route
	}

	return manager, nil
}

func (m *WebhookRouteManager) GetRoute(routeID string) (WebhookRoute, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	route, ok := m.routes[routeID]
	return route, ok
}

func (m *WebhookRouteManager) RegisterRoute(route WebhookRoute) WebhookRoute {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if route.RouteID == "" {
		route.RouteID = xid.New().String()
	}

	m.routes[route.RouteID] = route

	return route
}
