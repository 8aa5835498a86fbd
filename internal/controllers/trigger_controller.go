package controllers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/internal/managers"
	"github.com/mailbridge/mailbridge/pkg/domain"
)

// TriggerController is the webhook ingress. It always answers 200: a
// provider that sees repeated failures will disable the endpoint, so
// verification failures and unroutable deliveries are swallowed after
// logging.
type TriggerController struct {
	selector domain.IntegrationSelector
	routes   *managers.WebhookRouteManager
	starter  domain.ExecutionStarter
}

type TriggerControllerDependencies struct {
	Selector domain.IntegrationSelector
	Routes   *managers.WebhookRouteManager
	Starter  domain.ExecutionStarter
}

func NewTriggerController(deps TriggerControllerDependencies) *TriggerController {
	return &TriggerController{
		selector: deps.Selector,
		routes:   deps.Routes,
		starter:  deps.Starter,
	}
}

func (c *TriggerController) HandleWebhook(ctx fiber.Ctx) error {
	routeID := ctx.Params("routeID")

	route, ok := c.routes.GetRoute(routeID)
	if !ok {
		log.Warn().Str("route_id", routeID).Msg("webhook delivery for unknown route")

		return ctx.SendStatus(fiber.StatusOK)
	}

	handler, err := c.selector.SelectWebhookHandler(ctx.RequestCtx(), domain.SelectIntegrationParams{
		IntegrationType: route.TriggerNode.IntegrationType,
	})
	if err != nil {
		log.Warn().Err(err).Str("route_id", routeID).Msg("no webhook handler for route")

		return ctx.SendStatus(fiber.StatusOK)
	}

	body := make([]byte, len(ctx.Body()))
	copy(body, ctx.Body())

	event := domain.TriggerEvent{
		RouteID:      routeID,
		Headers:      ctx.GetReqHeaders(),
		Body:         body,
		TriggerNode:  route.TriggerNode,
		CredentialID: route.CredentialID,
	}

	result, err := handler.HandleWebhook(ctx.RequestCtx(), event)
	if err != nil {
		log.Error().Err(err).Str("route_id", routeID).Msg("webhook handler failed")

		return ctx.SendStatus(fiber.StatusOK)
	}

	if len(result.Items) > 0 {
		err = c.starter.StartExecution(ctx.RequestCtx(), domain.StartExecutionParams{
			WorkflowID:    route.TriggerNode.WorkflowID,
			TriggerNodeID: route.TriggerNode.ID,
			Items:         result.Items,
		})
		if err != nil {
			log.Error().Err(err).Str("route_id", routeID).Msg("failed to start execution for webhook delivery")
		}
	}

	return ctx.SendStatus(fiber.StatusOK)
}
