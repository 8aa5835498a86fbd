package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/internal/managers"
	"github.com/mailbridge/mailbridge/pkg/domain"
	"github.com/mailbridge/mailbridge/pkg/hitl"
)

// CallbackController serves the signed resume URLs embedded in
// send-and-wait notifications. The page it renders is the entire response;
// resuming the execution is a side effect.
type CallbackController struct {
	signer  domain.ResumeURLSigner
	resumer domain.ExecutionResumer
	nodes   *managers.NodeStore
}

type CallbackControllerDependencies struct {
	Signer  domain.ResumeURLSigner
	Resumer domain.ExecutionResumer
	Nodes   *managers.NodeStore
}

func NewCallbackController(deps CallbackControllerDependencies) *CallbackController {
	return &CallbackController{
		signer:  deps.Signer,
		resumer: deps.Resumer,
		nodes:   deps.Nodes,
	}
}

func (c *CallbackController) HandleCallback(ctx fiber.Ctx) error {
	token := ctx.Params("token")

	claims, err := c.signer.VerifyResumeToken(ctx.RequestCtx(), token)
	if err != nil {
		log.Warn().Err(err).Msg("resume callback with invalid token")

		return fiber.NewError(fiber.StatusNotFound, "This link is invalid or has expired")
	}

	query := url.Values{}
	for key, value := range ctx.Queries() {
		query.Set(key, value)
	}

	form := url.Values{}
	if response := ctx.FormValue("response"); response != "" {
		form.Set("response", response)
	}

	result, err := hitl.HandleCallback(hitl.CallbackRequest{
		Method:    ctx.Method(),
		Query:     query,
		Form:      form,
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}, c.callbackConfig(claims))
	if err != nil {
		log.Error().Err(err).Str("execution_id", claims.ExecutionID).Msg("resume callback failed")

		return fiber.NewError(fiber.StatusInternalServerError, "Something went wrong")
	}

	if result.Resume {
		err = c.resumer.ResumeExecution(ctx.RequestCtx(), domain.ResumeParams{
			ExecutionID: claims.ExecutionID,
			NodeID:      claims.NodeID,
			Payload:     result.Payload,
		})
		if err != nil {
			log.Warn().Err(err).
				Str("execution_id", claims.ExecutionID).
				Str("node_id", claims.NodeID).
				Msg("failed to resume execution from callback")

			return fiber.NewError(fiber.StatusGone, "This request has already been handled or has expired")
		}
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return ctx.Status(result.StatusCode).SendString(result.HTML)
}

// callbackConfig reconstructs form labels from the original node settings.
// Missing settings fall back to the defaults inside the callback handler.
func (c *CallbackController) callbackConfig(claims domain.ResumeClaims) hitl.CallbackConfig {
	config := hitl.CallbackConfig{
		ResponseMode: claims.ResponseMode,
	}

	node, ok := c.nodes.GetNode(claims.NodeID)
	if !ok {
		return config
	}

	if message, ok := node.Settings["message"].(string); ok {
		config.NotificationMessage = message
	}

	freeText, ok := node.Settings["free_text_options"].(map[string]any)
	if !ok {
		return config
	}

	if title, ok := freeText["form_title"].(string); ok {
		config.FormTitle = title
	}
	if description, ok := freeText["form_description"].(string); ok {
		config.FormDescription = description
	}
	if buttonLabel, ok := freeText["form_button_label"].(string); ok {
		config.FormButtonLabel = buttonLabel
	}

	return config
}
