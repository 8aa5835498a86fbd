package resendintegration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

const (
	webhookHeaderID        = "svix-id"
	webhookHeaderTimestamp = "svix-timestamp"
	webhookHeaderSignature = "svix-signature"

	webhookSecretPrefix = "whsec_"
)

// ResendTrigger turns verified provider webhook deliveries into workflow
// items. Webhook endpoints are configured in the provider dashboard, so the
// register/deregister lifecycle is a no-op.
type ResendTrigger struct {
	binder           domain.IntegrationParameterBinder
	credentialGetter domain.CredentialGetter[ResendCredential]
	logger           zerolog.Logger
}

func NewResendTrigger(deps domain.IntegrationDeps) *ResendTrigger {
	return &ResendTrigger{
		binder:           deps.ParameterBinder,
		credentialGetter: domain.NewJSONCredentialGetter[ResendCredential](deps.ExecutorCredentialManager),
		logger:           log.With().Str("trigger", "resend").Logger(),
	}
}

type triggerSettings struct {
	Events []string `json:"events"`
}

// HandleWebhook verifies the delivery signature and filters by subscribed
// event type. Anything that fails verification or filtering is discarded
// with an empty result; a webhook delivery must never error the ingress.
func (t *ResendTrigger) HandleWebhook(ctx context.Context, event domain.TriggerEvent) (domain.TriggerResult, error) {
	credential, err := t.credentialGetter.GetDecryptedCredential(ctx, event.CredentialID)
	if err != nil {
		t.logger.Warn().Err(err).Str("route_id", event.RouteID).Msg("failed to load webhook credential, discarding delivery")

		return domain.TriggerResult{}, nil
	}

	if !VerifyWebhookSignature(
		event.Body,
		event.Header(webhookHeaderID),
		event.Header(webhookHeaderTimestamp),
		event.Header(webhookHeaderSignature),
		credential.WebhookSigningSecret,
	) {
		t.logger.Warn().Str("route_id", event.RouteID).Msg("webhook signature verification failed, discarding delivery")

		return domain.TriggerResult{}, nil
	}

	var payload map[string]any

	if err := json.Unmarshal(event.Body, &payload); err != nil {
		t.logger.Warn().Err(err).Str("route_id", event.RouteID).Msg("webhook body is not a json object, discarding delivery")

		return domain.TriggerResult{}, nil
	}

	eventType, _ := payload["type"].(string)
	if eventType == "" {
		t.logger.Warn().Str("route_id", event.RouteID).Msg("webhook body has no event type, discarding delivery")

		return domain.TriggerResult{}, nil
	}

	settings := triggerSettings{}

	if err := t.binder.BindToStruct(ctx, map[string]any{}, &settings, event.TriggerNode.Settings); err != nil {
		t.logger.Warn().Err(err).Str("route_id", event.RouteID).Msg("failed to bind trigger settings, discarding delivery")

		return domain.TriggerResult{}, nil
	}

	if !isSubscribedEvent(eventType, settings.Events) {
		t.logger.Debug().
			Str("route_id", event.RouteID).
			Str("event_type", eventType).
			Msg("event type not subscribed, discarding delivery")

		return domain.TriggerResult{}, nil
	}

	return domain.TriggerResult{Items: []domain.Item{payload}}, nil
}

func isSubscribedEvent(eventType string, subscribed []string) bool {
	for _, candidate := range subscribed {
		if candidate == eventType {
			return true
		}
	}

	return false
}

// VerifyWebhookSignature checks a svix-style delivery signature: an
// HMAC-SHA256 over "id.timestamp.body" keyed with the base64-decoded
// signing secret. The signature header may carry several space-delimited
// "v1,<base64>" candidates from secret rotation; any one matching passes.
// Comparison is constant-time. The function reports failure, it never
// panics or errors.
func VerifyWebhookSignature(body []byte, id, timestamp, signatureHeader, secret string) bool {
	if id == "" || timestamp == "" || signatureHeader == "" || secret == "" {
		return false
	}

	key, ok := decodeWebhookSecret(secret)
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)

	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, candidate := range strings.Fields(signatureHeader) {
		version, signature, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}

		if hmac.Equal([]byte(signature), []byte(expected)) {
			return true
		}
	}

	return false
}

func decodeWebhookSecret(secret string) ([]byte, bool) {
	encoded := strings.TrimPrefix(secret, webhookSecretPrefix)

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}

	return key, true
}

// The provider only supports dashboard-managed webhook endpoints, so the
// lifecycle hooks acknowledge without calling out.

func (t *ResendTrigger) WebhookExists(ctx context.Context, node domain.WorkflowNode) (bool, error) {
	return true, nil
}

func (t *ResendTrigger) CreateWebhook(ctx context.Context, node domain.WorkflowNode) error {
	return nil
}

func (t *ResendTrigger) DeleteWebhook(ctx context.Context, node domain.WorkflowNode) error {
	return nil
}
