package resendintegration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/pkg/domain"
	"github.com/mailbridge/mailbridge/pkg/expressions"

	"github.com/rs/zerolog"
)

type fakeCredentialManager struct {
	payloads map[string][]byte
}

func (m *fakeCredentialManager) GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error) {
	payload, ok := m.payloads[credentialID]
	if !ok {
		return nil, fmt.Errorf("credential %s not found", credentialID)
	}

	return payload, nil
}

var testSigningKey = []byte("super-secret-signing-key-material")

func testSigningSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString(testSigningKey)
}

func signDelivery(id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, testSigningKey)
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(body)

	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"type":"email.sent","data":{"email_id":"em_1"}}`)
	id := "msg_2abc"
	timestamp := "1716470000"

	valid := signDelivery(id, timestamp, body)

	tests := []struct {
		name      string
		body      []byte
		id        string
		timestamp string
		signature string
		secret    string
		want      bool
	}{
		{name: "valid", body: body, id: id, timestamp: timestamp, signature: valid, secret: testSigningSecret(), want: true},
		{name: "missing id", body: body, id: "", timestamp: timestamp, signature: valid, secret: testSigningSecret()},
		{name: "missing timestamp", body: body, id: id, timestamp: "", signature: valid, secret: testSigningSecret()},
		{name: "missing signature", body: body, id: id, timestamp: timestamp, signature: "", secret: testSigningSecret()},
		{name: "missing secret", body: body, id: id, timestamp: timestamp, signature: valid, secret: ""},
		{name: "tampered body", body: []byte(`{"type":"email.sent","data":{"email_id":"em_2"}}`), id: id, timestamp: timestamp, signature: valid, secret: testSigningSecret()},
		{name: "wrong secret", body: body, id: id, timestamp: timestamp, signature: valid, secret: "whsec_" + base64.StdEncoding.EncodeToString([]byte("another-key"))},
		{name: "wrong version prefix", body: body, id: id, timestamp: timestamp, signature: "v2," + valid[3:], secret: testSigningSecret()},
		{name: "garbage signature", body: body, id: id, timestamp: timestamp, signature: "v1,not-base64-but-still-checked", secret: testSigningSecret()},
		{name: "unparseable secret", body: body, id: id, timestamp: timestamp, signature: valid, secret: "whsec_%%%"},
		{
			name: "rotated secrets with one valid candidate",
			body: body, id: id, timestamp: timestamp,
			signature: "v1,b2xkLXNpZ25hdHVyZQ== " + valid,
			secret:    testSigningSecret(),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyWebhookSignature(tt.body, tt.id, tt.timestamp, tt.signature, tt.secret)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestTrigger(secret string) *ResendTrigger {
	credentials := &fakeCredentialManager{
		payloads: map[string][]byte{
			"cred_1": []byte(fmt.Sprintf(`{"api_key":"re_test","webhook_signing_secret":%q}`, secret)),
		},
	}

	return NewResendTrigger(domain.IntegrationDeps{
		ParameterBinder:           expressions.NewStaticBinder(expressions.StaticBinderOptions{Logger: zerolog.Nop()}),
		ExecutorCredentialManager: credentials,
	})
}

func signedEvent(body []byte, events ...any) domain.TriggerEvent {
	id := "msg_1"
	timestamp := "1716470000"

	return domain.TriggerEvent{
		RouteID: "route_1",
		Headers: map[string][]string{
			"Svix-Id":        {id},
			"Svix-Timestamp": {timestamp},
			"Svix-Signature": {signDelivery(id, timestamp, body)},
		},
		Body:         body,
		CredentialID: "cred_1",
		TriggerNode: domain.WorkflowNode{
			ID:              "node_1",
			IntegrationType: domain.IntegrationType_Resend,
			Settings:        map[string]any{"events": events},
		},
	}
}

func TestHandleWebhook_EmitsSubscribedEvent(t *testing.T) {
	trigger := newTestTrigger(testSigningSecret())

	body := []byte(`{"type":"email.delivered","created_at":"2025-05-23T12:00:00Z","data":{"email_id":"em_1"}}`)

	result, err := trigger.HandleWebhook(context.Background(), signedEvent(body, "email.delivered", "email.bounced"))

	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item, ok := result.Items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "email.delivered", item["type"])
}

func TestHandleWebhook_HeaderLookupIsCaseInsensitive(t *testing.T) {
	trigger := newTestTrigger(testSigningSecret())

	body := []byte(`{"type":"email.sent","data":{}}`)

	event := signedEvent(body, "email.sent")
	event.Headers = map[string][]string{
		"SVIX-ID":        event.Headers["Svix-Id"],
		"svix-timestamp": event.Headers["Svix-Timestamp"],
		"sViX-sIgNaTuRe": event.Headers["Svix-Signature"],
	}

	result, err := trigger.HandleWebhook(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestHandleWebhook_DiscardsUnsubscribedEvent(t *testing.T) {
	trigger := newTestTrigger(testSigningSecret())

	body := []byte(`{"type":"email.opened","data":{}}`)

	result, err := trigger.HandleWebhook(context.Background(), signedEvent(body, "email.delivered"))

	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestHandleWebhook_DiscardsOnVerificationFailure(t *testing.T) {
	trigger := newTestTrigger(testSigningSecret())

	body := []byte(`{"type":"email.sent","data":{}}`)

	tests := []struct {
		name   string
		mutate func(event *domain.TriggerEvent)
	}{
		{
			name: "missing signature header",
			mutate: func(event *domain.TriggerEvent) {
				delete(event.Headers, "Svix-Signature")
			},
		},
		{
			name: "missing id header",
			mutate: func(event *domain.TriggerEvent) {
				delete(event.Headers, "Svix-Id")
			},
		},
		{
			name: "tampered body",
			mutate: func(event *domain.TriggerEvent) {
				event.Body = []byte(`{"type":"email.sent","data":{"injected":true}}`)
			},
		},
		{
			name: "unknown credential",
			mutate: func(event *domain.TriggerEvent) {
				event.CredentialID = "cred_missing"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := signedEvent(body, "email.sent")
			tt.mutate(&event)

			result, err := trigger.HandleWebhook(context.Background(), event)

			require.NoError(t, err, "verification failures are discarded, never errored")
			assert.Empty(t, result.Items)
		})
	}
}

func TestHandleWebhook_DiscardsMalformedBody(t *testing.T) {
	trigger := newTestTrigger(testSigningSecret())

	tests := []struct {
		name string
		body []byte
	}{
		{name: "not json", body: []byte(`not json at all`)},
		{name: "json array", body: []byte(`[1,2,3]`)},
		{name: "no type field", body: []byte(`{"data":{"email_id":"em_1"}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := trigger.HandleWebhook(context.Background(), signedEvent(tt.body, "email.sent"))

			require.NoError(t, err)
			assert.Empty(t, result.Items)
		})
	}
}

func TestTriggerLifecycleIsNoOp(t *testing.T) {
	trigger := newTestTrigger(testSigningSecret())
	node := domain.WorkflowNode{ID: "node_1"}

	exists, err := trigger.WebhookExists(context.Background(), node)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, trigger.CreateWebhook(context.Background(), node))
	require.NoError(t, trigger.DeleteWebhook(context.Background(), node))
}
