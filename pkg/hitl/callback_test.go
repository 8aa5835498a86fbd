package hitl

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

func TestIsBotUserAgent(t *testing.T) {
	tests := []struct {
		userAgent string
		isBot     bool
	}{
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36", false},
		{"Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)", true},
		{"facebookexternalhit/1.1", true},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"curl/8.4.0", true},
		{"WhatsApp/2.23.20", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.userAgent, func(t *testing.T) {
			assert.Equal(t, tt.isBot, IsBotUserAgent(tt.userAgent))
		})
	}
}

func approvalPayload(t *testing.T, payload domain.Payload) bool {
	t.Helper()

	var decoded struct {
		Data struct {
			Approved bool `json:"approved"`
		} `json:"data"`
	}

	require.NoError(t, json.Unmarshal(payload, &decoded))

	return decoded.Data.Approved
}

func TestHandleCallback_ApprovalApprove(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method:    http.MethodGet,
		Query:     url.Values{"approved": {"true"}},
		UserAgent: "Mozilla/5.0",
	}, CallbackConfig{ResponseMode: domain.ResponseMode_Approval})

	require.NoError(t, err)
	assert.True(t, result.Resume)
	assert.True(t, approvalPayload(t, result.Payload))
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "your response was recorded")
}

func TestHandleCallback_ApprovalDisapprove(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method:    http.MethodGet,
		Query:     url.Values{"approved": {"false"}},
		UserAgent: "Mozilla/5.0",
	}, CallbackConfig{ResponseMode: domain.ResponseMode_Approval})

	require.NoError(t, err)
	assert.True(t, result.Resume)
	assert.False(t, approvalPayload(t, result.Payload))
}

func TestHandleCallback_ApprovalMissingFlagMeansDisapprove(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method:    http.MethodGet,
		Query:     url.Values{},
		UserAgent: "Mozilla/5.0",
	}, CallbackConfig{ResponseMode: domain.ResponseMode_Approval})

	require.NoError(t, err)
	assert.True(t, result.Resume)
	assert.False(t, approvalPayload(t, result.Payload))
}

func TestHandleCallback_BotGetDoesNotResolveApproval(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method:    http.MethodGet,
		Query:     url.Values{"approved": {"true"}},
		UserAgent: "Slackbot-LinkExpanding 1.0",
	}, CallbackConfig{ResponseMode: domain.ResponseMode_Approval})

	require.NoError(t, err)
	assert.False(t, result.Resume, "a link preview crawler must not resolve the wait")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Empty(t, result.Payload)
}

func TestHandleCallback_FreeTextGetServesForm(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method: http.MethodGet,
	}, CallbackConfig{
		ResponseMode:        domain.ResponseMode_FreeText,
		FormTitle:           "Feedback",
		FormDescription:     "Tell us what you think",
		FormButtonLabel:     "Send",
		NotificationMessage: "unused here",
	})

	require.NoError(t, err)
	assert.False(t, result.Resume, "serving the form must not resolve the wait")
	assert.Contains(t, result.HTML, "Feedback")
	assert.Contains(t, result.HTML, "Tell us what you think")
	assert.Contains(t, result.HTML, ">Send</button>")
	assert.Contains(t, result.HTML, `name="response"`)
}

func TestHandleCallback_FreeTextFormFallbacks(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method: http.MethodGet,
	}, CallbackConfig{
		ResponseMode:        domain.ResponseMode_FreeText,
		NotificationMessage: "Original notification text",
	})

	require.NoError(t, err)
	assert.NotContains(t, result.HTML, "<h1", "an empty title stays empty")
	assert.Contains(t, result.HTML, "Original notification text", "description falls back to the notification message")
	assert.Contains(t, result.HTML, ">"+DefaultSubmitLabel+"</button>")
}

func TestHandleCallback_FreeTextPostCollectsResponse(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method: http.MethodPost,
		Form:   url.Values{"response": {"Looks good to me"}},
	}, CallbackConfig{ResponseMode: domain.ResponseMode_FreeText})

	require.NoError(t, err)
	assert.True(t, result.Resume)

	var decoded struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	}

	require.NoError(t, json.Unmarshal(result.Payload, &decoded))
	assert.Equal(t, "Looks good to me", decoded.Data.Text)
}

func TestHandleCallback_FreeTextEmptySubmission(t *testing.T) {
	result, err := HandleCallback(CallbackRequest{
		Method: http.MethodPost,
		Form:   url.Values{},
	}, CallbackConfig{ResponseMode: domain.ResponseMode_FreeText})

	require.NoError(t, err)
	assert.True(t, result.Resume)

	var decoded struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	}

	require.NoError(t, json.Unmarshal(result.Payload, &decoded))
	assert.Empty(t, decoded.Data.Text, "an empty submission resumes with empty text")
}
