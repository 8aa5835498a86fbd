package hitl

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

// CallbackRequest is one HTTP visit to a signed resume URL.
type CallbackRequest struct {
	Method    string
	Query     url.Values
	Form      url.Values
	UserAgent string
}

// CallbackConfig is reconstructed from the original node settings when the
// host re-invokes the node on resume.
type CallbackConfig struct {
	ResponseMode domain.ResponseMode

	// Free-text form content; empty fields fall back to the notification's
	// own title/message and a default button label.
	FormTitle       string
	FormDescription string
	FormButtonLabel string

	NotificationMessage string
}

// CallbackResult tells the controller what to serve and whether to resume
// the suspended execution. The served page IS the webhook response; the host
// must not render its own.
type CallbackResult struct {
	Resume     bool
	Payload    domain.Payload
	StatusCode int
	HTML       string
}

var botUserAgentMarkers = []string{
	"bot", "crawler", "spider", "preview", "scrape",
	"slackbot", "discordbot", "telegrambot", "whatsapp",
	"facebookexternalhit", "linkedinbot", "twitterbot",
	"curl/", "wget/",
}

// IsBotUserAgent flags automated crawlers so a link preview cannot resolve a
// wait on the user's behalf.
func IsBotUserAgent(userAgent string) bool {
	lowered := strings.ToLower(userAgent)

	for _, marker := range botUserAgentMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}

	return false
}

// HandleCallback turns an HTTP visit into a resume decision. Approval mode
// reads the approved query flag; free-text mode serves a form on GET and
// collects the response field on POST.
func HandleCallback(req CallbackRequest, cfg CallbackConfig) (CallbackResult, error) {
	switch cfg.ResponseMode {
	case domain.ResponseMode_FreeText:
		return handleFreeTextCallback(req, cfg)
	case domain.ResponseMode_Approval, "":
		return handleApprovalCallback(req)
	default:
		return CallbackResult{}, fmt.Errorf("unknown response mode %q", cfg.ResponseMode)
	}
}

func handleApprovalCallback(req CallbackRequest) (CallbackResult, error) {
	if req.Method == http.MethodGet && IsBotUserAgent(req.UserAgent) {
		// Link-preview crawler polling the approval URL. Answer empty and
		// leave the wait untouched.
		return CallbackResult{StatusCode: http.StatusOK}, nil
	}

	approved := req.Query.Get("approved") == "true"

	payload, err := json.Marshal(map[string]any{
		"data": map[string]any{"approved": approved},
	})
	if err != nil {
		return CallbackResult{}, err
	}

	return CallbackResult{
		Resume:     true,
		Payload:    payload,
		StatusCode: http.StatusOK,
		HTML:       confirmationPage,
	}, nil
}

func handleFreeTextCallback(req CallbackRequest, cfg CallbackConfig) (CallbackResult, error) {
	if req.Method == http.MethodGet {
		return CallbackResult{
			StatusCode: http.StatusOK,
			HTML:       renderResponseForm(cfg),
		}, nil
	}

	response := req.Form.Get("response")

	payload, err := json.Marshal(map[string]any{
		"data": map[string]any{"text": response},
	})
	if err != nil {
		return CallbackResult{}, err
	}

	return CallbackResult{
		Resume:     true,
		Payload:    payload,
		StatusCode: http.StatusOK,
		HTML:       confirmationPage,
	}, nil
}

func renderResponseForm(cfg CallbackConfig) string {
	title := cfg.FormTitle

	description := cfg.FormDescription
	if description == "" {
		description = cfg.NotificationMessage
	}

	buttonLabel := cfg.FormButtonLabel
	if buttonLabel == "" {
		buttonLabel = DefaultSubmitLabel
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Respond</title></head>")
	b.WriteString("<body style=\"font-family:Arial,sans-serif;color:#111827;background:#f9fafb;\">")
	b.WriteString("<div style=\"max-width:520px;margin:48px auto;padding:24px;background:#ffffff;border-radius:8px;\">")

	if title != "" {
		b.WriteString("<h1 style=\"font-size:20px;\">")
		b.WriteString(html.EscapeString(title))
		b.WriteString("</h1>")
	}

	if description != "" {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(description), "\n", "<br>"))
		b.WriteString("</p>")
	}

	b.WriteString("<form method=\"POST\">")
	b.WriteString("<textarea name=\"response\" rows=\"6\" style=\"width:100%;padding:8px;border:1px solid #d1d5db;border-radius:6px;\"></textarea>")
	b.WriteString(fmt.Sprintf("<button type=\"submit\" style=%q>%s</button>", buttonStylePrimary, html.EscapeString(buttonLabel)))
	b.WriteString("</form></div></body></html>")

	return b.String()
}

const confirmationPage = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>Response recorded</title></head>` +
	`<body style="font-family:Arial,sans-serif;color:#111827;background:#f9fafb;">` +
	`<div style="max-width:520px;margin:48px auto;padding:24px;background:#ffffff;border-radius:8px;text-align:center;">` +
	`<h1 style="font-size:20px;">Got it, your response was recorded</h1>` +
	`<p>You can close this page now.</p>` +
	`</div></body></html>`
