// Package hitl implements send-and-wait: a notification email carrying
// signed action links goes out, the execution suspends, and a later visit to
// one of the links resumes it with the human's answer.
package hitl

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

type ResponseType string

const (
	ResponseType_Approval ResponseType = "approval"
	ResponseType_FreeText ResponseType = "freeText"
)

type ApprovalType string

const (
	ApprovalType_Single ApprovalType = "single"
	ApprovalType_Double ApprovalType = "double"
)

type ButtonStyle string

const (
	ButtonStyle_Primary   ButtonStyle = "primary"
	ButtonStyle_Secondary ButtonStyle = "secondary"
)

const (
	DefaultApproveLabel    = "Approve"
	DefaultDisapproveLabel = "Decline"
	DefaultRespondLabel    = "Respond"
	DefaultSubmitLabel     = "Submit"
)

// Params is the node configuration for one send-and-wait invocation.
type Params struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	Subject      string       `json:"subject"`
	Message      string       `json:"message"`
	ResponseType ResponseType `json:"response_type"`

	Approval ApprovalParams `json:"approval_options"`
	FreeText FreeTextParams `json:"free_text_options"`
	Wait     WaitParams     `json:"wait_options"`

	// AppendAttribution defaults to true when absent.
	AppendAttribution *bool `json:"append_attribution,omitempty"`
}

type ApprovalParams struct {
	ApprovalType    ApprovalType `json:"approval_type"`
	ApproveLabel    string       `json:"approve_label"`
	ApproveStyle    ButtonStyle  `json:"approve_style"`
	DisapproveLabel string       `json:"disapprove_label"`
	DisapproveStyle ButtonStyle  `json:"disapprove_style"`
}

type FreeTextParams struct {
	ButtonLabel     string `json:"button_label"`
	FormTitle       string `json:"form_title"`
	FormDescription string `json:"form_description"`
	FormButtonLabel string `json:"form_button_label"`
}

const (
	WaitLimitType_AfterInterval   = "afterTimeInterval"
	WaitLimitType_AtSpecifiedTime = "atSpecifiedTime"
)

type WaitParams struct {
	LimitWaitTime bool    `json:"limit_wait_time"`
	LimitType     string  `json:"limit_type"`
	ResumeAmount  float64 `json:"resume_amount"`
	ResumeUnit    string  `json:"resume_unit"`
	MaxDateTime   string  `json:"max_date_and_time"`
}

// Notification is the outbound message, subject and message already escaped
// for embedding in markup.
type Notification struct {
	From         string
	To           string
	Subject      string
	Message      string
	ResponseType ResponseType
}

// Option is one action link in the notification.
type Option struct {
	Label string
	URL   string
	Style ButtonStyle
}

// Deadline is either indefinite or a concrete resume timestamp.
type Deadline struct {
	Indefinite bool
	At         time.Time
}

// BuildNotification validates addresses and sanitizes user-supplied text.
// Invalid configuration is fatal; nothing is sent and nothing suspends.
func BuildNotification(p Params) (Notification, error) {
	to := strings.TrimSpace(p.To)
	if err := validateSingleAddress(to); err != nil {
		return Notification{}, domain.NewValidationError("To", "%s", err.Error())
	}

	from := strings.TrimSpace(p.From)
	if from == "" || !strings.Contains(from, "@") {
		return Notification{}, domain.NewValidationError("From", "sender must be a valid email address")
	}

	responseType := p.ResponseType
	if responseType == "" {
		responseType = ResponseType_Approval
	}

	return Notification{
		From:         from,
		To:           to,
		Subject:      sanitizeText(p.Subject),
		Message:      sanitizeText(p.Message),
		ResponseType: responseType,
	}, nil
}

func validateSingleAddress(address string) error {
	if address == "" {
		return fmt.Errorf("recipient is required")
	}

	if strings.Count(address, "@") != 1 {
		return fmt.Errorf("recipient must be a single email address")
	}

	at := strings.Index(address, "@")
	if at == 0 || at == len(address)-1 {
		return fmt.Errorf("recipient must be a valid email address")
	}

	return nil
}

// sanitizeText normalizes literal \n and <br> sequences to newlines, then
// HTML-escapes so user-supplied text cannot inject markup.
func sanitizeText(text string) string {
	replacer := strings.NewReplacer(
		`\n`, "\n",
		"<br />", "\n",
		"<br/>", "\n",
		"<br>", "\n",
	)

	return html.EscapeString(replacer.Replace(text))
}

// ComposeOptions builds the action links for a notification. For double
// approval the disapprove link comes first so the approve button stays the
// visually primary, last-rendered one.
func ComposeOptions(p Params, callbackURL string) ([]Option, error) {
	if p.ResponseType == ResponseType_FreeText {
		label := p.FreeText.ButtonLabel
		if label == "" {
			label = DefaultRespondLabel
		}

		return []Option{
			{Label: label, URL: callbackURL, Style: ButtonStyle_Primary},
		}, nil
	}

	approveURL, err := appendQuery(callbackURL, "approved", "true")
	if err != nil {
		return nil, err
	}

	approveLabel := p.Approval.ApproveLabel
	if approveLabel == "" {
		approveLabel = DefaultApproveLabel
	}

	approveStyle := p.Approval.ApproveStyle
	if approveStyle == "" {
		approveStyle = ButtonStyle_Primary
	}

	approve := Option{Label: approveLabel, URL: approveURL, Style: approveStyle}

	if p.Approval.ApprovalType != ApprovalType_Double {
		return []Option{approve}, nil
	}

	disapproveURL, err := appendQuery(callbackURL, "approved", "false")
	if err != nil {
		return nil, err
	}

	disapproveLabel := p.Approval.DisapproveLabel
	if disapproveLabel == "" {
		disapproveLabel = DefaultDisapproveLabel
	}

	disapproveStyle := p.Approval.DisapproveStyle
	if disapproveStyle == "" {
		disapproveStyle = ButtonStyle_Secondary
	}

	disapprove := Option{Label: disapproveLabel, URL: disapproveURL, Style: disapproveStyle}

	return []Option{disapprove, approve}, nil
}

func appendQuery(rawURL, key, value string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid callback url: %w", err)
	}

	query := parsed.Query()
	query.Set(key, value)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// Attribution controls the platform footer appended to the message body.
type Attribution struct {
	Enabled    bool
	InstanceID string
}

const (
	buttonStylePrimary   = "display:inline-block;padding:10px 24px;margin:8px 4px;background-color:#111827;color:#ffffff;border-radius:6px;text-decoration:none;font-weight:600;"
	buttonStyleSecondary = "display:inline-block;padding:10px 24px;margin:8px 4px;background-color:#ffffff;color:#111827;border:1px solid #d1d5db;border-radius:6px;text-decoration:none;font-weight:600;"
)

// RenderMessageBody assembles the final HTML document: the sanitized message
// followed by the action links, plus the attribution footer when enabled.
func RenderMessageBody(message string, options []Option, attribution Attribution) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"></head><body style=\"font-family:Arial,sans-serif;color:#111827;\">")
	b.WriteString("<div style=\"max-width:520px;margin:0 auto;padding:24px;\">")
	b.WriteString("<p>")
	b.WriteString(strings.ReplaceAll(message, "\n", "<br>"))
	b.WriteString("</p><div>")

	for _, option := range options {
		style := buttonStylePrimary
		if option.Style == ButtonStyle_Secondary {
			style = buttonStyleSecondary
		}

		b.WriteString(fmt.Sprintf("<a href=%q style=%q>%s</a>", option.URL, style, html.EscapeString(option.Label)))
	}

	b.WriteString("</div>")

	if attribution.Enabled {
		b.WriteString("<p style=\"font-size:12px;color:#6b7280;margin-top:32px;\">Sent automatically with Mailbridge</p>")
		b.WriteString(fmt.Sprintf("<!-- mailbridge instance %s -->", attribution.InstanceID))
	}

	b.WriteString("</div></body></html>")

	return b.String()
}

// ResolveDeadline computes the wait deadline relative to now. No configured
// limit means wait indefinitely; the host owns eventual timeout.
func ResolveDeadline(p WaitParams, now time.Time) (Deadline, error) {
	if !p.LimitWaitTime {
		return Deadline{Indefinite: true}, nil
	}

	switch p.LimitType {
	case WaitLimitType_AtSpecifiedTime:
		at, err := time.Parse(time.RFC3339, p.MaxDateTime)
		if err != nil {
			return Deadline{}, domain.NewValidationError("Max date and time", "must be a valid date: %v", err)
		}

		return Deadline{At: at}, nil

	case WaitLimitType_AfterInterval, "":
		var unitSeconds float64

		switch p.ResumeUnit {
		case "minutes", "":
			unitSeconds = 60
		case "hours":
			unitSeconds = 3600
		case "days":
			unitSeconds = 86400
		default:
			return Deadline{}, domain.NewValidationError("Resume unit", "unknown time unit %q", p.ResumeUnit)
		}

		amount := p.ResumeAmount
		if amount <= 0 {
			return Deadline{}, domain.NewValidationError("Resume amount", "wait amount must be positive")
		}

		waitMillis := int64(amount * unitSeconds * 1000)

		return Deadline{At: now.Add(time.Duration(waitMillis) * time.Millisecond)}, nil

	default:
		return Deadline{}, domain.NewValidationError("Limit type", "unknown wait limit type %q", p.LimitType)
	}
}

// Dispatcher sends the rendered notification through the provider's single
// email send endpoint, the same machinery the plain send action uses.
type Dispatcher interface {
	DispatchNotification(ctx context.Context, notification Notification, htmlBody string) error
}

type Orchestrator struct {
	signer     domain.ResumeURLSigner
	suspender  domain.ExecutionSuspender
	dispatcher Dispatcher
	instanceID string
	logger     zerolog.Logger
}

type OrchestratorDependencies struct {
	Signer     domain.ResumeURLSigner
	Suspender  domain.ExecutionSuspender
	Dispatcher Dispatcher
	InstanceID string
	Logger     zerolog.Logger
}

func NewOrchestrator(deps OrchestratorDependencies) *Orchestrator {
	return &Orchestrator{
		signer:     deps.Signer,
		suspender:  deps.Suspender,
		dispatcher: deps.Dispatcher,
		instanceID: deps.InstanceID,
		logger:     deps.Logger,
	}
}

type SendAndWaitParams struct {
	Params

	ExecutionID string
	NodeID      string
}

// SendAndWait builds and dispatches the notification, then suspends the
// execution. A dispatch failure aborts before suspension so a wait never
// starts without its notification delivered.
func (o *Orchestrator) SendAndWait(ctx context.Context, p SendAndWaitParams) error {
	notification, err := BuildNotification(p.Params)
	if err != nil {
		return err
	}

	deadline, err := ResolveDeadline(p.Wait, time.Now())
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if !deadline.Indefinite {
		expiresAt = &deadline.At
	}

	responseMode := domain.ResponseMode_Approval
	if notification.ResponseType == ResponseType_FreeText {
		responseMode = domain.ResponseMode_FreeText
	}

	callbackURL, err := o.signer.SignResumeURL(ctx, domain.SignResumeURLParams{
		Claims: domain.ResumeClaims{
			ExecutionID:  p.ExecutionID,
			NodeID:       p.NodeID,
			ResponseMode: responseMode,
		},
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to sign resume url: %w", err)
	}

	options, err := ComposeOptions(p.Params, callbackURL)
	if err != nil {
		return err
	}

	appendAttribution := true
	if p.AppendAttribution != nil {
		appendAttribution = *p.AppendAttribution
	}

	body := RenderMessageBody(notification.Message, options, Attribution{
		Enabled:    appendAttribution,
		InstanceID: o.instanceID,
	})

	if err := o.dispatcher.DispatchNotification(ctx, notification, body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	o.logger.Info().
		Str("execution_id", p.ExecutionID).
		Str("node_id", p.NodeID).
		Bool("indefinite", deadline.Indefinite).
		Msg("notification sent, suspending execution")

	var waitUntil *time.Time
	if !deadline.Indefinite {
		waitUntil = &deadline.At
	}

	return o.suspender.Suspend(ctx, domain.SuspendParams{
		ExecutionID: p.ExecutionID,
		NodeID:      p.NodeID,
		WaitUntil:   waitUntil,
	})
}
