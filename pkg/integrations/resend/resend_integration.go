package resendintegration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/pkg/domain"
	"github.com/mailbridge/mailbridge/pkg/hitl"
	"github.com/mailbridge/mailbridge/pkg/integrations/resend/transport"

	"github.com/resend/resend-go/v2"
)

const (
	ContentType_HTML     = "html"
	ContentType_Text     = "text"
	ContentType_Template = "template"
)

type ResendIntegrationCreator struct {
	binder           domain.IntegrationParameterBinder
	credentialGetter domain.CredentialGetter[ResendCredential]
	signer           domain.ResumeURLSigner
	suspender        domain.ExecutionSuspender
	instanceID       string
}

func NewResendIntegrationCreator(deps domain.IntegrationDeps) domain.IntegrationCreator {
	return &ResendIntegrationCreator{
		binder:           deps.ParameterBinder,
		credentialGetter: domain.NewJSONCredentialGetter[ResendCredential](deps.ExecutorCredentialManager),
		signer:           deps.ResumeURLSigner,
		suspender:        deps.ExecutionSuspender,
		instanceID:       deps.AttributionInstanceID,
	}
}

func (c *ResendIntegrationCreator) CreateIntegration(ctx context.Context, p domain.CreateIntegrationParams) (domain.IntegrationExecutor, error) {
	return NewResendIntegration(ctx, ResendIntegrationDependencies{
		CredentialID:     p.CredentialID,
		ParameterBinder:  c.binder,
		CredentialGetter: c.credentialGetter,
		ResumeURLSigner:  c.signer,
		Suspender:        c.suspender,
		InstanceID:       c.instanceID,
	})
}

type peekPayload struct {
	CredentialID string `json:"credential_id"`
}

func (c *ResendIntegrationCreator) Peek(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	payload := peekPayload{}

	if len(params.PayloadJSON) > 0 {
		if err := json.Unmarshal(params.PayloadJSON, &payload); err != nil {
			return domain.PeekResult{}, fmt.Errorf("failed to decode peek payload: %w", err)
		}
	}

	executor, err := c.CreateIntegration(ctx, domain.CreateIntegrationParams{CredentialID: payload.CredentialID})
	if err != nil {
		return domain.PeekResult{}, err
	}

	integration, ok := executor.(*ResendIntegration)
	if !ok {
		return domain.PeekResult{}, fmt.Errorf("unexpected integration executor type")
	}

	return integration.Peek(ctx, params)
}

type ResendCredential struct {
	APIKey               string `json:"api_key"`
	WebhookSigningSecret string `json:"webhook_signing_secret,omitempty"`
}

type ResendIntegration struct {
	client *resend.Client
	api    *transport.Client

	binder           domain.IntegrationParameterBinder
	credentialGetter domain.CredentialGetter[ResendCredential]
	orchestrator     *hitl.Orchestrator

	actionManager *domain.IntegrationActionManager
	peekFuncs     map[domain.IntegrationPeekableType]domain.PeekFunc

	logger zerolog.Logger
}

type ResendIntegrationDependencies struct {
	CredentialID     string
	ParameterBinder  domain.IntegrationParameterBinder
	CredentialGetter domain.CredentialGetter[ResendCredential]
	ResumeURLSigner  domain.ResumeURLSigner
	Suspender        domain.ExecutionSuspender
	InstanceID       string

	// APIOptions overrides the provider endpoint and throttling, used by
	// tests.
	APIOptions *transport.ClientOptions
}

func NewResendIntegration(ctx context.Context, deps ResendIntegrationDependencies) (*ResendIntegration, error) {
	integration := &ResendIntegration{
		binder:           deps.ParameterBinder,
		credentialGetter: deps.CredentialGetter,
		logger:           log.With().Str("integration", "resend").Logger(),
	}

	actionManager := domain.NewIntegrationActionManager().
		AddPerItem(ResendIntegrationActionType_SendEmail, integration.SendEmail).
		AddPerItem(ResendIntegrationActionType_SendBatch, integration.SendBatch).
		AddPerItem(ResendIntegrationActionType_GetEmail, integration.GetEmail).
		AddPerItem(ResendIntegrationActionType_UpdateEmail, integration.UpdateEmail).
		AddPerItem(ResendIntegrationActionType_CancelEmail, integration.CancelEmail).
		AddPerItem(ResendIntegrationActionType_CreateContact, integration.CreateContact).
		AddPerItem(ResendIntegrationActionType_GetContact, integration.GetContact).
		AddPerItem(ResendIntegrationActionType_UpdateContact, integration.UpdateContact).
		AddPerItem(ResendIntegrationActionType_DeleteContact, integration.DeleteContact).
		AddPerItemMulti(ResendIntegrationActionType_GetManyContacts, integration.GetManyContacts).
		AddPerItem(ResendIntegrationActionType_CreateAudience, integration.CreateAudience).
		AddPerItem(ResendIntegrationActionType_GetAudience, integration.GetAudience).
		AddPerItem(ResendIntegrationActionType_DeleteAudience, integration.DeleteAudience).
		AddPerItemMulti(ResendIntegrationActionType_GetManyAudiences, integration.GetManyAudiences).
		AddPerItem(ResendIntegrationActionType_CreateBroadcast, integration.CreateBroadcast).
		AddPerItem(ResendIntegrationActionType_GetBroadcast, integration.GetBroadcast).
		AddPerItem(ResendIntegrationActionType_SendBroadcast, integration.SendBroadcast).
		AddPerItem(ResendIntegrationActionType_DeleteBroadcast, integration.DeleteBroadcast).
		AddPerItemMulti(ResendIntegrationActionType_GetManyBroadcasts, integration.GetManyBroadcasts).
		AddPerItem(ResendIntegrationActionType_CreateDomain, integration.CreateDomain).
		AddPerItem(ResendIntegrationActionType_GetDomain, integration.GetDomain).
		AddPerItem(ResendIntegrationActionType_VerifyDomain, integration.VerifyDomain).
		AddPerItem(ResendIntegrationActionType_UpdateDomain, integration.UpdateDomain).
		AddPerItem(ResendIntegrationActionType_DeleteDomain, integration.DeleteDomain).
		AddPerItemMulti(ResendIntegrationActionType_GetManyDomains, integration.GetManyDomains).
		AddPerItem(ResendIntegrationActionType_CreateAPIKey, integration.CreateAPIKey).
		AddPerItem(ResendIntegrationActionType_DeleteAPIKey, integration.DeleteAPIKey).
		AddPerItemMulti(ResendIntegrationActionType_GetManyAPIKeys, integration.GetManyAPIKeys).
		AddPerItem(ResendIntegrationActionType_CreateTemplate, integration.CreateTemplate).
		AddPerItem(ResendIntegrationActionType_GetTemplate, integration.GetTemplate).
		AddPerItem(ResendIntegrationActionType_UpdateTemplate, integration.UpdateTemplate).
		AddPerItem(ResendIntegrationActionType_DeleteTemplate, integration.DeleteTemplate).
		AddPerItemMulti(ResendIntegrationActionType_GetManyTemplates, integration.GetManyTemplates).
		Add(ResendIntegrationActionType_SendAndWait, integration.SendAndWait)

	integration.actionManager = actionManager

	integration.peekFuncs = map[domain.IntegrationPeekableType]domain.PeekFunc{
		ResendIntegrationPeekable_Audiences:  integration.PeekAudiences,
		ResendIntegrationPeekable_Broadcasts: integration.PeekBroadcasts,
		ResendIntegrationPeekable_Domains:    integration.PeekDomains,
		ResendIntegrationPeekable_Templates:  integration.PeekTemplates,
	}

	credential, err := deps.CredentialGetter.GetDecryptedCredential(ctx, deps.CredentialID)
	if err != nil {
		return nil, err
	}

	integration.client = resend.NewClient(credential.APIKey)

	apiOptions := transport.ClientOptions{
		APIKey: credential.APIKey,
		Logger: integration.logger,
	}
	if deps.APIOptions != nil {
		apiOptions = *deps.APIOptions
		apiOptions.APIKey = credential.APIKey
	}

	integration.api = transport.NewClient(apiOptions)

	integration.orchestrator = hitl.NewOrchestrator(hitl.OrchestratorDependencies{
		Signer:     deps.ResumeURLSigner,
		Suspender:  deps.Suspender,
		Dispatcher: &emailDispatcher{client: integration.client},
		InstanceID: deps.InstanceID,
		Logger:     integration.logger,
	})

	return integration, nil
}

func (i *ResendIntegration) Execute(ctx context.Context, params domain.IntegrationInput) (domain.IntegrationOutput, error) {
	return i.actionManager.Run(ctx, params.ActionType, params)
}

func (i *ResendIntegration) Peek(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	peekFunc, ok := i.peekFuncs[params.PeekableType]
	if !ok {
		return domain.PeekResult{}, fmt.Errorf("peek function not found")
	}

	return peekFunc(ctx, params)
}

type AttachmentParams struct {
	Filename string `json:"filename"`
	Content  string `json:"content,omitempty"`
	Path     string `json:"path,omitempty"`
}

type SendEmailParams struct {
	From        string   `json:"from"`
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	ContentType string   `json:"content_type"`
	Html        string   `json:"html,omitempty"`
	Text        string   `json:"text,omitempty"`
	TemplateID  string   `json:"template_id,omitempty"`
	ReplyTo     string   `json:"reply_to,omitempty"`
	Cc          []string `json:"cc,omitempty"`
	Bcc         []string `json:"bcc,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`

	Attachments []AttachmentParams `json:"attachments,omitempty"`
}

func validateSendEmailParams(p SendEmailParams) error {
	switch p.ContentType {
	case ContentType_Template:
		if p.TemplateID == "" {
			return domain.NewValidationError("template_id", "a template must be selected when the content type is template")
		}
	case ContentType_Text:
		if p.Text == "" {
			return domain.NewValidationError("text", "text content is required when the content type is text")
		}
	default:
		if p.Html == "" {
			return domain.NewValidationError("html", "html content is required when the content type is html")
		}
	}

	if len(p.Attachments) > 0 && p.ScheduledAt != "" {
		return domain.NewValidationError("attachments", "attachments cannot be combined with scheduled delivery")
	}

	return nil
}

func (i *ResendIntegration) SendEmail(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := SendEmailParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if err := validateSendEmailParams(p); err != nil {
		return nil, err
	}

	// The plain html/text case goes through the SDK; templates, schedules
	// and attachments need fields the SDK request does not carry.
	if p.TemplateID == "" && p.ScheduledAt == "" && len(p.Attachments) == 0 {
		return i.sendEmailSDK(ctx, p)
	}

	return i.sendEmailAPI(ctx, p)
}

type SendEmailOutputItem struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
}

func (i *ResendIntegration) sendEmailSDK(ctx context.Context, p SendEmailParams) (domain.Item, error) {
	sendEmailRequest := &resend.SendEmailRequest{
		From:    p.From,
		To:      p.To,
		Subject: p.Subject,
		Html:    p.Html,
		Text:    p.Text,
		ReplyTo: p.ReplyTo,
	}

	if len(p.Cc) > 0 {
		sendEmailRequest.Cc = p.Cc
	}
	if len(p.Bcc) > 0 {
		sendEmailRequest.Bcc = p.Bcc
	}
	if len(p.Tags) > 0 {
		tags := make([]resend.Tag, len(p.Tags))
		for idx, tag := range p.Tags {
			tags[idx] = resend.Tag{Name: tag, Value: tag}
		}
		sendEmailRequest.Tags = tags
	}

	response, err := i.client.Emails.SendWithContext(ctx, sendEmailRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	return SendEmailOutputItem{
		ID:      response.Id,
		From:    p.From,
		To:      strings.Join(p.To, ", "),
		Subject: p.Subject,
	}, nil
}

func (i *ResendIntegration) sendEmailAPI(ctx context.Context, p SendEmailParams) (domain.Item, error) {
	body := map[string]any{
		"from":    p.From,
		"to":      p.To,
		"subject": p.Subject,
	}

	if p.TemplateID != "" {
		body["template_id"] = p.TemplateID
	} else if p.ContentType == ContentType_Text {
		body["text"] = p.Text
	} else {
		body["html"] = p.Html
	}

	if p.ReplyTo != "" {
		body["reply_to"] = p.ReplyTo
	}
	if len(p.Cc) > 0 {
		body["cc"] = p.Cc
	}
	if len(p.Bcc) > 0 {
		body["bcc"] = p.Bcc
	}
	if len(p.Tags) > 0 {
		tags := make([]map[string]string, len(p.Tags))
		for idx, tag := range p.Tags {
			tags[idx] = map[string]string{"name": tag, "value": tag}
		}
		body["tags"] = tags
	}
	if p.ScheduledAt != "" {
		body["scheduled_at"] = p.ScheduledAt
	}
	if len(p.Attachments) > 0 {
		attachments := make([]map[string]string, 0, len(p.Attachments))
		for _, attachment := range p.Attachments {
			entry := map[string]string{"filename": attachment.Filename}
			if attachment.Content != "" {
				entry["content"] = attachment.Content
			}
			if attachment.Path != "" {
				entry["path"] = attachment.Path
			}

			attachments = append(attachments, entry)
		}
		body["attachments"] = attachments
	}

	var response map[string]any

	err := i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/emails",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type BatchEmailParams struct {
	From       string   `json:"from"`
	To         []string `json:"to"`
	Subject    string   `json:"subject"`
	Html       string   `json:"html,omitempty"`
	Text       string   `json:"text,omitempty"`
	TemplateID string   `json:"template_id,omitempty"`
	ReplyTo    string   `json:"reply_to,omitempty"`
}

type SendBatchParams struct {
	Emails []BatchEmailParams `json:"emails"`
}

func (i *ResendIntegration) SendBatch(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := SendBatchParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if len(p.Emails) == 0 {
		return nil, domain.NewValidationError("emails", "at least one email is required")
	}

	body := make([]map[string]any, 0, len(p.Emails))

	for idx, email := range p.Emails {
		if email.From == "" || len(email.To) == 0 || email.Subject == "" {
			return nil, domain.NewValidationError("emails", "email at index %d must have from, to and subject", idx)
		}

		if email.Html == "" && email.Text == "" && email.TemplateID == "" {
			return nil, domain.NewValidationError("emails", "email at index %d must have html, text or a template", idx)
		}

		entry := map[string]any{
			"from":    email.From,
			"to":      email.To,
			"subject": email.Subject,
		}
		if email.Html != "" {
			entry["html"] = email.Html
		}
		if email.Text != "" {
			entry["text"] = email.Text
		}
		if email.TemplateID != "" {
			entry["template_id"] = email.TemplateID
		}
		if email.ReplyTo != "" {
			entry["reply_to"] = email.ReplyTo
		}

		body = append(body, entry)
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/emails/batch",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type EmailReferenceParams struct {
	EmailID string `json:"email_id"`
}

func (i *ResendIntegration) GetEmail(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := EmailReferenceParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.EmailID == "" {
		return nil, domain.NewValidationError("email_id", "an email id is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/emails/" + p.EmailID,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type UpdateEmailParams struct {
	EmailID     string `json:"email_id"`
	ScheduledAt string `json:"scheduled_at"`
}

func (i *ResendIntegration) UpdateEmail(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := UpdateEmailParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.EmailID == "" {
		return nil, domain.NewValidationError("email_id", "an email id is required")
	}

	if p.ScheduledAt == "" {
		return nil, domain.NewValidationError("scheduled_at", "a new delivery time is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   "/emails/" + p.EmailID,
		Body:   map[string]any{"scheduled_at": p.ScheduledAt},
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) CancelEmail(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := EmailReferenceParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.EmailID == "" {
		return nil, domain.NewValidationError("email_id", "an email id is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/emails/" + p.EmailID + "/cancel",
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type SendAndWaitSettings struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	ResponseType string `json:"response_type"`

	Approval hitl.ApprovalParams `json:"approval_options"`
	FreeText hitl.FreeTextParams `json:"free_text_options"`
	Wait     hitl.WaitParams     `json:"wait_options"`

	AppendAttribution *bool `json:"append_attribution,omitempty"`
}

// SendAndWait runs once per execution rather than per item. The node sends a
// single notification and parks the branch until the recipient responds.
func (i *ResendIntegration) SendAndWait(ctx context.Context, params domain.IntegrationInput) (domain.IntegrationOutput, error) {
	items, err := params.GetAllItems()
	if err != nil {
		return domain.IntegrationOutput{}, err
	}

	var item domain.Item = map[string]any{}
	if len(items) > 0 {
		item = items[0]
	}

	settings := SendAndWaitSettings{}

	err = i.binder.BindToStruct(ctx, item, &settings, params.IntegrationParams.Settings)
	if err != nil {
		return domain.IntegrationOutput{}, err
	}

	err = i.orchestrator.SendAndWait(ctx, hitl.SendAndWaitParams{
		Params: hitl.Params{
			From:              settings.From,
			To:                settings.To,
			Subject:           settings.Subject,
			Message:           settings.Message,
			ResponseType:      hitl.ResponseType(settings.ResponseType),
			Approval:          settings.Approval,
			FreeText:          settings.FreeText,
			Wait:              settings.Wait,
			AppendAttribution: settings.AppendAttribution,
		},
		ExecutionID: params.ExecutionID,
		NodeID:      params.NodeID,
	})
	if err != nil {
		return domain.IntegrationOutput{}, err
	}

	// The execution is suspended; the callback payload becomes this node's
	// output when the host resumes it.
	return domain.IntegrationOutput{
		ResultJSONByOutputID: []domain.Payload{domain.Payload("[]")},
	}, nil
}

// emailDispatcher sends wait-for-response notifications through the regular
// email API.
type emailDispatcher struct {
	client *resend.Client
}

func (d *emailDispatcher) DispatchNotification(ctx context.Context, notification hitl.Notification, htmlBody string) error {
	_, err := d.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    notification.From,
		To:      []string{notification.To},
		Subject: notification.Subject,
		Html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}
