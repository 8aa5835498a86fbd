package resendintegration

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mailbridge/mailbridge/pkg/domain"
	"github.com/mailbridge/mailbridge/pkg/integrations/resend/transport"

	"github.com/resend/resend-go/v2"
)

// ListParams is the shared pagination configuration of every get-many
// operation.
type ListParams struct {
	ReturnAll bool `json:"return_all"`
	Limit     int  `json:"limit"`
}

func itemsFromPages(pages []map[string]any) []domain.Item {
	items := make([]domain.Item, 0, len(pages))
	for _, page := range pages {
		items = append(items, page)
	}

	return items
}

type CreateContactParams struct {
	AudienceID   domain.ResourceLocator `json:"audience_id"`
	Email        string                 `json:"email"`
	FirstName    string                 `json:"first_name,omitempty"`
	LastName     string                 `json:"last_name,omitempty"`
	Unsubscribed bool                   `json:"unsubscribed,omitempty"`
}

type CreateContactOutputItem struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Unsubscribed bool   `json:"unsubscribed"`
}

func (i *ResendIntegration) CreateContact(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateContactParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	audienceID, err := p.AudienceID.Resolve()
	if err != nil {
		return nil, domain.NewValidationError("audience_id", "%s", err.Error())
	}

	if p.Email == "" {
		return nil, domain.NewValidationError("email", "an email address is required")
	}

	response, err := i.client.Contacts.CreateWithContext(ctx, &resend.CreateContactRequest{
		Email:        p.Email,
		AudienceId:   audienceID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Unsubscribed: p.Unsubscribed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return CreateContactOutputItem{
		ID:           response.Id,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Unsubscribed: p.Unsubscribed,
	}, nil
}

type ContactReferenceParams struct {
	AudienceID domain.ResourceLocator `json:"audience_id"`
	ContactID  string                 `json:"contact_id"`
}

func (p ContactReferenceParams) resolve() (audienceID, contactID string, err error) {
	audienceID, err = p.AudienceID.Resolve()
	if err != nil {
		return "", "", domain.NewValidationError("audience_id", "%s", err.Error())
	}

	if p.ContactID == "" {
		return "", "", domain.NewValidationError("contact_id", "a contact id or email address is required")
	}

	return audienceID, p.ContactID, nil
}

func (i *ResendIntegration) GetContact(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ContactReferenceParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	audienceID, contactID, err := p.resolve()
	if err != nil {
		return nil, err
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/audiences/" + audienceID + "/contacts/" + contactID,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type UpdateContactParams struct {
	ContactReferenceParams

	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Unsubscribed *bool   `json:"unsubscribed,omitempty"`
}

func (i *ResendIntegration) UpdateContact(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := UpdateContactParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	audienceID, contactID, err := p.resolve()
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if p.FirstName != nil {
		body["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		body["last_name"] = *p.LastName
	}
	if p.Unsubscribed != nil {
		body["unsubscribed"] = *p.Unsubscribed
	}

	if len(body) == 0 {
		return nil, domain.NewValidationError("contact_id", "at least one field to update is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   "/audiences/" + audienceID + "/contacts/" + contactID,
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) DeleteContact(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ContactReferenceParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	audienceID, contactID, err := p.resolve()
	if err != nil {
		return nil, err
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/audiences/" + audienceID + "/contacts/" + contactID,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type GetManyContactsParams struct {
	AudienceID domain.ResourceLocator `json:"audience_id"`

	ListParams
}

func (i *ResendIntegration) GetManyContacts(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	p := GetManyContactsParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	audienceID, err := p.AudienceID.Resolve()
	if err != nil {
		return nil, domain.NewValidationError("audience_id", "%s", err.Error())
	}

	contacts, err := i.api.FetchAll(ctx, "/audiences/"+audienceID+"/contacts", nil, p.ReturnAll, p.Limit)
	if err != nil {
		return nil, err
	}

	return itemsFromPages(contacts), nil
}

type CreateAudienceParams struct {
	Name string `json:"name"`
}

func (i *ResendIntegration) CreateAudience(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateAudienceParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		return nil, domain.NewValidationError("name", "an audience name is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/audiences",
		Body:   map[string]any{"name": p.Name},
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) GetAudience(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindAudienceID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.getResource(ctx, id, "/audiences")
}

func (i *ResendIntegration) DeleteAudience(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindAudienceID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.deleteResource(ctx, id, "/audiences")
}

func (i *ResendIntegration) bindAudienceID(ctx context.Context, params domain.IntegrationInput, item domain.Item) (string, error) {
	p := struct {
		AudienceID domain.ResourceLocator `json:"audience_id"`
	}{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return "", err
	}

	id, err := p.AudienceID.Resolve()
	if err != nil {
		return "", domain.NewValidationError("audience_id", "%s", err.Error())
	}

	return id, nil
}

func (i *ResendIntegration) GetManyAudiences(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	return i.listResource(ctx, params, item, "/audiences")
}

type CreateBroadcastParams struct {
	AudienceID domain.ResourceLocator `json:"audience_id"`
	From       string                 `json:"from"`
	Subject    string                 `json:"subject"`
	Html       string                 `json:"html,omitempty"`
	Text       string                 `json:"text,omitempty"`
	Name       string                 `json:"name,omitempty"`
	ReplyTo    string                 `json:"reply_to,omitempty"`
}

func (i *ResendIntegration) CreateBroadcast(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateBroadcastParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	audienceID, err := p.AudienceID.Resolve()
	if err != nil {
		return nil, domain.NewValidationError("audience_id", "%s", err.Error())
	}

	if p.From == "" {
		return nil, domain.NewValidationError("from", "a sender address is required")
	}

	if p.Subject == "" {
		return nil, domain.NewValidationError("subject", "a subject is required")
	}

	if p.Html == "" && p.Text == "" {
		return nil, domain.NewValidationError("html", "html or text content is required")
	}

	body := map[string]any{
		"audience_id": audienceID,
		"from":        p.From,
		"subject":     p.Subject,
	}
	if p.Html != "" {
		body["html"] = p.Html
	}
	if p.Text != "" {
		body["text"] = p.Text
	}
	if p.Name != "" {
		body["name"] = p.Name
	}
	if p.ReplyTo != "" {
		body["reply_to"] = p.ReplyTo
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/broadcasts",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) GetBroadcast(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindBroadcastID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.getResource(ctx, id, "/broadcasts")
}

func (i *ResendIntegration) bindBroadcastID(ctx context.Context, params domain.IntegrationInput, item domain.Item) (string, error) {
	p := struct {
		BroadcastID domain.ResourceLocator `json:"broadcast_id"`
	}{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return "", err
	}

	id, err := p.BroadcastID.Resolve()
	if err != nil {
		return "", domain.NewValidationError("broadcast_id", "%s", err.Error())
	}

	return id, nil
}

type SendBroadcastParams struct {
	BroadcastID domain.ResourceLocator `json:"broadcast_id"`
	ScheduledAt string                 `json:"scheduled_at,omitempty"`
}

func (i *ResendIntegration) SendBroadcast(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := SendBroadcastParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	broadcastID, err := p.BroadcastID.Resolve()
	if err != nil {
		return nil, domain.NewValidationError("broadcast_id", "%s", err.Error())
	}

	body := map[string]any{}
	if p.ScheduledAt != "" {
		body["scheduled_at"] = p.ScheduledAt
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/broadcasts/" + broadcastID + "/send",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) DeleteBroadcast(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindBroadcastID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.deleteResource(ctx, id, "/broadcasts")
}

func (i *ResendIntegration) GetManyBroadcasts(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	return i.listResource(ctx, params, item, "/broadcasts")
}

type CreateDomainParams struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

func (i *ResendIntegration) CreateDomain(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateDomainParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		return nil, domain.NewValidationError("name", "a domain name is required")
	}

	body := map[string]any{"name": p.Name}
	if p.Region != "" {
		body["region"] = p.Region
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/domains",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) GetDomain(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindDomainID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.getResource(ctx, id, "/domains")
}

func (i *ResendIntegration) bindDomainID(ctx context.Context, params domain.IntegrationInput, item domain.Item) (string, error) {
	p := struct {
		DomainID domain.ResourceLocator `json:"domain_id"`
	}{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return "", err
	}

	id, err := p.DomainID.Resolve()
	if err != nil {
		return "", domain.NewValidationError("domain_id", "%s", err.Error())
	}

	return id, nil
}

func (i *ResendIntegration) VerifyDomain(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	domainID, err := i.bindDomainID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/domains/" + domainID + "/verify",
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type UpdateDomainParams struct {
	DomainID domain.ResourceLocator `json:"domain_id"`

	ClickTracking *bool  `json:"click_tracking,omitempty"`
	OpenTracking  *bool  `json:"open_tracking,omitempty"`
	TLS           string `json:"tls,omitempty"`
}

func (i *ResendIntegration) UpdateDomain(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := UpdateDomainParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	domainID, err := p.DomainID.Resolve()
	if err != nil {
		return nil, domain.NewValidationError("domain_id", "%s", err.Error())
	}

	body := map[string]any{}
	if p.ClickTracking != nil {
		body["click_tracking"] = *p.ClickTracking
	}
	if p.OpenTracking != nil {
		body["open_tracking"] = *p.OpenTracking
	}
	if p.TLS != "" {
		body["tls"] = p.TLS
	}

	if len(body) == 0 {
		return nil, domain.NewValidationError("domain_id", "at least one setting to update is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   "/domains/" + domainID,
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) DeleteDomain(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindDomainID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.deleteResource(ctx, id, "/domains")
}

func (i *ResendIntegration) GetManyDomains(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	return i.listResource(ctx, params, item, "/domains")
}

type CreateAPIKeyParams struct {
	Name       string `json:"name"`
	Permission string `json:"permission,omitempty"`
	DomainID   string `json:"domain_id,omitempty"`
}

func (i *ResendIntegration) CreateAPIKey(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateAPIKeyParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		return nil, domain.NewValidationError("name", "an api key name is required")
	}

	body := map[string]any{"name": p.Name}
	if p.Permission != "" {
		body["permission"] = p.Permission
	}
	if p.DomainID != "" {
		body["domain_id"] = p.DomainID
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/api-keys",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

type DeleteAPIKeyParams struct {
	APIKeyID string `json:"api_key_id"`
}

func (i *ResendIntegration) DeleteAPIKey(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := DeleteAPIKeyParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.APIKeyID == "" {
		return nil, domain.NewValidationError("api_key_id", "an api key id is required")
	}

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/api-keys/" + p.APIKeyID,
	}, nil)
	if err != nil {
		return nil, err
	}

	return map[string]any{"deleted": true, "id": p.APIKeyID}, nil
}

func (i *ResendIntegration) GetManyAPIKeys(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	return i.listResource(ctx, params, item, "/api-keys")
}

type CreateTemplateParams struct {
	Name    string `json:"name"`
	Html    string `json:"html"`
	Subject string `json:"subject,omitempty"`
}

func (i *ResendIntegration) CreateTemplate(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateTemplateParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		return nil, domain.NewValidationError("name", "a template name is required")
	}

	if p.Html == "" {
		return nil, domain.NewValidationError("html", "html content is required")
	}

	body := map[string]any{"name": p.Name, "html": p.Html}
	if p.Subject != "" {
		body["subject"] = p.Subject
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/templates",
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) GetTemplate(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindTemplateID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.getResource(ctx, id, "/templates")
}

func (i *ResendIntegration) bindTemplateID(ctx context.Context, params domain.IntegrationInput, item domain.Item) (string, error) {
	p := struct {
		TemplateID domain.ResourceLocator `json:"template_id"`
	}{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return "", err
	}

	id, err := p.TemplateID.Resolve()
	if err != nil {
		return "", domain.NewValidationError("template_id", "%s", err.Error())
	}

	return id, nil
}

type UpdateTemplateParams struct {
	TemplateID domain.ResourceLocator `json:"template_id"`

	Name    string `json:"name,omitempty"`
	Html    string `json:"html,omitempty"`
	Subject string `json:"subject,omitempty"`
}

func (i *ResendIntegration) UpdateTemplate(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := UpdateTemplateParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	templateID, err := p.TemplateID.Resolve()
	if err != nil {
		return nil, domain.NewValidationError("template_id", "%s", err.Error())
	}

	body := map[string]any{}
	if p.Name != "" {
		body["name"] = p.Name
	}
	if p.Html != "" {
		body["html"] = p.Html
	}
	if p.Subject != "" {
		body["subject"] = p.Subject
	}

	if len(body) == 0 {
		return nil, domain.NewValidationError("template_id", "at least one field to update is required")
	}

	var response map[string]any

	err = i.api.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   "/templates/" + templateID,
		Body:   body,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) DeleteTemplate(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	id, err := i.bindTemplateID(ctx, params, item)
	if err != nil {
		return nil, err
	}

	return i.deleteResource(ctx, id, "/templates")
}

func (i *ResendIntegration) GetManyTemplates(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	return i.listResource(ctx, params, item, "/templates")
}

// getResource and deleteResource cover the operations that are a bare id
// lookup with no extra parameters.

func (i *ResendIntegration) getResource(ctx context.Context, id, basePath string) (domain.Item, error) {
	var response map[string]any

	err := i.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   basePath + "/" + id,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (i *ResendIntegration) deleteResource(ctx context.Context, id, basePath string) (domain.Item, error) {
	var response map[string]any

	err := i.api.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   basePath + "/" + id,
	}, &response)
	if err != nil {
		return nil, err
	}

	if response == nil {
		response = map[string]any{"deleted": true, "id": id}
	}

	return response, nil
}

func (i *ResendIntegration) listResource(ctx context.Context, params domain.IntegrationInput, item domain.Item, path string) ([]domain.Item, error) {
	p := ListParams{}

	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	results, err := i.api.FetchAll(ctx, path, nil, p.ReturnAll, p.Limit)
	if err != nil {
		return nil, err
	}

	return itemsFromPages(results), nil
}

func (i *ResendIntegration) PeekAudiences(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	response, err := i.client.Audiences.ListWithContext(ctx)
	if err != nil {
		return domain.PeekResult{}, fmt.Errorf("failed to list audiences: %w", err)
	}

	results := make([]domain.PeekResultItem, 0, len(response.Data))
	for _, audience := range response.Data {
		results = append(results, domain.PeekResultItem{
			Key:     audience.Id,
			Value:   audience.Id,
			Content: audience.Name,
		})
	}

	return domain.PeekResult{Result: results}, nil
}

func (i *ResendIntegration) PeekBroadcasts(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	return i.peekListEndpoint(ctx, "/broadcasts", "name")
}

func (i *ResendIntegration) PeekDomains(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	return i.peekListEndpoint(ctx, "/domains", "name")
}

func (i *ResendIntegration) PeekTemplates(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	return i.peekListEndpoint(ctx, "/templates", "name")
}

func (i *ResendIntegration) peekListEndpoint(ctx context.Context, path, labelField string) (domain.PeekResult, error) {
	entries, err := i.api.FetchAll(ctx, path, url.Values{}, false, transport.MaxPageSize)
	if err != nil {
		return domain.PeekResult{}, err
	}

	results := make([]domain.PeekResultItem, 0, len(entries))

	for _, entry := range entries {
		id, _ := entry["id"].(string)
		if id == "" {
			continue
		}

		label, _ := entry[labelField].(string)
		if label == "" {
			label = id
		}

		results = append(results, domain.PeekResultItem{
			Key:     id,
			Value:   id,
			Content: label,
		})
	}

	return domain.PeekResult{Result: results}, nil
}
