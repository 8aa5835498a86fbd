package resendintegration

import (
	"github.com/mailbridge/mailbridge/pkg/domain"
)

const (
	ResendIntegrationActionType_SendEmail   domain.IntegrationActionType = "send_email"
	ResendIntegrationActionType_SendBatch   domain.IntegrationActionType = "send_batch"
	ResendIntegrationActionType_GetEmail    domain.IntegrationActionType = "get_email"
	ResendIntegrationActionType_UpdateEmail domain.IntegrationActionType = "update_email"
	ResendIntegrationActionType_CancelEmail domain.IntegrationActionType = "cancel_email"
	ResendIntegrationActionType_SendAndWait domain.IntegrationActionType = "send_and_wait"

	ResendIntegrationActionType_CreateContact   domain.IntegrationActionType = "create_contact"
	ResendIntegrationActionType_GetContact      domain.IntegrationActionType = "get_contact"
	ResendIntegrationActionType_UpdateContact   domain.IntegrationActionType = "update_contact"
	ResendIntegrationActionType_DeleteContact   domain.IntegrationActionType = "delete_contact"
	ResendIntegrationActionType_GetManyContacts domain.IntegrationActionType = "get_many_contacts"

	ResendIntegrationActionType_CreateAudience   domain.IntegrationActionType = "create_audience"
	ResendIntegrationActionType_GetAudience      domain.IntegrationActionType = "get_audience"
	ResendIntegrationActionType_DeleteAudience   domain.IntegrationActionType = "delete_audience"
	ResendIntegrationActionType_GetManyAudiences domain.IntegrationActionType = "get_many_audiences"

	ResendIntegrationActionType_CreateBroadcast   domain.IntegrationActionType = "create_broadcast"
	ResendIntegrationActionType_GetBroadcast      domain.IntegrationActionType = "get_broadcast"
	ResendIntegrationActionType_SendBroadcast     domain.IntegrationActionType = "send_broadcast"
	ResendIntegrationActionType_DeleteBroadcast   domain.IntegrationActionType = "delete_broadcast"
	ResendIntegrationActionType_GetManyBroadcasts domain.IntegrationActionType = "get_many_broadcasts"

	ResendIntegrationActionType_CreateDomain   domain.IntegrationActionType = "create_domain"
	ResendIntegrationActionType_GetDomain      domain.IntegrationActionType = "get_domain"
	ResendIntegrationActionType_VerifyDomain   domain.IntegrationActionType = "verify_domain"
	ResendIntegrationActionType_UpdateDomain   domain.IntegrationActionType = "update_domain"
	ResendIntegrationActionType_DeleteDomain   domain.IntegrationActionType = "delete_domain"
	ResendIntegrationActionType_GetManyDomains domain.IntegrationActionType = "get_many_domains"

	ResendIntegrationActionType_CreateAPIKey   domain.IntegrationActionType = "create_api_key"
	ResendIntegrationActionType_DeleteAPIKey   domain.IntegrationActionType = "delete_api_key"
	ResendIntegrationActionType_GetManyAPIKeys domain.IntegrationActionType = "get_many_api_keys"

	ResendIntegrationActionType_CreateTemplate   domain.IntegrationActionType = "create_template"
	ResendIntegrationActionType_GetTemplate      domain.IntegrationActionType = "get_template"
	ResendIntegrationActionType_UpdateTemplate   domain.IntegrationActionType = "update_template"
	ResendIntegrationActionType_DeleteTemplate   domain.IntegrationActionType = "delete_template"
	ResendIntegrationActionType_GetManyTemplates domain.IntegrationActionType = "get_many_templates"

	ResendIntegrationPeekable_Audiences  domain.IntegrationPeekableType = "audiences"
	ResendIntegrationPeekable_Broadcasts domain.IntegrationPeekableType = "broadcasts"
	ResendIntegrationPeekable_Domains    domain.IntegrationPeekableType = "domains"
	ResendIntegrationPeekable_Templates  domain.IntegrationPeekableType = "templates"

	IntegrationTriggerType_ResendEvent domain.IntegrationTriggerEventType = "resend_event"
)

// TriggerEventCatalog is the fixed set of provider event types a trigger
// instance can subscribe to.
var TriggerEventCatalog = []domain.NodePropertyOption{
	{Label: "Email Sent", Value: "email.sent", Description: "The API request was successful and the provider will attempt delivery"},
	{Label: "Email Delivered", Value: "email.delivered", Description: "The recipient's mail server accepted the email"},
	{Label: "Email Delivery Delayed", Value: "email.delivery_delayed", Description: "The email could not be delivered on the first attempt"},
	{Label: "Email Complained", Value: "email.complained", Description: "The recipient marked the email as spam"},
	{Label: "Email Bounced", Value: "email.bounced", Description: "The recipient's mail server rejected the email"},
	{Label: "Email Opened", Value: "email.opened", Description: "The recipient opened the email"},
	{Label: "Email Clicked", Value: "email.clicked", Description: "The recipient clicked a link in the email"},
	{Label: "Email Failed", Value: "email.failed", Description: "The email could not be sent"},
	{Label: "Contact Created", Value: "contact.created", Description: "A contact was added to an audience"},
	{Label: "Contact Updated", Value: "contact.updated", Description: "A contact was updated"},
	{Label: "Contact Deleted", Value: "contact.deleted", Description: "A contact was removed from an audience"},
	{Label: "Domain Created", Value: "domain.created", Description: "A sending domain was created"},
	{Label: "Domain Updated", Value: "domain.updated", Description: "A sending domain was updated"},
	{Label: "Domain Deleted", Value: "domain.deleted", Description: "A sending domain was deleted"},
}

var (
	ResendSchema = domain.Integration{
		ID:                "resend",
		Name:              "Resend",
		Description:       "Send emails and manage audiences, broadcasts, domains and templates with Resend.",
		CanTestConnection: true,
		CredentialProperties: []domain.NodeProperty{
			{
				Key:         "api_key",
				Name:        "API Key",
				Description: "The Resend API key for authentication",
				Required:    true,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
			},
			{
				Key:         "webhook_signing_secret",
				Name:        "Webhook Signing Secret",
				Description: "The signing secret of the webhook endpoint configured in the Resend dashboard",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
			},
		},
		Actions: []domain.IntegrationAction{
			{
				ID:          "send_email",
				Name:        "Send Email",
				Description: "Send an email using Resend",
				ActionType:  ResendIntegrationActionType_SendEmail,
				Properties: []domain.NodeProperty{
					{
						Key:         "from",
						Name:        "From",
						Description: "The sender email address",
						Required:    true,
						Type:        domain.NodePropertyType_String,
						Placeholder: "Acme <onboarding@acme.dev>",
					},
					{
						Key:         "to",
						Name:        "To",
						Description: "The recipient email addresses",
						Required:    true,
						Type:        domain.NodePropertyType_TagInput,
					},
					{
						Key:         "subject",
						Name:        "Subject",
						Description: "The email subject",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "content_type",
						Name:        "Content Type",
						Description: "How the email body is provided",
						Required:    true,
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "HTML", Value: "html"},
							{Label: "Plain Text", Value: "text"},
							{Label: "Template", Value: "template"},
						},
					},
					{
						Key:         "html",
						Name:        "HTML Content",
						Description: "The HTML content of the email",
						Type:        domain.NodePropertyType_Text,
						DependsOn:   &domain.DependsOn{PropertyKey: "content_type", Value: "html"},
					},
					{
						Key:         "text",
						Name:        "Text Content",
						Description: "The plain text content of the email",
						Type:        domain.NodePropertyType_Text,
						DependsOn:   &domain.DependsOn{PropertyKey: "content_type", Value: "text"},
					},
					{
						Key:          "template_id",
						Name:         "Template",
						Description:  "The template to render the email from",
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: ResendIntegrationPeekable_Templates,
						DependsOn:    &domain.DependsOn{PropertyKey: "content_type", Value: "template"},
					},
					{
						Key:         "reply_to",
						Name:        "Reply To",
						Description: "The reply-to email address",
						Type:        domain.NodePropertyType_String,
						Advanced:    true,
					},
					{
						Key:         "cc",
						Name:        "CC",
						Description: "CC email addresses",
						Type:        domain.NodePropertyType_TagInput,
						Advanced:    true,
					},
					{
						Key:         "bcc",
						Name:        "BCC",
						Description: "BCC email addresses",
						Type:        domain.NodePropertyType_TagInput,
						Advanced:    true,
					},
					{
						Key:         "tags",
						Name:        "Tags",
						Description: "Email tags",
						Type:        domain.NodePropertyType_TagInput,
						Advanced:    true,
					},
					{
						Key:         "scheduled_at",
						Name:        "Scheduled At",
						Description: "Schedule the email for later delivery, e.g. 'in 1 hour' or an RFC 3339 timestamp",
						Type:        domain.NodePropertyType_String,
						Advanced:    true,
					},
					{
						Key:         "attachments",
						Name:        "Attachments",
						Description: "Files to attach. Not available for scheduled emails.",
						Type:        domain.NodePropertyType_Array,
						Advanced:    true,
						ArrayOpts: &domain.ArrayPropertyOptions{
							ItemType: domain.NodePropertyType_Map,
							ItemProperties: []domain.NodeProperty{
								{Key: "filename", Name: "Filename", Type: domain.NodePropertyType_String, Required: true},
								{Key: "content", Name: "Content (Base64)", Type: domain.NodePropertyType_Text},
								{Key: "path", Name: "URL", Type: domain.NodePropertyType_String},
							},
						},
					},
				},
			},
			{
				ID:          "send_batch",
				Name:        "Send Batch",
				Description: "Send up to 100 emails in a single request",
				ActionType:  ResendIntegrationActionType_SendBatch,
				Properties: []domain.NodeProperty{
					{
						Key:         "emails",
						Name:        "Emails",
						Description: "The emails to send",
						Required:    true,
						Type:        domain.NodePropertyType_Array,
						ArrayOpts: &domain.ArrayPropertyOptions{
							ItemType: domain.NodePropertyType_Map,
							ItemProperties: []domain.NodeProperty{
								{Key: "from", Name: "From", Type: domain.NodePropertyType_String, Required: true},
								{Key: "to", Name: "To", Type: domain.NodePropertyType_TagInput, Required: true},
								{Key: "subject", Name: "Subject", Type: domain.NodePropertyType_String, Required: true},
								{Key: "html", Name: "HTML Content", Type: domain.NodePropertyType_Text},
								{Key: "text", Name: "Text Content", Type: domain.NodePropertyType_Text},
								{Key: "template_id", Name: "Template ID", Type: domain.NodePropertyType_String},
								{Key: "reply_to", Name: "Reply To", Type: domain.NodePropertyType_String},
							},
						},
					},
				},
			},
			{
				ID:          "get_email",
				Name:        "Get Email",
				Description: "Retrieve a single email by id",
				ActionType:  ResendIntegrationActionType_GetEmail,
				Properties: []domain.NodeProperty{
					{
						Key:         "email_id",
						Name:        "Email ID",
						Description: "The id of the email to retrieve",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "update_email",
				Name:        "Update Email",
				Description: "Reschedule a scheduled email",
				ActionType:  ResendIntegrationActionType_UpdateEmail,
				Properties: []domain.NodeProperty{
					{
						Key:         "email_id",
						Name:        "Email ID",
						Description: "The id of the scheduled email",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "scheduled_at",
						Name:        "Scheduled At",
						Description: "The new delivery time as an RFC 3339 timestamp",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "cancel_email",
				Name:        "Cancel Email",
				Description: "Cancel a scheduled email",
				ActionType:  ResendIntegrationActionType_CancelEmail,
				Properties: []domain.NodeProperty{
					{
						Key:         "email_id",
						Name:        "Email ID",
						Description: "The id of the scheduled email to cancel",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "send_and_wait",
				Name:        "Send Email and Wait for Response",
				Description: "Send an email with action links and pause the workflow until a response arrives",
				ActionType:  ResendIntegrationActionType_SendAndWait,
				Properties: []domain.NodeProperty{
					{
						Key:         "from",
						Name:        "From",
						Description: "The sender email address",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "to",
						Name:        "To",
						Description: "The single recipient who should respond",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "subject",
						Name:        "Subject",
						Description: "The email subject",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "message",
						Name:        "Message",
						Description: "The message shown above the action links",
						Required:    true,
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "response_type",
						Name:        "Response Type",
						Description: "How the recipient responds",
						Required:    true,
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Approval", Value: "approval", Description: "One or two approval buttons"},
							{Label: "Free Text", Value: "freeText", Description: "A link to a response form"},
						},
					},
					{
						Key:       "approval_options",
						Name:      "Approval Options",
						Type:      domain.NodePropertyType_Map,
						DependsOn: &domain.DependsOn{PropertyKey: "response_type", Value: "approval"},
					},
					{
						Key:       "free_text_options",
						Name:      "Free Text Options",
						Type:      domain.NodePropertyType_Map,
						DependsOn: &domain.DependsOn{PropertyKey: "response_type", Value: "freeText"},
					},
					{
						Key:         "wait_options",
						Name:        "Limit Wait Time",
						Description: "Whether to stop waiting after a deadline",
						Type:        domain.NodePropertyType_Map,
						Advanced:    true,
					},
					{
						Key:         "append_attribution",
						Name:        "Append Attribution",
						Description: "Mention that the email was sent automatically with Mailbridge",
						Type:        domain.NodePropertyType_Boolean,
						Advanced:    true,
					},
				},
			},
			{
				ID:          "create_contact",
				Name:        "Create Contact",
				Description: "Create a new contact in a Resend audience",
				ActionType:  ResendIntegrationActionType_CreateContact,
				Properties: []domain.NodeProperty{
					{
						Key:          "audience_id",
						Name:         "Audience",
						Description:  "The audience to add the contact to",
						Required:     true,
						Type:         domain.NodePropertyType_Locator,
						Peekable:     true,
						PeekableType: ResendIntegrationPeekable_Audiences,
					},
					{
						Key:         "email",
						Name:        "Email",
						Description: "The email address of the contact",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "first_name",
						Name:        "First Name",
						Description: "The first name of the contact",
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "last_name",
						Name:        "Last Name",
						Description: "The last name of the contact",
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "unsubscribed",
						Name:        "Unsubscribed",
						Description: "Whether the contact is unsubscribed",
						Type:        domain.NodePropertyType_Boolean,
					},
				},
			},
			{
				ID:          "get_contact",
				Name:        "Get Contact",
				Description: "Retrieve a contact from an audience",
				ActionType:  ResendIntegrationActionType_GetContact,
				Properties:  contactReferenceProperties(),
			},
			{
				ID:          "update_contact",
				Name:        "Update Contact",
				Description: "Update a contact in an audience",
				ActionType:  ResendIntegrationActionType_UpdateContact,
				Properties: append(contactReferenceProperties(),
					domain.NodeProperty{
						Key:         "first_name",
						Name:        "First Name",
						Description: "The new first name",
						Type:        domain.NodePropertyType_String,
					},
					domain.NodeProperty{
						Key:         "last_name",
						Name:        "Last Name",
						Description: "The new last name",
						Type:        domain.NodePropertyType_String,
					},
					domain.NodeProperty{
						Key:         "unsubscribed",
						Name:        "Unsubscribed",
						Description: "Whether the contact is unsubscribed",
						Type:        domain.NodePropertyType_Boolean,
					},
				),
			},
			{
				ID:          "delete_contact",
				Name:        "Delete Contact",
				Description: "Remove a contact from an audience",
				ActionType:  ResendIntegrationActionType_DeleteContact,
				Properties:  contactReferenceProperties(),
			},
			{
				ID:          "get_many_contacts",
				Name:        "Get Many Contacts",
				Description: "List the contacts of an audience",
				ActionType:  ResendIntegrationActionType_GetManyContacts,
				Properties: append([]domain.NodeProperty{
					{
						Key:          "audience_id",
						Name:         "Audience",
						Description:  "The audience to list contacts from",
						Required:     true,
						Type:         domain.NodePropertyType_Locator,
						Peekable:     true,
						PeekableType: ResendIntegrationPeekable_Audiences,
					},
				}, listProperties()...),
			},
			{
				ID:          "create_audience",
				Name:        "Create Audience",
				Description: "Create a new audience",
				ActionType:  ResendIntegrationActionType_CreateAudience,
				Properties: []domain.NodeProperty{
					{
						Key:         "name",
						Name:        "Name",
						Description: "The name of the audience",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "get_audience",
				Name:        "Get Audience",
				Description: "Retrieve a single audience",
				ActionType:  ResendIntegrationActionType_GetAudience,
				Properties:  []domain.NodeProperty{audienceLocatorProperty()},
			},
			{
				ID:          "delete_audience",
				Name:        "Delete Audience",
				Description: "Delete an audience",
				ActionType:  ResendIntegrationActionType_DeleteAudience,
				Properties:  []domain.NodeProperty{audienceLocatorProperty()},
			},
			{
				ID:          "get_many_audiences",
				Name:        "Get Many Audiences",
				Description: "List audiences",
				ActionType:  ResendIntegrationActionType_GetManyAudiences,
				Properties:  listProperties(),
			},
			{
				ID:          "create_broadcast",
				Name:        "Create Broadcast",
				Description: "Create a broadcast to an audience",
				ActionType:  ResendIntegrationActionType_CreateBroadcast,
				Properties: []domain.NodeProperty{
					audienceLocatorProperty(),
					{
						Key:         "from",
						Name:        "From",
						Description: "The sender email address",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "subject",
						Name:        "Subject",
						Description: "The broadcast subject",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "html",
						Name:        "HTML Content",
						Description: "The HTML content of the broadcast",
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "text",
						Name:        "Text Content",
						Description: "The plain text content of the broadcast",
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "name",
						Name:        "Name",
						Description: "An internal name for the broadcast",
						Type:        domain.NodePropertyType_String,
						Advanced:    true,
					},
					{
						Key:         "reply_to",
						Name:        "Reply To",
						Description: "The reply-to email address",
						Type:        domain.NodePropertyType_String,
						Advanced:    true,
					},
				},
			},
			{
				ID:          "get_broadcast",
				Name:        "Get Broadcast",
				Description: "Retrieve a single broadcast",
				ActionType:  ResendIntegrationActionType_GetBroadcast,
				Properties:  []domain.NodeProperty{broadcastLocatorProperty()},
			},
			{
				ID:          "send_broadcast",
				Name:        "Send Broadcast",
				Description: "Send or schedule an existing broadcast",
				ActionType:  ResendIntegrationActionType_SendBroadcast,
				Properties: []domain.NodeProperty{
					broadcastLocatorProperty(),
					{
						Key:         "scheduled_at",
						Name:        "Scheduled At",
						Description: "Schedule the broadcast, e.g. 'in 1 hour' or an RFC 3339 timestamp",
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "delete_broadcast",
				Name:        "Delete Broadcast",
				Description: "Delete a draft broadcast",
				ActionType:  ResendIntegrationActionType_DeleteBroadcast,
				Properties:  []domain.NodeProperty{broadcastLocatorProperty()},
			},
			{
				ID:          "get_many_broadcasts",
				Name:        "Get Many Broadcasts",
				Description: "List broadcasts",
				ActionType:  ResendIntegrationActionType_GetManyBroadcasts,
				Properties:  listProperties(),
			},
			{
				ID:          "create_domain",
				Name:        "Create Domain",
				Description: "Register a sending domain",
				ActionType:  ResendIntegrationActionType_CreateDomain,
				Properties: []domain.NodeProperty{
					{
						Key:         "name",
						Name:        "Domain Name",
						Description: "The domain to register, e.g. mail.acme.dev",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "region",
						Name:        "Region",
						Description: "Where emails for this domain are sent from",
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "US East (us-east-1)", Value: "us-east-1"},
							{Label: "EU West (eu-west-1)", Value: "eu-west-1"},
							{Label: "South America East (sa-east-1)", Value: "sa-east-1"},
							{Label: "Asia Pacific Northeast (ap-northeast-1)", Value: "ap-northeast-1"},
						},
					},
				},
			},
			{
				ID:          "get_domain",
				Name:        "Get Domain",
				Description: "Retrieve a single domain",
				ActionType:  ResendIntegrationActionType_GetDomain,
				Properties:  []domain.NodeProperty{domainLocatorProperty()},
			},
			{
				ID:          "verify_domain",
				Name:        "Verify Domain",
				Description: "Start DNS verification of a domain",
				ActionType:  ResendIntegrationActionType_VerifyDomain,
				Properties:  []domain.NodeProperty{domainLocatorProperty()},
			},
			{
				ID:          "update_domain",
				Name:        "Update Domain",
				Description: "Update domain tracking and TLS settings",
				ActionType:  ResendIntegrationActionType_UpdateDomain,
				Properties: []domain.NodeProperty{
					domainLocatorProperty(),
					{
						Key:         "click_tracking",
						Name:        "Click Tracking",
						Description: "Track link clicks in emails sent from this domain",
						Type:        domain.NodePropertyType_Boolean,
					},
					{
						Key:         "open_tracking",
						Name:        "Open Tracking",
						Description: "Track opens of emails sent from this domain",
						Type:        domain.NodePropertyType_Boolean,
					},
					{
						Key:         "tls",
						Name:        "TLS",
						Description: "TLS enforcement policy",
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Opportunistic", Value: "opportunistic"},
							{Label: "Enforced", Value: "enforced"},
						},
					},
				},
			},
			{
				ID:          "delete_domain",
				Name:        "Delete Domain",
				Description: "Delete a sending domain",
				ActionType:  ResendIntegrationActionType_DeleteDomain,
				Properties:  []domain.NodeProperty{domainLocatorProperty()},
			},
			{
				ID:          "get_many_domains",
				Name:        "Get Many Domains",
				Description: "List sending domains",
				ActionType:  ResendIntegrationActionType_GetManyDomains,
				Properties:  listProperties(),
			},
			{
				ID:          "create_api_key",
				Name:        "Create API Key",
				Description: "Create a new API key",
				ActionType:  ResendIntegrationActionType_CreateAPIKey,
				Properties: []domain.NodeProperty{
					{
						Key:         "name",
						Name:        "Name",
						Description: "The name of the API key",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "permission",
						Name:        "Permission",
						Description: "What the key is allowed to do",
						Type:        domain.NodePropertyType_String,
						Options: []domain.NodePropertyOption{
							{Label: "Full Access", Value: "full_access"},
							{Label: "Sending Access", Value: "sending_access"},
						},
					},
					{
						Key:          "domain_id",
						Name:         "Restrict To Domain",
						Description:  "Limit a sending-access key to one domain",
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: ResendIntegrationPeekable_Domains,
						DependsOn:    &domain.DependsOn{PropertyKey: "permission", Value: "sending_access"},
					},
				},
			},
			{
				ID:          "delete_api_key",
				Name:        "Delete API Key",
				Description: "Delete an API key",
				ActionType:  ResendIntegrationActionType_DeleteAPIKey,
				Properties: []domain.NodeProperty{
					{
						Key:         "api_key_id",
						Name:        "API Key ID",
						Description: "The id of the API key to delete",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "get_many_api_keys",
				Name:        "Get Many API Keys",
				Description: "List API keys",
				ActionType:  ResendIntegrationActionType_GetManyAPIKeys,
				Properties:  listProperties(),
			},
			{
				ID:          "create_template",
				Name:        "Create Template",
				Description: "Create a reusable email template",
				ActionType:  ResendIntegrationActionType_CreateTemplate,
				Properties: []domain.NodeProperty{
					{
						Key:         "name",
						Name:        "Name",
						Description: "The name of the template",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "html",
						Name:        "HTML Content",
						Description: "The HTML body of the template",
						Required:    true,
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "subject",
						Name:        "Subject",
						Description: "A default subject for the template",
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "get_template",
				Name:        "Get Template",
				Description: "Retrieve a single template",
				ActionType:  ResendIntegrationActionType_GetTemplate,
				Properties:  []domain.NodeProperty{templateLocatorProperty()},
			},
			{
				ID:          "update_template",
				Name:        "Update Template",
				Description: "Update an email template",
				ActionType:  ResendIntegrationActionType_UpdateTemplate,
				Properties: []domain.NodeProperty{
					templateLocatorProperty(),
					{
						Key:         "name",
						Name:        "Name",
						Description: "The new name of the template",
						Type:        domain.NodePropertyType_String,
					},
					{
						Key:         "html",
						Name:        "HTML Content",
						Description: "The new HTML body",
						Type:        domain.NodePropertyType_Text,
					},
					{
						Key:         "subject",
						Name:        "Subject",
						Description: "The new default subject",
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:          "delete_template",
				Name:        "Delete Template",
				Description: "Delete an email template",
				ActionType:  ResendIntegrationActionType_DeleteTemplate,
				Properties:  []domain.NodeProperty{templateLocatorProperty()},
			},
			{
				ID:          "get_many_templates",
				Name:        "Get Many Templates",
				Description: "List email templates",
				ActionType:  ResendIntegrationActionType_GetManyTemplates,
				Properties:  listProperties(),
			},
		},
		Triggers: []domain.IntegrationTrigger{
			{
				ID:          "resend_event",
				Name:        "On Resend Event",
				EventType:   IntegrationTriggerType_ResendEvent,
				Description: "Triggered when Resend delivers a subscribed webhook event",
				Properties: []domain.NodeProperty{
					{
						Key:         "path",
						Name:        "Webhook URL",
						Description: "Configure this URL as a webhook endpoint in the Resend dashboard",
						Required:    true,
						Type:        domain.NodePropertyType_Endpoint,
						EndpointPropertyOpts: &domain.EndpointPropertyOptions{
							AllowedMethods: []string{"POST"},
						},
					},
					{
						Key:          "events",
						Name:         "Events",
						Description:  "The event types to emit into the workflow",
						Required:     true,
						Type:         domain.NodePropertyType_Array,
						MultiOptions: TriggerEventCatalog,
					},
				},
			},
		},
	}
)

func listProperties() []domain.NodeProperty {
	return []domain.NodeProperty{
		{
			Key:         "return_all",
			Name:        "Return All",
			Description: "Fetch every result instead of a fixed number",
			Type:        domain.NodePropertyType_Boolean,
		},
		{
			Key:         "limit",
			Name:        "Limit",
			Description: "The maximum number of results to return",
			Type:        domain.NodePropertyType_Integer,
			NumberOpts:  &domain.NumberPropertyOptions{Min: 1, Max: 1000, Default: 50},
			DependsOn:   &domain.DependsOn{PropertyKey: "return_all", Value: false},
		},
	}
}

func contactReferenceProperties() []domain.NodeProperty {
	return []domain.NodeProperty{
		{
			Key:          "audience_id",
			Name:         "Audience",
			Description:  "The audience the contact belongs to",
			Required:     true,
			Type:         domain.NodePropertyType_Locator,
			Peekable:     true,
			PeekableType: ResendIntegrationPeekable_Audiences,
		},
		{
			Key:         "contact_id",
			Name:        "Contact",
			Description: "The contact id or email address",
			Required:    true,
			Type:        domain.NodePropertyType_String,
		},
	}
}

func audienceLocatorProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "audience_id",
		Name:         "Audience",
		Description:  "The audience to operate on",
		Required:     true,
		Type:         domain.NodePropertyType_Locator,
		Peekable:     true,
		PeekableType: ResendIntegrationPeekable_Audiences,
	}
}

func broadcastLocatorProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "broadcast_id",
		Name:         "Broadcast",
		Description:  "The broadcast to operate on",
		Required:     true,
		Type:         domain.NodePropertyType_Locator,
		Peekable:     true,
		PeekableType: ResendIntegrationPeekable_Broadcasts,
	}
}

func domainLocatorProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "domain_id",
		Name:         "Domain",
		Description:  "The domain to operate on",
		Required:     true,
		Type:         domain.NodePropertyType_Locator,
		Peekable:     true,
		PeekableType: ResendIntegrationPeekable_Domains,
	}
}

func templateLocatorProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "template_id",
		Name:         "Template",
		Description:  "The template to operate on",
		Required:     true,
		Type:         domain.NodePropertyType_Locator,
		Peekable:     true,
		PeekableType: ResendIntegrationPeekable_Templates,
	}
}
