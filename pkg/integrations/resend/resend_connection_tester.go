package resendintegration

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/mailbridge/mailbridge/pkg/domain"
	"github.com/mailbridge/mailbridge/pkg/integrations/resend/transport"
)

type ResendConnectionTester struct{}

func NewResendConnectionTester(deps domain.IntegrationDeps) domain.IntegrationConnectionTester {
	return &ResendConnectionTester{}
}

// TestConnection lists sending domains with the candidate key. Any 2xx
// proves the key is valid; an authorization failure surfaces as the
// provider's error.
func (t *ResendConnectionTester) TestConnection(ctx context.Context, params domain.TestConnectionParams) (bool, error) {
	apiKey, _ := params.Credential.DecryptedPayload["api_key"].(string)
	if apiKey == "" {
		return false, fmt.Errorf("credential has no api key")
	}

	client := transport.NewClient(transport.ClientOptions{
		APIKey: apiKey,
		Logger: log.With().Str("integration", "resend").Logger(),
	})

	query := url.Values{}
	query.Set("limit", "1")

	err := client.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/domains",
		Query:  query,
	}, nil)
	if err != nil {
		return false, err
	}

	return true, nil
}
