package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

type CredentialType string

var (
	CredentialTypeDefault CredentialType = "default"
)

type Credential struct {
	ID              string
	Name            string
	WorkspaceID     string
	Type            CredentialType
	IntegrationType IntegrationType

	DecryptedPayload map[string]any
}

// ExecutorCredentialManager hands out decrypted credential payloads. The
// vault itself lives on the host side; the executor only ever sees the
// decrypted bytes for the credential ids it is asked to execute with.
type ExecutorCredentialManager interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error)
}

type CredentialGetter[T any] interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) (T, error)
}

type jsonCredentialGetter[T any] struct {
	manager ExecutorCredentialManager
}

// NewJSONCredentialGetter adapts the raw decrypted payload into the typed
// credential struct an integration binds against.
func NewJSONCredentialGetter[T any](manager ExecutorCredentialManager) CredentialGetter[T] {
	return &jsonCredentialGetter[T]{manager: manager}
}

func (g *jsonCredentialGetter[T]) GetDecryptedCredential(ctx context.Context, credentialID string) (T, error) {
	var credential T

	payload, err := g.manager.GetDecryptedCredential(ctx, credentialID)
	if err != nil {
		return credential, err
	}

	if err := json.Unmarshal(payload, &credential); err != nil {
		return credential, fmt.Errorf("failed to decode credential payload: %w", err)
	}

	return credential, nil
}
