package managers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileCredentialManager serves decrypted credential payloads from a JSON
// file keyed by credential id. The host is responsible for only handing this
// process credentials it is allowed to execute with.
type FileCredentialManager struct {
	mtx         sync.RWMutex
	credentials map[string]json.RawMessage
}

func NewFileCredentialManager(path string) (*FileCredentialManager, error) {
	manager := &FileCredentialManager{
		credentials: map[string]json.RawMessage{},
	}

	if path == "" {
		return manager, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if err := json.Unmarshal(contents, &manager.credentials); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return manager, nil
}

func (m *FileCredentialManager) GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	payload, ok := m.credentials[credentialID]
	if !ok {
		return nil, fmt.Errorf("credential %s not found", credentialID)
	}

	return payload, nil
}

func (m *FileCredentialManager) SetCredential(credentialID string, payload json.RawMessage) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.credentials[credentialID] = payload
}
