package managers

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

// NodeStore holds workflow node configurations by node id. Resume callbacks
// reconstruct form labels and messages from the original node settings
// instead of carrying them inside the signed token.
type NodeStore struct {
	mtx   sync.RWMutex
	nodes map[string]domain.WorkflowNode
}

func NewNodeStore(path string) (*NodeStore, error) {
	store := &NodeStore{
		nodes: map[string]domain.WorkflowNode{},
	}

	if path == "" {
		return store, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nodes file: %w", err)
	}

	var nodes []domain.WorkflowNode

	if err := json.Unmarshal(contents, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse nodes file: %w", err)
	}

	for _, node := range nodes {
		store.nodes[node.ID] = node
	}

	return store, nil
}

func (s *NodeStore) GetNode(nodeID string) (domain.WorkflowNode, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	node, ok := s.nodes[nodeID]
	return node, ok
}

func (s *NodeStore) RegisterNode(node domain.WorkflowNode) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nodes[node.ID] = node
}
