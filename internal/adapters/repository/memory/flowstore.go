// Package memory provides an in-memory flow store
// PRINCIPLES:
// - KISS: Simple map-based storage
// - SRP: Only responsible for flow persistence
// - Thread-safe
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
)

// FlowStore keeps flow descriptions in process memory.
type FlowStore struct {
	mu    sync.RWMutex
	flows map[string]*dto.FlowDescription
}

// NewFlowStore creates an empty store.
func NewFlowStore() *FlowStore {
	return &FlowStore{flows: make(map[string]*dto.FlowDescription)}
}

func (s *FlowStore) Save(ctx context.Context, id string, d *dto.FlowDescription) error {
	if id == "" {
		return flow.ErrEmptyFlowID
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid flow description: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[id] = d
	return nil
}

func (s *FlowStore) Get(ctx context.Context, id string) (*dto.FlowDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.flows[id]
	if !ok {
		return nil, flow.ErrFlowNotFound
	}
	return d, nil
}

func (s *FlowStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.flows))
	for id := range s.flows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FlowStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flows[id]; !ok {
		return flow.ErrFlowNotFound
	}
	delete(s.flows, id)
	return nil
}
