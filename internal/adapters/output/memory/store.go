package memory

import (
	"context"
	"fibaro-hap-bridge/internal/domain/model"
	"fibaro-hap-bridge/internal/ports"
	"fmt"
	"sync"
)

// Store keeps the last property snapshot pushed for each hub device.
type Store struct {
	mu       sync.RWMutex
	devices  map[string]model.Properties
	security model.SecurityStatus
}

func NewStore() *Store {
	return &Store{devices: make(map[string]model.Properties)}
}

func (s *Store) Properties(ctx context.Context, deviceID string) (model.Properties, error) {
	s.mu.RLock()
	props, ok := s.devices[deviceID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrNoSnapshot, deviceID)
	}
	return props, nil
}

func (s *Store) SecurityStatus(ctx context.Context) (model.SecurityStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.security, nil
}

// PutProperties merges props into the device snapshot. The stored snapshot is
// replaced rather than mutated so readers keep a consistent copy.
func (s *Store) PutProperties(ctx context.Context, deviceID string, props model.Properties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make(model.Properties, len(props))
	for k, v := range s.devices[deviceID] {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	s.devices[deviceID] = merged
	return nil
}

func (s *Store) PutSecurityStatus(ctx context.Context, status model.SecurityStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.security = status
	return nil
}
