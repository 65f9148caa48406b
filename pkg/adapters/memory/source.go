package memory

import (
	"context"
	"sync"
)

// Source implements ports.ParameterSource using in-memory maps.
// Shared parameters apply to every item; per-item parameters override them.
type Source struct {
	mu     sync.RWMutex
	params map[string]any
	items  []map[string]any
}

// NewSource creates a Source whose parameters apply to every item.
func NewSource(params map[string]any) *Source {
	p := make(map[string]any, len(params))
	for k, v := range params {
		p[k] = v
	}
	return &Source{params: p}
}

// NewItems creates a Source for a batch: items[i] holds the parameters of item i.
func NewItems(items ...map[string]any) *Source {
	s := &Source{params: map[string]any{}}
	for _, item := range items {
		cp := make(map[string]any, len(item))
		for k, v := range item {
			cp[k] = v
		}
		s.items = append(s.items, cp)
	}
	return s
}

// Get returns the raw parameter value, preferring the per-item value.
// A parameter explicitly set to nil is returned as nil, not as def.
func (s *Source) Get(_ context.Context, name string, itemIndex int, def any) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if itemIndex >= 0 && itemIndex < len(s.items) {
		if v, ok := s.items[itemIndex][name]; ok {
			return v, nil
		}
	}
	if v, ok := s.params[name]; ok {
		return v, nil
	}
	return def, nil
}

// Set replaces a shared parameter.
func (s *Source) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params[name] = value
}

// Items implements ports.ItemCounter. A Source without per-item parameters
// holds a single item.
func (s *Source) Items(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return 1, nil
	}
	return len(s.items), nil
}
