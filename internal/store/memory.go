package store

import (
	"context"
	"slices"
	"sync"

	"github.com/inamate/snapkit/internal/designer"
)

type Memory struct {
	mu     sync.RWMutex
	guides map[string][]designer.Guide
}

func NewMemory() *Memory {
	return &Memory{guides: make(map[string][]designer.Guide)}
}

func (m *Memory) List(_ context.Context, workspaceID string) ([]designer.Guide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.guides[workspaceID]), nil
}

func (m *Memory) Save(_ context.Context, workspaceID string, g designer.Guide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.guides[workspaceID]
	if i := indexOf(list, g.ID); i >= 0 {
		list[i] = g
		return nil
	}
	m.guides[workspaceID] = append(list, g)
	return nil
}

func (m *Memory) Delete(_ context.Context, workspaceID, guideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.guides[workspaceID]
	i := indexOf(list, guideID)
	if i < 0 {
		return ErrNotFound
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(m.guides, workspaceID)
	} else {
		m.guides[workspaceID] = list
	}
	return nil
}

func (m *Memory) Close() {}

func indexOf(list []designer.Guide, id string) int {
	return slices.IndexFunc(list, func(g designer.Guide) bool { return g.ID == id })
}
