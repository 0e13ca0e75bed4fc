package stubs

import (
	"context"
	"sort"
	"sync"
)

// MockAllowList is an in-memory implementation of the AllowList
// interface for testing and local development (USE_MOCK_DB=true).
type MockAllowList struct {
	mu    sync.RWMutex
	users map[int64]struct{}
}

// NewMockAllowList creates an empty in-memory allow-list.
func NewMockAllowList() *MockAllowList {
	return &MockAllowList{
		users: make(map[int64]struct{}),
	}
}

// Initialize is a no-op for the in-memory store.
func (m *MockAllowList) Initialize(ctx context.Context) error {
	return nil
}

// Contains reports whether userID is a member.
func (m *MockAllowList) Contains(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.users[userID]
	return ok, nil
}

// Add inserts userID, returning false if it was already present.
func (m *MockAllowList) Add(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[userID]; ok {
		return false, nil
	}
	m.users[userID] = struct{}{}
	return true, nil
}

// Remove deletes userID, returning false if it was not a member.
func (m *MockAllowList) Remove(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[userID]; !ok {
		return false, nil
	}
	delete(m.users, userID)
	return true, nil
}

// List returns all members in ascending order.
func (m *MockAllowList) List(ctx context.Context) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Close is a no-op for the in-memory store.
func (m *MockAllowList) Close() error {
	return nil
}
