package mocks

import (
	"github.com/okradley/veilarena/internal/dependencies/chain"
)

// MockHeadSource is a mock implementation of HeadSource for testing
type MockHeadSource struct {
	CurrentHead chain.Head
}

// Ensure MockHeadSource implements HeadSource
var _ chain.HeadSource = (*MockHeadSource)(nil)

// NewMockHeadSource creates a MockHeadSource with the given head
func NewMockHeadSource(head chain.Head) *MockHeadSource {
	return &MockHeadSource{CurrentHead: head}
}

// Head returns the mocked chain head
func (m *MockHeadSource) Head() chain.Head {
	return m.CurrentHead
}

// Set replaces the mocked chain head
func (m *MockHeadSource) Set(head chain.Head) {
	m.CurrentHead = head
}
