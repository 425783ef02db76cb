package mocks

import "github.com/okradley/veilarena/internal/model"

// MockEntropy is a scriptable outcome-scalar source for testing
type MockEntropy struct {
	// ScalarResults is a queue of results to return from Scalar
	ScalarResults []uint64
	scalarIndex   int
}

// NewMockEntropy creates a new MockEntropy
func NewMockEntropy() *MockEntropy {
	return &MockEntropy{}
}

// Scalar returns the next queued result, or 0 if none remaining
func (m *MockEntropy) Scalar(playerID model.PlayerID, battles uint64) uint64 {
	if m.scalarIndex >= len(m.ScalarResults) {
		return 0
	}
	result := m.ScalarResults[m.scalarIndex]
	m.scalarIndex++
	return result
}

// QueueScalar adds values to the Scalar result queue
func (m *MockEntropy) QueueScalar(values ...uint64) {
	m.ScalarResults = append(m.ScalarResults, values...)
}

// Reset clears all queued results
func (m *MockEntropy) Reset() {
	m.ScalarResults = nil
	m.scalarIndex = 0
}
