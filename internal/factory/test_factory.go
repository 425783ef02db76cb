package factory

import (
	"time"

	"github.com/okradley/veilarena/internal/dependencies/chain"
	"github.com/okradley/veilarena/internal/dependencies/mocks"
	"github.com/okradley/veilarena/internal/fhe/simfhe"
	"github.com/okradley/veilarena/internal/services/auth"
	"github.com/okradley/veilarena/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockHeads *mocks.MockHeadSource
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockHeads := mocks.NewMockHeadSource(chain.Head{
		Number:     100,
		ParentHash: [32]byte{1},
		Beacon:     [32]byte{2},
		Time:       mockClock.Now(),
	})
	provider := simfhe.New()

	app := newWithDependencies(store, mockClock, mockHeads, provider, auth.DefaultConfig(), nil)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockHeads: mockHeads,
	}
}
