package entropy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okradley/veilarena/internal/dependencies/chain"
	"github.com/okradley/veilarena/internal/dependencies/mocks"
)

func fixedHead() chain.Head {
	return chain.Head{
		Number:     1234,
		ParentHash: [32]byte{1, 2, 3},
		Beacon:     [32]byte{4, 5, 6},
		Time:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestScalarIsDeterministicForFixedInputs(t *testing.T) {
	svc := New(mocks.NewMockHeadSource(fixedHead()))

	a := svc.Scalar("player-1", 0)
	b := svc.Scalar("player-1", 0)
	assert.Equal(t, a, b)
}

func TestScalarDiffersPerBattleCountWithinOneBlock(t *testing.T) {
	svc := New(mocks.NewMockHeadSource(fixedHead()))

	a := svc.Scalar("player-1", 0)
	b := svc.Scalar("player-1", 1)
	assert.NotEqual(t, a, b)
}

func TestScalarDiffersPerPlayer(t *testing.T) {
	svc := New(mocks.NewMockHeadSource(fixedHead()))

	a := svc.Scalar("player-1", 0)
	b := svc.Scalar("player-2", 0)
	assert.NotEqual(t, a, b)
}

func TestScalarTracksChainHead(t *testing.T) {
	source := mocks.NewMockHeadSource(fixedHead())
	svc := New(source)

	a := svc.Scalar("player-1", 0)

	next := fixedHead()
	next.Number++
	next.Beacon = [32]byte{7, 8, 9}
	source.Set(next)

	b := svc.Scalar("player-1", 0)
	assert.NotEqual(t, a, b)
}

func TestSimulatedSourceAdvancesWithClock(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	source := chain.NewSimulated(clk, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12*time.Second)

	first := source.Head()
	clk.Advance(time.Minute)
	second := source.Head()

	require.Greater(t, second.Number, first.Number)
	assert.NotEqual(t, first.Beacon, second.Beacon)
}

func TestSimulatedSourceIsStableWithinABlock(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	source := chain.NewSimulated(clk, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12*time.Second)

	first := source.Head()
	clk.Advance(time.Second)
	second := source.Head()

	assert.Equal(t, first.Number, second.Number)
	assert.Equal(t, first.ParentHash, second.ParentHash)
}
