// Package chain abstracts the ledger's chain-tip metadata consumed by the
// outcome randomizer.
package chain

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/okradley/veilarena/internal/dependencies/clock"
)

// Head describes the chain tip at the moment an operation executes
type Head struct {
	Number     uint64
	ParentHash [32]byte
	Beacon     [32]byte // randomness beacon value for the block
	Time       time.Time
}

// HeadSource provides the current chain head; mockable for testing
type HeadSource interface {
	Head() Head
}

// SimulatedSource synthesizes a deterministic chain that advances one block
// per interval of wall-clock time. Parent hash and beacon are derived from
// the block number, so two processes with the same genesis agree on heads.
type SimulatedSource struct {
	genesis   time.Time
	blockTime time.Duration
	clock     clock.Clock
}

// NewSimulated creates a SimulatedSource with the given block interval
func NewSimulated(clk clock.Clock, genesis time.Time, blockTime time.Duration) *SimulatedSource {
	if blockTime <= 0 {
		blockTime = 12 * time.Second
	}
	return &SimulatedSource{
		genesis:   genesis,
		blockTime: blockTime,
		clock:     clk,
	}
}

// Ensure SimulatedSource implements the interface
var _ HeadSource = (*SimulatedSource)(nil)

// Head returns the simulated chain tip for the current time
func (s *SimulatedSource) Head() Head {
	now := s.clock.Now()
	var number uint64
	if now.After(s.genesis) {
		number = uint64(now.Sub(s.genesis) / s.blockTime)
	}

	var parent [32]byte
	if number > 0 {
		parent = blockDigest("parent", number-1)
	}

	return Head{
		Number:     number,
		ParentHash: parent,
		Beacon:     blockDigest("beacon", number),
		Time:       now,
	}
}

func blockDigest(kind string, number uint64) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("veilarena/"))
	h.Write([]byte(kind))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], number)
	h.Write(buf[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
