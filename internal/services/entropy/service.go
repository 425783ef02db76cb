// Package entropy derives per-fight outcome scalars from public chain
// metadata. The derivation is collision-free per (player, battle count) but
// makes no attempt to be unpredictable against whoever produces blocks;
// that weakness is inherent to the source material and left in place.
package entropy

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/okradley/veilarena/internal/dependencies/chain"
	"github.com/okradley/veilarena/internal/model"
)

// Service hashes chain-tip metadata with caller identity into a scalar
type Service struct {
	heads chain.HeadSource
}

// New creates a new entropy service
func New(heads chain.HeadSource) *Service {
	return &Service{heads: heads}
}

// Scalar derives the outcome scalar for a player's next battle. Two calls
// for the same player never collide within a block because the battle
// counter differs.
func (s *Service) Scalar(playerID model.PlayerID, battles uint64) uint64 {
	head := s.heads.Head()

	h := sha3.NewLegacyKeccak256()
	h.Write(head.ParentHash[:])
	h.Write(head.Beacon[:])

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(head.Time.Unix()))
	h.Write(buf[:])

	h.Write([]byte(playerID))

	binary.BigEndian.PutUint64(buf[:], battles)
	h.Write(buf[:])

	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}
