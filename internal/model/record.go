package model

import (
	"time"

	"github.com/okradley/veilarena/internal/fhe"
)

// PlayerRecord is the per-player arena ledger entry. Balance and health are
// opaque ciphertext handles; only the counters are readable in plaintext.
type PlayerRecord struct {
	PlayerID PlayerID

	// Balance is encrypted gold (32-bit unsigned domain)
	Balance fhe.Handle
	// Health is encrypted health (8-bit unsigned domain, decodes to [0,10])
	Health fhe.Handle

	// Joined is set exactly once and never cleared
	Joined bool

	// Public counters, monotonically increasing
	Battles   uint64
	Victories uint64
	Heals     uint64

	JoinedAt  time.Time
	UpdatedAt time.Time
}

// PlayerStats are the publicly visible counters of a record
type PlayerStats struct {
	Battles   uint64
	Victories uint64
	Heals     uint64
}

// Stats returns the record's public counters
func (r *PlayerRecord) Stats() PlayerStats {
	return PlayerStats{
		Battles:   r.Battles,
		Victories: r.Victories,
		Heals:     r.Heals,
	}
}
