package response

import (
	"time"

	"github.com/okradley/veilarena/internal/fhe"
	"github.com/okradley/veilarena/internal/model"
	"github.com/okradley/veilarena/internal/services/arena"
	"github.com/okradley/veilarena/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Stats represents a record's public counters
type Stats struct {
	Battles   uint64 `json:"battles"`
	Victories uint64 `json:"victories"`
	Heals     uint64 `json:"heals"`
}

// StatsFromModel converts model.PlayerStats
func StatsFromModel(s model.PlayerStats) Stats {
	return Stats{
		Battles:   s.Battles,
		Victories: s.Victories,
		Heals:     s.Heals,
	}
}

// JoinResponse is the response for a successful join
type JoinResponse struct {
	PlayerID string    `json:"player_id"`
	Balance  string    `json:"balance_handle"`
	Health   string    `json:"health_handle"`
	JoinedAt time.Time `json:"joined_at"`
}

// JoinResponseFromRecord creates a JoinResponse from a fresh record
func JoinResponseFromRecord(r *model.PlayerRecord) JoinResponse {
	return JoinResponse{
		PlayerID: string(r.PlayerID),
		Balance:  string(r.Balance),
		Health:   string(r.Health),
		JoinedAt: r.JoinedAt,
	}
}

// FightResponse is the response for a fight. Victory and reward are
// plaintext; the balance they apply to stays encrypted.
type FightResponse struct {
	Victory bool   `json:"victory"`
	Reward  uint64 `json:"reward"`
	Stats   Stats  `json:"stats"`
}

// FightResponseFromResult converts an arena.FightResult
func FightResponseFromResult(r *arena.FightResult) FightResponse {
	return FightResponse{
		Victory: r.Victory,
		Reward:  r.Reward,
		Stats:   StatsFromModel(r.Stats),
	}
}

// HealResponse is the response for a heal attempt
type HealResponse struct {
	TotalHeals uint64 `json:"total_heals"`
}

// CiphertextResponse carries an opaque ciphertext handle
type CiphertextResponse struct {
	Handle string `json:"handle"`
}

// CiphertextResponseFromHandle wraps a handle
func CiphertextResponseFromHandle(h fhe.Handle) CiphertextResponse {
	return CiphertextResponse{Handle: string(h)}
}

// JoinedResponse reports the join flag
type JoinedResponse struct {
	Joined bool `json:"joined"`
}

// DecryptResponse is the response for a decrypt request
type DecryptResponse struct {
	Handle string `json:"handle"`
	Value  uint64 `json:"value"`
}

// EventsResponse lists recent arena events
type EventsResponse struct {
	Events []model.Event `json:"events"`
}
