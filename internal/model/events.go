package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined  EventType = "player_joined"
	EventMonsterFought EventType = "monster_fought"
	EventHealUsed      EventType = "heal_used"
)

// Event is the base structure for all arena events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	PlayerID  PlayerID  `json:"player_id"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	DisplayName string `json:"display_name,omitempty"`
}

// MonsterFoughtPayload contains data for monster fought events.
// The reward is deliberately plaintext here even though the balance it feeds
// stays encrypted on the ledger; observers learn the outcome amount but not
// the running total.
type MonsterFoughtPayload struct {
	Victory bool   `json:"victory"`
	Reward  uint64 `json:"reward"` // 0 on defeat
	Battles uint64 `json:"battles"`
}

// HealUsedPayload contains data for heal used events
type HealUsedPayload struct {
	TotalHeals uint64 `json:"total_heals"`
}
