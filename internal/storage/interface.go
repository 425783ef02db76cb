package storage

import (
	"context"

	"github.com/okradley/veilarena/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player account operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Arena ledger operations. Records are never deleted; a player's
	// record persists for the lifetime of the ledger.
	SaveRecord(ctx context.Context, record *model.PlayerRecord) error
	GetRecord(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error)

	// Event log operations. The log is capped; AppendEvent may evict the
	// oldest entries.
	AppendEvent(ctx context.Context, event *model.Event) error
	RecentEvents(ctx context.Context, limit int) ([]*model.Event, error)
}
