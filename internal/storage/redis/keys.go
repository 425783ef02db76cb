package redis

import (
	"fmt"

	"github.com/okradley/veilarena/internal/model"
)

// Key prefix for all arena data
const keyPrefix = "varena"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// recordKey returns the Redis key for a PlayerRecord
func recordKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, id)
}

// eventLogKey returns the Redis key for the shared recent-events list
func eventLogKey() string {
	return fmt.Sprintf("%s:events", keyPrefix)
}
