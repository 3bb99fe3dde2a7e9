package redis

import (
	"fmt"

	"github.com/zkgames/zkgames-go/internal/model"
)

// Key prefix for all engine data
const keyPrefix = "zkgames"

// Key generation functions for each entity type

// clientKey returns the Redis key for a GameClient
func clientKey(id model.ClientID) string {
	return fmt.Sprintf("%s:client:%s", keyPrefix, id)
}

// playerKey returns the Redis key for a Player
func playerKey(username model.Username) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game, scoped by client
func gameKey(clientID model.ClientID, id model.GameID) string {
	return fmt.Sprintf("%s:game:%s:%d", keyPrefix, clientID, id)
}

// statsKey returns the Redis key for a PlayerGameStats record
func statsKey(username model.Username, gameType model.GameType) string {
	return fmt.Sprintf("%s:stats:%s:%s", keyPrefix, username, gameType)
}

// accountKey returns the Redis key for a custody Account
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// managerKey returns the Redis key for the ManagerConfig singleton
func managerKey() string {
	return fmt.Sprintf("%s:manager", keyPrefix)
}
