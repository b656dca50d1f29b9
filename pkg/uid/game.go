package uid

import "github.com/google/uuid"

// GenerateGameID returns a random, URL-safe game id
func GenerateGameID() string {
	return uuid.NewString()
}
