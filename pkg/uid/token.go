package uid

import "github.com/google/uuid"

// GenerateTokenID gives every issued token its own jti
func GenerateTokenID() string {
	return uuid.NewString()
}
