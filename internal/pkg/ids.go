package pkg

import "github.com/google/uuid"

// GenerateBoardID - returns a new random board identifier.
func GenerateBoardID() string {
	return uuid.NewString()
}

// GenerateGameID - returns a new random meta-game identifier.
func GenerateGameID() string {
	return uuid.NewString()
}
