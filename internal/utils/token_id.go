package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTokenID generates a random identifier in the format XXXXXXXX-XXXXXXXX-XXXXXXXX-XXXXXXXX
func GenerateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	encoded := hex.EncodeToString(bytes)
	return fmt.Sprintf("%s-%s-%s-%s",
		encoded[0:8],
		encoded[8:16],
		encoded[16:24],
		encoded[24:32],
	), nil
}
