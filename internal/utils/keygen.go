package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateFileID generates a random identifier for a chunked media upload.
// Format: prefix_randomhex
// Example: media_a1b2c3d4e5f6...
func GenerateFileID(prefix string) (string, error) {
	b := make([]byte, 16) // 32 char hex
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}
