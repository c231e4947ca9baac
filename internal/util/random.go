// Package util provides small helpers shared across components.
package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateID returns a prefixed random identifier built from the given
// number of random bytes, hex encoded.
func GenerateID(prefix string, byteLength int) (string, error) {
	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return prefix + hex.EncodeToString(bytes), nil
}

// GenerateParticipantID generates a unique participant ID with "part_" prefix.
func GenerateParticipantID() (string, error) {
	return GenerateID("part_", 8)
}

// GenerateSessionRecordID generates a unique session record ID with "sess_" prefix.
func GenerateSessionRecordID() (string, error) {
	return GenerateID("sess_", 8)
}
