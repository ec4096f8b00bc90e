package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKey generates a cache key for a rendered artifact from the
// content hash of its source table and the render options that shaped it.
// The key format is: artifact:hash(parts...)
func ArtifactKey(tableHash string, parts ...interface{}) string {
	data, _ := json.Marshal(append([]interface{}{tableHash}, parts...))
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("artifact:%s", hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
