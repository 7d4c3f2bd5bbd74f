package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaxRawKey is the longest user key stored verbatim. Longer keys are replaced
// by a hash so every backend sees bounded key sizes.
const MaxRawKey = 200

// StorageKey isolates a user key inside prefix:<ns>:.
//
//	val:<ns>:<key>          - key up to MaxRawKey bytes
//	val:<ns>:#<sha256[:16]> - longer keys
func StorageKey(prefix, ns, key string) string {
	if len(key) > MaxRawKey {
		sum := sha256.Sum256([]byte(key))
		key = "#" + hex.EncodeToString(sum[:8])
	}
	return prefix + ":" + ns + ":" + key
}
