package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// keyVersion retires every cached artifact when the key payload or the
// on-disk entry layout changes shape.
const keyVersion = 2

// keyFor builds "<kind>:v<N>:<sha256 of parts>". The kind segment keeps
// render artifacts distinct from any future content kind sharing the
// cache; hashing the parts keeps snap text out of keys and file names.
func keyFor(kind string, parts ...any) string {
	payload, _ := json.Marshal(parts)
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%s:v%d:%s", kind, keyVersion, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data. Render keys run the snap text
// through this, so user input never appears in a cache key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
