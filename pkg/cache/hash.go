package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "<prefix>:<sha256>" from the JSON encoding of parts. Keyer
// options are plain structs, so their JSON form is stable across runs.
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Keyer inputs are ints, strings and stack hashes; this cannot fail.
		panic("cache: unencodable key parts: " + err.Error())
	}
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Stack hashes and file cache names
// are both built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
