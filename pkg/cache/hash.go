package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex sha256 of data. Network and layout content hashes
// embedded in keys come from here.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "<kind>:<sha256>" over the JSON encoding of parts. Option
// structs are encoded field by field, so adding an option changes every key
// and stale entries are never served.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// options hold only strings, numbers and slices of them
		panic("cache: unencodable key part: " + err.Error())
	}
	return kind + ":" + Hash(data)
}
