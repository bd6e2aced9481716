package cache

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxKeyNameLength bounds the readable part of a key; the hash suffix keeps it unique.
const maxKeyNameLength = 96

var keyReplacer = strings.NewReplacer(
	`\`, "_",
	":", "_",
	"{", "_",
	"}", "_",
	"@", "_",
	"(", "_",
	")", "_",
	"/", "_",
)

// MakeKey builds a deterministic cache key from a logical name and its parameters.
//
// Format: <sanitized name>.<xxhash64 hex of name + canonical JSON params>
//
// Example:
//
//	MakeKey("books.index", map[string]string{"page": "1", "count": "20"})
//	// books.index.9f3c0e1a2b4d5c6e
func MakeKey(name string, params map[string]string) string {
	if params == nil {
		params = map[string]string{}
	}

	// encoding/json sorts map keys, map[string]string cannot fail to encode
	encoded, _ := json.Marshal(params)

	h := xxhash.New()
	_, _ = h.WriteString(name)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(encoded)

	safe := keyReplacer.Replace(name)
	if len(safe) > maxKeyNameLength {
		safe = safe[:maxKeyNameLength]
	}

	return safe + "." + strconv.FormatUint(h.Sum64(), 16)
}
