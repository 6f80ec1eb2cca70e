package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	resultPrefix     = "qryres"
	resultDatePrefix = "qryresd"
)

// makeResultKey generates a key for a query result by query ID.
func makeResultKey(queryID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", resultPrefix, queryID))
}

// makeResultDateKey generates a composite key for the creation-time index.
// Format: prefix:timestamp:queryID
func makeResultDateKey(createdAt time.Time, queryID string) []byte {
	prefix := resultDatePrefix + ":"
	buf := make([]byte, len(prefix)+8+len(queryID))
	offset := copy(buf, prefix)
	// BigEndian so lexicographic order matches chronological order
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], queryID)
	return buf
}
