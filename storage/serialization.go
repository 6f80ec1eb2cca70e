package storage

import (
	"encoding/json"
	"fmt"

	"github.com/auditkit/evidenced/core"
)

// MarshalQueryResult serializes a query result for storage. Evidence data
// payloads are open maps, so the stored form is JSON.
func MarshalQueryResult(result *core.QueryResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalQueryResult deserializes a stored query result.
func UnmarshalQueryResult(data []byte) (*core.QueryResult, error) {
	var result core.QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &result, nil
}
