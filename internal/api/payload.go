package api

import (
	"encoding/json"
	"fmt"
)

// ListPayload normalizes the three list shapes the API is known to emit:
// {"data": [...], "total": n}, {"results": [...]} and a bare top-level
// array. The fallback order is fixed; total falls back to the item count
// when the server sends no metadata.
func ListPayload(raw json.RawMessage) (json.RawMessage, int, error) {
	if len(raw) == 0 {
		return nil, 0, nil
	}

	if isArray(raw) {
		return raw, countItems(raw), nil
	}

	var wrapper struct {
		Data    json.RawMessage `json:"data"`
		Results json.RawMessage `json:"results"`
		Total   *int            `json:"total"`
		Count   *int            `json:"count"`
	}

	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, 0, fmt.Errorf("decoding list payload: %w", err)
	}

	items := wrapper.Data
	if !isArray(items) {
		items = wrapper.Results
	}

	if !isArray(items) {
		return nil, 0, fmt.Errorf("list payload has no recognizable item collection")
	}

	switch {
	case wrapper.Total != nil:
		return items, *wrapper.Total, nil
	case wrapper.Count != nil:
		return items, *wrapper.Count, nil
	default:
		return items, countItems(items), nil
	}
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}

	return false
}

func countItems(raw json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}

	return len(items)
}
