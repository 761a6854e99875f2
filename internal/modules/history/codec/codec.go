package codec

import (
	"encoding/json"
	"fmt"

	"soilpico/internal/modules/history/types"
)

// Encode serializes readings as a JSON array of objects with the short
// field keys (ts, m, t, h). A nil or empty slice encodes as "[]" so the
// durable file always holds a valid container.
func Encode(readings []types.Reading) ([]byte, error) {
	if readings == nil {
		readings = []types.Reading{}
	}
	data, err := json.Marshal(readings)
	if err != nil {
		return nil, fmt.Errorf("encode readings: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of readings element by element. Each element
// is unmarshalled individually: a missing field yields 0 for that field and
// a malformed element yields an all-zero reading, so one bad record never
// discards the rest. Only an unparseable container is an error.
func Decode(data []byte) ([]types.Reading, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode readings container: %w", err)
	}
	out := make([]types.Reading, 0, len(raw))
	for _, msg := range raw {
		var r types.Reading
		// Errors zero-fill the record; tolerated per element.
		_ = json.Unmarshal(msg, &r)
		out = append(out, r)
	}
	return out, nil
}
