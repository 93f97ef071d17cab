package grid

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the shape as its '#'/'.' rows
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Rows())
}

// UnmarshalJSON decodes '#'/'.' rows
func (s *Shape) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to parse shape rows: %w", err)
	}
	parsed, ok := ParseShape(rows)
	if !ok {
		return fmt.Errorf("shape has no filled cells: %v", rows)
	}
	*s = parsed
	return nil
}
