package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an opaque task identifier. The store may send numbers or strings;
// an ID remembers which one it was so it is echoed back unchanged.
type ID struct {
	raw     string
	numeric bool
}

// NewID builds an ID from user input. Input that parses as a JSON number is
// treated as numeric, everything else as a string.
func NewID(s string) ID {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return ID{raw: s, numeric: true}
	}
	return ID{raw: s}
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool { return id.raw == "" }

// Equal compares identifiers by their text, ignoring wire form.
func (id ID) Equal(other ID) bool { return id.raw == other.raw }

// String returns the identifier as text.
func (id ID) String() string { return id.raw }

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{raw: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s: %w", data, err)
	}
	*id = ID{raw: n.String(), numeric: true}
	return nil
}
