package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonFalse = []byte("false")

func isFalse(data []byte) bool {
	data = bytes.TrimSpace(data)

	return bytes.Equal(data, jsonFalse) || bytes.Equal(data, []byte("null"))
}

// Many2One is an Odoo relational value, sent as [id, "display name"] or false.
type Many2One struct {
	ID   int64
	Name string
}

// Set reports whether the relation points at a record.
func (m Many2One) Set() bool {
	return m.ID != 0
}

func (m Many2One) String() string {
	return m.Name
}

func (m *Many2One) UnmarshalJSON(data []byte) error {
	if isFalse(data) {
		*m = Many2One{}

		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("many2one: %w", err)
	}

	if len(pair) == 0 {
		*m = Many2One{}

		return nil
	}

	var out Many2One
	if err := json.Unmarshal(pair[0], &out.ID); err != nil {
		return fmt.Errorf("many2one id: %w", err)
	}

	if len(pair) > 1 && !isFalse(pair[1]) {
		if err := json.Unmarshal(pair[1], &out.Name); err != nil {
			return fmt.Errorf("many2one name: %w", err)
		}
	}

	*m = out

	return nil
}

func (m Many2One) MarshalJSON() ([]byte, error) {
	if !m.Set() {
		return jsonFalse, nil
	}

	return json.Marshal([]any{m.ID, m.Name})
}

// OptString is an Odoo char/text value that may be false.
type OptString string

func (s *OptString) UnmarshalJSON(data []byte) error {
	if isFalse(data) {
		*s = ""

		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("optional string: %w", err)
	}

	*s = OptString(v)

	return nil
}

func (s OptString) String() string {
	return string(s)
}
