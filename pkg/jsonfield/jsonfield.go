// Package jsonfield converts JSON text columns to Go values and back. Reads
// are lenient: absent or malformed JSON yields an empty value instead of an
// error so one bad row never breaks a page.
package jsonfield

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func StringSlice(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func StringMap(raw []byte) map[string]string {
	out := map[string]string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return map[string]string{}
	}
	return out
}

// FromSlice always produces a valid JSON array.
func FromSlice(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// FromMap always produces a valid JSON object.
func FromMap(values map[string]string) datatypes.JSON {
	if values == nil {
		values = map[string]string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
