package label

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON parses a label definition. Every key in FieldNames must be
// present and non-null; unknown keys are ignored.
func DecodeJSON(data []byte) (Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Fields{}, fmt.Errorf("malformed label definition: %w", err)
	}

	if missing := MissingKeys(raw, isJSONNull); len(missing) > 0 {
		return Fields{}, &MissingFieldsError{Keys: missing}
	}

	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return Fields{}, fmt.Errorf("malformed label definition: %w", err)
	}
	return f, nil
}

// MissingKeys returns the entries of FieldNames absent from doc, in
// canonical order. A key whose value isNull reports as absent.
func MissingKeys[V any](doc map[string]V, isNull func(V) bool) []string {
	var missing []string
	for _, name := range FieldNames {
		v, ok := doc[name]
		if !ok || (isNull != nil && isNull(v)) {
			missing = append(missing, name)
		}
	}
	return missing
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
