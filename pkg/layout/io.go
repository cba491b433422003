package layout

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/erdlayout/pkg/errors"
	"github.com/matzehuels/erdlayout/pkg/schema"
)

// =============================================================================
// Result Serialization API
// =============================================================================

// MarshalResult serializes a Result to pretty-printed JSON.
func MarshalResult(r Result) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalResult deserializes a Result. A nil tables array is normalized to
// an empty one.
func UnmarshalResult(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if r.Tables == nil {
		r.Tables = []PositionedTable{}
	}
	if r.Relationships == nil {
		r.Relationships = []schema.Relationship{}
	}
	return r, nil
}

// WriteResultFile writes a Result to a JSON file.
func WriteResultFile(r Result, path string) error {
	data, err := MarshalResult(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile reads a Result from a JSON file.
func ReadResultFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalResult(data)
}
