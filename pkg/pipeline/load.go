package pipeline

import (
	"bytes"

	"github.com/matzehuels/erdlayout/pkg/errors"
	"github.com/matzehuels/erdlayout/pkg/schema"
)

// LoadSchema reads and validates a schema file.
func LoadSchema(path string) (schema.Schema, error) {
	if err := errors.ValidateSchemaFilename(path); err != nil {
		return schema.Schema{}, err
	}
	s, err := schema.ReadFile(path)
	if err != nil {
		return schema.Schema{}, err
	}
	if err := s.Validate(); err != nil {
		return schema.Schema{}, err
	}
	return s, nil
}

// ParseSchema decodes and validates schema data in the given format.
func ParseSchema(data []byte, format schema.Format) (schema.Schema, error) {
	s, err := schema.Read(bytes.NewReader(data), format)
	if err != nil {
		return schema.Schema{}, err
	}
	if err := s.Validate(); err != nil {
		return schema.Schema{}, err
	}
	return s, nil
}
