package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/erdlayout/pkg/errors"
)

// Format selects the on-disk encoding of a schema.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateSchemaFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// =============================================================================
// Schema Serialization API
// =============================================================================

// Marshal encodes a schema as indented JSON.
func Marshal(s Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON schema.
func Unmarshal(data []byte) (Schema, error) {
	return Read(bytes.NewReader(data), FormatJSON)
}

// ReadFile reads a schema file, dispatching on its extension.
func ReadFile(path string) (Schema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Schema{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Schema{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Schema{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// WriteFile writes a schema file, dispatching on its extension.
func WriteFile(s Schema, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f, format)
}

// Read decodes a schema in the given format. Nil slices are normalized to
// empty ones so that re-encoding yields "[]" rather than "null".
func Read(r io.Reader, format Format) (Schema, error) {
	var s Schema
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return Schema{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json schema")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
			return Schema{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml schema")
		}
	default:
		return Schema{}, errors.New(errors.ErrCodeUnsupported, "unsupported schema format %q", format)
	}
	if s.Tables == nil {
		s.Tables = []Table{}
	}
	if s.Relationships == nil {
		s.Relationships = []Relationship{}
	}
	return s, nil
}

// Write encodes a schema in the given format.
func Write(s Schema, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported schema format %q", format)
	}
	return nil
}
