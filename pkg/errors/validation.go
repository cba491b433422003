package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxTableNameLength bounds identifier length. PostgreSQL truncates at 63
// bytes; other engines allow more, so the limit here is deliberately loose.
const maxTableNameLength = 256

// ValidateTableName validates a table identifier.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No names that are only whitespace
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateTableName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSchema, "table name cannot be empty")
	}

	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidSchema, "table name cannot be blank")
	}

	if utf8.RuneCountInString(name) > maxTableNameLength {
		return New(ErrCodeInvalidSchema, "table name too long (max %d characters)", maxTableNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSchema, "table name %q contains invalid control characters", name)
		}
	}

	return nil
}

// SchemaExtensions lists the file extensions accepted for schema files.
var SchemaExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateSchemaFilename checks that a schema file has a supported extension.
func ValidateSchemaFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "schema path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "schema path contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !SchemaExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported schema file extension %q (must be .json, .yaml or .yml)", ext)
	}
	return nil
}
