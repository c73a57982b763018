package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/schemaview/pkg/errors"
)

// Format is a snapshot file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported snapshot file %q", filepath.Base(path)).
		WithHint("use a .json or .toml file")
}

// ReadFile reads, normalizes and validates a snapshot file.
func ReadFile(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes a snapshot, folds flat column records into tables and
// validates it.
func Read(r io.Reader, format Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Parse(data, format)
}

// Parse is like [Read] for in-memory data.
func Parse(data []byte, format Format) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json snapshot")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml snapshot")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot format %q", format)
	}

	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Write encodes a snapshot as indented JSON.
func Write(s *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
