package facts

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a fact file:
//
//	relations:
//	  - name: bevetel
//	    heading: [Date, Sum]
//	    tuples:
//	      - [1, 5]
//
// Unknown fields are rejected, so typos like "tuple:" are reported instead of
// silently producing an empty relation.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fact file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("loaded fact file", "path", path, "relations", len(b.Relations))
	return b, nil
}

// Parse decodes the YAML fact format, see LoadFile.
func Parse(data []byte) (*Base, error) {
	var raw Base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return NewBase(raw.Relations...)
}

// Marshal encodes a fact base in the format read by Parse.
func (b *Base) Marshal() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFile writes a fact base to a YAML file that LoadFile reads back.
func SaveFile(path string, b *Base) error {
	data, err := b.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fact file: %w", err)
	}
	return nil
}
