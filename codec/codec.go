// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec encodes and decodes serialized trees, as returned by
// [tree.Node.Serialize] and accepted by [tree.Node.Deserialize], in
// JSON, YAML, TOML and BSON. JSON, YAML and BSON decoding preserve the
// order of keys by producing ordered maps.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"coeditar.org/core/base/ordmap"
)

// Format is a serialization format.
type Format int32

const (
	// JSON is the JavaScript Object Notation format.
	JSON Format = iota

	// YAML is the YAML format.
	YAML

	// TOML is the TOML format. It has no null value, so nil values
	// are omitted, and keys are written in sorted order.
	TOML

	// BSON is the binary JSON format used by MongoDB.
	BSON
)

var formatNames = []string{"json", "yaml", "toml", "bson"}

// ErrUnknownFormat is returned for unknown format names and file extensions.
var ErrUnknownFormat = errors.New("codec: unknown format")

// ErrNotDocument is returned when encoding data that is not a map in
// a format that requires a document at the top level.
var ErrNotDocument = errors.New("codec: data is not a map")

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", f)
	}
	return formatNames[f]
}

// Extension returns the usual file extension of the format, with the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat returns the format with the given case-insensitive name.
// "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "yml" {
		return YAML, nil
	}
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// FormatFromPath returns the format matching the extension of the given file path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes the given serialized tree to the given writer in the given format.
func Encode(w io.Writer, f Format, data any) error {
	switch f {
	case JSON:
		return encodeJSON(w, data)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("codec: encode yaml: %w", err)
		}
		return enc.Close()
	case TOML:
		m, ok := ordmap.ToMap(data).(map[string]any)
		if !ok {
			return fmt.Errorf("codec: encode toml: %w", ErrNotDocument)
		}
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("codec: encode toml: %w", err)
		}
		return nil
	case BSON:
		b, err := encodeBSON(data)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("%w %v", ErrUnknownFormat, f)
}

// Decode reads a serialized tree in the given format from the given reader.
// Maps are decoded as *ordmap.Map[string, any], except for TOML, which is
// decoded as map[string]any.
func Decode(r io.Reader, f Format) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch f {
	case JSON:
		return decodeJSON(b)
	case YAML:
		v, err := ordmap.DecodeYAML(b)
		if err != nil {
			return nil, fmt.Errorf("codec: decode yaml: %w", err)
		}
		return v, nil
	case TOML:
		var m map[string]any
		if err := toml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("codec: decode toml: %w", err)
		}
		return m, nil
	case BSON:
		return decodeBSON(b)
	}
	return nil, fmt.Errorf("%w %v", ErrUnknownFormat, f)
}

// Marshal returns the given serialized tree encoded in the given format.
func Marshal(f Format, data any) ([]byte, error) {
	var b bytes.Buffer
	if err := Encode(&b, f, data); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal decodes a serialized tree in the given format.
func Unmarshal(f Format, b []byte) (any, error) {
	return Decode(bytes.NewReader(b), f)
}
