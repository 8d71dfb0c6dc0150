// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// FormatFromPath picks a format from the file extension:
// .json, .yaml/.yml, .toml, .table/.txt. Unknown extensions mean JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".table", ".txt":
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "path", path)
		return FormatJSON
	}
}

// Reader decodes JSON, YAML or TOML from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader. Table format cannot be read.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	switch format {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("format %q does not support deserialization", format))
	}
	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// NewFileReader opens path with the format implied by its extension.
// Close must be called to release the file.
func NewFileReader(path string) (*Reader, error) {
	format := FormatFromPath(path)
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to open file", err,
			map[string]any{"path": path})
	}
	r, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil || r.input == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "reader has no input")
	}

	var err error
	switch r.format {
	case FormatJSON:
		err = json.NewDecoder(r.input).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r.input).Decode(v)
	case FormatTOML:
		_, err = toml.NewDecoder(r.input).Decode(v)
	default:
		return errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported format for deserialization: %s", r.format))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to decode %s", strings.ToUpper(string(r.format))), err)
	}
	return nil
}

// Close releases the underlying file. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile decodes the file at path into a new T.
func FromFile[T any](path string) (*T, error) {
	r, err := NewFileReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
