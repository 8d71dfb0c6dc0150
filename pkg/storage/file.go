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

package storage

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// File is a Store persisted as a flat YAML mapping. Every mutation rewrites
// the file through a temporary file and rename.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFile opens the store at path. A missing file is an empty store; it is
// created on the first write.
func NewFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read storage file", err,
			map[string]any{"path": path})
	}

	if err := yaml.Unmarshal(data, &f.values); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "storage file is not a YAML mapping", err,
			map[string]any{"path": path})
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Delete implements Store.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.flush(); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

func (f *File) flush() error {
	data, err := yaml.Marshal(f.values)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode storage", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create storage directory", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*.yaml")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create temporary storage file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to write storage file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to close storage file", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to replace storage file", err)
	}
	return nil
}
