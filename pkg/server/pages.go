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

package server

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// pageSources resolves request paths to HTML files under a document root
// and caches their contents until the file changes.
type pageSources struct {
	root string
	max  int

	mu      sync.Mutex
	entries map[string][]byte
	order   []string
}

func newPageSources(root string, maxEntries int) *pageSources {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &pageSources{
		root:    root,
		max:     maxEntries,
		entries: make(map[string][]byte),
	}
}

// resolve maps a URL path to a candidate file. "/" and directory-style
// paths map to index.html; "/about" tries about.html and about/index.html.
func (p *pageSources) resolve(urlPath string) (string, error) {
	clean := path.Clean("/" + urlPath)
	rel := strings.TrimPrefix(clean, "/")

	var candidates []string
	switch {
	case rel == "":
		candidates = []string{"index.html"}
	case strings.HasSuffix(rel, ".html"):
		candidates = []string{rel}
	default:
		candidates = []string{rel + ".html", path.Join(rel, "index.html")}
	}

	for _, c := range candidates {
		file := filepath.Join(p.root, filepath.FromSlash(c))
		if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
			return file, nil
		}
	}
	return "", errors.NewWithContext(errors.ErrCodeNotFound, "page not found",
		map[string]any{"path": clean})
}

// load returns the contents of the page for urlPath.
func (p *pageSources) load(urlPath string) ([]byte, error) {
	file, err := p.resolve(urlPath)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if b, ok := p.entries[file]; ok {
		p.mu.Unlock()
		pageCacheEvents.WithLabelValues("hit").Inc()
		return b, nil
	}
	p.mu.Unlock()
	pageCacheEvents.WithLabelValues("miss").Inc()

	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read page", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[file]; !ok {
		for len(p.order) >= p.max {
			delete(p.entries, p.order[0])
			p.order = p.order[1:]
		}
		p.order = append(p.order, file)
	}
	p.entries[file] = b
	return b, nil
}

// evict drops file from the cache. A directory drops everything below it.
func (p *pageSources) evict(file string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prefix := file + string(filepath.Separator)
	kept := p.order[:0]
	for _, f := range p.order {
		if f == file || strings.HasPrefix(f, prefix) {
			delete(p.entries, f)
			pageCacheEvents.WithLabelValues("evict").Inc()
			continue
		}
		kept = append(kept, f)
	}
	p.order = kept
}

// len returns the number of cached pages.
func (p *pageSources) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// watch evicts cached pages as files under the document root change.
// It blocks until ctx is done.
func (p *pageSources) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create page watcher", err)
	}
	defer w.Close()

	if err := addDirs(w, p.root); err != nil {
		return err
	}
	slog.Debug("watching pages", "root", p.root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			p.evict(filepath.Clean(ev.Name))
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addDirs(w, ev.Name); err != nil {
						slog.Warn("failed to watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("page watcher error", "error", err)
		}
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeInternal, "failed to watch document root", err)
	}
	return nil
}
