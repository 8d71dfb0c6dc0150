package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePage(t *testing.T, root, name, body string) string {
	t.Helper()
	file := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestPageSourcesCachesUntilEvicted(t *testing.T) {
	root := t.TempDir()
	file := writePage(t, root, "index.html", "one")
	p := newPageSources(root, 4)

	b, err := p.load("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "one" {
		t.Errorf("expected one, got %s", b)
	}

	writePage(t, root, "index.html", "two")
	if b, _ := p.load("/"); string(b) != "one" {
		t.Errorf("expected cached one, got %s", b)
	}

	p.evict(file)
	if b, _ := p.load("/"); string(b) != "two" {
		t.Errorf("expected two after eviction, got %s", b)
	}
}

func TestPageSourcesBounded(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.html", "b.html", "c.html"} {
		writePage(t, root, name, name)
	}
	p := newPageSources(root, 2)

	for _, path := range []string{"/a", "/b", "/c"} {
		if _, err := p.load(path); err != nil {
			t.Fatalf("unexpected error loading %s: %v", path, err)
		}
	}
	if p.len() != 2 {
		t.Errorf("expected 2 cached pages, got %d", p.len())
	}
}

func TestPageSourcesEvictDirectory(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "people/index.html", "people")
	writePage(t, root, "people/staff.html", "staff")
	writePage(t, root, "about.html", "about")
	p := newPageSources(root, 8)

	for _, path := range []string{"/people", "/people/staff", "/about"} {
		if _, err := p.load(path); err != nil {
			t.Fatalf("unexpected error loading %s: %v", path, err)
		}
	}

	p.evict(filepath.Join(root, "people"))
	if p.len() != 1 {
		t.Errorf("expected only about.html to stay cached, got %d", p.len())
	}
}

func TestPageSourcesWatchEvictsChangedFile(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "index.html", "one")
	p := newPageSources(root, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.watch(ctx)
	}()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("unexpected watch error: %v", err)
		}
	}()

	// Give the watcher time to register the root.
	time.Sleep(100 * time.Millisecond)

	if _, err := p.load("/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writePage(t, root, "index.html", "two")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if p.len() == 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if b, _ := p.load("/"); string(b) != "two" {
		t.Errorf("expected watcher to evict stale page, got %s", b)
	}
}
