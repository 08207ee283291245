package brief

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBrief(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeBrief(t, dir, "service-page.txt", "service brief")
	writeBrief(t, dir, "blog_post.txt", "blog brief")
	writeBrief(t, dir, "notes.md", "not a brief")

	l := NewLibrary(dir)
	got, err := l.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d briefs: %+v", len(got), got)
	}
	// Sorted by name; titles derived from stems.
	if got[0].Name != "blog_post" || got[0].Title != "Blog Post" {
		t.Errorf("briefs[0] = %+v", got[0])
	}
	if got[1].Name != "service-page" || got[1].Title != "Service Page" {
		t.Errorf("briefs[1] = %+v", got[1])
	}
}

func TestList_MissingDir(t *testing.T) {
	l := NewLibrary(filepath.Join(t.TempDir(), "nope"))
	got, err := l.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty library, got %+v", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeBrief(t, dir, "service-page.txt", "AI consulting service page")

	l := NewLibrary(dir)
	got, err := l.Load("service-page")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "AI consulting service page" {
		t.Errorf("Load = %q", got)
	}

	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing brief")
	}
}
