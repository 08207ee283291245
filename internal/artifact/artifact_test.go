package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestWrite_CreatesDirAndIndents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "output")
	w := NewWriter(dir)

	doc := map[string]any{"objective": "x", "draft": "# D"}
	path, err := w.Write(doc, "")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != DefaultFilename {
		t.Errorf("path = %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"draft\"") {
		t.Errorf("output not indented:\n%s", b)
	}
	var round map[string]any
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if round["objective"] != "x" {
		t.Errorf("round = %v", round)
	}
}

func TestWrite_NamedRun(t *testing.T) {
	w := NewWriter(t.TempDir())
	name := Filename("2026-08-24", "AI Consulting Page", []byte("run-seed"))
	path, err := w.Write(map[string]any{"a": 1}, name)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestFilename(t *testing.T) {
	got := Filename("2026-08-24", "AI Consulting — Service Page!", []byte("seed"))
	re := regexp.MustCompile(`^2026-08-24-[a-z0-9-]+-\d{2}\.json$`)
	if !re.MatchString(got) {
		t.Fatalf("Filename = %q", got)
	}

	// Deterministic for the same seed, stable across titles' punctuation.
	if got2 := Filename("2026-08-24", "AI Consulting — Service Page!", []byte("seed")); got2 != got {
		t.Errorf("not deterministic: %q vs %q", got, got2)
	}

	// Degenerate title still yields a usable name.
	if got3 := Filename("2026-08-24", "!!!", []byte("seed")); !strings.Contains(got3, "-run-") {
		t.Errorf("degenerate title: %q", got3)
	}
}
