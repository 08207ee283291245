// Package prompt holds the stage prompt templates and loads them by name.
package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed prompts/*.md
var builtin embed.FS

// Store resolves prompt names to their text. Embedded prompts are the
// defaults; a non-empty override directory shadows them file by file so
// prompt wording can be tuned without a rebuild.
type Store struct {
	overrideDir string
}

func NewStore(overrideDir string) *Store {
	return &Store{overrideDir: overrideDir}
}

// Load returns the prompt text for a name like "draft-writer.md".
func (s *Store) Load(name string) (string, error) {
	if s.overrideDir != "" {
		p := filepath.Join(s.overrideDir, name)
		if b, err := os.ReadFile(p); err == nil {
			return string(b), nil
		}
	}
	b, err := builtin.ReadFile("prompts/" + name)
	if err != nil {
		return "", fmt.Errorf("prompt not found: %s", name)
	}
	return string(b), nil
}

// Names lists the embedded prompt files.
func (s *Store) Names() ([]string, error) {
	entries, err := fs.ReadDir(builtin, "prompts")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
