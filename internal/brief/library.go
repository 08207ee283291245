// Package brief loads the free-text briefs the pipeline starts from: a
// directory of saved .txt briefs plus one-off fetches from URLs or paths.
package brief

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Brief is one saved brief in the library.
type Brief struct {
	Name  string `json:"name"`  // file stem, e.g. "ai-consulting-page"
	Title string `json:"title"` // display form, e.g. "Ai Consulting Page"
	Path  string `json:"-"`
}

type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// List returns the .txt briefs in the library directory, sorted by name.
// A missing directory is an empty library, not an error.
func (l *Library) List() ([]Brief, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var briefs []Brief
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".txt")
		briefs = append(briefs, Brief{
			Name:  stem,
			Title: titleFromStem(stem),
			Path:  filepath.Join(l.dir, e.Name()),
		})
	}
	sort.Slice(briefs, func(i, j int) bool { return briefs[i].Name < briefs[j].Name })
	return briefs, nil
}

// Load reads a saved brief by its stem.
func (l *Library) Load(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(l.dir, name+".txt"))
	if err != nil {
		return "", fmt.Errorf("brief not found: %s", name)
	}
	return string(b), nil
}

func titleFromStem(stem string) string {
	words := strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
