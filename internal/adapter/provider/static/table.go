// Package static serves dictionary entries from an in-memory table loaded
// from YAML. The default table is compiled in.
package static

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

//go:embed words.yaml
var defaultWords []byte

type fileTable struct {
	Words []fileWord `yaml:"words"`
}

type fileWord struct {
	Headword   string   `yaml:"headword"`
	Phonetic   string   `yaml:"phonetic"`
	Definition string   `yaml:"definition"`
	Example    string   `yaml:"example"`
	Synonyms   []string `yaml:"synonyms"`
	Audio      string   `yaml:"audio"`
}

// Table is a read-only headword → entry map. Keys are stored in normalized
// form; lookups match exactly.
type Table struct {
	entries map[string]domain.DictionaryEntry
}

// Default returns the compiled-in table.
func Default() (*Table, error) {
	t, err := Parse(defaultWords)
	if err != nil {
		return nil, fmt.Errorf("static: default table: %w", err)
	}
	return t, nil
}

// Load reads a table from path, or returns the default table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("static: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("static: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML table. Headwords are normalized on load.
func Parse(data []byte) (*Table, error) {
	var ft fileTable
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	t := &Table{entries: make(map[string]domain.DictionaryEntry, len(ft.Words))}
	for i, w := range ft.Words {
		key, err := domain.NormalizeQuery(w.Headword)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, domain.NewValidationError("headword", "required"))
		}
		if w.Definition == "" {
			return nil, fmt.Errorf("word %q: %w", key, domain.NewValidationError("definition", "required"))
		}
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("word %q: %w", key, domain.NewValidationError("headword", "duplicate"))
		}

		t.entries[key] = domain.DictionaryEntry{
			Headword:   key,
			Phonetic:   w.Phonetic,
			Definition: w.Definition,
			Example:    w.Example,
			Synonyms:   append([]string{}, w.Synonyms...),
			AudioURL:   w.Audio,
		}
	}
	return t, nil
}

// Lookup returns the entry for an already-normalized word, or nil, nil.
func (t *Table) Lookup(_ context.Context, word string) (*domain.DictionaryEntry, error) {
	e, ok := t.entries[word]
	if !ok {
		return nil, nil
	}
	e.Synonyms = slices.Clone(e.Synonyms)
	return &e, nil
}

// Len returns the number of headwords.
func (t *Table) Len() int { return len(t.entries) }

// Headwords returns all headwords, sorted.
func (t *Table) Headwords() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
