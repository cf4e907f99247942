// Package quizbank holds the question banks the quiz engine draws from.
// The default bank is compiled in; a YAML file can replace or add categories.
package quizbank

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

//go:embed bank.yaml
var defaultBank []byte

type fileBank struct {
	Categories []fileCategory `yaml:"categories"`
}

type fileCategory struct {
	Name      string         `yaml:"name"`
	Questions []fileQuestion `yaml:"questions"`
}

type fileQuestion struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
}

// Bank maps category names to their questions. A Bank is immutable after
// construction and safe for concurrent use.
type Bank struct {
	order      []string
	categories map[string][]domain.Question
}

// Default returns the compiled-in bank.
func Default() (*Bank, error) {
	b, err := Parse(defaultBank)
	if err != nil {
		return nil, fmt.Errorf("quizbank: default bank: %w", err)
	}
	return b, nil
}

// Load returns the default bank overlaid with the categories from path.
// A category in the file replaces the default category of the same name.
// An empty path yields the default bank.
func Load(path string, log *slog.Logger) (*Bank, error) {
	bank, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("quizbank: read %s: %w", path, err)
		}
		overlay, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("quizbank: %s: %w", path, err)
		}
		bank = bank.Merge(overlay)
	}

	log.Info("quiz bank loaded",
		slog.String("adapter", "quizbank"),
		slog.Any("categories", bank.Categories()),
	)
	return bank, nil
}

// Parse decodes and validates a YAML bank.
func Parse(data []byte) (*Bank, error) {
	var fb fileBank
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(fb.Categories) == 0 {
		return nil, domain.NewValidationError("categories", "at least one category required")
	}

	b := &Bank{categories: make(map[string][]domain.Question, len(fb.Categories))}
	for _, fc := range fb.Categories {
		name := strings.TrimSpace(fc.Name)
		if name == "" {
			return nil, domain.NewValidationError("categories.name", "required")
		}
		if _, dup := b.categories[name]; dup {
			return nil, domain.NewValidationError("categories."+name, "duplicate category")
		}
		if len(fc.Questions) == 0 {
			return nil, domain.NewValidationError("categories."+name, "at least one question required")
		}

		qs := make([]domain.Question, 0, len(fc.Questions))
		for i, fq := range fc.Questions {
			q, err := fq.toDomain()
			if err != nil {
				return nil, fmt.Errorf("category %q question %d: %w", name, i, err)
			}
			qs = append(qs, q)
		}

		b.order = append(b.order, name)
		b.categories[name] = qs
	}
	return b, nil
}

func (fq fileQuestion) toDomain() (domain.Question, error) {
	if len(fq.Options) != domain.OptionCount {
		return domain.Question{}, domain.NewValidationError("options",
			fmt.Sprintf("exactly %d options required, got %d", domain.OptionCount, len(fq.Options)))
	}
	q := domain.Question{Prompt: fq.Prompt, CorrectOption: fq.Correct}
	copy(q.Options[:], fq.Options)
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// Questions returns a copy of the questions for category.
func (b *Bank) Questions(category string) ([]domain.Question, error) {
	qs, ok := b.categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, category)
	}
	return slices.Clone(qs), nil
}

// Categories returns category names in declaration order.
func (b *Bank) Categories() []string {
	return slices.Clone(b.order)
}

// Merge returns a new bank with other's categories replacing or extending b's.
func (b *Bank) Merge(other *Bank) *Bank {
	out := &Bank{
		order:      slices.Clone(b.order),
		categories: make(map[string][]domain.Question, len(b.categories)+len(other.categories)),
	}
	for name, qs := range b.categories {
		out.categories[name] = qs
	}
	for _, name := range other.order {
		if _, exists := out.categories[name]; !exists {
			out.order = append(out.order, name)
		}
		out.categories[name] = other.categories[name]
	}
	return out
}
