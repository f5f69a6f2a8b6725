package practice

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/lshigami/lawdesk/internal/model"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Question struct {
	Number        int               `yaml:"number"`
	Text          string            `yaml:"text"`
	Options       map[string]string `yaml:"options"`
	CorrectAnswer string            `yaml:"correctAnswer"`
	Explanation   string            `yaml:"explanation"`
}

// ID is the key a client uses for this question in an answer sheet.
func (q Question) ID() string {
	return fmt.Sprintf("q%d", q.Number)
}

type Test struct {
	Slug         string     `yaml:"slug"`
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Category     string     `yaml:"category"`
	Difficulty   string     `yaml:"difficulty"`
	TimeLimit    int        `yaml:"timeLimit"`
	PassingScore float64    `yaml:"passingScore"`
	Questions    []Question `yaml:"questions"`
}

func (t *Test) ID() string        { return Prefix + t.Slug }
func (t *Test) AttemptID() string { return AttemptPrefix + t.Slug }

type catalogFile struct {
	Tests []Test `yaml:"tests"`
}

// Catalog holds the synthetic practice tests. It is read-only after loading.
type Catalog struct {
	tests  []*Test
	bySlug map[string]*Test
}

// Load reads the catalog from path, or from the embedded default when path is
// empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read practice catalog: %w", err)
		}
		data = b
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Info().Int("tests", len(c.tests)).Str("path", path).Msg("Practice catalog loaded")
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse practice catalog: %w", err)
	}

	c := &Catalog{bySlug: make(map[string]*Test, len(file.Tests))}
	for i := range file.Tests {
		t := &file.Tests[i]
		if err := validate(t); err != nil {
			return nil, err
		}
		if _, dup := c.bySlug[t.Slug]; dup {
			return nil, fmt.Errorf("practice catalog: duplicate slug %q", t.Slug)
		}
		sort.Slice(t.Questions, func(a, b int) bool { return t.Questions[a].Number < t.Questions[b].Number })
		c.bySlug[t.Slug] = t
		c.tests = append(c.tests, t)
	}
	return c, nil
}

func validate(t *Test) error {
	if t.Slug == "" {
		return fmt.Errorf("practice catalog: test %q has no slug", t.Title)
	}
	seen := make(map[int]bool, len(t.Questions))
	for _, q := range t.Questions {
		if seen[q.Number] {
			return fmt.Errorf("practice catalog: %s has duplicate question number %d", t.Slug, q.Number)
		}
		seen[q.Number] = true
		if !validLabel(q.CorrectAnswer) {
			return fmt.Errorf("practice catalog: %s question %d has invalid answer %q", t.Slug, q.Number, q.CorrectAnswer)
		}
	}
	return nil
}

func validLabel(label string) bool {
	for _, l := range model.AnswerLabels {
		if l == label {
			return true
		}
	}
	return false
}

func (c *Catalog) Get(slug string) (*Test, bool) {
	t, ok := c.bySlug[slug]
	return t, ok
}

func (c *Catalog) All() []*Test {
	return c.tests
}
