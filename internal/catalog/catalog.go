// Package catalog loads the built-in FAQ content and category configuration.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

//go:embed faq.yaml
var builtin []byte

// idNamespace seeds UUIDv5 ids for entries that do not carry one.
var idNamespace = uuid.MustParse("5b0c7a3e-2f41-4a8e-9a5e-6b1f0c6d2e11")

// Entry is one catalog item before it is stamped and stored.
type Entry struct {
	ID       string `yaml:"id"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Category string `yaml:"category"`
}

type categoryEntry struct {
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

type document struct {
	Categories []categoryEntry `yaml:"categories"`
	Items      []Entry         `yaml:"items"`
}

// Catalog is the static FAQ content. Categories keep file order.
type Catalog struct {
	categories []faq.Category
	entries    []Entry
}

// Categories returns the configured category descriptors in file order.
func (c *Catalog) Categories() []faq.Category {
	out := make([]faq.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Entries returns the catalog items in file order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// HasCategory reports whether name is a configured category.
func (c *Catalog) HasCategory(name string) bool {
	for _, cat := range c.categories {
		if cat.Name() == name {
			return true
		}
	}
	return false
}

// Load reads the catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(builtin)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		categories: make([]faq.Category, 0, len(doc.Categories)),
		entries:    make([]Entry, 0, len(doc.Items)),
	}

	names := make(map[string]struct{}, len(doc.Categories))
	for i, ce := range doc.Categories {
		cat, err := faq.NewCategory(ce.Name, ce.Icon, ce.Description)
		if err != nil {
			return nil, fmt.Errorf("categories[%d]: %w", i, err)
		}
		if _, dup := names[cat.Name()]; dup {
			return nil, fmt.Errorf("categories[%d]: duplicate name %q", i, cat.Name())
		}
		names[cat.Name()] = struct{}{}
		c.categories = append(c.categories, cat)
	}

	ids := make(map[string]struct{}, len(doc.Items))
	for i, e := range doc.Items {
		e.Question = strings.TrimSpace(e.Question)
		e.Category = strings.TrimSpace(e.Category)
		if e.Question == "" || strings.TrimSpace(e.Answer) == "" || e.Category == "" {
			return nil, fmt.Errorf("items[%d]: question, answer and category are required", i)
		}
		if e.ID == "" {
			e.ID = uuid.NewSHA1(idNamespace, []byte(e.Question)).String()
		}
		if _, dup := ids[e.ID]; dup {
			return nil, fmt.Errorf("items[%d]: duplicate id %q", i, e.ID)
		}
		ids[e.ID] = struct{}{}
		c.entries = append(c.entries, e)
	}

	return c, nil
}
