// Package seed loads menu trees from nested YAML and writes them through the
// menu service, so seeded depths follow the same rules as live edits.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"menutree/internal/domain"
	appErrors "menutree/internal/errors"
	"menutree/internal/graph"
	"menutree/internal/menus"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed system.yaml
var systemYAML []byte

//go:embed demo.yaml
var demoYAML []byte

// File is the top-level YAML structure of a seed file.
type File struct {
	Menus []Menu `yaml:"menus"`
}

// Menu is one menu with its root items.
type Menu struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Items       []Item `yaml:"items,omitempty"`
}

// Item is an item with its children. Depth and parent are implied by nesting.
type Item struct {
	Name     string `yaml:"name"`
	Children []Item `yaml:"children,omitempty"`
}

// Count returns the number of items in the file.
func (f File) Count() int {
	n := 0
	var walk func([]Item)
	walk = func(items []Item) {
		for _, it := range items {
			n++
			walk(it.Children)
		}
	}
	for _, m := range f.Menus {
		walk(m.Items)
	}
	return n
}

// Merge appends the menus of other after those of f.
func (f File) Merge(other File) File {
	out := File{Menus: make([]Menu, 0, len(f.Menus)+len(other.Menus))}
	out.Menus = append(out.Menus, f.Menus...)
	out.Menus = append(out.Menus, other.Menus...)
	return out
}

// System returns the built-in "System Management" seed.
func System() File {
	f, err := Parse(systemYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded system seed: %v", err))
	}
	return f
}

// Demo returns the built-in test menus, one of them empty.
func Demo() File {
	f, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo seed: %v", err))
	}
	return f
}

// Load reads and parses a seed file.
func Load(path string) (File, error) {
	//nolint:gosec // G304: seed path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, appErrors.New(appErrors.CodeSeedInvalid, fmt.Sprintf("read seed %s: %v", path, err), err)
	}
	return Parse(data)
}

// Parse decodes seed YAML, rejecting unknown fields and blank or overlong
// names.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, appErrors.New(appErrors.CodeSeedInvalid, fmt.Sprintf("parse seed: %v", err), err)
	}
	if err := f.validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) validate() error {
	if len(f.Menus) == 0 {
		return invalid("no menus defined")
	}
	for i, m := range f.Menus {
		if _, err := domain.NormalizeName(m.Name); err != nil {
			return invalid(fmt.Sprintf("menus[%d]: %s", i, appErrors.MessageOf(err)))
		}
		if err := validateItems(fmt.Sprintf("menus[%d] %q", i, m.Name), m.Items); err != nil {
			return err
		}
	}
	return nil
}

func validateItems(at string, items []Item) error {
	for i, it := range items {
		path := fmt.Sprintf("%s > [%d]", at, i)
		if _, err := domain.NormalizeName(it.Name); err != nil {
			return invalid(fmt.Sprintf("%s: %s", path, appErrors.MessageOf(err)))
		}
		if err := validateItems(fmt.Sprintf("%s %q", path, it.Name), it.Children); err != nil {
			return err
		}
	}
	return nil
}

func invalid(msg string) error {
	return appErrors.New(appErrors.CodeSeedInvalid, msg, nil)
}

// Target is the subset of the menu service a seed is applied through.
type Target interface {
	Reset(ctx context.Context) error
	CreateMenu(ctx context.Context, in menus.MenuInput) (domain.Menu, error)
	CreateItem(ctx context.Context, in menus.CreateItemInput) (domain.MenuItem, error)
	Verify(ctx context.Context) ([]graph.Problem, error)
	AllItems(ctx context.Context) ([]domain.MenuItem, error)
}

// Options controls Apply.
type Options struct {
	// Reset deletes every existing menu and item first.
	Reset  bool
	Logger *zap.Logger
}

// MenuSummary reports what was created for one menu.
type MenuSummary struct {
	Menu  domain.Menu
	Items int
}

// Summary reports the outcome of Apply, including the post-seed integrity
// check over the whole store.
type Summary struct {
	Menus       []MenuSummary
	Items       int
	Problems    []graph.Problem
	DepthCounts map[int]int
}

// Apply creates every menu and item in f through t, parents before
// children, then verifies the store.
func Apply(ctx context.Context, t Target, f File, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Reset {
		if err := t.Reset(ctx); err != nil {
			return Summary{}, err
		}
		logger.Info("cleared existing menus")
	}

	var sum Summary
	for _, def := range f.Menus {
		m, err := t.CreateMenu(ctx, menus.MenuInput{Name: def.Name, Description: def.Description})
		if err != nil {
			return sum, fmt.Errorf("create menu %q: %w", def.Name, err)
		}
		n, err := createItems(ctx, t, m.ID, "", def.Items)
		if err != nil {
			return sum, fmt.Errorf("seed menu %q: %w", def.Name, err)
		}
		logger.Info("seeded menu", zap.String("menu", m.Name), zap.String("id", m.ID), zap.Int("items", n))
		sum.Menus = append(sum.Menus, MenuSummary{Menu: m, Items: n})
		sum.Items += n
	}

	problems, err := t.Verify(ctx)
	if err != nil {
		return sum, err
	}
	sum.Problems = problems
	all, err := t.AllItems(ctx)
	if err != nil {
		return sum, err
	}
	sum.DepthCounts = graph.DepthCounts(all)
	return sum, nil
}

func createItems(ctx context.Context, t Target, menuID, parentID string, items []Item) (int, error) {
	n := 0
	for _, def := range items {
		it, err := t.CreateItem(ctx, menus.CreateItemInput{Name: def.Name, MenuID: menuID, ParentID: parentID})
		if err != nil {
			return n, fmt.Errorf("create item %q: %w", strings.TrimSpace(def.Name), err)
		}
		n++
		c, err := createItems(ctx, t, menuID, it.ID, def.Children)
		n += c
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
