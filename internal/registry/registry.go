package registry

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/doclens/doclens/internal/model"
)

// Registry holds the session's category set in matcher priority order:
// custom categories first in insertion order, then the built-in cascade.
// The order is load-bearing since classification is first-match, not
// best-match.
//
// Categories are treated as immutable once stored; updates swap the whole
// record. That keeps readers race-free without per-category locking.
type Registry struct {
	mu      sync.RWMutex
	custom  []*model.Category
	builtin []*model.Category
}

// New builds a registry seeded with the built-in categories.
func New() *Registry {
	return &Registry{builtin: BuiltinCategories()}
}

// Ordered returns the matcher priority list as a snapshot slice. The
// categories themselves are shared and must not be mutated by callers.
func (r *Registry) Ordered() []*model.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Category, 0, len(r.custom)+len(r.builtin))
	out = append(out, r.custom...)
	out = append(out, r.builtin...)
	return out
}

// Get looks a category up by ID.
func (r *Registry) Get(id string) (*model.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c := r.find(id); c != nil {
		return c, true
	}
	return nil, false
}

// find must be called with the lock held.
func (r *Registry) find(id string) *model.Category {
	for _, c := range r.custom {
		if c.ID == id {
			return c
		}
	}
	for _, c := range r.builtin {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Add validates and appends a custom category. Missing IDs and creation
// timestamps are filled in; the custom flag is forced since callers cannot
// introduce new built-ins.
func (r *Registry) Add(c *model.Category) error {
	if err := c.Validate(); err != nil {
		return eris.Wrap(err, "registry: add category")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.IsCustom = true

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(c.ID) != nil {
		return eris.Errorf("registry: category %q already exists", c.ID)
	}
	r.custom = append(r.custom, c)
	zap.L().Info("category added", zap.String("id", c.ID), zap.String("name", c.Name))
	return nil
}

// Update replaces a stored category with the given record, matched by ID.
// Built-in categories may be updated (keywords, threshold) but keep their
// built-in status.
func (r *Registry) Update(c *model.Category) error {
	if err := c.Validate(); err != nil {
		return eris.Wrap(err, "registry: update category")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.custom {
		if existing.ID == c.ID {
			c.IsCustom = true
			r.custom[i] = c
			return nil
		}
	}
	for i, existing := range r.builtin {
		if existing.ID == c.ID {
			c.IsCustom = false
			r.builtin[i] = c
			return nil
		}
	}
	return eris.Errorf("registry: category %q not found", c.ID)
}

// Delete removes a custom category. Built-in categories cannot be deleted.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.builtin {
		if c.ID == id {
			return eris.Errorf("registry: category %q is built-in and cannot be deleted", c.Name)
		}
	}
	for i, c := range r.custom {
		if c.ID == id {
			r.custom = append(r.custom[:i], r.custom[i+1:]...)
			zap.L().Info("category deleted", zap.String("id", id), zap.String("name", c.Name))
			return nil
		}
	}
	return eris.Errorf("registry: category %q not found", id)
}

// Names returns category display names. Without the premium flag only the
// built-in names are listed; premium also exposes user-defined categories.
func (r *Registry) Names(premium bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	if premium {
		for _, c := range r.custom {
			names = append(names, c.Name)
		}
	}
	for _, c := range r.builtin {
		names = append(names, c.Name)
	}
	return names
}

// categoryFile is the on-disk YAML layout for user-defined categories.
type categoryFile struct {
	Categories []*model.Category `yaml:"categories"`
}

// LoadFile reads user-defined categories from a YAML file and appends them
// as custom categories in file order.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "registry: read categories %s", path)
	}
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return eris.Wrap(err, "registry: parse categories")
	}
	for _, c := range file.Categories {
		if err := r.Add(c); err != nil {
			return err
		}
	}
	zap.L().Info("categories loaded", zap.String("path", path), zap.Int("count", len(file.Categories)))
	return nil
}

// SaveFile writes the current custom categories to a YAML file. Built-ins
// are not written since they are recreated at every session start.
func (r *Registry) SaveFile(path string) error {
	r.mu.RLock()
	file := categoryFile{Categories: append([]*model.Category(nil), r.custom...)}
	r.mu.RUnlock()

	data, err := yaml.Marshal(&file)
	if err != nil {
		return eris.Wrap(err, "registry: marshal categories")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "registry: write categories %s", path)
	}
	return nil
}
