package definition

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
)

const catalogName = "definitions"

// Catalog holds validated definitions by name.
//
// Catalog is also a lifecycle component: Start loads every definition the
// loader can find, keeping the valid ones and logging the rest.
type Catalog struct {
	registry *Registry
	loader   *Loader
	log      *logger.Logger

	mu      sync.RWMutex
	defs    map[string]*Definition
	invalid map[string]string
}

// NewCatalog creates an empty catalog. loader may be nil when definitions
// are only added programmatically.
func NewCatalog(reg *Registry, loader *Loader) *Catalog {
	return &Catalog{
		registry: reg,
		loader:   loader,
		log:      logger.WithComponent("catalog"),
		defs:     make(map[string]*Definition),
		invalid:  make(map[string]string),
	}
}

// Add validates def and stores it. Names must be unique.
func (c *Catalog) Add(def *Definition) error {
	if err := Validate(def, c.registry); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Name]; exists {
		return errors.InvalidDefinition(def.Name, fmt.Sprintf("pipeline %q already defined", def.Name))
	}
	c.defs[def.Name] = def
	return nil
}

// Get returns the definition called name.
func (c *Catalog) Get(name string) (*Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	if !ok {
		return nil, errors.NotFound("pipeline", name)
	}
	return def, nil
}

// List returns all definitions sorted by name.
func (c *Catalog) List() []*Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.SortedFunc(maps.Values(c.defs), func(a, b *Definition) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Len returns the number of stored definitions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}

// Name returns the component name.
func (c *Catalog) Name() string { return catalogName }

// Start loads definitions from the loader's directories.
func (c *Catalog) Start(ctx context.Context) error {
	if c.loader == nil {
		return nil
	}
	defs, err := c.loader.LoadAll()
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}

	for _, def := range defs {
		if err := c.Add(def); err != nil {
			c.mu.Lock()
			c.invalid[def.Name] = err.Error()
			c.mu.Unlock()
			c.log.Warn("skipping invalid definition", logger.Fields(
				logger.FieldPipeline, def.Name,
				logger.FieldError, err.Error(),
			))
			continue
		}
		c.log.Debug("definition registered", logger.Fields(logger.FieldPipeline, def.Name))
	}

	c.log.Info("catalog loaded", logger.Fields(
		"valid", c.Len(),
		"invalid", len(c.invalid),
		"dirs", c.loader.Dirs(),
	))
	return nil
}

// Stop is a no-op; the catalog holds no external resources.
func (c *Catalog) Stop(ctx context.Context) error { return nil }

// Health reports degraded when any loaded definition was rejected.
func (c *Catalog) Health(ctx context.Context) observability.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := observability.Health{
		Name:    catalogName,
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"count": fmt.Sprint(len(c.defs))},
	}
	if len(c.invalid) > 0 {
		h.Status = observability.HealthStatusDegraded
		h.Message = fmt.Sprintf("%d invalid definitions skipped", len(c.invalid))
		for name, reason := range c.invalid {
			h.Details["invalid."+name] = reason
		}
	}
	return h
}
