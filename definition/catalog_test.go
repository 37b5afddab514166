package definition

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/observability"
)

func TestCatalog_AddGetList(t *testing.T) {
	c := NewCatalog(DefaultRegistry(), nil)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := c.Add(valuesDef(name)); err != nil {
			t.Fatalf("Add(%q) error: %v", name, err)
		}
	}

	def, err := c.Get("mid")
	if err != nil || def.Name != "mid" {
		t.Fatalf("Get(mid) = %v, %v", def, err)
	}

	list := c.List()
	if len(list) != 3 || list[0].Name != "alpha" || list[2].Name != "zeta" {
		t.Errorf("List() not sorted by name: %v", list)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestCatalog_AddRejects(t *testing.T) {
	c := NewCatalog(DefaultRegistry(), nil)
	if err := c.Add(valuesDef("dup")); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(valuesDef("dup")); !errors.HasCode(err, errors.ErrCodeInvalidDefinition) {
		t.Errorf("duplicate: expected INVALID_DEFINITION, got %v", err)
	}
	if err := c.Add(valuesDef("bad", Step{Op: OpMap, Func: "cube"})); !errors.HasCode(err, errors.ErrCodeUnknownFunction) {
		t.Errorf("invalid: expected UNKNOWN_FUNCTION, got %v", err)
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	_, err := NewCatalog(DefaultRegistry(), nil).Get("ghost")
	if !errors.IsNotFound(err) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCatalog_StartLoadsDefinitions(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "pipelines"), filepath.Join("testdata", "invalid"))
	c := NewCatalog(DefaultRegistry(), loader)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer c.Stop(context.Background())

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3 valid definitions", c.Len())
	}
	for _, name := range []string{"unbounded", "unknown-func"} {
		if _, err := c.Get(name); err == nil {
			t.Errorf("invalid definition %q should be skipped", name)
		}
	}

	h := c.Health(context.Background())
	if h.Name != "definitions" || h.Status != observability.HealthStatusDegraded {
		t.Errorf("health = %+v, want degraded", h)
	}
	if h.Details["count"] != "3" {
		t.Errorf("count detail = %q", h.Details["count"])
	}
	if _, ok := h.Details["invalid.unbounded"]; !ok {
		t.Errorf("details should list skipped definitions: %v", h.Details)
	}
}

func TestCatalog_StartBrokenFile(t *testing.T) {
	c := NewCatalog(DefaultRegistry(), NewLoader(filepath.Join("testdata", "broken")))
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("expected Start to fail on a malformed file")
	}
}

func TestCatalog_HealthyWhenAllValid(t *testing.T) {
	c := NewCatalog(DefaultRegistry(), NewLoader(filepath.Join("testdata", "pipelines")))
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h := c.Health(context.Background()); h.Status != observability.HealthStatusUp {
		t.Errorf("status = %s, want up", h.Status)
	}
	if c.Name() != "definitions" {
		t.Errorf("Name() = %q", c.Name())
	}
}
