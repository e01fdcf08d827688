package catalog

import (
	"testing"

	"github.com/mtran/wellness-backend/internal/model"
)

func TestTemplatesGroupedByPillar(t *testing.T) {
	grouped := Templates()

	for _, p := range model.Pillars {
		if len(grouped[p]) == 0 {
			t.Errorf("Templates() has no entries for pillar %q", p)
		}
	}

	// Multi-pillar templates appear under each of their pillars.
	found := 0
	for _, p := range []model.Pillar{model.PillarHealth, model.PillarGrowth} {
		for _, tpl := range grouped[p] {
			if tpl.Name == "Yoga" {
				found++
			}
		}
	}
	if found != 2 {
		t.Errorf("Yoga appeared under %d pillars, want 2", found)
	}
}

func TestTemplatesByPillar(t *testing.T) {
	health, err := TemplatesByPillar("health")
	if err != nil {
		t.Fatalf("TemplatesByPillar(health) error: %v", err)
	}
	if len(health) == 0 {
		t.Fatal("TemplatesByPillar(health) returned no templates")
	}

	if _, err := TemplatesByPillar("finance"); err == nil {
		t.Error("TemplatesByPillar(finance) expected error")
	}
}

func TestTemplateByName(t *testing.T) {
	tpl, err := TemplateByName("deep work sessions")
	if err != nil {
		t.Fatalf("TemplateByName() error: %v", err)
	}
	if tpl.Name != "Deep Work Sessions" {
		t.Errorf("TemplateByName() = %q, want %q", tpl.Name, "Deep Work Sessions")
	}

	if _, err := TemplateByName("Underwater Basket Weaving"); err == nil {
		t.Error("TemplateByName() for unknown name expected error")
	}
}

func TestUnitsForDimension(t *testing.T) {
	units, err := UnitsForDimension("distance")
	if err != nil {
		t.Fatalf("UnitsForDimension(distance) error: %v", err)
	}
	want := map[string]bool{"steps": true, "km": true, "miles": true, "meters": true}
	if len(units) != len(want) {
		t.Fatalf("UnitsForDimension(distance) = %v", units)
	}
	for _, u := range units {
		if !want[u] {
			t.Errorf("unexpected unit %q for distance", u)
		}
	}

	if _, err := UnitsForDimension("velocity"); err == nil {
		t.Error("UnitsForDimension(velocity) expected error")
	}
}

func TestAllDimensionOptions(t *testing.T) {
	options := AllDimensionOptions()
	if len(options) != len(model.Dimensions) {
		t.Fatalf("AllDimensionOptions() returned %d entries, want %d", len(options), len(model.Dimensions))
	}
	for i, opt := range options {
		if opt.Dimension != model.Dimensions[i] {
			t.Errorf("option %d = %q, want %q", i, opt.Dimension, model.Dimensions[i])
		}
		if len(opt.Units) == 0 {
			t.Errorf("dimension %q has no units", opt.Dimension)
		}
	}
}
