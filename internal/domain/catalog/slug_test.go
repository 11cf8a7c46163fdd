package catalog

import "testing"

func TestSlugify(t *testing.T) {
	if got := Slugify("Paracetamol 500mg (Extra Strength!)"); got != "paracetamol-500mg-extra-strength" {
		t.Errorf("unexpected slug: %s", got)
	}
}

func TestSlugify_CollapsesSymbolRuns(t *testing.T) {
	if got := Slugify("Vitamin C -- 1000mg / Chewable"); got != "vitamin-c-1000mg-chewable" {
		t.Errorf("unexpected slug: %s", got)
	}
}

func TestSlugify_TrimsHyphens(t *testing.T) {
	if got := Slugify("  !!Aspirin!!  "); got != "aspirin" {
		t.Errorf("unexpected slug: %s", got)
	}
}

func TestSlugify_Empty(t *testing.T) {
	if got := Slugify(""); got != "" {
		t.Errorf("expected empty slug, got %s", got)
	}
	if got := Slugify("!!!"); got != "" {
		t.Errorf("expected empty slug for symbols only, got %s", got)
	}
}
