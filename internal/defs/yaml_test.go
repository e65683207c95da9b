package defs

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestYAMLRoundTrip(t *testing.T) {
	d := diskPlanet()
	d.Units.LengthExpr = "(5.2*CONST_au)"

	path := filepath.Join(t.TempDir(), "setup.yaml")
	if err := SaveYAML(path, d); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	d2, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(d, d2) {
		t.Error("yaml round trip changed the definitions")
	}
}

func TestLoadYAMLMissingFile(t *testing.T) {
	if _, err := LoadYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
