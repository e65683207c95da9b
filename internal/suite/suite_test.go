package suite

import (
	"strings"
	"testing"

	"github.com/mkalle/plutodef/internal/header"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("testdata/suite.cfg")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Setup) != 2 {
		t.Fatalf("expected 2 setups, got %d", len(cfg.Setup))
	}

	s := cfg.Setup["disk_planet"]
	if s == nil {
		t.Fatal("disk_planet setup missing")
	}
	if s.Ini != "pluto.ini" {
		t.Errorf("expected default ini name, got %q", s.Ini)
	}
	if s.UnitTolerance != header.DefaultTolerance {
		t.Errorf("expected default tolerance, got %g", s.UnitTolerance)
	}
}

func TestLoadMissingDir(t *testing.T) {
	cfg := &Config{Setup: map[string]*SetupConfig{"x": {}}}
	if err := cfg.Setup["x"].CheckInit("x"); err == nil {
		t.Error("expected error for setup without dir")
	}
}

func TestCheckInitNegativeTolerance(t *testing.T) {
	s := &SetupConfig{Dir: "somewhere", UnitTolerance: -1}
	if err := s.CheckInit("x"); err == nil {
		t.Error("expected error for negative tolerance")
	}
}

func TestRun(t *testing.T) {
	cfg, err := Load("testdata/suite.cfg")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	results := Run(cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// sorted by name: broken first
	broken, good := results[0], results[1]

	if broken.Name != "broken" || good.Name != "disk_planet" {
		t.Fatalf("unexpected result order: %s, %s", results[0].Name, results[1].Name)
	}

	if !good.OK() {
		t.Errorf("disk_planet should pass, got errors: %v", good.Errors)
	}

	if broken.OK() {
		t.Fatal("broken setup should fail")
	}
	found := false
	for _, e := range broken.Errors {
		if strings.Contains(e.Error(), "Viscosity") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Viscosity index error, got: %v", broken.Errors)
	}
}

func TestRunMissingIniIsWarning(t *testing.T) {
	cfg := &Config{Setup: map[string]*SetupConfig{
		"broken": {Dir: "testdata/broken"},
	}}
	for name, s := range cfg.Setup {
		if err := s.CheckInit(name); err != nil {
			t.Fatal(err)
		}
	}

	res := Run(cfg)[0]
	foundWarn := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "unverified") {
			foundWarn = true
		}
	}
	if !foundWarn {
		t.Errorf("expected warning about missing runtime file, got: %v", res.Warnings)
	}
}
