package inifile

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mkalle/plutodef/internal/defs"
)

func TestParseReferenceIni(t *testing.T) {
	f, err := ParseFile("testdata/pluto.ini")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	wantBlocks := []string{"Grid", "Time", "Solver", "Boundary", "Static Grid Output", "Parameters"}
	if len(f.Blocks) != len(wantBlocks) {
		t.Fatalf("expected %d blocks, got %d", len(wantBlocks), len(f.Blocks))
	}
	for i, name := range wantBlocks {
		if f.Blocks[i].Name != name {
			t.Errorf("block %d: expected %s, got %s", i, name, f.Blocks[i].Name)
		}
	}

	grid := f.Block("Grid")
	if grid == nil {
		t.Fatal("no Grid block")
	}
	if len(grid.Entries) != 3 {
		t.Errorf("expected 3 grid entries, got %d", len(grid.Entries))
	}
	want := Entry{Key: "X1-grid", Values: []string{"1", "0.4", "256", "u", "2.5"}}
	if !reflect.DeepEqual(grid.Entries[0], want) {
		t.Errorf("expected %v, got %v", want, grid.Entries[0])
	}
}

func TestParameters(t *testing.T) {
	f, err := ParseFile("testdata/pluto.ini")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	params, err := f.Parameters()
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}
	if len(params) != 4 {
		t.Errorf("expected 4 parameters, got %d", len(params))
	}
	if params["Mstar"] != 1.0 {
		t.Errorf("Mstar: expected 1.0, got %g", params["Mstar"])
	}
	if params["Viscosity"] != 1.e-5 {
		t.Errorf("Viscosity: expected 1e-5, got %g", params["Viscosity"])
	}
}

func TestParametersMissingBlock(t *testing.T) {
	f, err := Parse(strings.NewReader("[Grid]\nX1-grid 1 0 1 u 1\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := f.Parameters(); err == nil {
		t.Error("expected error without [Parameters] block")
	}
}

func TestParametersBadValue(t *testing.T) {
	f, err := Parse(strings.NewReader("[Parameters]\nMstar one\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = f.Parameters()
	if err == nil || !strings.Contains(err.Error(), "Mstar") {
		t.Errorf("expected error naming Mstar, got: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct{ name, src string }{
		{"entry outside block", "CFL 0.4\n"},
		{"unterminated heading", "[Grid\n"},
		{"empty block name", "[]\n"},
	} {
		if _, err := Parse(strings.NewReader(tc.src)); err == nil {
			t.Errorf("%s: expected parse error", tc.name)
		}
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	src := "# header comment\n[Parameters]\n\n# inline block comment\nMstar 1.0\n"
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	params, err := f.Parameters()
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}
	if params["Mstar"] != 1.0 {
		t.Errorf("expected Mstar 1.0, got %g", params["Mstar"])
	}
}

func TestCrossCheck(t *testing.T) {
	d := &defs.Definitions{
		UserDefParameters: 2,
		Params: []defs.Param{
			{Name: "Mstar", Index: 0},
			{Name: "Mdisk", Index: 1},
		},
	}

	if errs := CrossCheck(d, map[string]float64{"Mstar": 1, "Mdisk": 0.01}); len(errs) != 0 {
		t.Errorf("expected clean cross check, got %v", errs)
	}

	errs := CrossCheck(d, map[string]float64{"Mstar": 1, "Mplanet": 0.001})
	if len(errs) != 2 {
		t.Fatalf("expected 2 mismatches, got %d: %v", len(errs), errs)
	}
}

func TestCrossCheckOrderStable(t *testing.T) {
	d := &defs.Definitions{}
	params := map[string]float64{"Zeta": 1, "Alpha": 2, "Mu": 3}

	errs := CrossCheck(d, params)
	if len(errs) != 3 {
		t.Fatalf("expected 3 mismatches, got %d", len(errs))
	}
	want := []string{"Alpha", "Mu", "Zeta"}
	for i, name := range want {
		if !strings.HasPrefix(errs[i].Error(), name) {
			t.Errorf("error %d: expected %s first, got: %v", i, name, errs[i])
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	f, err := ParseFile("testdata/pluto.ini")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f2, err := Parse(&buf)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !reflect.DeepEqual(f, f2) {
		t.Error("round trip changed the file contents")
	}
}
