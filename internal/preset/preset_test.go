package preset

import (
	"testing"

	"github.com/mkalle/plutodef/internal/defs"
	"github.com/mkalle/plutodef/internal/header"
)

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range List() {
		d := Get(name)
		if d == nil {
			t.Fatalf("%s: listed but not gettable", name)
		}
		if err := d.Validate(); err != nil {
			t.Errorf("%s: should validate, got: %v", name, err)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if Get("warp_drive") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestGetReturnsFreshCopy(t *testing.T) {
	a := Get("disk_planet")
	a.Dimensions = 99
	b := Get("disk_planet")
	if b.Dimensions == 99 {
		t.Error("presets must not share state between calls")
	}
}

func TestDiskPlanetDerivationsConsistent(t *testing.T) {
	d := DiskPlanet()
	errs := header.VerifyUnits(d, RuntimeSkeleton(d), header.DefaultTolerance)
	if len(errs) != 0 {
		t.Errorf("disk planet unit derivations should agree: %v", errs)
	}
}

func TestRuntimeSkeletonCoversLabels(t *testing.T) {
	d := DiskPlanet()
	params := RuntimeSkeleton(d)
	for _, p := range d.Params {
		if _, ok := params[p.Name]; !ok {
			t.Errorf("%s: no placeholder value", p.Name)
		}
	}
	if params["Mstar"] != 1.0 {
		t.Errorf("Mstar placeholder should be 1.0, got %g", params["Mstar"])
	}
}

func TestSodIsMinimal(t *testing.T) {
	d := Sod()
	if d.Dimensions != 1 || d.Physics != defs.PhysicsHD {
		t.Error("sod should be 1-D HD")
	}
	if d.UserDefParameters != 0 || len(d.Params) != 0 {
		t.Error("sod takes no user parameters")
	}
}
