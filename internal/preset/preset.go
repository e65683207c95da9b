// Package preset carries named reference setups used as starting
// points for new problems and as known-good fixtures for the
// validation tooling.
package preset

import (
	"sort"

	"github.com/mkalle/plutodef/internal/defs"
)

var presets = map[string]func() *defs.Definitions{
	"disk_planet": DiskPlanet,
	"sod":         Sod,
	"orszag_tang": OrszagTang,
}

// Get returns a fresh copy of the named preset, or nil.
func Get(name string) *defs.Definitions {
	mk, ok := presets[name]
	if !ok {
		return nil
	}
	return mk()
}

// List returns the preset names, sorted.
func List() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DiskPlanet is the 3-D spherical disk-planet setup: locally
// isothermal HD in the frame corotating with the planet, four runtime
// parameters, units scaled to the planet's orbit (5.2 au around one
// solar mass, one time unit per orbit).
func DiskPlanet() *defs.Definitions {
	return &defs.Definitions{
		Physics:           defs.PhysicsHD,
		Dimensions:        3,
		Geometry:          defs.GeometrySpherical,
		BodyForce:         defs.BodyForcePotential,
		Cooling:           defs.CoolingNone,
		Reconstruction:    defs.ReconstructionLinear,
		TimeStepping:      defs.TimeSteppingRK2,
		NTracer:           0,
		Particles:         defs.ParticlesNone,
		UserDefParameters: 4,
		DustFluid:         defs.No,
		EOS:               defs.EOSIsothermal,
		EntropySwitch:     defs.EntropySwitchNone,
		ThermalConduction: defs.DiffusionNone,
		Viscosity:         defs.DiffusionNone,
		RotatingFrame:     defs.Yes,
		Params: []defs.Param{
			{Name: "Mstar", Index: 0},
			{Name: "Mdisk", Index: 1},
			{Name: "Mplanet", Index: 2},
			{Name: "Viscosity", Index: 3},
		},
		Limiter: defs.LimiterVanLeer,
		Units: defs.Units{
			Length:       7.779090384e13,
			Density:      4.24857748e-9,
			Velocity:     208457.85579,
			LengthExpr:   "(5.2*CONST_au)",
			DensityExpr:  "(CONST_Msun/(UNIT_LENGTH*UNIT_LENGTH*UNIT_LENGTH))",
			VelocityExpr: "(sqrt(CONST_G*g_inputParam[Mstar]*CONST_Msun/UNIT_LENGTH)/(2.*CONST_PI))",
		},
	}
}

// Sod is the classic 1-D shock tube, the smallest useful ideal-gas
// setup.
func Sod() *defs.Definitions {
	d := defs.Default()
	d.Limiter = defs.LimiterMC
	return d
}

// OrszagTang is the standard 2-D MHD vortex test.
func OrszagTang() *defs.Definitions {
	return &defs.Definitions{
		Physics:           defs.PhysicsMHD,
		Dimensions:        2,
		Geometry:          defs.GeometryCartesian,
		BodyForce:         defs.BodyForceNone,
		Cooling:           defs.CoolingNone,
		Reconstruction:    defs.ReconstructionLinear,
		TimeStepping:      defs.TimeSteppingRK3,
		Particles:         defs.ParticlesNone,
		DustFluid:         defs.No,
		EOS:               defs.EOSIdeal,
		EntropySwitch:     defs.EntropySwitchNone,
		ThermalConduction: defs.DiffusionNone,
		Viscosity:         defs.DiffusionNone,
		RotatingFrame:     defs.No,
		Limiter:           defs.LimiterVanLeer,
		Units:             defs.Units{Length: 1, Density: 1, Velocity: 1},
	}
}

// RuntimeSkeleton builds a matching pluto.ini [Parameters] block with
// placeholder values for a preset's labels.
func RuntimeSkeleton(d *defs.Definitions) map[string]float64 {
	params := make(map[string]float64, len(d.Params))
	for _, p := range d.Params {
		params[p.Name] = defaultParamValue(p.Name)
	}
	return params
}

func defaultParamValue(name string) float64 {
	switch name {
	case "Mstar":
		return 1.0
	case "Mdisk":
		return 0.01
	case "Mplanet":
		return 0.001
	case "Viscosity":
		return 1.e-5
	default:
		return 0
	}
}
