package header

import (
	"fmt"

	"github.com/mkalle/plutodef/internal/defs"
)

// builder accumulates a Definitions while a header is being read.
type builder struct {
	d *defs.Definitions
}

// assign routes one active #define into the Definitions. Names that
// are not part of the fixed surface fall back on the current section:
// integer defines in the labels section are parameter slots, anything
// inside the user-constants fence is kept verbatim.
func (b *builder) assign(name, value string, sec section) error {
	d := b.d
	var err error

	switch name {
	case "PHYSICS":
		d.Physics, err = defs.ParsePhysics(value)
	case "DIMENSIONS":
		d.Dimensions, err = parseIntValue(name, value)
	case "GEOMETRY":
		d.Geometry, err = defs.ParseGeometry(value)
	case "BODY_FORCE":
		d.BodyForce, err = defs.ParseBodyForce(value)
	case "COOLING":
		d.Cooling, err = defs.ParseCooling(value)
	case "RECONSTRUCTION":
		d.Reconstruction, err = defs.ParseReconstruction(value)
	case "TIME_STEPPING":
		d.TimeStepping, err = defs.ParseTimeStepping(value)
	case "NTRACER":
		d.NTracer, err = parseIntValue(name, value)
	case "PARTICLES":
		d.Particles, err = defs.ParseParticles(value)
	case "USER_DEF_PARAMETERS":
		d.UserDefParameters, err = parseIntValue(name, value)
	case "DUST_FLUID":
		d.DustFluid, err = defs.ParseToggle(name, value)
	case "EOS":
		d.EOS, err = defs.ParseEOS(value)
	case "ENTROPY_SWITCH":
		d.EntropySwitch, err = defs.ParseEntropySwitch(value)
	case "THERMAL_CONDUCTION":
		d.ThermalConduction, err = defs.ParseDiffusionMode(name, value)
	case "VISCOSITY":
		d.Viscosity, err = defs.ParseDiffusionMode(name, value)
	case "ROTATING_FRAME":
		d.RotatingFrame, err = defs.ParseToggle(name, value)
	case "LIMITER":
		d.Limiter, err = defs.ParseLimiter(value)
	case "UNIT_LENGTH":
		d.Units.Length, err = b.assignUnit(name, value)
	case "UNIT_DENSITY":
		d.Units.Density, err = b.assignUnit(name, value)
	case "UNIT_VELOCITY":
		d.Units.Velocity, err = b.assignUnit(name, value)
	default:
		switch sec {
		case sectionParams:
			idx, perr := parseIntValue(name, value)
			if perr != nil {
				return fmt.Errorf("%s: parameter label needs an integer slot, got %q", name, value)
			}
			d.Params = append(d.Params, defs.Param{Name: name, Index: idx})
		case sectionConstants:
			d.Constants = append(d.Constants, defs.UserConstant{Name: name, Value: value})
		default:
			return fmt.Errorf("%s: unknown symbol outside a recognized section", name)
		}
	}

	return err
}

func (b *builder) assignUnit(name, value string) (float64, error) {
	v, expr, err := parseUnitValue(name, value, b.unitsSoFar())
	if err != nil {
		return 0, err
	}
	if expr != "" {
		// the active define was itself a formula; keep it as the
		// recorded derivation so nothing is lost on write
		b.recordShadow(name, expr)
	}
	return v, nil
}

func (b *builder) unitsSoFar() map[string]float64 {
	m := make(map[string]float64, 3)
	if b.d.Units.Length != 0 {
		m["UNIT_LENGTH"] = b.d.Units.Length
	}
	if b.d.Units.Density != 0 {
		m["UNIT_DENSITY"] = b.d.Units.Density
	}
	if b.d.Units.Velocity != 0 {
		m["UNIT_VELOCITY"] = b.d.Units.Velocity
	}
	return m
}

// recordShadow keeps the derivation formula found in a commented-out
// define next to its unit. Shadows of other symbols are dropped.
func (b *builder) recordShadow(name, expr string) {
	switch name {
	case "UNIT_LENGTH":
		b.d.Units.LengthExpr = expr
	case "UNIT_DENSITY":
		b.d.Units.DensityExpr = expr
	case "UNIT_VELOCITY":
		b.d.Units.VelocityExpr = expr
	}
}
