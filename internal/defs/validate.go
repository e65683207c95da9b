package defs

import (
	"errors"
	"fmt"
	"math"
)

// Validate checks every hard rule a setup must satisfy before the
// solver can be trusted with it. All failures are collected so a
// broken header reports everything at once; each message names the
// offending symbol. Silent fallback defaults are never applied.
func (d *Definitions) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(validPhysics[d.Physics], "PHYSICS: unknown value %q", string(d.Physics))
	check(validGeometry[d.Geometry], "GEOMETRY: unknown value %q", string(d.Geometry))
	check(validBodyForce[d.BodyForce], "BODY_FORCE: unknown value %q", string(d.BodyForce))
	check(validCooling[d.Cooling], "COOLING: unknown value %q", string(d.Cooling))
	check(validReconstruction[d.Reconstruction],
		"RECONSTRUCTION: unknown value %q", string(d.Reconstruction))
	check(validTimeStepping[d.TimeStepping],
		"TIME_STEPPING: unknown value %q", string(d.TimeStepping))
	check(validEOS[d.EOS], "EOS: unknown value %q", string(d.EOS))
	check(validEntropySwitch[d.EntropySwitch],
		"ENTROPY_SWITCH: unknown value %q", string(d.EntropySwitch))
	check(validDiffusion[d.ThermalConduction],
		"THERMAL_CONDUCTION: unknown value %q", string(d.ThermalConduction))
	check(validDiffusion[d.Viscosity], "VISCOSITY: unknown value %q", string(d.Viscosity))
	check(validParticles[d.Particles], "PARTICLES: unknown value %q", string(d.Particles))
	check(validToggle[d.DustFluid], "DUST_FLUID: unknown value %q", string(d.DustFluid))
	check(validToggle[d.RotatingFrame],
		"ROTATING_FRAME: unknown value %q", string(d.RotatingFrame))
	if d.Limiter != "" {
		check(validLimiter[d.Limiter], "LIMITER: unknown value %q", string(d.Limiter))
	}

	check(d.Dimensions >= 1 && d.Dimensions <= 3,
		"DIMENSIONS: must be 1, 2 or 3, got %d", d.Dimensions)
	check(d.NTracer >= 0, "NTRACER: must be non-negative, got %d", d.NTracer)
	check(d.UserDefParameters >= 0,
		"USER_DEF_PARAMETERS: must be non-negative, got %d", d.UserDefParameters)

	errs = append(errs, d.checkParams()...)
	errs = append(errs, d.checkUnits()...)
	errs = append(errs, d.checkCompat()...)

	return errors.Join(errs...)
}

// checkParams verifies that the user parameter labels form a
// contiguous zero-based bijection matching USER_DEF_PARAMETERS.
func (d *Definitions) checkParams() []error {
	var errs []error

	if len(d.Params) != d.UserDefParameters {
		errs = append(errs, fmt.Errorf(
			"USER_DEF_PARAMETERS: declared %d but %d labels defined",
			d.UserDefParameters, len(d.Params)))
	}

	seenName := make(map[string]bool, len(d.Params))
	seenIndex := make(map[int]string, len(d.Params))
	for _, p := range d.Params {
		if seenName[p.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate parameter label", p.Name))
			continue
		}
		seenName[p.Name] = true

		if p.Index < 0 || p.Index >= d.UserDefParameters {
			errs = append(errs, fmt.Errorf(
				"%s: index %d out of range [0, %d)",
				p.Name, p.Index, d.UserDefParameters))
			continue
		}
		if prev, dup := seenIndex[p.Index]; dup {
			errs = append(errs, fmt.Errorf(
				"%s: index %d already taken by %s", p.Name, p.Index, prev))
			continue
		}
		seenIndex[p.Index] = p.Name
	}

	return errs
}

func (d *Definitions) checkUnits() []error {
	var errs []error
	for _, u := range []struct {
		name  string
		value float64
	}{
		{"UNIT_LENGTH", d.Units.Length},
		{"UNIT_DENSITY", d.Units.Density},
		{"UNIT_VELOCITY", d.Units.Velocity},
	} {
		if !(u.value > 0) || math.IsInf(u.value, 0) {
			errs = append(errs, fmt.Errorf(
				"%s: must be positive and finite, got %g", u.name, u.value))
		}
	}
	return errs
}

// checkCompat enforces cross-flag rules the solver itself never
// checks at compile time.
func (d *Definitions) checkCompat() []error {
	var errs []error

	if d.RotatingFrame == Yes &&
		d.BodyForce != BodyForcePotential && d.BodyForce != BodyForceVectorPotential {
		errs = append(errs, fmt.Errorf(
			"ROTATING_FRAME: requires BODY_FORCE POTENTIAL, got %q", string(d.BodyForce)))
	}

	// Entropy switch and thermal conduction both need an energy
	// equation to act on.
	if d.EOS == EOSIsothermal || d.EOS == EOSBarotropic {
		if d.EntropySwitch != EntropySwitchNone {
			errs = append(errs, fmt.Errorf(
				"ENTROPY_SWITCH: not available with EOS %s", string(d.EOS)))
		}
		if d.ThermalConduction != DiffusionNone {
			errs = append(errs, fmt.Errorf(
				"THERMAL_CONDUCTION: not available with EOS %s", string(d.EOS)))
		}
	}

	if d.DustFluid == Yes && d.Physics != PhysicsHD && d.Physics != PhysicsMHD {
		errs = append(errs, fmt.Errorf(
			"DUST_FLUID: requires PHYSICS HD or MHD, got %q", string(d.Physics)))
	}

	return errs
}

// Lint reports conditions the solver tolerates but that usually mean
// the header says something other than what its author intended.
func (d *Definitions) Lint() []string {
	var warns []string

	if d.Limiter != "" && d.Reconstruction != ReconstructionLinear {
		warns = append(warns, fmt.Sprintf(
			"LIMITER is set but RECONSTRUCTION is %s; the limiter is ignored",
			string(d.Reconstruction)))
	}
	if d.RotatingFrame == Yes && d.Geometry == GeometryCartesian {
		warns = append(warns,
			"ROTATING_FRAME with CARTESIAN geometry is unusual for disk setups")
	}
	if _, ok := d.ParamIndex("Viscosity"); ok && d.Viscosity != DiffusionNone {
		warns = append(warns,
			"both the VISCOSITY module and a Viscosity user parameter are active")
	}

	return warns
}
