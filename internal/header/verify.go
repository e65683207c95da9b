package header

import (
	"fmt"

	"github.com/mkalle/plutodef/internal/defs"
	"github.com/mkalle/plutodef/internal/units"
)

// DefaultTolerance is the relative disagreement allowed between a
// hardcoded unit scale and its recorded derivation. Headers keep the
// numeric result of a formula evaluated by hand, so the last printed
// digit is the realistic precision.
const DefaultTolerance = 1e-4

// VerifyUnits recomputes every unit scale that carries a recorded
// derivation formula and reports scales whose hardcoded value
// disagrees beyond tol. params supplies g_inputParam values, usually
// from the companion runtime file; formulas that need a parameter
// which is absent are reported as unverifiable.
func VerifyUnits(d *defs.Definitions, params map[string]float64, tol float64) []error {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	env := Env{
		Units: map[string]float64{
			"UNIT_LENGTH":   d.Units.Length,
			"UNIT_DENSITY":  d.Units.Density,
			"UNIT_VELOCITY": d.Units.Velocity,
		},
		Params: params,
	}

	var errs []error
	for _, u := range []struct {
		name  string
		value float64
		expr  string
	}{
		{"UNIT_LENGTH", d.Units.Length, d.Units.LengthExpr},
		{"UNIT_DENSITY", d.Units.Density, d.Units.DensityExpr},
		{"UNIT_VELOCITY", d.Units.Velocity, d.Units.VelocityExpr},
	} {
		if u.expr == "" {
			continue
		}
		want, err := Eval(u.expr, env)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: cannot verify: %w", u.name, err))
			continue
		}
		if rel := units.RelErr(u.value, want); rel > tol {
			errs = append(errs, fmt.Errorf(
				"%s: hardcoded %g disagrees with derivation %s = %g (relative error %.2e)",
				u.name, u.value, u.expr, want, rel))
		}
	}
	return errs
}
