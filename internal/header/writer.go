package header

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/mkalle/plutodef/internal/defs"
)

// Write emits the canonical header layout: base flags, physics
// dependent declarations, parameter labels in slot order, then the
// fenced user-constants block. Writing and re-parsing preserves every
// value; parameter labels come back in slot order, since that is how
// they are written, regardless of how the input ordered them.
func Write(w io.Writer, d *defs.Definitions) error {
	def := func(name, value string) {
		fmt.Fprintf(w, "#define  %-31s%s\n", name, value)
	}
	shadow := func(name, expr string) {
		if expr != "" {
			fmt.Fprintf(w, "// #define  %-31s%s\n", name, expr)
		}
	}

	def("PHYSICS", string(d.Physics))
	def("DIMENSIONS", strconv.Itoa(d.Dimensions))
	def("GEOMETRY", string(d.Geometry))
	def("BODY_FORCE", string(d.BodyForce))
	def("COOLING", string(d.Cooling))
	def("RECONSTRUCTION", string(d.Reconstruction))
	def("TIME_STEPPING", string(d.TimeStepping))
	def("NTRACER", strconv.Itoa(d.NTracer))
	def("PARTICLES", string(d.Particles))
	def("USER_DEF_PARAMETERS", strconv.Itoa(d.UserDefParameters))

	fmt.Fprintf(w, "\n/* -- physics dependent declarations -- */\n\n")
	def("DUST_FLUID", string(d.DustFluid))
	def("EOS", string(d.EOS))
	def("ENTROPY_SWITCH", string(d.EntropySwitch))
	def("THERMAL_CONDUCTION", string(d.ThermalConduction))
	def("VISCOSITY", string(d.Viscosity))
	def("ROTATING_FRAME", string(d.RotatingFrame))

	fmt.Fprintf(w, "\n/* -- user-defined parameters (labels) -- */\n\n")
	for _, p := range sortedParams(d.Params) {
		def(p.Name, strconv.Itoa(p.Index))
	}

	fmt.Fprintf(w, "\n/* [Beg] user-defined constants (do not change this line) */\n\n")
	if d.Limiter != "" {
		def("LIMITER", string(d.Limiter))
	}
	def("UNIT_LENGTH", formatFloat(d.Units.Length))
	shadow("UNIT_LENGTH", d.Units.LengthExpr)
	def("UNIT_DENSITY", formatFloat(d.Units.Density))
	shadow("UNIT_DENSITY", d.Units.DensityExpr)
	def("UNIT_VELOCITY", formatFloat(d.Units.Velocity))
	shadow("UNIT_VELOCITY", d.Units.VelocityExpr)
	for _, c := range d.Constants {
		def(c.Name, c.Value)
	}
	fmt.Fprintf(w, "\n/* [End] user-defined constants (do not change this line) */\n")

	return nil
}

// WriteFile writes a definitions.h to disk.
func WriteFile(path string, d *defs.Definitions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sortedParams(params []defs.Param) []defs.Param {
	out := make([]defs.Param, len(params))
	copy(out, params)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
