// Package units models the code unit system: three base scales
// (length, density, velocity, all cgs) and everything derived from
// them, plus the table of physical constants header formulas refer to.
package units

import "math"

// Constants are the cgs physical constants available to header
// expressions under their CONST_* names.
var Constants = map[string]float64{
	"CONST_AH":     1.008,
	"CONST_AHe":    4.004,
	"CONST_AZ":     30.0,
	"CONST_amu":    1.66053886e-24,
	"CONST_au":     1.49597892e13,
	"CONST_c":      2.99792458e10,
	"CONST_e":      4.80320425e-10,
	"CONST_eV":     1.602176463e-12,
	"CONST_G":      6.6726e-8,
	"CONST_h":      6.62606876e-27,
	"CONST_kB":     1.3806505e-16,
	"CONST_ly":     0.9461e18,
	"CONST_mp":     1.67262171e-24,
	"CONST_mn":     1.67492728e-24,
	"CONST_me":     9.1093826e-28,
	"CONST_mH":     1.6733e-24,
	"CONST_Msun":   2.e33,
	"CONST_Mearth": 5.9736e27,
	"CONST_NA":     6.0221367e23,
	"CONST_pc":     3.0856775807e18,
	"CONST_PI":     3.14159265358979,
	"CONST_Rearth": 6.378136e8,
	"CONST_Rgas":   8.3144598e7,
	"CONST_Rsun":   6.96e10,
	"CONST_sigma":  5.67051e-5,
	"CONST_sigmaT": 6.6524e-25,
}

// System is a complete unit system built from the three base scales.
type System struct {
	Length   float64 // cm
	Density  float64 // g/cm^3
	Velocity float64 // cm/s
}

func (s System) Time() float64 { return s.Length / s.Velocity }

func (s System) Mass() float64 { return s.Density * s.Length * s.Length * s.Length }

func (s System) Pressure() float64 { return s.Density * s.Velocity * s.Velocity }

// MagneticField is the Gauss equivalent of one code field unit,
// sqrt(4 pi rho) v.
func (s System) MagneticField() float64 {
	return math.Sqrt(4*Constants["CONST_PI"]*s.Density) * s.Velocity
}

// Kelvin is the temperature of one code temperature unit for mean
// molecular weight one, v^2 amu / kB.
func (s System) Kelvin() float64 {
	return s.Velocity * s.Velocity * Constants["CONST_amu"] / Constants["CONST_kB"]
}

// Scale is one named entry of the derived table, for display.
type Scale struct {
	Name  string
	Value float64
	Cgs   string
}

// Table lists base and derived scales in display order.
func (s System) Table() []Scale {
	return []Scale{
		{"length", s.Length, "cm"},
		{"density", s.Density, "g/cm^3"},
		{"velocity", s.Velocity, "cm/s"},
		{"time", s.Time(), "s"},
		{"mass", s.Mass(), "g"},
		{"pressure", s.Pressure(), "dyne/cm^2"},
		{"magnetic field", s.MagneticField(), "gauss"},
		{"temperature", s.Kelvin(), "K"},
	}
}

// RelErr is the relative disagreement between a hardcoded scale and
// its recomputed value.
func RelErr(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}
