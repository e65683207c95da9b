package header

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalle/plutodef/internal/defs"
)

func TestParseReferenceHeader(t *testing.T) {
	d, err := ParseFile("testdata/definitions.h")
	require.NoError(t, err)

	assert.Equal(t, defs.PhysicsHD, d.Physics)
	assert.Equal(t, 3, d.Dimensions)
	assert.Equal(t, defs.GeometrySpherical, d.Geometry)
	assert.Equal(t, defs.BodyForcePotential, d.BodyForce)
	assert.Equal(t, defs.CoolingNone, d.Cooling)
	assert.Equal(t, defs.ReconstructionLinear, d.Reconstruction)
	assert.Equal(t, defs.TimeSteppingRK2, d.TimeStepping)
	assert.Equal(t, 0, d.NTracer)
	assert.Equal(t, defs.ParticlesNone, d.Particles)
	assert.Equal(t, 4, d.UserDefParameters)
	assert.Equal(t, defs.No, d.DustFluid)
	assert.Equal(t, defs.EOSIsothermal, d.EOS)
	assert.Equal(t, defs.EntropySwitchNone, d.EntropySwitch)
	assert.Equal(t, defs.DiffusionNone, d.ThermalConduction)
	assert.Equal(t, defs.DiffusionNone, d.Viscosity)
	assert.Equal(t, defs.Yes, d.RotatingFrame)
	assert.Equal(t, defs.LimiterVanLeer, d.Limiter)

	assert.Equal(t, []defs.Param{
		{Name: "Mstar", Index: 0},
		{Name: "Mdisk", Index: 1},
		{Name: "Mplanet", Index: 2},
		{Name: "Viscosity", Index: 3},
	}, d.Params)

	assert.Equal(t, 7.779090384e13, d.Units.Length)
	assert.Equal(t, 4.24857748e-9, d.Units.Density)
	assert.Equal(t, 208457.85579, d.Units.Velocity)

	// commented-out defines are kept as recorded derivations
	assert.Equal(t, "(5.2*CONST_au)", d.Units.LengthExpr)
	assert.Equal(t, "(CONST_Msun/(UNIT_LENGTH*UNIT_LENGTH*UNIT_LENGTH))", d.Units.DensityExpr)
	assert.Contains(t, d.Units.VelocityExpr, "g_inputParam[Mstar]")

	require.NoError(t, d.Validate())
}

func TestParseUnknownEnumToken(t *testing.T) {
	src := "#define  GEOMETRY  TOROIDAL\n"
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOMETRY")
	assert.Contains(t, err.Error(), "TOROIDAL")
}

func TestParseCollectsAllErrors(t *testing.T) {
	src := strings.Join([]string{
		"#define  GEOMETRY  TOROIDAL",
		"#define  EOS       RUBBER",
	}, "\n")
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOMETRY")
	assert.Contains(t, err.Error(), "EOS")
}

func TestParseDuplicateDefine(t *testing.T) {
	src := strings.Join([]string{
		"#define  PHYSICS  HD",
		"#define  PHYSICS  MHD",
	}, "\n")
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestParseUnknownSymbolOutsideSections(t *testing.T) {
	src := "#define  FROBNICATE  12\n"
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FROBNICATE")
}

func TestParseSectionsRouteUnknownNames(t *testing.T) {
	src := strings.Join([]string{
		"#define  USER_DEF_PARAMETERS  1",
		"/* -- user-defined parameters (labels) -- */",
		"#define  Mstar  0",
		"/* [Beg] user-defined constants (do not change this line) */",
		"#define  UNIT_LENGTH    1.0",
		"#define  UNIT_DENSITY   1.0",
		"#define  UNIT_VELOCITY  1.0",
		"#define  STELLAR_WIND   2.5e-8",
		"/* [End] user-defined constants (do not change this line) */",
	}, "\n")
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []defs.Param{{Name: "Mstar", Index: 0}}, d.Params)
	assert.Equal(t, []defs.UserConstant{{Name: "STELLAR_WIND", Value: "2.5e-8"}}, d.Constants)
}

func TestParseActiveExpressionUnit(t *testing.T) {
	src := strings.Join([]string{
		"/* [Beg] user-defined constants (do not change this line) */",
		"#define  UNIT_LENGTH  (5.2*CONST_au)",
		"/* [End] user-defined constants (do not change this line) */",
	}, "\n")
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.InEpsilon(t, 7.779090384e13, d.Units.Length, 1e-9)
	// the formula is retained as the recorded derivation
	assert.Equal(t, "(5.2*CONST_au)", d.Units.LengthExpr)
}

func TestParseActiveDefineWithCommentedDefineTrailing(t *testing.T) {
	// old values commonly survive in a trailing comment; the active
	// define must still take effect
	src := "#define  DIMENSIONS  3 /* #define DIMENSIONS 2 */\n"
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Dimensions)
}

func TestParseUnitWithTrailingDerivationComment(t *testing.T) {
	src := strings.Join([]string{
		"/* [Beg] user-defined constants (do not change this line) */",
		"#define  UNIT_LENGTH  7.779090384e13  // #define  UNIT_LENGTH  (5.2*CONST_au)",
		"/* [End] user-defined constants (do not change this line) */",
	}, "\n")
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 7.779090384e13, d.Units.Length)
	assert.Equal(t, "(5.2*CONST_au)", d.Units.LengthExpr)
}

func TestParseBlockCommentSpanningLines(t *testing.T) {
	src := strings.Join([]string{
		"/* a block comment",
		"   spanning lines */",
		"#define  PHYSICS  HD",
	}, "\n")
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, defs.PhysicsHD, d.Physics)
}

func TestRoundTrip(t *testing.T) {
	d, err := ParseFile("testdata/definitions.h")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))

	d2, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, d2)
}

func TestWriteNormalizesParamOrder(t *testing.T) {
	d := defs.Default()
	d.UserDefParameters = 2
	d.Params = []defs.Param{
		{Name: "Mdisk", Index: 1},
		{Name: "Mstar", Index: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	d2, err := Parse(&buf)
	require.NoError(t, err)

	// labels come back in slot order with their slots intact
	assert.Equal(t, []defs.Param{
		{Name: "Mstar", Index: 0},
		{Name: "Mdisk", Index: 1},
	}, d2.Params)
}

func TestWriteThenParseIdentityForDefault(t *testing.T) {
	d := defs.Default()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	d2, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, d2)
}
