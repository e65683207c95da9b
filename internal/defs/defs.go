package defs

import "fmt"

// Physics selects the system of conservation laws being solved.
type Physics string

const (
	PhysicsAdvection   Physics = "ADVECTION"
	PhysicsHD          Physics = "HD"
	PhysicsRHD         Physics = "RHD"
	PhysicsMHD         Physics = "MHD"
	PhysicsRMHD        Physics = "RMHD"
	PhysicsResRMHD     Physics = "ResRMHD"
	PhysicsCRTransport Physics = "CR_TRANSPORT"
)

type Geometry string

const (
	GeometryCartesian   Geometry = "CARTESIAN"
	GeometryCylindrical Geometry = "CYLINDRICAL"
	GeometryPolar       Geometry = "POLAR"
	GeometrySpherical   Geometry = "SPHERICAL"
)

type BodyForce string

const (
	BodyForceNone            BodyForce = "NO"
	BodyForceVector          BodyForce = "VECTOR"
	BodyForcePotential       BodyForce = "POTENTIAL"
	BodyForceVectorPotential BodyForce = "(VECTOR+POTENTIAL)"
)

type Cooling string

const (
	CoolingNone      Cooling = "NO"
	CoolingPowerLaw  Cooling = "POWER_LAW"
	CoolingTabulated Cooling = "TABULATED"
	CoolingSNEq      Cooling = "SNEq"
	CoolingMINEq     Cooling = "MINEq"
	CoolingH2        Cooling = "H2_COOL"
	CoolingKrome     Cooling = "KROME"
)

type Reconstruction string

const (
	ReconstructionFlat      Reconstruction = "FLAT"
	ReconstructionLinear    Reconstruction = "LINEAR"
	ReconstructionWENO3     Reconstruction = "WENO3"
	ReconstructionLimO3     Reconstruction = "LimO3"
	ReconstructionParabolic Reconstruction = "PARABOLIC"
	ReconstructionMP5       Reconstruction = "MP5"
)

type TimeStepping string

const (
	TimeSteppingEuler          TimeStepping = "EULER"
	TimeSteppingRK2            TimeStepping = "RK2"
	TimeSteppingRK3            TimeStepping = "RK3"
	TimeSteppingHancock        TimeStepping = "HANCOCK"
	TimeSteppingCharacteristic TimeStepping = "CHARACTERISTIC_TRACING"
)

// EOS is the closure relating pressure or energy to density.
type EOS string

const (
	EOSIdeal      EOS = "IDEAL"
	EOSPVTELaw    EOS = "PVTE_LAW"
	EOSBarotropic EOS = "BAROTROPIC"
	EOSIsothermal EOS = "ISOTHERMAL"
	EOSTaub       EOS = "TAUB"
)

type EntropySwitch string

const (
	EntropySwitchNone         EntropySwitch = "NO"
	EntropySwitchSelective    EntropySwitch = "SELECTIVE"
	EntropySwitchAlways       EntropySwitch = "ALWAYS"
	EntropySwitchChomboRegrid EntropySwitch = "CHOMBO_REGRID"
)

// DiffusionMode selects how a parabolic term (viscosity, thermal
// conduction) is advanced in time.
type DiffusionMode string

const (
	DiffusionNone       DiffusionMode = "NO"
	DiffusionExplicit   DiffusionMode = "EXPLICIT"
	DiffusionSuperTime  DiffusionMode = "SUPER_TIME_STEPPING"
	DiffusionRKLegendre DiffusionMode = "RK_LEGENDRE"
)

type ParticlesKind string

const (
	ParticlesNone ParticlesKind = "NO"
	ParticlesLP   ParticlesKind = "PARTICLES_LP"
	ParticlesCR   ParticlesKind = "PARTICLES_CR"
	ParticlesDust ParticlesKind = "PARTICLES_DUST"
)

type Limiter string

const (
	LimiterFlat        Limiter = "FLAT_LIM"
	LimiterMinMod      Limiter = "MINMOD_LIM"
	LimiterVanAlbada   Limiter = "VANALBADA_LIM"
	LimiterOspre       Limiter = "OSPRE_LIM"
	LimiterUMIST       Limiter = "UMIST_LIM"
	LimiterVanLeer     Limiter = "VANLEER_LIM"
	LimiterMC          Limiter = "MC_LIM"
	LimiterFourthOrder Limiter = "FOURTH_ORDER_LIM"
)

// Toggle is a plain YES/NO feature switch.
type Toggle string

const (
	No  Toggle = "NO"
	Yes Toggle = "YES"
)

var validPhysics = map[Physics]bool{
	PhysicsAdvection: true, PhysicsHD: true, PhysicsRHD: true,
	PhysicsMHD: true, PhysicsRMHD: true, PhysicsResRMHD: true,
	PhysicsCRTransport: true,
}

var validGeometry = map[Geometry]bool{
	GeometryCartesian: true, GeometryCylindrical: true,
	GeometryPolar: true, GeometrySpherical: true,
}

var validBodyForce = map[BodyForce]bool{
	BodyForceNone: true, BodyForceVector: true,
	BodyForcePotential: true, BodyForceVectorPotential: true,
}

var validCooling = map[Cooling]bool{
	CoolingNone: true, CoolingPowerLaw: true, CoolingTabulated: true,
	CoolingSNEq: true, CoolingMINEq: true, CoolingH2: true, CoolingKrome: true,
}

var validReconstruction = map[Reconstruction]bool{
	ReconstructionFlat: true, ReconstructionLinear: true,
	ReconstructionWENO3: true, ReconstructionLimO3: true,
	ReconstructionParabolic: true, ReconstructionMP5: true,
}

var validTimeStepping = map[TimeStepping]bool{
	TimeSteppingEuler: true, TimeSteppingRK2: true, TimeSteppingRK3: true,
	TimeSteppingHancock: true, TimeSteppingCharacteristic: true,
}

var validEOS = map[EOS]bool{
	EOSIdeal: true, EOSPVTELaw: true, EOSBarotropic: true,
	EOSIsothermal: true, EOSTaub: true,
}

var validEntropySwitch = map[EntropySwitch]bool{
	EntropySwitchNone: true, EntropySwitchSelective: true,
	EntropySwitchAlways: true, EntropySwitchChomboRegrid: true,
}

var validDiffusion = map[DiffusionMode]bool{
	DiffusionNone: true, DiffusionExplicit: true,
	DiffusionSuperTime: true, DiffusionRKLegendre: true,
}

var validParticles = map[ParticlesKind]bool{
	ParticlesNone: true, ParticlesLP: true,
	ParticlesCR: true, ParticlesDust: true,
}

var validLimiter = map[Limiter]bool{
	LimiterFlat: true, LimiterMinMod: true, LimiterVanAlbada: true,
	LimiterOspre: true, LimiterUMIST: true, LimiterVanLeer: true,
	LimiterMC: true, LimiterFourthOrder: true,
}

var validToggle = map[Toggle]bool{No: true, Yes: true}

func parseEnum[T ~string](flag, s string, valid map[T]bool) (T, error) {
	v := T(s)
	if !valid[v] {
		return v, fmt.Errorf("%s: unknown value %q", flag, s)
	}
	return v, nil
}

func ParsePhysics(s string) (Physics, error) { return parseEnum("PHYSICS", s, validPhysics) }

func ParseGeometry(s string) (Geometry, error) { return parseEnum("GEOMETRY", s, validGeometry) }

func ParseBodyForce(s string) (BodyForce, error) { return parseEnum("BODY_FORCE", s, validBodyForce) }

func ParseCooling(s string) (Cooling, error) { return parseEnum("COOLING", s, validCooling) }

func ParseReconstruction(s string) (Reconstruction, error) {
	return parseEnum("RECONSTRUCTION", s, validReconstruction)
}

func ParseTimeStepping(s string) (TimeStepping, error) {
	return parseEnum("TIME_STEPPING", s, validTimeStepping)
}

func ParseEOS(s string) (EOS, error) { return parseEnum("EOS", s, validEOS) }

func ParseEntropySwitch(s string) (EntropySwitch, error) {
	return parseEnum("ENTROPY_SWITCH", s, validEntropySwitch)
}

func ParseDiffusionMode(flag, s string) (DiffusionMode, error) {
	return parseEnum(flag, s, validDiffusion)
}

func ParseParticles(s string) (ParticlesKind, error) {
	return parseEnum("PARTICLES", s, validParticles)
}

func ParseLimiter(s string) (Limiter, error) { return parseEnum("LIMITER", s, validLimiter) }

func ParseToggle(flag, s string) (Toggle, error) { return parseEnum(flag, s, validToggle) }

// Param binds a user-defined parameter label to its slot in the
// runtime parameter array.
type Param struct {
	Name  string `yaml:"name"`
	Index int    `yaml:"index"`
}

// Units holds the three base scales of the problem's unit system, in
// cgs. The *Expr fields retain derivation formulas recovered from
// commented-out defines, when the header carries them.
type Units struct {
	Length   float64 `yaml:"length"`   // cm
	Density  float64 `yaml:"density"`  // g/cm^3
	Velocity float64 `yaml:"velocity"` // cm/s

	LengthExpr   string `yaml:"length_expr,omitempty"`
	DensityExpr  string `yaml:"density_expr,omitempty"`
	VelocityExpr string `yaml:"velocity_expr,omitempty"`
}

// UserConstant is an extra symbol from the user-defined constants
// block that the toolkit does not interpret itself.
type UserConstant struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Definitions is the full compile-time configuration surface of one
// problem setup: which physics modules are built in, how many user
// parameters exist and what their labels are, and the unit system.
type Definitions struct {
	Physics           Physics        `yaml:"physics"`
	Dimensions        int            `yaml:"dimensions"`
	Geometry          Geometry       `yaml:"geometry"`
	BodyForce         BodyForce      `yaml:"body_force"`
	Cooling           Cooling        `yaml:"cooling"`
	Reconstruction    Reconstruction `yaml:"reconstruction"`
	TimeStepping      TimeStepping   `yaml:"time_stepping"`
	NTracer           int            `yaml:"ntracer"`
	Particles         ParticlesKind  `yaml:"particles"`
	UserDefParameters int            `yaml:"user_def_parameters"`

	DustFluid         Toggle        `yaml:"dust_fluid"`
	EOS               EOS           `yaml:"eos"`
	EntropySwitch     EntropySwitch `yaml:"entropy_switch"`
	ThermalConduction DiffusionMode `yaml:"thermal_conduction"`
	Viscosity         DiffusionMode `yaml:"viscosity"`
	RotatingFrame     Toggle        `yaml:"rotating_frame"`

	Params []Param `yaml:"params"`

	Limiter   Limiter        `yaml:"limiter,omitempty"`
	Units     Units          `yaml:"units"`
	Constants []UserConstant `yaml:"constants,omitempty"`
}

// Default returns a minimal valid 1-D Cartesian HD setup, the
// starting point for new problem definitions.
func Default() *Definitions {
	return &Definitions{
		Physics:           PhysicsHD,
		Dimensions:        1,
		Geometry:          GeometryCartesian,
		BodyForce:         BodyForceNone,
		Cooling:           CoolingNone,
		Reconstruction:    ReconstructionLinear,
		TimeStepping:      TimeSteppingRK2,
		Particles:         ParticlesNone,
		DustFluid:         No,
		EOS:               EOSIdeal,
		EntropySwitch:     EntropySwitchNone,
		ThermalConduction: DiffusionNone,
		Viscosity:         DiffusionNone,
		RotatingFrame:     No,
		Limiter:           LimiterVanLeer,
		Units:             Units{Length: 1, Density: 1, Velocity: 1},
	}
}

// ParamIndex reports the slot of a user parameter label.
func (d *Definitions) ParamIndex(name string) (int, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p.Index, true
		}
	}
	return 0, false
}

// ParamNames returns the labels ordered by slot. Labels with invalid
// indices are skipped; Validate catches those separately.
func (d *Definitions) ParamNames() []string {
	names := make([]string, len(d.Params))
	for _, p := range d.Params {
		if p.Index >= 0 && p.Index < len(names) {
			names[p.Index] = p.Name
		}
	}
	return names
}
