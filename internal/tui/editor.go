// Package tui is an interactive terminal inspector for a problem
// header: cursor over the module flags, cycle their values, and watch
// validation react.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkalle/plutodef/internal/defs"
	"github.com/mkalle/plutodef/internal/header"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var physicsOptions = []defs.Physics{
	defs.PhysicsAdvection, defs.PhysicsHD, defs.PhysicsRHD,
	defs.PhysicsMHD, defs.PhysicsRMHD, defs.PhysicsResRMHD,
	defs.PhysicsCRTransport,
}

var geometryOptions = []defs.Geometry{
	defs.GeometryCartesian, defs.GeometryCylindrical,
	defs.GeometryPolar, defs.GeometrySpherical,
}

var bodyForceOptions = []defs.BodyForce{
	defs.BodyForceNone, defs.BodyForceVector,
	defs.BodyForcePotential, defs.BodyForceVectorPotential,
}

var coolingOptions = []defs.Cooling{
	defs.CoolingNone, defs.CoolingPowerLaw, defs.CoolingTabulated,
	defs.CoolingSNEq, defs.CoolingMINEq, defs.CoolingH2, defs.CoolingKrome,
}

var reconstructionOptions = []defs.Reconstruction{
	defs.ReconstructionFlat, defs.ReconstructionLinear,
	defs.ReconstructionWENO3, defs.ReconstructionLimO3,
	defs.ReconstructionParabolic, defs.ReconstructionMP5,
}

var timeSteppingOptions = []defs.TimeStepping{
	defs.TimeSteppingEuler, defs.TimeSteppingRK2, defs.TimeSteppingRK3,
	defs.TimeSteppingHancock, defs.TimeSteppingCharacteristic,
}

var eosOptions = []defs.EOS{
	defs.EOSIdeal, defs.EOSPVTELaw, defs.EOSBarotropic,
	defs.EOSIsothermal, defs.EOSTaub,
}

var entropyOptions = []defs.EntropySwitch{
	defs.EntropySwitchNone, defs.EntropySwitchSelective,
	defs.EntropySwitchAlways, defs.EntropySwitchChomboRegrid,
}

var diffusionOptions = []defs.DiffusionMode{
	defs.DiffusionNone, defs.DiffusionExplicit,
	defs.DiffusionSuperTime, defs.DiffusionRKLegendre,
}

var particlesOptions = []defs.ParticlesKind{
	defs.ParticlesNone, defs.ParticlesLP, defs.ParticlesCR, defs.ParticlesDust,
}

var toggleOptions = []defs.Toggle{defs.No, defs.Yes}

// field is one editable row: a flag name, its current value, and how
// to step it.
type field struct {
	name  string
	value func() string
	cycle func(dir int)
}

func cycler[T comparable](ptr *T, options []T) func(int) {
	return func(dir int) {
		idx := 0
		for i, o := range options {
			if o == *ptr {
				idx = i
				break
			}
		}
		idx = (idx + dir + len(options)) % len(options)
		*ptr = options[idx]
	}
}

func intCycler(ptr *int, min, max int) func(int) {
	return func(dir int) {
		n := *ptr + dir
		if n < min {
			n = max
		}
		if n > max {
			n = min
		}
		*ptr = n
	}
}

// Model is the bubbletea model for the inspector.
type Model struct {
	defs   *defs.Definitions
	path   string // destination for save, empty for read-only
	fields []field
	cursor int
	status string
	saved  bool
}

func New(d *defs.Definitions, path string) *Model {
	m := &Model{defs: d, path: path}
	m.fields = []field{
		{"PHYSICS", func() string { return string(d.Physics) }, cycler(&d.Physics, physicsOptions)},
		{"DIMENSIONS", func() string { return fmt.Sprintf("%d", d.Dimensions) }, intCycler(&d.Dimensions, 1, 3)},
		{"GEOMETRY", func() string { return string(d.Geometry) }, cycler(&d.Geometry, geometryOptions)},
		{"BODY_FORCE", func() string { return string(d.BodyForce) }, cycler(&d.BodyForce, bodyForceOptions)},
		{"COOLING", func() string { return string(d.Cooling) }, cycler(&d.Cooling, coolingOptions)},
		{"RECONSTRUCTION", func() string { return string(d.Reconstruction) }, cycler(&d.Reconstruction, reconstructionOptions)},
		{"TIME_STEPPING", func() string { return string(d.TimeStepping) }, cycler(&d.TimeStepping, timeSteppingOptions)},
		{"PARTICLES", func() string { return string(d.Particles) }, cycler(&d.Particles, particlesOptions)},
		{"DUST_FLUID", func() string { return string(d.DustFluid) }, cycler(&d.DustFluid, toggleOptions)},
		{"EOS", func() string { return string(d.EOS) }, cycler(&d.EOS, eosOptions)},
		{"ENTROPY_SWITCH", func() string { return string(d.EntropySwitch) }, cycler(&d.EntropySwitch, entropyOptions)},
		{"THERMAL_CONDUCTION", func() string { return string(d.ThermalConduction) }, cycler(&d.ThermalConduction, diffusionOptions)},
		{"VISCOSITY", func() string { return string(d.Viscosity) }, cycler(&d.Viscosity, diffusionOptions)},
		{"ROTATING_FRAME", func() string { return string(d.RotatingFrame) }, cycler(&d.RotatingFrame, toggleOptions)},
	}
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "left", "h":
		m.fields[m.cursor].cycle(-1)
		m.saved = false
	case "right", "l", "enter", " ":
		m.fields[m.cursor].cycle(+1)
		m.saved = false
	case "s":
		m.save()
	}
	return m, nil
}

func (m *Model) save() {
	if m.path == "" {
		m.status = "read-only session"
		return
	}
	if err := m.defs.Validate(); err != nil {
		m.status = "refusing to save an invalid header"
		return
	}
	if err := header.WriteFile(m.path, m.defs); err != nil {
		m.status = err.Error()
		return
	}
	m.saved = true
	m.status = "saved " + m.path
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("problem definitions") + "\n\n")

	for i, f := range m.fields {
		marker := "  "
		style := white
		if i == m.cursor {
			marker = "> "
			style = cyan
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			marker,
			style.Render(fmt.Sprintf("%-20s", f.name)),
			f.value()))
	}

	b.WriteString("\n")
	if err := m.defs.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			b.WriteString(red.Render("✗ "+line) + "\n")
		}
	} else {
		b.WriteString(green.Render("✓ valid") + "\n")
	}
	for _, w := range m.defs.Lint() {
		b.WriteString(yellow.Render("! "+w) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + white.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dim.Render("↑/↓ move   ←/→ cycle   s save   q quit") + "\n")
	return b.String()
}

// Run starts the inspector.
func Run(d *defs.Definitions, path string) error {
	p := tea.NewProgram(New(d, path))
	_, err := p.Run()
	return err
}
