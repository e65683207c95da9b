package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mkalle/plutodef/internal/defs"
	"github.com/mkalle/plutodef/internal/header"
	"github.com/mkalle/plutodef/internal/inifile"
	"github.com/mkalle/plutodef/internal/preset"
	"github.com/mkalle/plutodef/internal/suite"
	"github.com/mkalle/plutodef/internal/tui"
	"github.com/mkalle/plutodef/internal/units"
)

var (
	iniName   string
	tolerance float64
	strict    bool
	fromYAML  string
	outDir    string
	points    int
	rMin      float64
	rMax      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plutodef",
		Short: "problem setup configuration toolkit",
	}

	rootCmd.PersistentFlags().StringVar(&iniName, "ini", "pluto.ini", "runtime file name")

	validateCmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "validate a setup directory",
		Args:  cobra.ExactArgs(1),
		RunE:  validateSetup,
	}
	validateCmd.Flags().Float64Var(&tolerance, "tolerance", header.DefaultTolerance,
		"relative tolerance for unit derivation checks")
	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	showCmd := &cobra.Command{
		Use:   "show [dir]",
		Short: "show a setup's flags, parameters and units",
		Args:  cobra.ExactArgs(1),
		RunE:  showSetup,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [dir]",
		Short: "convert a definitions header to yaml and back",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convertSetup,
	}
	convertCmd.Flags().StringVar(&fromYAML, "from-yaml", "",
		"yaml file to convert back into a definitions header on stdout")

	initCmd := &cobra.Command{
		Use:   "init [preset]",
		Short: "write a preset setup into a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  initSetup,
	}
	initCmd.Flags().StringVar(&outDir, "dir", ".", "destination directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range preset.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	unitsCmd := &cobra.Command{
		Use:   "units [dir]",
		Short: "show the derived unit system",
		Args:  cobra.ExactArgs(1),
		RunE:  showUnits,
	}
	unitsCmd.Flags().Float64Var(&tolerance, "tolerance", header.DefaultTolerance,
		"relative tolerance for unit derivation checks")

	profileCmd := &cobra.Command{
		Use:   "profile [dir]",
		Short: "quick-look plot of the Keplerian velocity profile",
		Args:  cobra.ExactArgs(1),
		RunE:  profileSetup,
	}
	profileCmd.Flags().IntVar(&points, "points", 80, "number of radial samples")
	profileCmd.Flags().Float64Var(&rMin, "rmin", 0.4, "inner radius in code units")
	profileCmd.Flags().Float64Var(&rMax, "rmax", 2.5, "outer radius in code units")

	checkCmd := &cobra.Command{
		Use:   "check [suite.cfg]",
		Short: "validate every setup listed in a suite config",
		Args:  cobra.ExactArgs(1),
		RunE:  checkSuite,
	}

	editCmd := &cobra.Command{
		Use:   "edit [dir]",
		Short: "interactively inspect and edit a definitions header",
		Args:  cobra.ExactArgs(1),
		RunE:  editSetup,
	}

	rootCmd.AddCommand(validateCmd, showCmd, convertCmd, initCmd, presetsCmd,
		unitsCmd, profileCmd, checkCmd, editCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSetup reads a setup directory: the definitions header, and the
// runtime parameters when the companion file exists.
func loadSetup(dir string) (*defs.Definitions, map[string]float64, error) {
	d, err := header.ParseFile(filepath.Join(dir, "definitions.h"))
	if err != nil {
		return nil, nil, err
	}

	iniPath := filepath.Join(dir, iniName)
	if _, err := os.Stat(iniPath); err != nil {
		return d, nil, nil
	}
	ini, err := inifile.ParseFile(iniPath)
	if err != nil {
		return nil, nil, err
	}
	params, err := ini.Parameters()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", iniPath, err)
	}
	return d, params, nil
}

func validateSetup(cmd *cobra.Command, args []string) error {
	dir := args[0]

	d, params, err := loadSetup(dir)
	if err != nil {
		return err
	}

	var problems []string
	if err := d.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if params != nil {
		for _, e := range inifile.CrossCheck(d, params) {
			problems = append(problems, e.Error())
		}
		for _, e := range header.VerifyUnits(d, params, tolerance) {
			problems = append(problems, e.Error())
		}
	} else {
		fmt.Fprintf(os.Stderr, "no %s found; unit derivations unverified\n", iniName)
	}

	warns := d.Lint()
	if strict {
		problems = append(problems, warns...)
		warns = nil
	}

	for _, w := range warns {
		fmt.Printf("warning: %s\n", w)
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		return fmt.Errorf("%s: %d problem(s)", dir, len(problems))
	}

	fmt.Printf("%s: ok\n", dir)
	return nil
}

func showSetup(cmd *cobra.Command, args []string) error {
	d, params, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "FLAG\tVALUE")
	rows := []struct{ name, value string }{
		{"PHYSICS", string(d.Physics)},
		{"DIMENSIONS", fmt.Sprintf("%d", d.Dimensions)},
		{"GEOMETRY", string(d.Geometry)},
		{"BODY_FORCE", string(d.BodyForce)},
		{"COOLING", string(d.Cooling)},
		{"RECONSTRUCTION", string(d.Reconstruction)},
		{"TIME_STEPPING", string(d.TimeStepping)},
		{"NTRACER", fmt.Sprintf("%d", d.NTracer)},
		{"PARTICLES", string(d.Particles)},
		{"DUST_FLUID", string(d.DustFluid)},
		{"EOS", string(d.EOS)},
		{"ENTROPY_SWITCH", string(d.EntropySwitch)},
		{"THERMAL_CONDUCTION", string(d.ThermalConduction)},
		{"VISCOSITY", string(d.Viscosity)},
		{"ROTATING_FRAME", string(d.RotatingFrame)},
	}
	if d.Limiter != "" {
		rows = append(rows, struct{ name, value string }{"LIMITER", string(d.Limiter)})
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r.name, r.value)
	}

	fmt.Fprintln(w, "\nPARAMETER\tSLOT\tVALUE")
	for _, p := range d.Params {
		if v, ok := params[p.Name]; ok {
			fmt.Fprintf(w, "%s\t%d\t%g\n", p.Name, p.Index, v)
		} else {
			fmt.Fprintf(w, "%s\t%d\t-\n", p.Name, p.Index)
		}
	}

	fmt.Fprintln(w, "\nSCALE\tVALUE\tCGS")
	s := units.System{Length: d.Units.Length, Density: d.Units.Density, Velocity: d.Units.Velocity}
	for _, sc := range s.Table() {
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", sc.Name, sc.Value, sc.Cgs)
	}

	return w.Flush()
}

func convertSetup(cmd *cobra.Command, args []string) error {
	if fromYAML != "" {
		d, err := defs.LoadYAML(fromYAML)
		if err != nil {
			return err
		}
		return header.Write(os.Stdout, d)
	}

	if len(args) != 1 {
		return fmt.Errorf("need a setup directory or --from-yaml")
	}
	d, err := header.ParseFile(filepath.Join(args[0], "definitions.h"))
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func initSetup(cmd *cobra.Command, args []string) error {
	name := args[0]
	d := preset.Get(name)
	if d == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, preset.List())
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	hdrPath := filepath.Join(outDir, "definitions.h")
	if err := header.WriteFile(hdrPath, d); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", hdrPath)

	if len(d.Params) == 0 {
		return nil
	}
	ini := &inifile.File{Blocks: []inifile.Block{{Name: "Parameters"}}}
	skeleton := preset.RuntimeSkeleton(d)
	for _, p := range d.Params {
		ini.Blocks[0].Entries = append(ini.Blocks[0].Entries, inifile.Entry{
			Key:    p.Name,
			Values: []string{fmt.Sprintf("%g", skeleton[p.Name])},
		})
	}
	iniPath := filepath.Join(outDir, iniName)
	f, err := os.Create(iniPath)
	if err != nil {
		return err
	}
	if err := inifile.Write(f, ini); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", iniPath)
	return nil
}

func showUnits(cmd *cobra.Command, args []string) error {
	d, params, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCALE\tVALUE\tCGS")
	s := units.System{Length: d.Units.Length, Density: d.Units.Density, Velocity: d.Units.Velocity}
	for _, sc := range s.Table() {
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", sc.Name, sc.Value, sc.Cgs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if params == nil {
		fmt.Fprintf(os.Stderr, "\nno %s found; unit derivations unverified\n", iniName)
		return nil
	}
	errs := header.VerifyUnits(d, params, tolerance)
	if len(errs) == 0 {
		fmt.Println("\nderivations consistent")
		return nil
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	return fmt.Errorf("%d inconsistent scale(s)", len(errs))
}

func profileSetup(cmd *cobra.Command, args []string) error {
	d, params, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	mstar := 1.0
	if v, ok := params["Mstar"]; ok {
		mstar = v
	}

	if points < 2 {
		return fmt.Errorf("need at least 2 sample points")
	}
	if rMin <= 0 || rMax <= rMin {
		return fmt.Errorf("need 0 < rmin < rmax")
	}

	// Keplerian speed in code units over the radial range; radii are
	// code lengths, so r_cgs = r * UNIT_LENGTH
	G := units.Constants["CONST_G"]
	Msun := units.Constants["CONST_Msun"]
	data := make([]float64, points)
	for i := range data {
		r := rMin + (rMax-rMin)*float64(i)/float64(points-1)
		vKep := math.Sqrt(G * mstar * Msun / (r * d.Units.Length))
		data[i] = vKep / d.Units.Velocity
	}

	fmt.Printf("keplerian velocity, code units (Mstar=%g, r in [%g, %g])\n\n", mstar, rMin, rMax)
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("v_K vs radius"),
	)
	fmt.Println(graph)
	return nil
}

func checkSuite(cmd *cobra.Command, args []string) error {
	cfg, err := suite.Load(args[0])
	if err != nil {
		return err
	}

	results := suite.Run(cfg)
	failed := 0

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SETUP\tDIR\tSTATUS\tPROBLEMS")
	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.Name, r.Dir, status, len(r.Errors))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, r := range results {
		for _, warn := range r.Warnings {
			fmt.Printf("warning: %s: %s\n", r.Name, warn)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Name, e)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d setups failed", failed, len(results))
	}
	return nil
}

func editSetup(cmd *cobra.Command, args []string) error {
	path := filepath.Join(args[0], "definitions.h")
	d, err := header.ParseFile(path)
	if err != nil {
		return err
	}
	return tui.Run(d, path)
}
