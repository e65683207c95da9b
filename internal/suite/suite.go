// Package suite validates a collection of setup directories in one
// run, driven by a small config file. One subsection per setup:
//
//	[setup "disk_planet"]
//	dir = setups/disk_planet
//	unit-tolerance = 1e-4
//	strict = true
package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/gcfg.v1"

	"github.com/mkalle/plutodef/internal/header"
	"github.com/mkalle/plutodef/internal/inifile"
)

type SetupConfig struct {
	// Required
	Dir string

	// Optional
	Ini           string
	UnitTolerance float64
	Strict        bool
}

type Config struct {
	Setup map[string]*SetupConfig
}

func (s *SetupConfig) CheckInit(name string) error {
	if s.Dir == "" {
		return fmt.Errorf("need to specify a dir for setup %q", name)
	}
	if s.Ini == "" {
		s.Ini = "pluto.ini"
	}
	if s.UnitTolerance == 0 {
		s.UnitTolerance = header.DefaultTolerance
	} else if s.UnitTolerance < 0 {
		return fmt.Errorf("setup %q given a negative unit-tolerance, %g", name, s.UnitTolerance)
	}
	return nil
}

// Load reads and normalizes a suite config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, err
	}
	if len(cfg.Setup) == 0 {
		return nil, fmt.Errorf("%s: no [setup] sections", path)
	}
	for name, s := range cfg.Setup {
		if err := s.CheckInit(name); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Result is the outcome for one setup.
type Result struct {
	Name     string
	Dir      string
	Errors   []error
	Warnings []string
}

func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Run validates every setup in the config and returns results sorted
// by name. A setup's problems never stop the rest of the suite.
func Run(cfg *Config) []Result {
	names := make([]string, 0, len(cfg.Setup))
	for name := range cfg.Setup {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, runOne(name, cfg.Setup[name]))
	}
	return results
}

func runOne(name string, s *SetupConfig) Result {
	res := Result{Name: name, Dir: s.Dir}
	fail := func(err error) Result {
		res.Errors = append(res.Errors, err)
		return res
	}

	d, err := header.ParseFile(filepath.Join(s.Dir, "definitions.h"))
	if err != nil {
		return fail(err)
	}
	if err := d.Validate(); err != nil {
		res.Errors = append(res.Errors, err)
	}

	lint := d.Lint()
	if s.Strict {
		for _, w := range lint {
			res.Errors = append(res.Errors, fmt.Errorf("%s", w))
		}
	} else {
		res.Warnings = append(res.Warnings, lint...)
	}

	iniPath := filepath.Join(s.Dir, s.Ini)
	if _, err := os.Stat(iniPath); err != nil {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no runtime file at %s; unit derivations unverified", iniPath))
		return res
	}

	ini, err := inifile.ParseFile(iniPath)
	if err != nil {
		return fail(err)
	}
	params, err := ini.Parameters()
	if err != nil {
		return fail(fmt.Errorf("%s: %w", iniPath, err))
	}
	res.Errors = append(res.Errors, inifile.CrossCheck(d, params)...)
	res.Errors = append(res.Errors, header.VerifyUnits(d, params, s.UnitTolerance)...)

	return res
}
