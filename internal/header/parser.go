// Package header reads and writes definitions.h problem headers: the
// C-preprocessor surface a setup exposes to the build system. Parsing
// keeps commented-out defines, which is where derivation formulas for
// the unit scales conventionally live.
package header

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkalle/plutodef/internal/defs"
)

// sections of the canonical header layout, tracked via the marker
// comments so parameter labels can be told apart from user constants
type section int

const (
	sectionFlags section = iota
	sectionParams
	sectionConstants
	sectionTail
)

// ParseFile reads a definitions.h from disk.
func ParseFile(path string) (*defs.Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse reads a definitions.h. Unknown enum tokens, malformed defines
// and duplicate symbols are all collected before returning, so a
// broken header reports every problem in one pass. Semantic rules
// (index bijections, unit positivity, flag compatibility) are left to
// Definitions.Validate.
func Parse(r io.Reader) (*defs.Definitions, error) {
	b := &builder{d: &defs.Definitions{}}
	var errs []error

	sec := sectionFlags
	seen := make(map[string]int)
	inBlock := false
	lineno := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineno++
		line := sc.Text()

		var comment string
		line, comment, inBlock = splitComment(line, inBlock)

		switch {
		case strings.Contains(comment, "user-defined parameters"):
			sec = sectionParams
		case strings.Contains(comment, "[Beg]"):
			sec = sectionConstants
		case strings.Contains(comment, "[End]"):
			sec = sectionTail
		}

		// commented-out defines carry derivation formulas; the code
		// portion of the line may still hold an active define
		if name, value, ok := parseDefine(comment); ok {
			b.recordShadow(name, value)
		}

		name, value, ok := parseDefine(line)
		if !ok {
			if s := strings.TrimSpace(line); s != "" {
				errs = append(errs, fmt.Errorf("line %d: not a #define: %q", lineno, s))
			}
			continue
		}

		if prev, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf(
				"line %d: %s already defined on line %d", lineno, name, prev))
			continue
		}
		seen[name] = lineno

		if err := b.assign(name, value, sec); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineno, err))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return b.d, errors.Join(errs...)
}

// splitComment strips comment text from a line, returning code and
// comment parts separately. Block comments may span lines; the
// carried flag tracks that state.
func splitComment(line string, inBlock bool) (code, comment string, stillInBlock bool) {
	var codeB, commB strings.Builder
	i := 0
	for i < len(line) {
		if inBlock {
			if j := strings.Index(line[i:], "*/"); j >= 0 {
				commB.WriteString(line[i : i+j])
				i += j + 2
				inBlock = false
				continue
			}
			commB.WriteString(line[i:])
			i = len(line)
			continue
		}
		if strings.HasPrefix(line[i:], "/*") {
			inBlock = true
			i += 2
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			commB.WriteString(line[i+2:])
			i = len(line)
			continue
		}
		codeB.WriteByte(line[i])
		i++
	}
	return codeB.String(), commB.String(), inBlock
}

// parseDefine splits "#define NAME VALUE"; VALUE keeps internal
// spacing so parenthesized expressions survive.
func parseDefine(s string) (name, value string, ok bool) {
	s = strings.TrimSpace(s)
	rest, found := strings.CutPrefix(s, "#define")
	if !found || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	i := strings.IndexAny(rest, " \t")
	if i <= 0 {
		return "", "", false
	}
	return rest[:i], strings.TrimSpace(rest[i:]), true
}

func parseIntValue(flag, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: not an integer: %q", flag, s)
	}
	return n, nil
}

// parseUnitValue accepts either a numeric literal or a derivation
// expression that resolves without runtime parameters.
func parseUnitValue(flag, s string, unitsSoFar map[string]float64) (float64, string, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, "", nil
	}
	v, err := Eval(s, Env{Units: unitsSoFar})
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", flag, err)
	}
	return v, s, nil
}
