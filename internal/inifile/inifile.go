// Package inifile reads the runtime companion file of a problem setup
// (pluto.ini). The format is block-structured but column-oriented:
// a [Block] heading followed by lines of whitespace-separated fields,
// where the first field names the entry and the rest are positional
// values. This is not key=value INI, so generic INI loaders do not
// apply; entry and block order are preserved for faithful rewriting.
package inifile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mkalle/plutodef/internal/defs"
)

type Entry struct {
	Key    string
	Values []string
}

type Block struct {
	Name    string
	Entries []Entry
}

// File is a parsed runtime file.
type File struct {
	Blocks []Block
}

// ParseFile reads a pluto.ini from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ini, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ini, nil
}

// Parse reads a runtime file. Lines starting with # are comments.
func Parse(r io.Reader) (*File, error) {
	ini := &File{}
	var cur *Block
	lineno := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated block heading %q", lineno, line)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, fmt.Errorf("line %d: empty block name", lineno)
			}
			ini.Blocks = append(ini.Blocks, Block{Name: name})
			cur = &ini.Blocks[len(ini.Blocks)-1]
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("line %d: entry %q outside any block", lineno, line)
		}
		fields := strings.Fields(line)
		cur.Entries = append(cur.Entries, Entry{Key: fields[0], Values: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ini, nil
}

// Block returns the named block, or nil.
func (f *File) Block(name string) *Block {
	for i := range f.Blocks {
		if f.Blocks[i].Name == name {
			return &f.Blocks[i]
		}
	}
	return nil
}

// Parameters extracts the [Parameters] block as label to value. Every
// entry must carry exactly one numeric value.
func (f *File) Parameters() (map[string]float64, error) {
	b := f.Block("Parameters")
	if b == nil {
		return nil, fmt.Errorf("no [Parameters] block")
	}
	params := make(map[string]float64, len(b.Entries))
	for _, e := range b.Entries {
		if len(e.Values) != 1 {
			return nil, fmt.Errorf("%s: expected one value, got %d", e.Key, len(e.Values))
		}
		v, err := strconv.ParseFloat(e.Values[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number: %q", e.Key, e.Values[0])
		}
		if _, dup := params[e.Key]; dup {
			return nil, fmt.Errorf("%s: duplicate parameter", e.Key)
		}
		params[e.Key] = v
	}
	return params, nil
}

// CrossCheck verifies that the runtime parameters and the labels
// declared in the definitions header describe the same set: the
// solver indexes the runtime array with the header's slots, so any
// mismatch silently misassigns values.
func CrossCheck(d *defs.Definitions, params map[string]float64) []error {
	var errs []error
	for _, p := range d.Params {
		if _, ok := params[p.Name]; !ok {
			errs = append(errs, fmt.Errorf(
				"%s: declared in definitions header but missing from [Parameters]", p.Name))
		}
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := d.ParamIndex(name); !ok {
			errs = append(errs, fmt.Errorf(
				"%s: present in [Parameters] but not declared in definitions header", name))
		}
	}
	return errs
}

// Write emits the file back in column form.
func Write(w io.Writer, f *File) error {
	for i, b := range f.Blocks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s]\n\n", b.Name)
		width := 0
		for _, e := range b.Entries {
			if len(e.Key) > width {
				width = len(e.Key)
			}
		}
		for _, e := range b.Entries {
			fmt.Fprintf(w, "%-*s  %s\n", width, e.Key, strings.Join(e.Values, "  "))
		}
	}
	return nil
}
