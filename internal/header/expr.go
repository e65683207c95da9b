package header

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mkalle/plutodef/internal/units"
)

// Env supplies the values an expression may reference besides the
// CONST_* table: previously evaluated UNIT_* scales and runtime
// parameter values for g_inputParam[...] lookups.
type Env struct {
	Units  map[string]float64
	Params map[string]float64
}

// Eval evaluates a derivation expression as found in a header, e.g.
// (sqrt(CONST_G*g_inputParam[Mstar]*CONST_Msun/UNIT_LENGTH)/(2.*CONST_PI)).
// Supported: floating literals, + - * /, parentheses, sqrt, CONST_*
// names, UNIT_* references and g_inputParam indexing.
func Eval(expr string, env Env) (float64, error) {
	p := &exprParser{src: expr, env: env}
	v, err := p.parseExpr()
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("evaluating %q: trailing input at offset %d", expr, p.pos)
	}
	return v, nil
}

type exprParser struct {
	src string
	pos int
	env Env
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			t, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += t
		case '-':
			p.pos++
			t, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= t
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			f, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= f
		case '/':
			p.pos++
			f, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if f == 0 {
				return 0, fmt.Errorf("division by zero at offset %d", p.pos)
			}
			v /= f
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		return v, p.expect(')')
	case c == '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	case c == '+':
		p.pos++
		return p.parseFactor()
	case c >= '0' && c <= '9', c == '.':
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseIdent()
	default:
		return 0, fmt.Errorf("unexpected character %q at offset %d", string(c), p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		if c == 'e' || c == 'E' {
			// exponent, possibly signed
			next := p.pos + 1
			if next < len(p.src) && (p.src[next] == '+' || p.src[next] == '-') {
				next++
			}
			if next < len(p.src) && p.src[next] >= '0' && p.src[next] <= '9' {
				p.pos = next + 1
				continue
			}
		}
		break
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q at offset %d", p.src[start:p.pos], start)
	}
	return v, nil
}

func (p *exprParser) parseIdent() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	switch {
	case name == "sqrt":
		if err := p.expect('('); err != nil {
			return 0, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(')'); err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, fmt.Errorf("sqrt of negative value %g", v)
		}
		return math.Sqrt(v), nil

	case name == "g_inputParam":
		if err := p.expect('['); err != nil {
			return 0, err
		}
		p.skipSpace()
		lstart := p.pos
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		label := p.src[lstart:p.pos]
		if err := p.expect(']'); err != nil {
			return 0, err
		}
		v, ok := p.env.Params[label]
		if !ok {
			return 0, fmt.Errorf("g_inputParam[%s]: no runtime value available", label)
		}
		return v, nil

	case strings.HasPrefix(name, "CONST_"):
		v, ok := units.Constants[name]
		if !ok {
			return 0, fmt.Errorf("unknown constant %s", name)
		}
		return v, nil

	case strings.HasPrefix(name, "UNIT_"):
		v, ok := p.env.Units[name]
		if !ok {
			return 0, fmt.Errorf("%s referenced before it has a value", name)
		}
		return v, nil

	default:
		return 0, fmt.Errorf("unknown symbol %s", name)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
