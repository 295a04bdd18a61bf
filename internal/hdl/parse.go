// Package hdl parses the small text formats used to describe gate pins and
// wiring:
//
//	a, b, bus[4]           // pin group declarations
//	a=x, b=y[2], c=z[0..3] // connections
//
package hdl

import (
	"strconv"

	"github.com/pkg/errors"
)

// Ref is a reference to a pin or a range of pins in a pin group.
//
//	name        Indexed == false
//	name[i]     Indexed == true, Start == End == i
//	name[i..j]  Indexed == true, Start == i, End == j
//
type Ref struct {
	Name    string
	Pos     int
	Indexed bool
	Start   int
	End     int
}

// Width returns the number of pins covered by an indexed reference.
//
func (r Ref) Width() int {
	if r.End >= r.Start {
		return r.End - r.Start + 1
	}
	return r.Start - r.End + 1
}

// Index returns the i-th pin index covered by r. Descending ranges are
// supported.
//
func (r Ref) Index(i int) int {
	if r.End >= r.Start {
		return r.Start + i
	}
	return r.Start - i
}

func (r Ref) String() string {
	if !r.Indexed {
		return r.Name
	}
	if r.Start == r.End {
		return r.Name + "[" + strconv.Itoa(r.Start) + "]"
	}
	return r.Name + "[" + strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End) + "]"
}

// Assignment is a part pin to chip pin assignment: LHS=RHS.
//
type Assignment struct {
	LHS Ref
	RHS Ref
}

// Decl is a pin group declaration. Width is 1 for single pins.
//
type Decl struct {
	Name  string
	Width int
}

// Parser is a simplistic parser
//
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	state int
}

const (
	stateInit = iota
	stateStarted
	stateDone = -1
)

// Next returns the next item in the input stream: a Ref, or an Assignment if
// allowConns is true. It returns nil, nil at the end of the input.
//
func (p *Parser) Next(allowConns bool) (interface{}, error) {
	if p.state == stateDone {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.state == stateInit && p.i.Type == EOF {
		p.state = stateDone
		return nil, nil
	}
	p.state = stateStarted

	pin, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		if allowConns {
			p.state = stateDone
			return nil, parseError(p.Input, p.i.Pos, "expected '=' after "+pin.String())
		}
		return pin, nil
	case Equal:
		if allowConns {
			break
		}
		fallthrough
	default:
		p.state = stateDone
		return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
	}

	p.i = p.l.Lex()
	pin2, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return Assignment{pin, pin2}, nil
	}

	p.state = stateDone
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

func (p *Parser) getPin() (Ref, error) {
	if p.i.Type != Ident {
		return Ref{}, parseError(p.Input, p.i.Pos, "expected pin name")
	}
	pin := Ref{Name: p.i.Value.(string), Pos: p.i.Pos}
	// after ident, expect ',', '[', '=' or EOF
	p.i = p.l.Lex()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	if p.i.Type != Int {
		return Ref{}, parseError(p.Input, p.i.Pos, "integer value expected after '['")
	}
	pin.Indexed = true
	pin.Start = p.i.Value.(int)
	pin.End = pin.Start
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if p.i.Type != Int {
			return Ref{}, parseError(p.Input, p.i.Pos, "integer value expected after '..'")
		}
		pin.End = p.i.Value.(int)
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return Ref{}, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	return pin, nil
}

// ParseRef parses a single pin reference.
//
func ParseRef(in string) (Ref, error) {
	p := &Parser{Input: in}
	v, err := p.Next(false)
	if err != nil {
		return Ref{}, err
	}
	if v == nil {
		return Ref{}, parseError(in, 0, "empty pin reference")
	}
	if p.state != stateDone {
		return Ref{}, parseError(in, p.i.Pos, "unexpected "+p.i.String())
	}
	return v.(Ref), nil
}

// ParseDecls parses a pin group declaration list like "a, b, bus[4]". In a
// declaration, the integer between brackets is the bus width.
//
func ParseDecls(in string) ([]Decl, error) {
	var out []Decl
	p := &Parser{Input: in}
	for {
		v, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return out, nil
		}
		r := v.(Ref)
		switch {
		case !r.Indexed:
			out = append(out, Decl{r.Name, 1})
		case r.Start != r.End:
			return nil, parseError(in, r.Pos, "range not allowed in pin declaration "+r.String())
		case r.Start == 0:
			return nil, parseError(in, r.Pos, "zero width bus "+r.Name)
		default:
			out = append(out, Decl{r.Name, r.Start})
		}
	}
}

// ParseConnections parses a connection list like "a=x, b=y[0..3]".
//
func ParseConnections(in string) ([]Assignment, error) {
	var out []Assignment
	p := &Parser{Input: in}
	for {
		v, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return out, nil
		}
		out = append(out, v.(Assignment))
	}
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
