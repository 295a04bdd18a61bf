package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "token(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Item is a lexed token. Value is a string for identifiers and raw
// characters, an int for integers.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.Quote(i.Value.(string))
	}
	return i.Type.String()
}

// Lexer splits i/o specs and connection descriptions into tokens.
//
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a new lexer for the given input.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.pos++
		return -1
	}
	r, sz := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += sz
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// Lex returns the next token. Once the input is exhausted or after a Raw
// token, Lex only returns EOF.
//
func (l *Lexer) Lex() Item {
	for unicode.IsSpace(l.peek()) {
		l.next()
	}
	start := l.pos
	if start >= len(l.input) {
		return Item{Type: EOF, Pos: len(l.input)}
	}
	r := l.next()
	switch {
	case unicode.IsLetter(r) || r == '_':
		for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.peek() {
			l.next()
		}
		return Item{Ident, start, l.input[start:l.pos]}
	case '0' <= r && r <= '9':
		n := int(r - '0')
		for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
			n = n*10 + int(l.next()-'0')
		}
		return Item{Int, start, n}
	case r == '[':
		return Item{BracketOpen, start, "["}
	case r == ']':
		return Item{BracketClose, start, "]"}
	case r == ',':
		return Item{Comma, start, ","}
	case r == '=':
		return Item{Equal, start, "="}
	case r == '.' && l.peek() == '.':
		l.next()
		return Item{Range, start, ".."}
	}
	// stop lexing after an unexpected character
	l.pos = len(l.input)
	return Item{Raw, start, string(r)}
}
