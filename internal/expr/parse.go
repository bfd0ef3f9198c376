package expr

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/epsilon/internal/dual"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokCaret:
		return "'^'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source, for error reporting
}

// builtins maps function names to their dual implementations.
var builtins = map[string]func(dual.Scalar) dual.Scalar{
	"sqrt":  dual.Sqrt,
	"sin":   dual.Sin,
	"cos":   dual.Cos,
	"tan":   dual.Tan,
	"asin":  dual.Asin,
	"acos":  dual.Acos,
	"atan":  dual.Atan,
	"exp":   dual.Exp,
	"log":   dual.Log,
	"ln":    dual.Log,
	"log2":  dual.Log2,
	"log10": dual.Log10,
}

// constants are named values; they shadow variables of the same name.
var constants = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
}

type parser struct {
	src  string
	toks []token
	i    int
	vars []string
	seen map[string]bool
}

func newParser(src string) *parser {
	return &parser{src: src, seen: make(map[string]bool)}
}

func (p *parser) parse() (node, error) {
	if err := p.lex(); err != nil {
		return nil, err
	}
	n, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, unexpected(tok)
	}
	return n, nil
}

// lex scans the whole source up front so the parser works over a token
// slice. Identifiers are NFC-normalized here, before any comparison.
func (p *parser) lex() error {
	src := p.src
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r >= '0' && r <= '9' || r == '.':
			end := scanNumber(src, i)
			text := src[i:end]
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return &ParseError{Code: ErrCodeBadNumber, Pos: i, Message: "malformed number " + strconv.Quote(text)}
			}
			p.toks = append(p.toks, token{kind: tokNumber, text: text, pos: i})
			i = end
		case unicode.IsLetter(r) || r == '_':
			end := scanIdent(src, i)
			p.toks = append(p.toks, token{kind: tokIdent, text: norm.NFC.String(src[i:end]), pos: i})
			i = end
		default:
			kind, ok := punct(r)
			if !ok {
				return &ParseError{Code: ErrCodeUnexpectedToken, Pos: i, Message: "unexpected character " + strconv.QuoteRune(r)}
			}
			p.toks = append(p.toks, token{kind: kind, text: string(r), pos: i})
			i += size
		}
	}
	p.toks = append(p.toks, token{kind: tokEOF, pos: len(src)})
	return nil
}

func punct(r rune) (tokenKind, bool) {
	switch r {
	case '+':
		return tokPlus, true
	case '-':
		return tokMinus, true
	case '*':
		return tokStar, true
	case '/':
		return tokSlash, true
	case '^':
		return tokCaret, true
	case '(':
		return tokLParen, true
	case ')':
		return tokRParen, true
	default:
		return 0, false
	}
}

func scanNumber(src string, start int) int {
	i := start
	for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
		i++
	}
	// Exponent suffix: 1e-3, 2.5E+10.
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && src[j] >= '0' && src[j] <= '9' {
			for j < len(src) && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return i
}

func scanIdent(src string, start int) int {
	i := start
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		// Combining marks continue an identifier so decomposed input
		// lexes as one token before NFC normalization.
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r) && r != '_' {
			break
		}
		i += size
	}
	return i
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

// Binding powers. '^' binds tightest and associates right; unary minus
// sits between '*' and '^' so -x^2 parses as -(x^2) and -x*y as (-x)*y.
const (
	precAdd   = 1
	precMul   = 2
	precUnary = 3
	precPow   = 4
)

func precedence(k tokenKind) int {
	switch k {
	case tokPlus, tokMinus:
		return precAdd
	case tokStar, tokSlash:
		return precMul
	case tokCaret:
		return precPow
	default:
		return 0
	}
}

func (p *parser) parseBinary(minPrec int) (node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		prec := precedence(op.kind)
		if prec == 0 || prec < minPrec {
			return lhs, nil
		}
		p.next()

		// Right associativity: recurse at the same precedence.
		nextMin := prec + 1
		if op.kind == tokCaret {
			nextMin = prec
		}
		rhs, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		if op.kind == tokCaret {
			lhs = powNode{base: lhs, exp: rhs}
		} else {
			lhs = binNode{op: op.kind, l: lhs, r: rhs}
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		operand, err := p.parseBinary(precPow)
		if err != nil {
			return nil, err
		}
		return negNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, _ := strconv.ParseFloat(tok.text, 64) // validated during lex
		return litNode(v), nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(tok)
		}
		if v, ok := constants[tok.text]; ok {
			return litNode(v), nil
		}
		if !p.seen[tok.text] {
			p.seen[tok.text] = true
			p.vars = append(p.vars, tok.text)
		}
		return varNode(tok.text), nil

	case tokLParen:
		n, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil

	default:
		return nil, unexpected(tok)
	}
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := builtins[name.text]
	if !ok {
		return nil, &ParseError{
			Code:    ErrCodeUnknownFunction,
			Pos:     name.pos,
			Message: "unknown function " + strconv.Quote(name.text) + " (supported: " + builtinNames() + ")",
		}
	}
	p.next() // consume '('
	arg, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return callNode{name: name.text, fn: fn, arg: arg}, nil
}

func (p *parser) expect(kind tokenKind) error {
	tok := p.next()
	if tok.kind != kind {
		return &ParseError{
			Code:    ErrCodeUnexpectedToken,
			Pos:     tok.pos,
			Message: "expected " + kind.String() + ", found " + tok.kind.String(),
		}
	}
	return nil
}

func unexpected(tok token) *ParseError {
	msg := "unexpected " + tok.kind.String()
	if tok.text != "" {
		msg += " " + strconv.Quote(tok.text)
	}
	return &ParseError{Code: ErrCodeUnexpectedToken, Pos: tok.pos, Message: msg}
}

func builtinNames() string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
