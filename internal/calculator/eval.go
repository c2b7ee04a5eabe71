package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/go-folio/internal/config"
)

// Evaluation errors. Callers match them with errors.Is.
var (
	ErrEmpty     = errors.New(config.ErrExprEmpty)
	ErrTooLong   = errors.New(config.ErrExprTooLong)
	ErrSyntax    = errors.New(config.ErrExprSyntax)
	ErrFunction  = errors.New(config.ErrExprFunction)
	ErrNotFinite = errors.New(config.ErrExprNotFinite)
)

var constants = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
}

// Evaluate computes an arithmetic expression such as "2 × (3 + 4)^2 ÷ sin(30)".
//
// Grammar, lowest precedence first:
//
//	expr    = term { ("+" | "-" | "−") term }
//	term    = unary { ("*" | "×" | "/" | "÷") unary | implicit-multiplication }
//	unary   = ("-" | "−" | "+") unary | power
//	power   = postfix [ "^" unary ]
//	postfix = primary { "!" | "%" }
//	primary = number | constant | function primary | "(" expr ")"
//
// A constant, function or parenthesis right after an operand multiplies it (2π, 3(4+1)).
//
// Powers associate to the right and bind tighter than a leading minus, so -2^2 is -4.
// Trigonometric functions follow mode.
func Evaluate(expr string, mode AngleMode) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, ErrEmpty
	}
	if len(expr) > config.MaxExpressionLength {
		return 0, ErrTooLong
	}

	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{toks: toks, mode: mode}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, p.unexpected(t)
	}
	if !finite(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	num  float64
	pos  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r >= '0' && r <= '9' || r == '.':
			n, end, err := scanNumber(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, num: n, text: s[i:end], pos: i})
			i = end
		case unicode.IsLetter(r) || r == '√':
			start := i
			if r == '√' {
				i += size
			} else {
				for i < len(s) {
					r2, sz := utf8.DecodeRuneInString(s[i:])
					if !unicode.IsLetter(r2) {
						break
					}
					i += sz
				}
			}
			toks = append(toks, token{kind: tokIdent, text: strings.ToLower(s[start:i]), pos: start})
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i += size
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i += size
		case strings.ContainsRune("+-−*×/÷^!%", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i += size
		default:
			return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, r, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)}), nil
}

// scanNumber reads a decimal literal with an optional exponent starting at s[start].
// An "e" only starts an exponent when digits follow, so "2e" is 2 times e.
func scanNumber(s string, start int) (float64, int, error) {
	i := start
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad number %q at position %d", ErrSyntax, s[start:i], start)
	}
	return v, i, nil
}

type parser struct {
	toks []token
	pos  int
	mode AngleMode
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, t.text, t.pos)
}

func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for p.isOp("+", "-", "−") {
		op := p.next().text
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

// startsPrimary reports whether the next token can begin an implicit product, as in 2π or 3(4).
func (p *parser) startsPrimary() bool {
	switch p.peek().kind {
	case tokIdent, tokLParen:
		return true
	}
	return false
}

func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.isOp("*", "×"):
			p.next()
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case p.isOp("/", "÷"):
			p.next()
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			v /= rhs
		case p.startsPrimary():
			rhs, err := p.power()
			if err != nil {
				return 0, err
			}
			v *= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	if p.isOp("-", "−") {
		p.next()
		v, err := p.unary()
		return -v, err
	}
	if p.isOp("+") {
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (float64, error) {
	base, err := p.postfix()
	if err != nil {
		return 0, err
	}
	if p.isOp("^") {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) postfix() (float64, error) {
	v, err := p.primary()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.isOp("!"):
			p.next()
			v = Factorial(v)
		case p.isOp("%"):
			p.next()
			v /= 100
		default:
			return v, nil
		}
	}
}

func (p *parser) primary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek().kind != tokRParen {
			return 0, p.unexpected(p.peek())
		}
		p.next()
		return v, nil
	case tokIdent:
		if c, ok := constants[t.text]; ok {
			return c, nil
		}
		name := t.text
		if name == "√" {
			name = "sqrt"
		}
		fn, ok := unaryFuncs[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q at position %d", ErrFunction, t.text, t.pos)
		}
		arg, err := p.primary()
		if err != nil {
			return 0, err
		}
		return fn(arg, p.mode), nil
	}
	return 0, p.unexpected(t)
}
