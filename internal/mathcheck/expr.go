package mathcheck

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Only arithmetic may reach the evaluator.
var exprAllowRe = regexp.MustCompile(`^[0-9+\-*/^().\s]+$`)

var (
	errSyntax       = errors.New("syntax error")
	errDivideByZero = errors.New("division by zero")
	errTooDeep      = errors.New("expression nested too deeply")
	errExponent     = errors.New("exponent out of range")
	errNotFinite    = errors.New("result is not finite")
)

// EvaluateSimpleExpression evaluates an arithmetic expression made only of
// numbers, + - * / ^ and parentheses. Anything outside that alphabet is
// refused before parsing starts. Malformed input, division by zero,
// oversized exponents and non-finite results all report false.
func (c *Checker) EvaluateSimpleExpression(s string) (float64, bool) {
	v, err := c.evaluate(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *Checker) evaluate(s string) (float64, error) {
	if utf8.RuneCountInString(s) > c.cfg.MaxInputLen {
		return 0, fmt.Errorf("input longer than %d characters", c.cfg.MaxInputLen)
	}
	if !exprAllowRe.MatchString(s) {
		return 0, fmt.Errorf("%w: character outside the arithmetic alphabet", errSyntax)
	}

	toks, err := tokenize(s)
	if err != nil {
		return 0, err
	}

	p := &exprParser{toks: toks, maxDepth: c.cfg.MaxDepth, maxExp: c.cfg.MaxExponent}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, fmt.Errorf("%w: unexpected %q", errSyntax, p.toks[p.pos].text)
	}
	if !isFinite(v) {
		return 0, errNotFinite
	}
	return v, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v':
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '^':
			toks = append(toks, token{kind: tokOp, text: s[i : i+1]})
			i++
		case isDigit(ch) || ch == '.':
			start := i
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			if i < len(s) && s[i] == '.' {
				i++
				for i < len(s) && isDigit(s[i]) {
					i++
				}
			}
			text := s[start:i]
			if text == "." {
				return nil, fmt.Errorf("%w: lone decimal point", errSyntax)
			}
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", errSyntax, text)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: n})
		default:
			return nil, fmt.Errorf("%w: unexpected %q", errSyntax, ch)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", errSyntax)
	}
	return toks, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// exprParser is a recursive-descent evaluator for
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | "(" expr ")"
//
// so ^ is right associative and binds tighter than a leading minus.
type exprParser struct {
	toks     []token
	pos      int
	depth    int
	maxDepth int
	maxExp   float64
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) peekOp(ops ...string) (string, bool) {
	t, ok := p.peek()
	if !ok || t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			return op, true
		}
	}
	return "", false
}

func (p *exprParser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return errTooDeep
	}
	return nil
}

func (p *exprParser) leave() { p.depth-- }

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("+", "-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("*", "/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			left *= right
			continue
		}
		if right == 0 {
			return 0, errDivideByZero
		}
		left /= right
	}
}

// parseUnary and parsePower count one depth level per sign or chained
// power they recurse through; parsePrimary counts one per parenthesis.
func (p *exprParser) parseUnary() (float64, error) {
	op, ok := p.peekOp("+", "-")
	if !ok {
		return p.parsePower()
	}
	if err := p.enter(); err != nil {
		return 0, err
	}
	defer p.leave()

	p.pos++
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if op == "-" {
		return -v, nil
	}
	return v, nil
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if _, ok := p.peekOp("^"); !ok {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return 0, err
	}
	defer p.leave()

	p.pos++
	exp, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	// Only growth is bounded: 2^-11 is a small, well-defined number.
	if exp > p.maxExp {
		return 0, errExponent
	}
	v := math.Pow(base, exp)
	if !isFinite(v) {
		return 0, errNotFinite
	}
	return v, nil
}

func (p *exprParser) parsePrimary() (float64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of expression", errSyntax)
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		return t.num, nil
	case tokLParen:
		if err := p.enter(); err != nil {
			return 0, err
		}
		defer p.leave()

		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if t, ok := p.peek(); !ok || t.kind != tokRParen {
			return 0, fmt.Errorf("%w: missing closing parenthesis", errSyntax)
		}
		p.pos++
		return v, nil
	default:
		return 0, fmt.Errorf("%w: unexpected %q", errSyntax, t.text)
	}
}
