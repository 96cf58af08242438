// Package expr evaluates the restricted arithmetic sub-language accepted
// in ledger commands. The only constructs that exist are numeric
// literals, the four binary operators + - * /, unary sign, and
// parentheses. The node set is a closed enum and evaluation matches on
// it exhaustively, so anything a future parser change might sneak in is
// rejected structurally, not just at the character level.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidExpression is returned for empty input and for any
	// syntax the grammar cannot parse.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrDisallowedOperation is returned when the input contains a
	// character or a node outside the whitelisted arithmetic set.
	ErrDisallowedOperation = errors.New("disallowed operation")
)

type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

type unaryOp int

const (
	opIdentity unaryOp = iota
	opNegate
)

type nodeKind int

const (
	nodeLiteral nodeKind = iota
	nodeBinary
	nodeUnary
)

// node is a tagged variant: exactly one of the kind-specific field sets
// is meaningful, selected by kind.
type node struct {
	kind nodeKind

	value float64 // nodeLiteral

	bin   binOp // nodeBinary
	left  *node
	right *node

	unary   unaryOp // nodeUnary
	operand *node
}

// Eval parses and evaluates a restricted arithmetic expression.
// Whitespace is stripped first; an empty result is ErrInvalidExpression.
func Eval(input string) (float64, error) {
	s := strings.ReplaceAll(input, " ", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	for _, r := range s {
		if !isAllowed(r) {
			return 0, fmt.Errorf("%w: character %q", ErrDisallowedOperation, r)
		}
	}

	p := &parser{input: s}
	root, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, p.input[p.pos:])
	}
	return eval(root)
}

func isAllowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')':
		return true
	}
	return false
}

// parser is a recursive-descent parser over the usual precedence
// levels: unary sign binds tighter than * /, which bind tighter than
// + -, and parentheses override everything.
type parser struct {
	input string
	pos   int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// parseExpr handles + and -.
func (p *parser) parseExpr() (*node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '+' && c != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := opAdd
		if c == '-' {
			op = opSub
		}
		left = &node{kind: nodeBinary, bin: op, left: left, right: right}
	}
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (*node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := opMul
		if c == '/' {
			op = opDiv
		}
		left = &node{kind: nodeBinary, bin: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (*node, error) {
	c, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}
	if c == '+' || c == '-' {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := opIdentity
		if c == '-' {
			op = opNegate
		}
		return &node{kind: nodeUnary, unary: op, operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*node, error) {
	c, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}
	if c == '(' {
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c, ok = p.peek()
		if !ok || c != ')' {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.pos++
		return inner, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (*node, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return nil, fmt.Errorf("%w: expected number at %q", ErrInvalidExpression, p.input[start:])
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, p.input[start:p.pos])
	}
	return &node{kind: nodeLiteral, value: v}, nil
}

// eval reduces the tree. Every switch carries a default returning
// ErrDisallowedOperation so the whitelist holds even against a node the
// parser was never supposed to build.
func eval(n *node) (float64, error) {
	switch n.kind {
	case nodeLiteral:
		return n.value, nil
	case nodeBinary:
		left, err := eval(n.left)
		if err != nil {
			return 0, err
		}
		right, err := eval(n.right)
		if err != nil {
			return 0, err
		}
		switch n.bin {
		case opAdd:
			return left + right, nil
		case opSub:
			return left - right, nil
		case opMul:
			return left * right, nil
		case opDiv:
			if right == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrInvalidExpression)
			}
			return left / right, nil
		default:
			return 0, fmt.Errorf("%w: binary operator %d", ErrDisallowedOperation, n.bin)
		}
	case nodeUnary:
		v, err := eval(n.operand)
		if err != nil {
			return 0, err
		}
		switch n.unary {
		case opIdentity:
			return v, nil
		case opNegate:
			return -v, nil
		default:
			return 0, fmt.Errorf("%w: unary operator %d", ErrDisallowedOperation, n.unary)
		}
	default:
		return 0, fmt.Errorf("%w: node kind %d", ErrDisallowedOperation, n.kind)
	}
}
