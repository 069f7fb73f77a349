package asm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/gosparc/reloc"
)

//
// exprOp
//

type exprOp byte

const (
	// operators in descending order of precedence

	// unary operations
	opUnaryMinus exprOp = iota
	opUnaryPlus
	opBitwiseNEG

	// binary operations
	opMultiply
	opDivide
	opAdd
	opSubtract
	opShiftLeft
	opShiftRight
	opBitwiseAND
	opBitwiseXOR
	opBitwiseOR

	// value "operations"
	opNumber
	opIdentifier

	// pseudo-operations (used only during parsing but not stored in expr's)
	opLeftParen
	opRightParen
)

type opdata struct {
	precedence      byte
	binary          bool
	leftAssociative bool
	symbol          string
	eval            func(a, b int64) int64
}

var ops = []opdata{
	// unary and binary operations
	{7, false, false, "-", func(a, b int64) int64 { return -a }},         // uminus
	{7, false, false, "+", func(a, b int64) int64 { return a }},          // uplus
	{7, false, false, "~", func(a, b int64) int64 { return ^a }},         // bitneg
	{6, true, true, "*", func(a, b int64) int64 { return a * b }},        // multiply
	{6, true, true, "/", func(a, b int64) int64 { return a / b }},        // divide
	{5, true, true, "+", func(a, b int64) int64 { return a + b }},        // add
	{5, true, true, "-", func(a, b int64) int64 { return a - b }},        // subtract
	{4, true, true, "<<", func(a, b int64) int64 { return a << uint64(b) }}, // shift_left
	{4, true, true, ">>", func(a, b int64) int64 { return a >> uint64(b) }}, // shift_right
	{3, true, true, "&", func(a, b int64) int64 { return a & b }},        // and
	{2, true, true, "^", func(a, b int64) int64 { return a ^ b }},        // xor
	{1, true, true, "|", func(a, b int64) int64 { return a | b }},        // or

	// value operations
	{0, false, false, "", nil}, // number
	{0, false, false, "", nil}, // identifier

	// pseudo-operations
	{0, false, false, "", nil}, // lparen
	{0, false, false, "", nil}, // rparen
}

func (op exprOp) isBinary() bool {
	return ops[op].binary
}

func (op exprOp) eval(a, b int64) int64 {
	return ops[op].eval(a, b)
}

func (op exprOp) symbol() string {
	return ops[op].symbol
}

func (op exprOp) isCollapsible() bool {
	return ops[op].precedence > 0
}

// Compare the precendence and associativity of 'op' to 'other'.
// Return true if the shunting yard algorithm should cause an
// expression node collapse.
func (op exprOp) collapses(other exprOp) bool {
	if ops[op].leftAssociative {
		return ops[op].precedence <= ops[other].precedence
	}
	return ops[op].precedence < ops[other].precedence
}

//
// expr
//

// An expr represents a single node in a binary expression tree.
// The root node represents an entire expression.
type expr struct {
	number     int64
	identifier fstring
	op         exprOp
	child0     *expr
	child1     *expr
}

// Return the expression as a postfix notation string.
func (e *expr) String() string {
	switch {
	case e.op == opNumber:
		return fmt.Sprintf("%d", e.number)
	case e.op == opIdentifier:
		return e.identifier.str
	case e.op.isBinary():
		return fmt.Sprintf("%s %s %s", e.child0.String(), e.child1.String(), e.op.symbol())
	case !e.op.isBinary():
		return fmt.Sprintf("%s [%s]", e.child0.String(), e.op.symbol())
	default:
		return ""
	}
}

// A symtab resolves the identifiers of an expression.
type symtab interface {
	// equate returns the value an equate assigned to name.
	equate(name string) (reloc.Expr, bool)

	// label returns the section offset of a label defined so far.
	label(name string) (int64, bool)
}

var errDivideByZero = errors.New("division by zero")

// Evaluate the expression tree. The result is either a constant or a
// symbol plus a constant; anything else is too complex to relocate.
func (e *expr) eval(st symtab) (reloc.Expr, error) {
	switch {
	case e.op == opNumber:
		return reloc.Expr{Addend: e.number}, nil

	case e.op == opIdentifier:
		if v, ok := st.equate(e.identifier.str); ok {
			return v, nil
		}
		return reloc.Expr{Symbol: e.identifier.str}, nil

	case e.op.isBinary():
		a, err := e.child0.eval(st)
		if err != nil {
			return a, err
		}
		b, err := e.child1.eval(st)
		if err != nil {
			return b, err
		}

		switch {
		case a.IsConstant() && b.IsConstant():
			if e.op == opDivide && b.Addend == 0 {
				return reloc.Expr{}, errDivideByZero
			}
			return reloc.Expr{Addend: e.op.eval(a.Addend, b.Addend)}, nil
		case e.op == opAdd && b.IsConstant():
			return reloc.Expr{Symbol: a.Symbol, Addend: a.Addend + b.Addend}, nil
		case e.op == opAdd && a.IsConstant():
			return reloc.Expr{Symbol: b.Symbol, Addend: a.Addend + b.Addend}, nil
		case e.op == opSubtract && b.IsConstant():
			return reloc.Expr{Symbol: a.Symbol, Addend: a.Addend - b.Addend}, nil
		case e.op == opSubtract && a.Symbol == b.Symbol:
			return reloc.Expr{Addend: a.Addend - b.Addend}, nil
		case e.op == opSubtract:
			la, aok := st.label(a.Symbol)
			lb, bok := st.label(b.Symbol)
			if aok && bok {
				return reloc.Expr{Addend: (la + a.Addend) - (lb + b.Addend)}, nil
			}
		}
		return reloc.Expr{}, fmt.Errorf("expression too complex: %s", e)

	default:
		a, err := e.child0.eval(st)
		if err != nil {
			return a, err
		}
		switch {
		case e.op == opUnaryPlus:
			return a, nil
		case !a.IsConstant():
			return reloc.Expr{}, fmt.Errorf("expression too complex: %s", e)
		}
		return reloc.Expr{Addend: e.op.eval(a.Addend, 0)}, nil
	}
}

//
// token
//

type tokentype byte

const (
	tokenNil tokentype = iota
	tokenOp
	tokenNumber
	tokenIdentifier
	tokenLeftParen
	tokenRightParen
)

func (tt tokentype) isValue() bool {
	return tt == tokenNumber || tt == tokenIdentifier
}

type token struct {
	tt         tokentype
	number     int64
	identifier fstring
	op         exprOp
}

// Characters that end an expression without being part of it. They
// belong to the instruction operand syntax around the expression.
func exprEnd(c byte) bool {
	return c == ',' || c == '[' || c == ']' || c == '%' || c == '#'
}

//
// exprParser
//

type exprParser struct {
	operandStack  exprStack
	operatorStack opStack
	parenCounter  int
	prevToken     token
	errors        []asmerror
}

// Parse an expression from the line. Parsing stops at the end of the
// line or at the first character that cannot continue the expression.
func (p *exprParser) parse(line fstring) (e *expr, out fstring, err error) {
	p.errors = nil
	p.prevToken = token{}
	out = line

	// Process expression using Dijkstra's shunting-yard algorithm
	for err == nil {

		// Parse the next expression token
		var token token
		token, out, err = p.parseToken(line)
		if err != nil {
			break
		}

		// We're done when the token parser returns the nil token
		if token.tt == tokenNil {
			break
		}

		// Handle each possible token type
		switch token.tt {

		case tokenNumber:
			p.operandStack.push(&expr{op: opNumber, number: token.number})

		case tokenIdentifier:
			p.operandStack.push(&expr{op: opIdentifier, identifier: token.identifier})

		case tokenOp:
			for err == nil && !p.operatorStack.empty() && token.op.collapses(p.operatorStack.peek()) {
				err = p.operandStack.collapse(p.operatorStack.pop())
				if err != nil {
					p.addError(line, "Expression syntax error 1")
				}
			}
			p.operatorStack.push(token.op)

		case tokenLeftParen:
			p.operatorStack.push(opLeftParen)

		case tokenRightParen:
			for err == nil {
				if p.operatorStack.empty() {
					p.addError(line, "Mismatched parentheses")
					err = errParse
					break
				}
				op := p.operatorStack.pop()
				if op == opLeftParen {
					break
				}
				err = p.operandStack.collapse(op)
				if err != nil {
					p.addError(line, "Expression syntax error 2")
				}
			}

		}
		line = out
	}

	if err == nil && p.parenCounter > 0 {
		p.addError(line, "Mismatched parentheses")
		err = errParse
	}

	// Collapse any operators (and operands) remaining on the stack
	for err == nil && !p.operatorStack.empty() {
		err = p.operandStack.collapse(p.operatorStack.pop())
		if err != nil {
			p.addError(line, "Expression syntax error 3")
			err = errParse
		}
	}

	if err == nil {
		e = p.operandStack.peek()
		if e == nil || len(p.operandStack.data) > 1 {
			p.addError(line, "Expression expected")
			e, err = nil, errParse
		}
	}
	p.reset()
	return
}

// Attempt to parse the next token from the line.
func (p *exprParser) parseToken(line fstring) (t token, out fstring, err error) {
	if line.isEmpty() || line.startsWith(exprEnd) {
		t.tt, out = tokenNil, line
		return
	}
	switch {

	case line.startsWith(decimal):
		t.number, out, err = p.parseNumber(line)
		t.tt = tokenNumber
		if p.prevToken.tt.isValue() || p.prevToken.tt == tokenRightParen {
			p.addError(line, "Expression syntax error 4")
			err = errParse
		}

	case line.startsWithChar('('):
		p.parenCounter++
		t.tt, t.op = tokenLeftParen, opLeftParen
		out = line.consume(1)

	case line.startsWithChar(')'):
		if p.parenCounter == 0 {
			p.addError(line, "Mismatched parentheses")
			err = errParse
			out = line.consume(1)
		} else {
			p.parenCounter--
			t.tt, t.op, out = tokenRightParen, opRightParen, line.consume(1)
		}

	case line.startsWith(identifierStartChar):
		t.tt = tokenIdentifier
		t.identifier, out = line.consumeWhile(identifierChar)
		if p.prevToken.tt.isValue() || p.prevToken.tt == tokenRightParen {
			p.addError(line, "Expression syntax error 5")
			err = errParse
		}

	default:
		for i, o := range ops {
			if o.symbol != "" && line.startsWithString(o.symbol) {
				if o.binary || (!o.binary && !p.prevToken.tt.isValue() && p.prevToken.tt != tokenRightParen) {
					t.tt, t.op, out = tokenOp, exprOp(i), line.consume(len(o.symbol))
					break
				}
			}
		}
		if t.tt != tokenOp {
			p.addError(line, "Expression syntax error 6")
			err = errParse
		}
	}

	p.prevToken = t
	out = out.consumeWhitespace()
	return
}

// Parse a number from the line. The following numeric formats are allowed:
//
//	[1-9][0-9]*      Decimal number
//	0[0-7]*          Octal number
//	0x[0-9a-fA-F]+   Hexadecimal number
//	0b[01]+          Binary number
//
// Values up to 64 bits wide are accepted; unsigned values above the
// signed range wrap to negative numbers.
func (p *exprParser) parseNumber(line fstring) (value int64, remain fstring, err error) {
	// Select decimal, octal, hexadecimal or binary depending on the prefix
	base, fn := 10, decimal
	switch {
	case line.startsWithString("0x") || line.startsWithString("0X"):
		line = line.consume(2)
		base, fn = 16, hexadecimal
	case line.startsWithString("0b") || line.startsWithString("0B"):
		line = line.consume(2)
		base, fn = 2, binarynum
	case line.startsWithChar('0'):
		base, fn = 8, octal
	}

	// Consume the number and update the remaining line
	numstr, remain := line.consumeWhile(fn)
	if remain.startsWith(identifierChar) {
		p.addError(remain, "Invalid digit in number")
		return 0, remain, errParse
	}

	// Convert the string to an integer
	num64, converr := strconv.ParseUint(numstr.str, base, 64)
	if converr != nil {
		p.addError(numstr, "Failed to parse integer")
		err = errParse
	}

	return int64(num64), remain, err
}

func (p *exprParser) addError(line fstring, msg string) {
	p.errors = append(p.errors, asmerror{line, msg})
}

func (p *exprParser) reset() {
	p.operandStack.data, p.operatorStack.data = nil, nil
	p.parenCounter = 0
}

//
// exprStack
//

type exprStack struct {
	data []*expr
}

func (s *exprStack) empty() bool {
	return len(s.data) == 0
}

func (s *exprStack) push(e *expr) {
	s.data = append(s.data, e)
}

func (s *exprStack) pop() *expr {
	l := len(s.data)
	e := s.data[l-1]
	s.data = s.data[:l-1]
	return e
}

func (s *exprStack) peek() *expr {
	if len(s.data) == 0 {
		return nil
	}
	return s.data[len(s.data)-1]
}

// Collapse one or more expression nodes on the top of the
// stack into a combined expression node, and push the combined
// node back onto the stack.
func (s *exprStack) collapse(op exprOp) error {
	switch {
	case !op.isCollapsible():
		return errParse
	case op.isBinary():
		if len(s.data) < 2 {
			return errParse
		}
		s.push(&expr{op: op, child1: s.pop(), child0: s.pop()})
	default:
		if s.empty() {
			return errParse
		}
		s.push(&expr{op: op, child0: s.pop()})
	}
	return nil
}

//
// opStack
//

type opStack struct {
	data []exprOp
}

func (s *opStack) push(op exprOp) {
	s.data = append(s.data, op)
}

func (s *opStack) pop() exprOp {
	op := s.data[len(s.data)-1]
	s.data = s.data[0 : len(s.data)-1]
	return op
}

func (s *opStack) empty() bool {
	return len(s.data) == 0
}

func (s *opStack) peek() exprOp {
	return s.data[len(s.data)-1]
}

//
// evaluation entry points
//

// Symbols is an Evaluator over a fixed set of constant equates. Other
// identifiers evaluate to themselves as symbols. It serves callers that
// encode single instructions outside of a full assembly.
type Symbols map[string]int64

func (s Symbols) equate(name string) (reloc.Expr, bool) {
	v, ok := s[name]
	return reloc.Expr{Addend: v}, ok
}

func (s Symbols) label(name string) (int64, bool) {
	return 0, false
}

// Evaluate implements Evaluator.
func (s Symbols) Evaluate(text string) (reloc.Expr, int, error) {
	var p exprParser
	return evaluate(&p, text, s)
}

// evaluate parses and evaluates the expression at the start of text,
// returning its value and the number of bytes consumed.
func evaluate(p *exprParser, text string, st symtab) (reloc.Expr, int, error) {
	line := newFstring(0, 0, text)
	e, out, err := p.parse(line)
	if err != nil {
		if len(p.errors) > 0 {
			return reloc.Expr{}, 0, errors.New(p.errors[0].msg)
		}
		return reloc.Expr{}, 0, err
	}
	v, err := e.eval(st)
	if err != nil {
		return reloc.Expr{}, 0, err
	}
	return v, len(text) - len(out.str), nil
}
