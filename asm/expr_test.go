package asm

import (
	"testing"

	"github.com/beevik/gosparc/reloc"
	"github.com/retroenv/retrogolib/assert"
)

// A labelTable resolves labels but no equates.
type labelTable map[string]int64

func (l labelTable) equate(name string) (reloc.Expr, bool) {
	return reloc.Expr{}, false
}

func (l labelTable) label(name string) (int64, bool) {
	v, ok := l[name]
	return v, ok
}

func TestExprConstants(t *testing.T) {
	tests := []struct {
		text  string
		value int64
	}{
		{"1", 1},
		{"0x10", 16},
		{"0XfF", 255},
		{"010", 8},
		{"0", 0},
		{"0b101", 5},
		{"-1", -1},
		{"~0", -1},
		{"+7", 7},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-4-3", 3},
		{"(1<<4)|1", 17},
		{"0x80>>4", 8},
		{"6&3", 2},
		{"6^3", 5},
		{"2*-3", -6},
		{"7/2", 3},
		{"0xffffffffffffffff", -1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, n, err := Symbols{}.Evaluate(tt.text)
			assert.NoError(t, err)
			assert.True(t, v.IsConstant())
			assert.Equal(t, tt.value, v.Addend)
			assert.Equal(t, len(tt.text), n)
		})
	}
}

func TestExprSymbols(t *testing.T) {
	syms := Symbols{"a": 4}

	v, n, err := syms.Evaluate("a*2+1")
	assert.NoError(t, err)
	assert.Equal(t, reloc.Expr{Addend: 9}, v)
	assert.Equal(t, 5, n)

	v, _, err = syms.Evaluate("foo+8")
	assert.NoError(t, err)
	assert.Equal(t, reloc.Expr{Symbol: "foo", Addend: 8}, v)

	v, _, err = syms.Evaluate("a+foo-2")
	assert.NoError(t, err)
	assert.Equal(t, reloc.Expr{Symbol: "foo", Addend: 2}, v)

	v, _, err = syms.Evaluate("foo-foo")
	assert.NoError(t, err)
	assert.Equal(t, reloc.Expr{}, v)

	v, _, err = syms.Evaluate(".L1$x")
	assert.NoError(t, err)
	assert.Equal(t, ".L1$x", v.Symbol)
}

func TestExprLabelDifference(t *testing.T) {
	var p exprParser
	labels := labelTable{"start": 8, "end": 32}

	v, _, err := evaluate(&p, "end-start", labels)
	assert.NoError(t, err)
	assert.Equal(t, reloc.Expr{Addend: 24}, v)

	v, _, err = evaluate(&p, "(end+4)-(start-4)", labels)
	assert.NoError(t, err)
	assert.Equal(t, reloc.Expr{Addend: 32}, v)

	// Unknown labels cannot be subtracted at assembly time.
	_, _, err = evaluate(&p, "end-elsewhere", labels)
	assert.ErrorContains(t, err, "expression too complex")
}

func TestExprStopsAtOperandSyntax(t *testing.T) {
	tests := []struct {
		text string
		n    int
	}{
		{"3,%g1", 1},
		{"3 , %g1", 2},
		{"4]", 1},
		{"0x80 #ASI", 5},
		{"sym+4]", 5},
	}
	for _, tt := range tests {
		_, n, err := Symbols{}.Evaluate(tt.text)
		assert.NoError(t, err, tt.text)
		assert.Equal(t, tt.n, n, tt.text)
	}
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		text string
		err  string
	}{
		{"1/0", "division by zero"},
		{"foo*2", "expression too complex"},
		{"-foo", "expression too complex"},
		{"(1+2", "Mismatched parentheses"},
		{"1+2)", "Mismatched parentheses"},
		{"1 2", "Expression syntax error"},
		{"09", "Invalid digit in number"},
		{"1+", "Expression syntax error"},
		{"", "Expression expected"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, _, err := Symbols{}.Evaluate(tt.text)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}
