// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/retrogolib/assert"
)

func TestCatalogSelfCheck(t *testing.T) {
	tbl, err := NewTable()
	assert.NoError(t, err)
	assert.NotNil(t, tbl)

	for _, d := range tbl.Descriptors() {
		if d.Match&d.Lose != 0 {
			t.Errorf("%s: match and lose overlap\n%s", d, spew.Sdump(d))
		}
		assert.Equal(t, len(d.Args), len(d.Operands))
	}
}

func TestCatalogLookup(t *testing.T) {
	tbl := Default()

	tests := []struct {
		name  string
		forms int
	}{
		{"add", 3},
		{"sub", 2},
		{"ld", 30},
		{"ldx", 12},
		{"nop", 1},
		{"set", 1},
		{"setx", 1},
		{"fcmpd", 5},
		{"ba", 2*6 + 2},
		{"ta", 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.forms, len(tbl.Lookup(tt.name)), tt.name)
	}

	assert.Len(t, tbl.Lookup("frobnicate"), 0)
	assert.True(t, tbl.Mnemonics() > 400)
}

func TestCatalogMacroFlags(t *testing.T) {
	tbl := Default()
	for _, name := range []string{"set", "setuw", "setsw", "setx", "fdivs", "fdivd", "fdivq"} {
		forms := tbl.Lookup(name)
		assert.True(t, len(forms) > 0, name)
		for _, d := range forms {
			assert.True(t, d.Flags&Macro != 0, name)
		}
	}
	for _, d := range tbl.Lookup("fbne") {
		assert.True(t, d.Flags&FloatBranch != 0)
		assert.True(t, d.Flags&Delayed != 0)
	}
	for _, d := range tbl.Lookup("faddd") {
		assert.True(t, d.Flags&Float != 0)
	}
}

func TestTableRejectsBrokenCatalog(t *testing.T) {
	list := []Descriptor{
		{Name: "good", Match: f3(2, 0, 0), Lose: f3(^2, ^0, ^0), Args: "1,2,d"},
		{Name: "overlap", Match: 0x1, Lose: 0x1, Args: ""},
		{Name: "badargs", Args: "1,%"},
		{Name: "good", Match: f3(2, 0, 1), Lose: f3(^2, ^0, ^1), Args: "1,i,d"},
	}

	_, err := newTable(list)
	var te *TableError
	assert.True(t, errors.As(err, &te))
	assert.Len(t, te.Problems, 3)
	assert.ErrorContains(t, err, "broken opcode table (3 problems)")
	assert.ErrorContains(t, err, "forms are not contiguous")
	assert.ErrorContains(t, err, "unknown operand code '%'")
}

func TestDescriptorMask(t *testing.T) {
	tbl := Default()

	// subx is gone in v9; subc replaces it.
	for _, d := range tbl.Lookup("subx") {
		m := d.Mask()
		assert.True(t, m.Has(V8))
		assert.True(t, m.Has(Sparclite))
		assert.False(t, m.Has(V9))
	}
	for _, d := range tbl.Lookup("subc") {
		assert.Equal(t, MaskOf(V9, V9a), d.Mask())
	}
}

// Any form accepted under a revision is accepted under every revision
// that includes it.
func TestMaskMonotonic(t *testing.T) {
	for _, d := range Default().Descriptors() {
		m := d.Mask()
		for _, l1 := range Archs() {
			if !m.Has(l1) {
				continue
			}
			for _, l2 := range Archs() {
				if !Includes(l2, l1) {
					continue
				}
				if d.Flags&NotV9 != 0 && Includes(l2, V9) {
					continue
				}
				s := NewArchState()
				s.Request(l2, false)
				_, err := s.Requires(d.Name, m)
				if err != nil {
					t.Errorf("%s accepted by %s but not by %s", d, l1, l2)
				}
			}
		}
	}
}

func TestCompileTemplate(t *testing.T) {
	ops, err := compileTemplate("[1+i],d")
	assert.NoError(t, err)
	assert.Len(t, ops, 7)
	assert.Equal(t, Operand(IntReg{'1', SlotRS1}), ops[1])
	assert.Equal(t, SlotRD, ops[6].(IntReg).Slot)

	imm := ops[3].(Immediate)
	assert.True(t, imm.InRange(4095))
	assert.True(t, imm.InRange(-4096))
	assert.False(t, imm.InRange(4096))
	assert.False(t, imm.InRange(-4097))

	ops, err = compileTemplate("1,X,d")
	assert.NoError(t, err)
	shift := ops[2].(Immediate)
	assert.True(t, shift.InRange(31))
	assert.True(t, shift.InRange(-16))
	assert.False(t, shift.InRange(32))
}

func TestSlotRoundTrip(t *testing.T) {
	for n := 0; n < 32; n++ {
		for _, s := range []Slot{SlotRS1, SlotRS2, SlotRD, SlotRS1RD, SlotRS2RD} {
			assert.Equal(t, n, s.Extract(s.Place(n)))
		}
		w := SlotRS1RD.Place(n)
		assert.Equal(t, n, RS1(w))
		w = SlotRS2RD.Place(n)
		assert.Equal(t, n, RS2(w))
	}
}
