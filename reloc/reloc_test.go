// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reloc

import (
	"debug/elf"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestPatchFields(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		kind Kind
		val  int64
		want uint32
	}{
		{"call forward", 0x40000000, WDisp30, 0x1c, 0x40000008},
		{"call backward", 0x40000000, WDisp30, -12, 0x7ffffffe},
		{"bicc", 0x10800000, WDisp22, 4, 0x10800002},
		{"bpcc", 0x10480000, WDisp19, -8, 0x104fffff},
		{"bpr split", 0x02c00000, WDisp16, 0x10000, 0x02d00001},
		{"sethi hi", 0x03000000, HI22, 0x12345678, 0x03048d15},
		{"sethi uhi", 0x03000000, HH22, 0x1234567800000000, 0x03048d15},
		{"or lo", 0x82106000, LO10, 0x12345678, 0x82106278},
		{"or ulo", 0x82106000, HM10, 0x1234567800000000, 0x82106278},
		{"simm13 negative", 0x82006000, SPARC13, -1, 0x82007fff},
		{"simm13 max", 0x82006000, SPARC13, 4095, 0x82006fff},
		{"simm11", 0x80000000, SPARC11, 0x3ff, 0x800003ff},
		{"simm10", 0x80000000, SPARC10, -2, 0x800003fe},
		{"shift count", 0x83287000, SPARC6, 63, 0x8328703f},
		{"imm22", 0x00000000, SPARC22, 0x3fffff, 0x003fffff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Patch(tt.word, tt.kind, tt.val)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatchStrictOverflow(t *testing.T) {
	for _, v := range []int64{4096, -4097, 0x10000} {
		word, err := Patch(0x82006000, SPARC13, v)
		var oe *OverflowError
		assert.True(t, errors.As(err, &oe))
		assert.Equal(t, SeverityError, oe.Severity)
		assert.Equal(t, uint32(0x82006000)|uint32(v)&0x1fff, word)
	}

	for v := int64(-4096); v <= 4095; v += 511 {
		word, err := Patch(0x82006000, SPARC13, v)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0x82006000)|uint32(v)&0x1fff, word)
	}
}

func TestPatchAdvisoryOverflow(t *testing.T) {
	_, err := Patch(0x10800000, WDisp22, 0x1000000)
	var oe *OverflowError
	assert.True(t, errors.As(err, &oe))
	assert.Equal(t, SeverityWarning, oe.Severity)
	assert.ErrorContains(t, err, "relocation overflow")

	_, err = Patch(0, None, 0)
	assert.ErrorContains(t, err, "bad or unhandled relocation type")
}

func TestApplyData(t *testing.T) {
	code := make([]byte, 16)
	fixups := []*Fixup{
		{Offset: 0, Size: 1, Kind: Data8},
		{Offset: 2, Size: 2, Kind: Data16},
		{Offset: 4, Size: 4, Kind: Data32},
		{Offset: 8, Size: 8, Kind: Data64},
	}
	vals := []int64{-1, 0x1234, 0x89abcdef, 0x0102030405060708}
	for i, f := range fixups {
		assert.NoError(t, Apply(code, f, vals[i]))
		assert.True(t, f.Done)
	}
	assert.Equal(t, []byte{
		0xff, 0x00, 0x12, 0x34, 0x89, 0xab, 0xcd, 0xef,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}, code)

	err := Apply(code, &Fixup{Offset: 0, Size: 1, Kind: Data8}, 0x100)
	assert.ErrorContains(t, err, "relocation overflow")

	err = Apply(code, &Fixup{Offset: 14, Size: 4, Kind: Data32}, 0)
	assert.ErrorContains(t, err, "outside section")
}

func TestApplyInstruction(t *testing.T) {
	code := []byte{0x40, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	f := &Fixup{Offset: 0, Size: 4, Kind: WDisp30, PCRel: true}
	from := PCRelFrom(f, 0x1000, false)
	assert.Equal(t, int64(0x1004), from)

	assert.NoError(t, Apply(code, f, 0x1020-from))
	assert.True(t, f.Done)
	assert.Equal(t, []byte{0x40, 0x00, 0x00, 0x08}, code[:4])
}

func TestApplyExternLeavesCode(t *testing.T) {
	code := []byte{0x03, 0x00, 0x00, 0x00}
	f := &Fixup{Size: 4, Kind: HI22, Expr: Expr{Symbol: "ext", Addend: 8}, Extern: true}
	assert.NoError(t, Apply(code, f, 8))
	assert.False(t, f.Done)
	assert.Equal(t, int64(8), f.Value)
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00}, code)
}

func TestPCRelFromPIC(t *testing.T) {
	f := &Fixup{Offset: 8, Size: 4, Kind: WDisp30, Expr: Expr{Symbol: "printf"}}
	assert.Equal(t, int64(8), PCRelFrom(f, 0, true))
	assert.Equal(t, int64(12), PCRelFrom(f, 0, false))
	f.SectionSymbol = true
	assert.Equal(t, int64(12), PCRelFrom(f, 0, true))
}

func TestExternalize(t *testing.T) {
	ext := Symbol{Name: "data", Global: true, Defined: true}
	undef := Symbol{Name: "printf"}
	local := Symbol{Name: "loop", Defined: true}
	got := Symbol{Name: GOTSymbol}

	tests := []struct {
		name string
		kind Kind
		sym  Symbol
		pic  bool
		want elf.R_SPARC
	}{
		{"hi absolute", HI22, ext, false, elf.R_SPARC_HI22},
		{"hi pic", HI22, ext, true, elf.R_SPARC_GOT22},
		{"lo pic", LO10, ext, true, elf.R_SPARC_GOT10},
		{"hi pic got base", HI22, got, true, elf.R_SPARC_PC22},
		{"lo pic got base", LO10, got, true, elf.R_SPARC_PC10},
		{"simm13 pic", SPARC13, ext, true, elf.R_SPARC_GOT13},
		{"call undefined pic", WDisp30, undef, true, elf.R_SPARC_WPLT30},
		{"call global pic", WDisp30, ext, true, elf.R_SPARC_WPLT30},
		{"call local pic", WDisp30, local, true, elf.R_SPARC_WDISP30},
		{"call no pic", WDisp30, undef, false, elf.R_SPARC_WDISP30},
		{"branch", WDisp22, undef, true, elf.R_SPARC_WDISP22},
		{"word", Data32, ext, true, elf.R_SPARC_32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fixup{Offset: 4, Size: 4, Kind: tt.kind, PCRel: tt.kind.PCRelative(), Expr: Expr{Symbol: tt.sym.Name}, Extern: true}
			r, err := Externalize(f, tt.sym, ExternOptions{PIC: tt.pic})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, r.Type)
			assert.Equal(t, tt.sym.Name, r.Symbol)
			assert.Equal(t, int64(4), r.Offset)
		})
	}
}

func TestExternalizeAddend(t *testing.T) {
	// Non-PC-relative kinds take the value recorded by Apply.
	f := &Fixup{Offset: 0, Size: 4, Kind: HI22, Expr: Expr{Symbol: ".text", Addend: 0}, Extern: true, SectionSymbol: true}
	assert.NoError(t, Apply(nil, f, 0x40))
	r, err := Externalize(f, Symbol{Name: ".text", Defined: true, Section: true}, ExternOptions{})
	assert.NoError(t, err)
	assert.Equal(t, int64(0x40), r.Addend)

	// PC-relative kinds against a symbol take the expression addend.
	f = &Fixup{Offset: 8, Size: 4, Kind: WDisp30, PCRel: true, Expr: Expr{Symbol: "printf", Addend: 4}, Extern: true}
	assert.NoError(t, Apply(nil, f, 4))
	r, err = Externalize(f, Symbol{Name: "printf"}, ExternOptions{})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), r.Addend)

	// PC-relative kinds against a section are rebased onto the section.
	f = &Fixup{Offset: 8, Size: 4, Kind: WDisp22, PCRel: true, Expr: Expr{Symbol: ".text"}, Extern: true, SectionSymbol: true}
	assert.NoError(t, Apply(nil, f, 0x20-12))
	r, err = Externalize(f, Symbol{Name: ".text", Defined: true, Section: true}, ExternOptions{})
	assert.NoError(t, err)
	assert.Equal(t, int64(0x20), r.Addend)

	// The section base is added once.
	r, err = Externalize(f, Symbol{Name: ".text", Defined: true, Section: true}, ExternOptions{Base: 0x1000})
	assert.NoError(t, err)
	assert.Equal(t, int64(0x1020), r.Addend)
	assert.Equal(t, int64(0x1008), r.Offset)
}

func TestExternalizeRejects(t *testing.T) {
	f := &Fixup{Kind: SPARC5, Extern: true}
	_, err := Externalize(f, Symbol{Name: "x"}, ExternOptions{})
	assert.ErrorContains(t, err, "can't export reloc type")
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "WDISP30", WDisp30.String())
	assert.Equal(t, elf.R_SPARC_HH22, HH22.ELF())
	assert.True(t, WDisp19.PCRelative())
	assert.False(t, LO10.PCRelative())
	assert.Equal(t, "sym+4", Expr{Symbol: "sym", Addend: 4}.String())
	assert.Equal(t, "sym-4", Expr{Symbol: "sym", Addend: -4}.String())
}
