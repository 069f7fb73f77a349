// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/beevik/gosparc/reloc"
	"github.com/beevik/gosparc/sparc"
	"github.com/retroenv/retrogolib/assert"
)

func encodeOne(t *testing.T, e *Encoder, line string) *Instruction {
	t.Helper()
	inst, err := e.EncodeLine(line)
	assert.NoError(t, err)
	assert.NotNil(t, inst)
	return inst
}

func TestEncodeWords(t *testing.T) {
	tests := []struct {
		line string
		word uint32
	}{
		{"add %g1, %g2, %g3", 0x86004002},
		{"add %r1, %r2, %r3", 0x86004002},
		{"add %1, 1, %3", 0x86006001},
		{"add %1, 1, %31", 0xbe006001},
		{"mov 5, %9", 0x92102005},
		{"mov %sp, %fp", 0xbc10000e},
		{"fadds %f1, %f2, %f3", 0x87a04822},
		{"lda [%o0] #ASI_P, %o1", 0xd2821000},
		{"lda [%o0] 0x80, %o1", 0xd2821000},
		{"membar #LoadLoad|#StoreStore", 0x8143e009},
		{"membar 9", 0x8143e009},
		{"ld [%o0+%lo(0x400)], %o1", 0xd2022000},
		{"ld [%o0+4], %o1", 0xd2022004},
		{"ld [4+%o0], %o1", 0xd2022004},
		{"ld [%o0-4], %o1", 0xd2023ffc},
		{"ret", 0x81c7e008},
		{"retl", 0x81c3e008},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			inst := encodeOne(t, NewEncoder(nil, nil, nil), tt.line)
			assert.Equal(t, []uint32{tt.word}, inst.Words)
		})
	}
}

func TestEncodeHighFloatRegisters(t *testing.T) {
	e := NewEncoder(nil, nil, nil)
	inst := encodeOne(t, e, "faddd %f32, %f34, %f36")
	assert.Equal(t, []uint32{0x8ba04843}, inst.Words)
	assert.Equal(t, sparc.V9, e.Arch().Current)

	// Singles have no upper bank.
	_, err := e.EncodeLine("fadds %f32, %f2, %f3")
	assert.ErrorContains(t, err, "Illegal operands: There are only 32 f registers; [0-31]")

	// Doubles must be even.
	_, err = e.EncodeLine("faddd %f1, %f2, %f4")
	assert.ErrorContains(t, err, "Illegal operands")

	_, err = e.EncodeLine("faddd %f64, %f2, %f4")
	assert.ErrorContains(t, err, "There are only 64 f registers; [0-63]")

	arch := sparc.NewArchState()
	arch.Request(sparc.V8, false)
	_, err = NewEncoder(nil, arch, nil).EncodeLine("faddd %f32, %f34, %f36")
	assert.ErrorContains(t, err, "There are only 32 f registers; [0-31]")
}

func TestRegisterRoundTrip(t *testing.T) {
	type spelling struct {
		text string
		n    int
	}
	var regs []spelling
	for n := 0; n < 32; n++ {
		regs = append(regs,
			spelling{fmt.Sprintf("%%%c%d", "goli"[n/8], n%8), n},
			spelling{fmt.Sprintf("%%r%d", n), n},
			spelling{fmt.Sprintf("%%%d", n), n})
	}
	regs = append(regs, spelling{"%fp", 30}, spelling{"%sp", 14})

	slots := []struct {
		format string
		decode func(uint32) int
	}{
		{"add %s, %%g0, %%g0", sparc.RS1},
		{"add %%g0, %s, %%g0", sparc.RS2},
		{"add %%g0, %%g0, %s", sparc.RD},
	}
	for _, slot := range slots {
		for _, r := range regs {
			line := fmt.Sprintf(slot.format, r.text)
			inst, err := NewEncoder(nil, nil, nil).EncodeLine(line)
			assert.NoError(t, err, line)
			assert.Equal(t, r.n, slot.decode(inst.Words[0]), line)
		}
	}

	// Doubles above %f31 keep bit 5 in bit 0 of the field.
	fslots := []struct {
		format string
		decode func(uint32) int
	}{
		{"faddd %%f%d, %%f0, %%f0", sparc.RS1},
		{"faddd %%f0, %%f%d, %%f0", sparc.RS2},
		{"faddd %%f0, %%f0, %%f%d", sparc.RD},
	}
	for _, slot := range fslots {
		for n := 0; n < 64; n += 2 {
			line := fmt.Sprintf(slot.format, n)
			e := NewEncoder(nil, nil, nil)
			inst, err := e.EncodeLine(line)
			assert.NoError(t, err, line)
			field := slot.decode(inst.Words[0])
			assert.Equal(t, n, field&0x1e|(field&1)<<5, line)
			if n >= 32 {
				assert.Equal(t, sparc.V9, e.Arch().Current, line)
			}
		}
	}
}

func TestEncodeArchMismatch(t *testing.T) {
	arch := sparc.NewArchState()
	arch.Request(sparc.V8, false)
	e := NewEncoder(nil, arch, nil)

	_, err := e.EncodeLine("ldx [%o0], %o1")
	var ae *sparc.ArchMismatchError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "ldx [%o0],%o1", ae.Insn)
	assert.Equal(t, sparc.V8, ae.Available)
	assert.Equal(t, sparc.V8, arch.Current)

	// A v9 mnemonic with an older form still encodes.
	inst := encodeOne(t, e, "ld [%o0], %o1")
	assert.Equal(t, []uint32{0xd2020000}, inst.Words)
}

func TestEncodeBump(t *testing.T) {
	arch := sparc.NewArchState()
	arch.Request(sparc.V7, true)
	e := NewEncoder(nil, arch, nil)

	inst := encodeOne(t, e, "umul %o0, %o1, %o2")
	assert.True(t, inst.Bump.Bumped)
	assert.Equal(t, sparc.V8, inst.Bump.To)
	assert.Len(t, inst.Warnings, 1)
	assert.Equal(t, `architecture bumped from "v7" to "v8" on "umul %o0,%o1,%o2"`, inst.Warnings[0])

	// Already at v8: no second report.
	inst = encodeOne(t, e, "smul %o0, %o1, %o2")
	assert.False(t, inst.Bump.Bumped)
	assert.Empty(t, inst.Warnings)
}

func TestEncodeVendorBump(t *testing.T) {
	e := NewEncoder(nil, nil, nil)
	inst := encodeOne(t, e, "scan %o0, %o1, %o2")
	assert.True(t, inst.Bump.Bumped)
	assert.Equal(t, sparc.Sparclite, e.Arch().Current)

	// sparclite and v9 cannot both be satisfied.
	_, err := e.EncodeLine("popc %o0, %o1")
	var ae *sparc.ArchMismatchError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, sparc.Sparclite, e.Arch().Current)

	arch := sparc.NewArchState()
	arch.Request(sparc.V8, false)
	_, err = NewEncoder(nil, arch, nil).EncodeLine("scan %o0, %o1, %o2")
	assert.ErrorContains(t, err, "Architecture mismatch")
}

func TestEncodeBranchForms(t *testing.T) {
	e := NewEncoder(nil, nil, nil)

	inst := encodeOne(t, e, "ba,a target")
	assert.Equal(t, []uint32{0x30800000}, inst.Words)
	assert.Len(t, inst.Fixups, 1)
	assert.Equal(t, reloc.WDisp22, inst.Fixups[0].Kind)
	assert.True(t, inst.Fixups[0].PCRel)
	assert.Equal(t, reloc.Expr{Symbol: "target"}, inst.Fixups[0].Expr)

	inst = encodeOne(t, e, "bne,pt %xcc, target")
	assert.Equal(t, []uint32{0x12680000}, inst.Words)
	assert.Equal(t, reloc.WDisp19, inst.Fixups[0].Kind)

	inst = encodeOne(t, e, "bne,a,pn %icc, target")
	assert.Equal(t, []uint32{0x32400000}, inst.Words)

	inst = encodeOne(t, e, "brz,a %o0, target")
	assert.Equal(t, []uint32{0x22ca0000}, inst.Words)
	assert.Equal(t, reloc.WDisp16, inst.Fixups[0].Kind)
}

func TestEncodeResolve(t *testing.T) {
	e := NewEncoder(nil, nil, nil)
	inst := encodeOne(t, e, "ba 0x1010")
	assert.False(t, inst.Fixups[0].Done)

	assert.NoError(t, inst.Resolve(0x1000))
	assert.Equal(t, []uint32{0x10800004}, inst.Words)
	assert.True(t, inst.Fixups[0].Done)
}

func TestEncodeSymbols(t *testing.T) {
	e := NewEncoder(nil, nil, Symbols{"SIZE": 16})
	inst := encodeOne(t, e, "add %o0, SIZE*2, %o0")
	assert.Equal(t, []uint32{0x90022020}, inst.Words)
	assert.True(t, inst.Fixups[0].Done)

	inst = encodeOne(t, e, "sethi %hi(table+SIZE), %g1")
	assert.Equal(t, reloc.HI22, inst.Fixups[0].Kind)
	assert.Equal(t, reloc.Expr{Symbol: "table", Addend: 16}, inst.Fixups[0].Expr)
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"frob %g1", "Unknown opcode: `frob'"},
		{"ADD %g1, %g2, %g3", "Unknown opcode: `ADD %g1, %g2, %g3'"},
		{"add %g1, %g2", "Illegal operands"},
		{"add %g1, 4096, %g2", "constant value 4096 out of range (-4096 .. 4095)"},
		{"membar #Bogus", "Illegal operands: invalid membar mask name"},
		{"membar 200", "Illegal operands: invalid membar mask number"},
		{"lda [%o0] #ASI_BOGUS, %o1", "Illegal operands: invalid ASI name"},
		{"rdpr %bogus, %g1", "Illegal operands: unrecognizable privileged register"},
		{"rd %asr5, %g1", "Illegal operands: asr number must be between 16 and 31"},
		{"impdep1 0x200, %g1, %g2, %g3", "OPF immediate operand out of range (0-0x1ff)"},
		{"add %g1, 1/0, %g2", "Illegal operands: division by zero"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := NewEncoder(nil, nil, nil).EncodeLine(tt.line)
			var ee *EncodeError
			assert.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.msg, ee.Msg)
		})
	}
}

func TestFPBranchChecks(t *testing.T) {
	arch := sparc.NewArchState()
	arch.Request(sparc.V8, false)
	e := NewEncoder(nil, arch, nil)

	encodeOne(t, e, "fadds %f1, %f2, %f3")
	inst := encodeOne(t, e, "fbe target")
	assert.Equal(t, []uint32{sparc.Nop, 0x13800000}, inst.Words)
	assert.Equal(t, 4, inst.Fixups[0].Offset)
	assert.Equal(t, []string{"FP branch preceded by FP instruction; NOP inserted"}, inst.Warnings)

	// No padding once data separates the two.
	encodeOne(t, e, "fadds %f1, %f2, %f3")
	e.ClearHistory()
	inst = encodeOne(t, e, "fbe target")
	assert.Len(t, inst.Words, 1)

	encodeOne(t, e, "ba target")
	inst = encodeOne(t, e, "fbe target")
	assert.Equal(t, []string{"FP branch in delay slot"}, inst.Warnings)

	// v9 hardware interlocks the condition codes.
	e = NewEncoder(nil, nil, nil)
	encodeOne(t, e, "fadds %f1, %f2, %f3")
	inst = encodeOne(t, e, "fbe target")
	assert.Len(t, inst.Words, 1)
	assert.Empty(t, inst.Warnings)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "%g1,%g2,%g3", normalize(" %g1, %g2,\t%g3 "))
	assert.Equal(t, ",a label", normalize(",a   label"))
	assert.Equal(t, "[%o0+4]", normalize("[ %o0 + 4 ]"))
	assert.Equal(t, "", normalize("   "))
}

func TestParseIntReg(t *testing.T) {
	tests := []struct {
		s  string
		n  int
		l  int
		ok bool
	}{
		{"%g0", 0, 3, true},
		{"%o7", 15, 3, true},
		{"%l3", 19, 3, true},
		{"%i6", 30, 3, true},
		{"%fp", 30, 3, true},
		{"%sp", 14, 3, true},
		{"%r31", 31, 4, true},
		{"%17", 17, 3, true},
		{"%9", 9, 2, true},
		{"%3, %g1", 3, 2, true},
		{"%32", 0, 0, false},
		{"%", 0, 0, false},
		{"%g", 0, 0, false},
		{"%r32", 0, 0, false},
		{"%g8", 0, 0, false},
		{"%f0", 0, 0, false},
	}
	for _, tt := range tests {
		n, l, ok := parseIntReg(tt.s)
		assert.Equal(t, tt.ok, ok, tt.s)
		if ok {
			assert.Equal(t, tt.n, n, tt.s)
			assert.Equal(t, tt.l, l, tt.s)
		}
	}
}
