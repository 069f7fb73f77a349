// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"debug/elf"
	"io"
	"strings"
	"testing"

	"github.com/beevik/gosparc/sparc"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func assembleWith(t *testing.T, code string, config *Config) (*Assembly, *SourceMap, error) {
	t.Helper()
	if config == nil {
		config = &Config{}
	}
	config.Logger = log.NewTestLogger(t)
	r := bytes.NewReader([]byte(code))
	return Assemble(r, "test", io.Discard, config)
}

func codeString(code []byte) string {
	b := make([]byte, len(code)*2)
	for i, j := 0, 0; i < len(code); i, j = i+1, j+2 {
		v := code[i]
		b[j+0] = hex[v>>4]
		b[j+1] = hex[v&0x0f]
	}
	return string(b)
}

func checkASM(t *testing.T, asm string, expected string) {
	t.Helper()
	assembly, _, err := assembleWith(t, asm, nil)
	assert.NoError(t, err, strings.Join(assembly.Errors, "\n"))
	assert.Equal(t, expected, codeString(assembly.Code))
}

func checkASMError(t *testing.T, asm string, errString string) {
	t.Helper()
	assembly, _, err := assembleWith(t, asm, nil)
	assert.Error(t, err)
	assert.NotEmpty(t, assembly.Errors)
	assert.True(t, strings.Contains(assembly.Errors[0], errString), assembly.Errors[0])
}

func TestArithmetic(t *testing.T) {
	asm := `
	add %g1, %g2, %g3
	add %g1, 1, %g3
	add 1, %g1, %g3
	nop`

	checkASM(t, asm, "860040028600600186006001"+"01000000")
}

func TestSethiAndLo(t *testing.T) {
	asm := `
	sethi %hi(0x12345678), %g1
	or    %g1, %lo(0x12345678), %g1`

	checkASM(t, asm, "03048D1582106278")
}

func TestSet(t *testing.T) {
	asm := `
	set 0x3ff, %g1
	set 0x12345678, %g1
	set 0x10000, %o0`

	checkASM(t, asm, "821023FF"+"03048D1582106278"+"11000040")
}

func TestSetx(t *testing.T) {
	tests := []struct {
		asm  string
		code string
	}{
		{"setx 0, %g1, %o0", "90100000"},
		{"setx -1, %g1, %o0", "90103FFF"},
		{"setx 0xffffffff, %g1, %o0", "113FFFFF901223FF"},
		{"setx 0x100000000, %g1, %o0", "90102001912A3020"},
		{"setx 0x100000001, %g1, %o0", "82102001901020018328702090120001"},
	}
	for _, tt := range tests {
		t.Run(tt.asm, func(t *testing.T) {
			checkASM(t, "\t"+tt.asm, tt.code)
		})
	}
}

func TestBranches(t *testing.T) {
	asm := `
loop:	ba loop
	nop
	ba,a done
	nop
done:	nop
	ba .
	nop`

	checkASM(t, asm, "1080000001000000"+"3080000201000000"+"01000000"+"1080000001000000")
}

func TestData(t *testing.T) {
	asm := `
	.word 0x12345678
	.half 0xbeef
	.byte 1, 2
	.xword -1
	.byte 1
	.align 8
	.skip 3, 0xff`

	checkASM(t, asm, "12345678BEEF0102"+"FFFFFFFFFFFFFFFF"+"0100000000000000"+"FFFFFF")
}

func TestEquates(t *testing.T) {
	asm := `
COUNT = 10
	.equ SIZE, COUNT*2
	.set MASK, SIZE-1
	mov COUNT, %o0
	mov SIZE, %o0
	mov MASK, %o0
	mov LATER, %o0
LATER = 5`

	checkASM(t, asm, "9010200A"+"90102014"+"90102013"+"90102005")
}

func TestHereExpression(t *testing.T) {
	asm := `
	nop
here:	.word . - here
	.word here - .`

	checkASM(t, asm, "01000000"+"00000000"+"FFFFFFFC")
}

func TestLocalRelocation(t *testing.T) {
	asm := `
	sethi %hi(msg), %g1
	or    %g1, %lo(msg), %g1
msg:	.word 0`

	assembly, _, err := assembleWith(t, asm, nil)
	assert.NoError(t, err)
	assert.Len(t, assembly.Relocations, 2)

	r := assembly.Relocations[0]
	assert.Equal(t, elf.R_SPARC_HI22, r.Type)
	assert.Equal(t, ".text", r.Symbol)
	assert.Equal(t, int64(8), r.Addend)
	assert.Equal(t, int64(0), r.Offset)

	r = assembly.Relocations[1]
	assert.Equal(t, elf.R_SPARC_LO10, r.Type)
	assert.Equal(t, int64(8), r.Addend)
	assert.Equal(t, int64(4), r.Offset)

	// The fields stay zero for the linker to fill.
	assert.Equal(t, "030000008210600000000000", codeString(assembly.Code))
}

func TestExternalRelocation(t *testing.T) {
	asm := `
	.global main
main:	call printf
	nop
	sethi %hi(data+4), %g1
	.word data`

	assembly, sourceMap, err := assembleWith(t, asm, nil)
	assert.NoError(t, err)
	assert.Len(t, assembly.Relocations, 3)

	assert.Equal(t, elf.R_SPARC_WDISP30, assembly.Relocations[0].Type)
	assert.Equal(t, "printf", assembly.Relocations[0].Symbol)
	assert.Equal(t, elf.R_SPARC_HI22, assembly.Relocations[1].Type)
	assert.Equal(t, int64(4), assembly.Relocations[1].Addend)
	assert.Equal(t, elf.R_SPARC_32, assembly.Relocations[2].Type)
	assert.Equal(t, int64(12), assembly.Relocations[2].Offset)

	assert.Len(t, sourceMap.Exports, 1)
	addr, ok := sourceMap.Find("main")
	assert.True(t, ok)
	assert.Equal(t, int64(0), addr)
}

func TestPICRelocation(t *testing.T) {
	asm := `
	.global data
	call printf
	nop
	sethi %hi(data), %g1
	or    %g1, %lo(data), %g1
data:	.word 0`

	assembly, _, err := assembleWith(t, asm, &Config{PIC: true})
	assert.NoError(t, err)
	assert.Len(t, assembly.Relocations, 3)
	assert.Equal(t, elf.R_SPARC_WPLT30, assembly.Relocations[0].Type)
	assert.Equal(t, elf.R_SPARC_GOT22, assembly.Relocations[1].Type)
	assert.Equal(t, elf.R_SPARC_GOT10, assembly.Relocations[2].Type)
	assert.Equal(t, "data", assembly.Relocations[2].Symbol)
}

func TestArchBump(t *testing.T) {
	assembly, _, err := assembleWith(t, "\tadd %g1, %g2, %g3", nil)
	assert.NoError(t, err)
	assert.Equal(t, sparc.V6, assembly.Arch)

	assembly, sourceMap, err := assembleWith(t, "\tldx [%o0], %o1", nil)
	assert.NoError(t, err)
	assert.Equal(t, sparc.V9, assembly.Arch)
	assert.Equal(t, "v9", sourceMap.Arch)
	assert.Empty(t, assembly.Warnings)

	v8 := sparc.V8
	assembly, _, err = assembleWith(t, "\tldx [%o0], %o1", &Config{Arch: &v8, Bump: true})
	assert.NoError(t, err)
	assert.Len(t, assembly.Warnings, 1)
	assert.True(t, strings.Contains(assembly.Warnings[0],
		`architecture bumped from "v8" to "v9" on "ldx [%o0],%o1"`), assembly.Warnings[0])

	assembly, _, err = assembleWith(t, "\tldx [%o0], %o1", &Config{Arch: &v8})
	assert.Error(t, err)
	assert.True(t, strings.Contains(assembly.Errors[0], "Architecture mismatch"), assembly.Errors[0])
}

func TestArchDirective(t *testing.T) {
	asm := `
	.arch v8
	ldx [%o0], %o1`

	checkASMError(t, asm, "Architecture mismatch")
	checkASMError(t, "\tnop\n\t.arch v9", "architecture directive must appear before first instruction")
	checkASMError(t, "\t.arch v10", "invalid architecture 'v10'")
}

func TestErrors(t *testing.T) {
	checkASMError(t, "\tfrob %g1", "Unknown opcode: `frob'")
	checkASMError(t, "\tadd %g1, 5000, %g2", "constant value 5000 out of range (-4096 .. 4095)")
	checkASMError(t, "\tadd %g1, %g2", "Illegal operands")
	checkASMError(t, "x:\tnop\nx:\tnop", "label 'x' used more than once")
	checkASMError(t, "\t.bogus 1", "unknown pseudo-op '.bogus'")
	checkASMError(t, "\t.align 3", "alignment must be a power of 2")
	checkASMError(t, "\t.skip later", "padding length expression could not be evaluated")
	checkASMError(t, "\t.global a b", "invalid symbol name")
}

func TestGlobalList(t *testing.T) {
	asm := `
	.global first, second
	.globl  third
first:	nop
second:	nop
third:	nop`

	_, sourceMap, err := assembleWith(t, asm, &Config{Origin: 0x100})
	assert.NoError(t, err)
	assert.Equal(t, []Export{
		{Label: "first", Address: 0x100},
		{Label: "second", Address: 0x104},
		{Label: "third", Address: 0x108},
	}, sourceMap.Exports)
}

func TestErrorsAreCollected(t *testing.T) {
	asm := `
	frob
	nop
	add %g1, %g2`

	assembly, _, err := assembleWith(t, asm, nil)
	assert.Error(t, err)
	assert.Len(t, assembly.Errors, 2)
	assert.True(t, strings.Contains(assembly.Errors[0], "line 2"), assembly.Errors[0])
	assert.True(t, strings.Contains(assembly.Errors[1], "line 4"), assembly.Errors[1])
}

func TestComments(t *testing.T) {
	asm := `
! a full-line comment
# another one
	nop		! trailing
start:			! label only
	ba start	! back to the label`

	checkASM(t, asm, "01000000"+"10800000")
}

func TestSourceMap(t *testing.T) {
	asm := `
	nop
	set 0x12345678, %g1
	nop`

	_, sourceMap, err := assembleWith(t, asm, &Config{Origin: 0x4000})
	assert.NoError(t, err)
	assert.Equal(t, uint32(16), sourceMap.Size)
	assert.Len(t, sourceMap.Lines, 3)

	file, line := sourceMap.Search(0x4004)
	assert.Equal(t, "test", file)
	assert.Equal(t, 3, line)
	file, line = sourceMap.Search(0x400c)
	assert.Equal(t, 4, line)
	_, line = sourceMap.Search(0x4008)
	assert.Equal(t, -1, line)

	var buf bytes.Buffer
	_, err = sourceMap.WriteTo(&buf)
	assert.NoError(t, err)

	var loaded SourceMap
	_, err = loaded.ReadFrom(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(0x4000), loaded.Origin)
	assert.Equal(t, sourceMap.CRC, loaded.CRC)
	assert.Equal(t, file, loaded.Files[0])
}

func TestConstantCallTarget(t *testing.T) {
	// A constant target is resolved against the load address.
	assembly, _, err := assembleWith(t, "\tcall 0x8000\n\tnop", &Config{Origin: 0x4000})
	assert.NoError(t, err)
	assert.Equal(t, "4000100001000000", codeString(assembly.Code))
}

func TestDataOverflowWarns(t *testing.T) {
	assembly, _, err := assembleWith(t, "\t.byte 0x100", nil)
	assert.NoError(t, err)
	assert.Len(t, assembly.Warnings, 1)
	assert.True(t, strings.Contains(assembly.Warnings[0], "relocation overflow"), assembly.Warnings[0])
	assert.Equal(t, "00", codeString(assembly.Code))
}
