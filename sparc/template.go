// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

import (
	"fmt"

	"github.com/beevik/gosparc/reloc"
)

// An Operand is one compiled element of an operand template. The set of
// operand types is closed; an encoder switches over them exhaustively.
type Operand interface {
	// Code returns the template character the operand was compiled from.
	Code() byte
}

// A Slot is a register field position within an instruction word.
type Slot byte

// Register slots.
const (
	SlotRS1   Slot = iota // bits 14..18
	SlotRS2               // bits 0..4
	SlotRD                // bits 25..29
	SlotRS1RD             // rs1 and rd both
	SlotRS2RD             // rs2 and rd both
)

// Place ORs a register number into the slot's bit position(s).
func (s Slot) Place(n int) uint32 {
	switch s {
	case SlotRS1:
		return rs1(n)
	case SlotRS2:
		return rs2(n)
	case SlotRD:
		return rd(n)
	case SlotRS2RD:
		return rd(n) | rs2(n)
	default:
		return rd(n) | rs1(n)
	}
}

// Extract reads a register number back out of the slot.
func (s Slot) Extract(word uint32) int {
	switch s {
	case SlotRS1:
		return RS1(word)
	case SlotRS2:
		return RS2(word)
	default:
		return RD(word)
	}
}

// Literal punctuation that must match the input exactly.
type Literal struct{ Char byte }

// Plus matches a '+' between address terms, or a '-' left in place for
// the following expression to consume.
type Plus struct{}

// IntReg is a general register operand.
type IntReg struct {
	code byte
	Slot Slot
}

// FloatReg is a floating-point register operand. Align is 1, 2, or 4 for
// single, double, and quad registers.
type FloatReg struct {
	code  byte
	Slot  Slot
	Align int
}

// CoprocReg is a coprocessor register operand.
type CoprocReg struct {
	code byte
	Slot Slot
}

// Immediate is an expression operand stored into an instruction field.
type Immediate struct {
	code     byte
	Kind     reloc.Kind // default relocation kind
	PCRel    bool       // value is relative to the instruction
	Max      int64      // range limit for constants, 0 if unchecked
	Bitfield bool       // also accept the upper half of the unsigned range
}

// InRange reports whether a constant fits the immediate field.
func (i Immediate) InRange(v int64) bool {
	if i.Max == 0 {
		return true
	}
	if i.Bitfield {
		return v <= i.Max && v >= ^(i.Max>>1)
	}
	return v <= i.Max && v >= ^i.Max
}

// ASI is an address space identifier given by name or constant.
type ASI struct{}

// Membar is a memory barrier mask given by names or constant.
type Membar struct{}

// Prefetch is a prefetch function given by name or constant.
type Prefetch struct{}

// PrivReg is a v9 privileged register name.
type PrivReg struct {
	code byte
	Slot Slot
}

// ASR is an ancillary state register, %asr16 through %asr31.
type ASR struct {
	code byte
	Slot Slot
}

// Fixed is a fixed register or keyword spelled exactly as Text. With
// SkipSpace, one leading blank is allowed before it.
type Fixed struct {
	code      byte
	Text      string
	SkipSpace bool
}

// Annul matches the 'a' of a ",a" suffix and sets the annul bit.
type Annul struct{}

// Digits matches one or more decimal digits, which are ignored.
type Digits struct{}

// OPF is a constant 9-bit opf field for implementation-dependent ops.
type OPF struct{}

// MacroMark tags a form that needs post-encoding expansion.
type MacroMark struct{}

func (o Literal) Code() byte   { return o.Char }
func (Plus) Code() byte        { return '+' }
func (o IntReg) Code() byte    { return o.code }
func (o FloatReg) Code() byte  { return o.code }
func (o CoprocReg) Code() byte { return o.code }
func (o Immediate) Code() byte { return o.code }
func (ASI) Code() byte         { return 'A' }
func (Membar) Code() byte      { return 'K' }
func (Prefetch) Code() byte    { return '*' }
func (o PrivReg) Code() byte   { return o.code }
func (o ASR) Code() byte       { return o.code }
func (o Fixed) Code() byte     { return o.code }
func (Annul) Code() byte       { return 'a' }
func (Digits) Code() byte      { return '#' }
func (OPF) Code() byte         { return 'x' }
func (MacroMark) Code() byte   { return 'S' }

var fixedText = map[byte]string{
	'y': "%y",
	'p': "%psr",
	'w': "%wim",
	't': "%tbr",
	'E': "%ccr",
	'o': "%asi",
	's': "%fprs",
	'W': "%tick",
	'P': "%pc",
	'F': "%fsr",
	'q': "%fq",
	'Q': "%cq",
	'C': "%csr",
	'N': "pn",
	'T': "pt",
}

var condRegText = map[byte]string{
	'z': "%icc",
	'Z': "%xcc",
	'6': "%fcc0",
	'7': "%fcc1",
	'8': "%fcc2",
	'9': "%fcc3",
}

// compileTemplate converts an operand template string into its operand
// sequence.
func compileTemplate(args string) ([]Operand, error) {
	ops := make([]Operand, 0, len(args))
	for i := 0; i < len(args); i++ {
		c := args[i]
		var op Operand
		switch c {
		case ',', '[', ']', ' ':
			op = Literal{Char: c}
		case '+':
			op = Plus{}
		case '1':
			op = IntReg{c, SlotRS1}
		case '2':
			op = IntReg{c, SlotRS2}
		case 'd':
			op = IntReg{c, SlotRD}
		case 'r':
			op = IntReg{c, SlotRS1RD}
		case 'O':
			op = IntReg{c, SlotRS2RD}
		case 'e':
			op = FloatReg{c, SlotRS1, 1}
		case 'v':
			op = FloatReg{c, SlotRS1, 2}
		case 'V':
			op = FloatReg{c, SlotRS1, 4}
		case 'f':
			op = FloatReg{c, SlotRS2, 1}
		case 'B':
			op = FloatReg{c, SlotRS2, 2}
		case 'R':
			op = FloatReg{c, SlotRS2, 4}
		case 'g':
			op = FloatReg{c, SlotRD, 1}
		case 'H':
			op = FloatReg{c, SlotRD, 2}
		case 'J':
			op = FloatReg{c, SlotRD, 4}
		case 'b':
			op = CoprocReg{c, SlotRS1}
		case 'c':
			op = CoprocReg{c, SlotRS2}
		case 'D':
			op = CoprocReg{c, SlotRD}
		case 'i':
			op = Immediate{code: c, Kind: reloc.SPARC13, Max: 0xfff}
		case 'I':
			op = Immediate{code: c, Kind: reloc.SPARC11, Max: 0x3ff}
		case 'j':
			op = Immediate{code: c, Kind: reloc.SPARC10, Max: 0x1ff}
		case 'X':
			op = Immediate{code: c, Kind: reloc.SPARC5, Max: 0x1f, Bitfield: true}
		case 'Y':
			op = Immediate{code: c, Kind: reloc.SPARC6, Max: 0x3f, Bitfield: true}
		case 'k':
			op = Immediate{code: c, Kind: reloc.WDisp16, PCRel: true}
		case 'G':
			op = Immediate{code: c, Kind: reloc.WDisp19, PCRel: true}
		case 'l':
			op = Immediate{code: c, Kind: reloc.WDisp22, PCRel: true}
		case 'L':
			op = Immediate{code: c, Kind: reloc.WDisp30, PCRel: true}
		case 'h':
			op = Immediate{code: c, Kind: reloc.HI22}
		case 'n':
			op = Immediate{code: c, Kind: reloc.SPARC22}
		case 'A':
			op = ASI{}
		case 'K':
			op = Membar{}
		case '*':
			op = Prefetch{}
		case '!':
			op = PrivReg{c, SlotRD}
		case '?':
			op = PrivReg{c, SlotRS1}
		case 'M':
			op = ASR{c, SlotRS1}
		case 'm':
			op = ASR{c, SlotRD}
		case 'a':
			op = Annul{}
		case '#':
			op = Digits{}
		case 'x':
			op = OPF{}
		case 'S':
			op = MacroMark{}
		default:
			if t, ok := fixedText[c]; ok {
				op = Fixed{code: c, Text: t}
			} else if t, ok := condRegText[c]; ok {
				op = Fixed{code: c, Text: t, SkipSpace: true}
			} else {
				return nil, fmt.Errorf("unknown operand code '%c' in template \"%s\"", c, args)
			}
		}
		ops = append(ops, op)
	}
	return ops, nil
}
