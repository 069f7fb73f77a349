// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"

	"github.com/beevik/gosparc/reloc"
	"github.com/beevik/gosparc/sparc"
)

// A macroBuilder accumulates the words and fixups of an expansion.
type macroBuilder struct {
	inst *Instruction
}

// Append a word. A fixup of the given kind is attached unless kind is
// reloc.None.
func (b *macroBuilder) emit(word uint32, kind reloc.Kind, v reloc.Expr) {
	if kind != reloc.None {
		b.inst.Fixups = append(b.inst.Fixups, reloc.Fixup{
			Offset: b.inst.Size(),
			Size:   4,
			Kind:   kind,
			Expr:   v,
		})
	}
	b.inst.Words = append(b.inst.Words, word)
}

func constant(v int64) reloc.Expr {
	return reloc.Expr{Addend: v}
}

// Expand a macro form into its real instructions.
func expand(inst *Instruction, m *matcher) error {
	b := &macroBuilder{inst: inst}
	name := inst.Desc.Name
	switch {
	case name == "set" || name == "setuw" || name == "setsw":
		b.set(name, m.imm, sparc.RD(m.word))
	case name == "setx":
		b.setx(m.imm, sparc.RS1(m.word), sparc.RD(m.word))
	case strings.HasPrefix(name, "fdiv"):
		// Early FPUs could leave a wrong result in the destination unless
		// it is rewritten right away.
		r := sparc.RD(m.word)
		b.emit(m.word, reloc.None, reloc.Expr{})
		b.emit(sparc.Fmovs(r, r), reloc.None, reloc.Expr{})
	default:
		return fmt.Errorf("no expansion for macro instruction \"%s\"", name)
	}
	return nil
}

// Load a 32-bit value into rd. A constant that fits the 13-bit immediate
// of "or" takes one instruction. Anything else takes a sethi, followed by
// an or unless the low ten bits are known to be zero. setsw sign-extends
// a negative constant into the upper word.
func (b *macroBuilder) set(name string, imm *pending, rd int) {
	v := imm.expr
	if v.IsConstant() {
		var n int64
		switch name {
		case "setuw":
			n = int64(uint32(imm.raw))
		case "setsw":
			n = int64(int32(imm.raw))
		default:
			n = imm.raw
		}
		if n >= -4096 && n < 4096 {
			b.emit(sparc.OrImm(0, rd), reloc.SPARC13, constant(n))
			return
		}
		v = constant(n & 0xffffffff)
	}

	b.emit(sparc.Sethi(rd), reloc.HI22, v)
	if !v.IsConstant() || v.Addend&0x3ff != 0 {
		b.emit(sparc.OrImm(rd, rd), reloc.LO10, v)
	}
	if name == "setsw" && v.IsConstant() && int32(v.Addend) < 0 {
		b.emit(sparc.SraSelf(rd), reloc.None, reloc.Expr{})
	}
}

// Load a 64-bit value into rd, using tmp to build the upper word when
// both halves need instructions of their own. Only the instructions a
// constant structurally needs are emitted.
func (b *macroBuilder) setx(imm *pending, tmp, rd int) {
	if tmp == rd {
		b.inst.Warnings = append(b.inst.Warnings, "setx: temporary register same as destination register")
	}

	v := imm.expr
	if !v.IsConstant() {
		b.emit(sparc.Sethi(tmp), reloc.HH22, v)
		b.emit(sparc.Sethi(rd), reloc.LM22, v)
		b.emit(sparc.OrImm(tmp, tmp), reloc.HM10, v)
		b.emit(sparc.OrImm(rd, rd), reloc.LO10, v)
		b.emit(sparc.Sllx(tmp, 32, tmp), reloc.None, reloc.Expr{})
		b.emit(sparc.OrReg(rd, tmp, rd), reloc.None, reloc.Expr{})
		return
	}

	val := imm.raw
	upper, lower := int64(int32(val>>32)), int64(int32(val))
	small := func(n int64) bool { return n >= -4096 && n < 4096 }

	// The upper word comes for free when sign extension of the lower
	// word produces it.
	needHH := !small(upper)
	needHM := (needHH && upper&0x3ff != 0) ||
		(!needHH && upper != 0 && (upper != -1 || lower >= 0))

	needHI, needLO := false, false
	upperReg := tmp
	if lower != 0 || (!needHH && !needHM) {
		needHI = !small(lower) || (lower < 0 && upper != -1)
		needLO = (needHI && lower&0x3ff != 0) || (!needHI && lower != 0)
	} else {
		// The lower word is zero: build the upper word in place.
		upperReg = rd
	}

	if needHH {
		b.emit(sparc.Sethi(upperReg), reloc.HI22, constant(upper&0xffffffff))
	}
	if needHI {
		b.emit(sparc.Sethi(rd), reloc.HI22, constant(lower&0xffffffff))
	}
	if needHM {
		if needHH {
			b.emit(sparc.OrImm(upperReg, upperReg), reloc.LO10, constant(upper))
		} else {
			b.emit(sparc.OrImm(0, upperReg), reloc.SPARC13, constant(upper))
		}
	}
	if needLO {
		if needHI {
			b.emit(sparc.OrImm(rd, rd), reloc.LO10, constant(lower))
		} else {
			b.emit(sparc.OrImm(0, rd), reloc.SPARC13, constant(lower))
		}
	}

	switch {
	case needHH || needHM:
		b.emit(sparc.Sllx(upperReg, 32, upperReg), reloc.None, reloc.Expr{})
		if needHI || needLO {
			b.emit(sparc.OrReg(rd, upperReg, rd), reloc.None, reloc.Expr{})
		}
	case needHI && upper == -1:
		b.emit(sparc.SraSelf(rd), reloc.None, reloc.Expr{})
	case !needHI && !needLO:
		b.emit(sparc.OrReg(0, 0, rd), reloc.None, reloc.Expr{})
	}
}
