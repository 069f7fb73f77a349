// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

// Fields an encoder fills in from operands that are not registers or
// relocatable immediates.

// AnnulBit is set by the ",a" suffix of a branch.
const AnnulBit = annul

// ASIField places an address space identifier.
func ASIField(v int) uint32 { return asi(v) }

// MembarField places a membar mask.
func MembarField(v int) uint32 { return membar(v) }

// OPFField places the opf field of an implementation-dependent op.
func OPFField(v int) uint32 { return opf(v) }

// Words emitted by the synthetic instruction expansions. Immediate fields
// that depend on an expression are left zero for a fixup to fill.

// Nop is "sethi 0, %g0".
const Nop uint32 = 0x01000000

// Sethi returns "sethi 0, %rd".
func Sethi(r int) uint32 {
	return f2(0, 4) | rd(r)
}

// OrImm returns "or %rs1, 0, %rd".
func OrImm(s1, r int) uint32 {
	return f3(2, 0x02, 1) | rs1(s1) | rd(r)
}

// OrReg returns "or %rs1, %rs2, %rd". OrReg(0, 0, r) is "clr %r".
func OrReg(s1, s2, r int) uint32 {
	return f3(2, 0x02, 0) | rs1(s1) | rs2(s2) | rd(r)
}

// SraSelf returns "sra %r, %g0, %r", which sign-extends the low word of r.
func SraSelf(r int) uint32 {
	return f3(2, 0x27, 0) | rs1(r) | rd(r)
}

// Sllx returns "sllx %rs1, count, %rd".
func Sllx(s1, count, r int) uint32 {
	return f3(2, 0x25, 1) | shiftX | rs1(s1) | rd(r) | uint32(count&0x3f)
}

// Fmovs returns "fmovs %f<s2>, %f<r>".
func Fmovs(s2, r int) uint32 {
	return f3f(2, 0x34, 0x001) | rs2(s2) | rd(r)
}
