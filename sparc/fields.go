// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

// Instruction field encoders. Arguments are ints so that complemented
// constants (^2, ^0x3a) can be passed directly when building lose masks.

func f3(op, op3, i int) uint32 {
	return uint32(op&3)<<30 | uint32(op3&0x3f)<<19 | uint32(i&1)<<13
}

func f2(op, op2 int) uint32 {
	return uint32(op&3)<<30 | uint32(op2&7)<<22
}

func f1(x int) uint32 {
	return uint32(x&3) << 30
}

func f3f(op, op3, x int) uint32 {
	return f3(op, op3, 0) | opf(x)
}

func opf(x int) uint32     { return uint32(x&0x1ff) << 5 }
func opfLow5(x int) uint32 { return uint32(x&0x1f) << 5 }
func rd(x int) uint32      { return uint32(x&0x1f) << 25 }
func rs1(x int) uint32     { return uint32(x&0x1f) << 14 }
func rs2(x int) uint32     { return uint32(x & 0x1f) }
func asi(x int) uint32     { return uint32(x&0xff) << 5 }
func asiRS2(x int) uint32  { return asi(x) | rs2(x) }
func simm13(x int) uint32  { return uint32(x & 0x1fff) }
func cond(x int) uint32    { return uint32(x&0xf) << 25 }
func rcond(x int) uint32   { return uint32(x&7) << 10 }
func fcc(x int) uint32     { return uint32(x&3) << 11 }
func fbfcc(x int) uint32   { return uint32(x&3) << 20 }
func cmpfcc(x int) uint32  { return uint32(x&3) << 25 }
func membar(x int) uint32  { return uint32(x & 0x7f) }

// mcond places a MOVcc condition and its cc2 selector bit.
func mcond(c, iOrF int) uint32 {
	return uint32(iOrF&1)<<18 | uint32(c&0xf)<<14
}

const (
	immed uint32 = 1 << 13
	annul uint32 = 1 << 29
	bpred uint32 = 1 << 19
	icc   uint32 = 0
	xcc   uint32 = 1 << 12
)

var (
	rdG0  = rd(^0)
	rs1G0 = rs1(^0)
	rs2G0 = rs2(^0)
)

// Integer condition codes.
const (
	condA   = 0x8
	condCC  = 0xd
	condCS  = 0x5
	condE   = 0x1
	condG   = 0xa
	condGE  = 0xb
	condGU  = 0xc
	condL   = 0x3
	condLE  = 0x2
	condLEU = 0x4
	condN   = 0x0
	condNE  = 0x9
	condNEG = 0x6
	condPOS = 0xe
	condVC  = 0xf
	condVS  = 0x7

	condNZ  = condNE
	condZ   = condE
	condGEU = condCC
	condLU  = condCS
)

// Floating-point condition codes.
const (
	fcondA   = 0x8
	fcondE   = 0x9
	fcondG   = 0x6
	fcondGE  = 0xb
	fcondL   = 0x4
	fcondLE  = 0xd
	fcondLG  = 0x2
	fcondN   = 0x0
	fcondNE  = 0x1
	fcondO   = 0xf
	fcondU   = 0x7
	fcondUE  = 0xa
	fcondUG  = 0x5
	fcondUGE = 0xc
	fcondUL  = 0x3
	fcondULE = 0xe

	fcondNZ = fcondNE
	fcondZ  = fcondE
)

// Field accessors used to inspect encoded words.

// RD extracts the destination register field of an instruction word.
func RD(word uint32) int { return int(word>>25) & 0x1f }

// RS1 extracts the first source register field of an instruction word.
func RS1(word uint32) int { return int(word>>14) & 0x1f }

// RS2 extracts the second source register field of an instruction word.
func RS2(word uint32) int { return int(word) & 0x1f }
