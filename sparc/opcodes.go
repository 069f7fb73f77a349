// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

// The opcode catalog. All forms of a mnemonic must be contiguous, and
// within a group the more specific forms come first.

type builder struct {
	list []Descriptor
}

func (b *builder) add(name string, match, lose uint32, args string, flags Flags, arch Arch) {
	b.list = append(b.list, Descriptor{
		Name:  name,
		Match: match,
		Lose:  lose,
		Args:  args,
		Flags: flags,
		Arch:  arch,
	})
}

// mem adds the six addressing forms of a load or store: [rs1+rs2],
// [rs1], [rs1+imm], [imm+rs1], [imm] and [rs1+0].
func (b *builder) mem(name string, op3 int, before, after string, match, lose uint32, flags Flags, arch Arch) {
	reg, regLose := f3(3, op3, 0)|match, f3(^3, ^op3, ^0)|lose
	imm, immLose := f3(3, op3, 1)|match, f3(^3, ^op3, ^1)|lose
	b.add(name, reg, regLose|asi(^0), before+"[1+2]"+after, flags, arch)
	b.add(name, reg, regLose|asiRS2(^0), before+"[1]"+after, flags, arch)
	b.add(name, imm, immLose, before+"[1+i]"+after, flags, arch)
	b.add(name, imm, immLose, before+"[i+1]"+after, flags, arch)
	b.add(name, imm, immLose|rs1G0, before+"[i]"+after, flags, arch)
	b.add(name, imm, immLose|simm13(^0), before+"[1]"+after, flags, arch)
}

func (b *builder) load(name string, op3 int, reg string, flags Flags, arch Arch) {
	b.mem(name, op3, "", ","+reg, 0, 0, flags, arch)
}

func (b *builder) store(name string, op3 int, reg string, flags Flags, arch Arch) {
	b.mem(name, op3, reg+",", "", 0, 0, flags, arch)
}

// alt adds the alternate space forms of a load or store. The register
// forms take an explicit ASI; the immediate forms use %asi and need v9.
func (b *builder) alt(name string, op3 int, before, after string, flags Flags, arch Arch) {
	reg, regLose := f3(3, op3, 0), f3(^3, ^op3, ^0)
	imm, immLose := f3(3, op3, 1), f3(^3, ^op3, ^1)
	b.add(name, reg, regLose, before+"[1+2]A"+after, flags, arch)
	b.add(name, reg, regLose|rs2G0, before+"[1]A"+after, flags, arch)
	b.add(name, imm, immLose, before+"[1+i]o"+after, flags, V9)
	b.add(name, imm, immLose, before+"[i+1]o"+after, flags, V9)
	b.add(name, imm, immLose|rs1G0, before+"[i]o"+after, flags, V9)
	b.add(name, imm, immLose|simm13(^0), before+"[1]o"+after, flags, V9)
}

func (b *builder) loadAlt(name string, op3 int, reg string, flags Flags, arch Arch) {
	b.alt(name, op3, "", ","+reg, flags, arch)
}

func (b *builder) storeAlt(name string, op3 int, reg string, flags Flags, arch Arch) {
	b.alt(name, op3, reg+",", "", flags, arch)
}

// jump adds the address forms of a jmpl-style instruction.
func (b *builder) jump(name string, op3 int, match, lose uint32, after string, flags Flags, arch Arch) {
	reg, regLose := f3(2, op3, 0)|match, f3(^2, ^op3, ^0)|lose
	imm, immLose := f3(2, op3, 1)|match, f3(^2, ^op3, ^1)|lose
	b.add(name, reg, regLose|asi(^0), "1+2"+after, flags, arch)
	b.add(name, reg, regLose|asiRS2(^0), "1"+after, flags, arch)
	b.add(name, imm, immLose, "1+i"+after, flags, arch)
	b.add(name, imm, immLose, "i+1"+after, flags, arch)
	b.add(name, imm, immLose|rs1G0, "i"+after, flags, arch)
	b.add(name, imm, immLose|simm13(^0), "1"+after, flags, arch)
}

// alu adds the register and immediate forms of a three-operand
// arithmetic instruction. Commutative ops also accept imm,rs1.
func (b *builder) alu(name string, op3 int, commutes bool, flags Flags, arch Arch) {
	b.add(name, f3(2, op3, 0), f3(^2, ^op3, ^0)|asi(^0), "1,2,d", flags, arch)
	b.add(name, f3(2, op3, 1), f3(^2, ^op3, ^1), "1,i,d", flags, arch)
	if commutes {
		b.add(name, f3(2, op3, 1), f3(^2, ^op3, ^1), "i,1,d", flags, arch)
	}
}

const shiftX uint32 = 1 << 12

func (b *builder) shift(name string, op3 int) {
	b.add(name, f3(2, op3, 0), f3(^2, ^op3, ^0)|shiftX|asi(^0), "1,2,d", 0, V6)
	b.add(name, f3(2, op3, 1), f3(^2, ^op3, ^1)|shiftX, "1,X,d", 0, V6)
}

func (b *builder) shift64(name string, op3 int) {
	b.add(name, f3(2, op3, 0)|shiftX, f3(^2, ^op3, ^0)|(asi(^0)^shiftX), "1,2,d", 0, V9)
	b.add(name, f3(2, op3, 1)|shiftX, f3(^2, ^op3, ^1)|0x3f<<6, "1,Y,d", 0, V9)
}

// bicc adds the plain and annulled forms of a v6 branch.
func (b *builder) bicc(name string, match, lose uint32, flags Flags) {
	b.add(name, match|annul, lose, ",a l", flags, V6)
	b.add(name, match, lose|annul, "l", flags, V6)
}

// predicted adds the six annul and prediction spellings of a v9 branch.
func (b *builder) predicted(name string, match, lose uint32, args string, flags Flags) {
	b.add(name, match|bpred, annul|lose, args, flags, V9)
	b.add(name, match|bpred, annul|lose, ",T "+args, flags, V9)
	b.add(name, match|bpred|annul, lose, ",a "+args, flags, V9)
	b.add(name, match|bpred|annul, lose, ",a,T "+args, flags, V9)
	b.add(name, match, annul|bpred|lose, ",N "+args, flags, V9)
	b.add(name, match|annul, bpred|lose, ",a,N "+args, flags, V9)
}

const bpXcc uint32 = 2 << 20

// bpcc adds the %xcc and %icc forms of a v9 predicted branch.
func (b *builder) bpcc(name string, match, lose uint32, flags Flags) {
	b.predicted(name, match|bpXcc, lose, "Z,G", flags)
	b.predicted(name, match, lose|bpXcc, "z,G", flags)
}

const trapXcc uint32 = 2 << 11

// trap adds the four addressing forms of a trap for each condition code
// spelling: %xcc, %icc, and the implicit v6 form.
func (b *builder) trap(name string, match, lose uint32, flags Flags) {
	spellings := []struct {
		prefix string
		cc     uint32
		flags  Flags
		arch   Arch
	}{
		{"Z,", trapXcc, 0, V9},
		{"z,", 0, Alias, V9},
		{"", 0, 0, V6},
	}
	for _, s := range spellings {
		m, f := match|s.cc, flags|s.flags
		b.add(name, m|immed, lose|rs1G0, s.prefix+"i", f, s.arch)
		b.add(name, m|immed, lose, s.prefix+"1+i", f, s.arch)
		b.add(name, m, immed|lose, s.prefix+"1+2", f, s.arch)
		b.add(name, m, immed|lose|rs2G0, s.prefix+"1", f, s.arch)
	}
}

// cond adds the branch and trap groups of one integer condition.
func (b *builder) cond(bop, top string, c int, flags Flags) {
	b.bpcc(bop, f2(0, 1)|cond(c), f2(^0, ^1)|cond(^c), Delayed|flags)
	b.bicc(bop, f2(0, 2)|cond(c), f2(^0, ^2)|cond(^c), Delayed|flags)
	b.trap(top, f3(2, 0x3a, 0)|cond(c), f3(^2, ^0x3a, 0)|cond(^c), flags&^(UncondBranch|CondBranch))
}

// condr adds a v9 branch on register contents.
func (b *builder) condr(name string, c int, flags Flags) {
	b.predicted(name, f2(0, 3)|cond(c), f2(^0, ^3)|cond(^c), "1,k", Delayed|flags)
}

// condfc adds the floating-point branch group for a condition and, if
// cop is not empty, the matching coprocessor branch group.
func (b *builder) condfc(fop, cop string, c int, flags Flags) {
	match, lose := f2(0, 5)|cond(c), f2(^0, ^5)|cond(^c)
	for n := 0; n < 4; n++ {
		args := string(rune('6'+n)) + ",G"
		b.predicted(fop, match|fbfcc(n), lose|fbfcc(^n), args, Delayed|FloatBranch|flags)
	}
	b.bicc(fop, f2(0, 6)|cond(c), f2(^0, ^6)|cond(^c), Delayed|FloatBranch|flags)
	if cop != "" {
		b.bicc(cop, f2(0, 7)|cond(c), f2(^0, ^7)|cond(^c), Delayed|flags)
	}
}

func (b *builder) movr(name string, c int, flags Flags) {
	b.add(name, f3(2, 0x2f, 0)|rcond(c), f3(^2, ^0x2f, ^0)|rcond(^c), "1,2,d", flags, V9)
	b.add(name, f3(2, 0x2f, 1)|rcond(c), f3(^2, ^0x2f, ^1)|rcond(^c), "1,j,d", flags, V9)
}

// FP operand sizes as encoded in the low bits of FMOVcc and FMOVr.
const (
	fmSingle = 1
	fmDouble = 2
	fmQuad   = 3
)

var fmovArgs = [4]string{
	fmSingle: "f,g",
	fmDouble: "B,H",
	fmQuad:   "R,J",
}

var fmovSuffix = [4]string{
	fmSingle: "s",
	fmDouble: "d",
	fmQuad:   "q",
}

// Sizes in catalog order.
var fmovSizes = []int{fmDouble, fmQuad, fmSingle}

func (b *builder) fmovr(size int, cond string, c int, flags Flags) {
	name := "fmovr" + fmovSuffix[size] + cond
	b.add(name,
		f3(2, 0x35, 0)|opfLow5(4+size)|rcond(c),
		f3(^2, ^0x35, 0)|opfLow5(^(4+size))|rcond(^c),
		"1,"+fmovArgs[size], Float|flags, V9)
}

func (b *builder) movicc(name string, c int, flags Flags) {
	ccs := []struct {
		reg        string
		cc, ccLose uint32
	}{
		{"z", icc, xcc | 1<<11},
		{"Z", xcc, 1 << 11},
	}
	for _, x := range ccs {
		b.add(name, f3(2, 0x2c, 0)|mcond(c, 1)|x.cc, f3(^2, ^0x2c, ^0)|mcond(^c, ^1)|x.ccLose, x.reg+",2,d", flags, V9)
		b.add(name, f3(2, 0x2c, 1)|mcond(c, 1)|x.cc, f3(^2, ^0x2c, ^1)|mcond(^c, ^1)|x.ccLose, x.reg+",I,d", flags, V9)
	}
}

func (b *builder) movfcc(name string, c int, flags Flags) {
	for n := 0; n < 4; n++ {
		reg := string(rune('6' + n))
		b.add(name, f3(2, 0x2c, 0)|fcc(n)|mcond(c, 0), mcond(^c, ^0)|fcc(^n)|f3(^2, ^0x2c, ^0), reg+",2,d", flags, V9)
		b.add(name, f3(2, 0x2c, 1)|fcc(n)|mcond(c, 0), mcond(^c, ^0)|fcc(^n)|f3(^2, ^0x2c, ^1), reg+",I,d", flags, V9)
	}
}

func (b *builder) movcc(name string, c, fc int, flags Flags) {
	b.movfcc(name, fc, flags)
	b.movicc(name, c, flags)
}

// fmovForm adds one FMOVcc form. x is the opf value before the size is
// added; it selects the condition code register.
func (b *builder) fmovForm(name string, size, x int, reg string, c int, flags Flags) {
	b.add(name,
		f3f(2, 0x35, x+size)|mcond(c, 0),
		f3f(^2, ^0x35, ^(x+size))|mcond(^c, ^0),
		reg+","+fmovArgs[size], Float|flags, V9)
}

func (b *builder) fmovicc(cond string, c int, flags Flags) {
	for _, size := range fmovSizes {
		name := "fmov" + fmovSuffix[size] + cond
		b.fmovForm(name, size, 0x100, "z", c, flags)
		b.fmovForm(name, size, 0x180, "Z", c, flags)
	}
}

func (b *builder) fmovfcc(cond string, fc int, flags Flags) {
	for _, size := range fmovSizes {
		name := "fmov" + fmovSuffix[size] + cond
		for n := 0; n < 4; n++ {
			b.fmovForm(name, size, n<<6, string(rune('6'+n)), fc, flags)
		}
	}
}

func (b *builder) fmovcc(cond string, c, fc int, flags Flags) {
	for _, size := range fmovSizes {
		name := "fmov" + fmovSuffix[size] + cond
		b.fmovForm(name, size, 0x100, "z", c, flags)
		b.fmovForm(name, size, 0x000, "6", fc, flags)
		b.fmovForm(name, size, 0x180, "Z", c, flags)
		b.fmovForm(name, size, 0x040, "7", fc, flags)
		b.fmovForm(name, size, 0x080, "8", fc, flags)
		b.fmovForm(name, size, 0x0c0, "9", fc, flags)
	}
}

// fpop adds a floating-point operate instruction. Two-operand forms have
// no rs1.
func (b *builder) fpop(name string, op3, x int, args string, twoOperand bool, flags Flags, arch Arch) {
	lose := f3f(^2, ^op3, ^x)
	if twoOperand {
		lose |= rs1G0
	}
	b.add(name, f3f(2, op3, x), lose, args, Float|flags, arch)
}

func (b *builder) fpop1(name string, x int, args string, arch Arch) {
	b.fpop(name, 0x34, x, args, len(args) == 3, 0, arch)
}

// fcmp adds an FP compare: the implicit %fcc0 form, then one form for
// each v9 condition code register.
func (b *builder) fcmp(name string, x int, args string, arch Arch) {
	b.add(name, f3f(2, 0x35, x), f3f(^2, ^0x35, ^x)|rdG0, args, Float, arch)
	for n := 0; n < 4; n++ {
		reg := string(rune('6' + n))
		b.add(name, cmpfcc(n)|f3f(2, 0x35, x), cmpfcc(^n)|f3f(^2, ^0x35, ^x), reg+","+args, Float, V9)
	}
}

func (b *builder) impdep(name string, op3 int) {
	b.add(name, f3(2, op3, 0), f3(^2, ^op3, ^0)|asi(^0), "1,2,d", 0, V9)
	b.add(name, f3(2, op3, 1), f3(^2, ^op3, ^1), "1,i,d", 0, V9)
	b.add(name, f3(2, op3, 0), f3(^2, ^op3, ^0), "x,1,2,d", 0, V9)
	b.add(name, f3(2, op3, 0), f3(^2, ^op3, ^0), "x,e,f,g", 0, V9)
}

// catalog returns a fresh copy of the opcode catalog.
func catalog() []Descriptor {
	b := &builder{list: make([]Descriptor, 0, 2048)}

	// Loads.
	b.load("ld", 0x00, "d", 0, V6)
	b.load("ld", 0x20, "g", 0, V6)
	b.mem("ld", 0x21, "", ",F", 0, rd(^0), 0, V6)
	b.load("ld", 0x30, "D", NotV9, V6)
	b.load("ld", 0x31, "C", NotV9, V6)
	b.load("lduw", 0x00, "d", Alias, V9)
	b.load("ldd", 0x03, "d", 0, V6)
	b.load("ldd", 0x23, "H", 0, V6)
	b.load("ldd", 0x33, "D", NotV9, V6)
	b.load("ldq", 0x22, "J", 0, V9)
	b.load("ldsb", 0x09, "d", 0, V6)
	b.load("ldsh", 0x0a, "d", 0, V6)
	b.load("ldstub", 0x0d, "d", 0, V6)
	b.load("ldsw", 0x08, "d", 0, V9)
	b.load("ldub", 0x01, "d", 0, V6)
	b.load("lduh", 0x02, "d", 0, V6)
	b.load("ldx", 0x0b, "d", 0, V9)
	b.mem("ldx", 0x21, "", ",F", rd(1), rd(^1), 0, V9)

	b.loadAlt("lda", 0x10, "d", 0, V6)
	b.loadAlt("lda", 0x30, "g", 0, V9)
	b.loadAlt("ldda", 0x13, "d", 0, V6)
	b.loadAlt("ldda", 0x33, "H", 0, V9)
	b.loadAlt("ldqa", 0x32, "J", 0, V9)
	b.loadAlt("ldsba", 0x19, "d", 0, V6)
	b.loadAlt("ldsha", 0x1a, "d", 0, V6)
	b.loadAlt("ldstuba", 0x1d, "d", 0, V6)
	b.loadAlt("ldswa", 0x18, "d", 0, V9)
	b.loadAlt("lduba", 0x11, "d", 0, V6)
	b.loadAlt("lduha", 0x12, "d", 0, V6)
	b.loadAlt("lduwa", 0x10, "d", Alias, V9)
	b.loadAlt("ldxa", 0x1b, "d", 0, V9)

	// Stores.
	b.store("st", 0x04, "d", 0, V6)
	b.store("st", 0x24, "g", 0, V6)
	b.store("st", 0x34, "D", NotV9, V6)
	b.store("st", 0x35, "C", NotV9, V6)
	b.mem("st", 0x25, "F,", "", 0, rdG0, 0, V6)
	b.store("stw", 0x04, "d", Alias, V9)
	b.storeAlt("sta", 0x14, "d", 0, V6)
	b.storeAlt("sta", 0x34, "g", 0, V9)
	b.storeAlt("stwa", 0x14, "d", Alias, V9)
	b.store("stb", 0x05, "d", 0, V6)
	b.storeAlt("stba", 0x15, "d", 0, V6)
	b.store("std", 0x07, "d", 0, V6)
	b.store("std", 0x26, "q", NotV9, V6)
	b.store("std", 0x27, "H", 0, V6)
	b.store("std", 0x36, "Q", NotV9, V6)
	b.store("std", 0x37, "D", NotV9, V6)
	b.storeAlt("stda", 0x17, "d", 0, V6)
	b.storeAlt("stda", 0x37, "H", 0, V9)
	b.store("sth", 0x06, "d", 0, V6)
	b.storeAlt("stha", 0x16, "d", 0, V6)
	b.store("stx", 0x0e, "d", 0, V9)
	b.mem("stx", 0x25, "F,", "", rd(1), rd(^1), 0, V9)
	b.storeAlt("stxa", 0x1e, "d", 0, V9)
	b.store("stq", 0x26, "J", 0, V9)
	b.storeAlt("stqa", 0x36, "J", 0, V9)

	b.load("swap", 0x0f, "d", 0, V7)
	b.loadAlt("swapa", 0x1f, "d", 0, V7)

	// Register windows, returns and jumps.
	b.add("restore", f3(2, 0x3d, 0), f3(^2, ^0x3d, ^0)|asi(^0), "1,2,d", 0, V6)
	b.add("restore", f3(2, 0x3d, 0), f3(^2, ^0x3d, ^0)|rdG0|rs1G0|asiRS2(^0), "", 0, V6)
	b.add("restore", f3(2, 0x3d, 1), f3(^2, ^0x3d, ^1), "1,i,d", 0, V6)
	b.add("restore", f3(2, 0x3d, 1), f3(^2, ^0x3d, ^1)|rdG0|rs1G0|simm13(^0), "", 0, V6)
	b.jump("rett", 0x39, 0, rdG0, "", UncondBranch|Delayed, V6)
	b.add("save", f3(2, 0x3c, 0), f3(^2, ^0x3c, ^0)|asi(^0), "1,2,d", 0, V6)
	b.add("save", f3(2, 0x3c, 1), f3(^2, ^0x3c, ^1), "1,i,d", 0, V6)
	b.add("save", 0x81e00000, ^uint32(0x81e00000), "", Alias, V6)
	b.add("ret", f3(2, 0x38, 1)|rs1(0x1f)|simm13(8), f3(^2, ^0x38, ^1)|simm13(^8), "", UncondBranch|Delayed, V6)
	b.add("retl", f3(2, 0x38, 1)|rs1(0x0f)|simm13(8), f3(^2, ^0x38, ^1)|rs1(^0x0f)|simm13(^8), "", UncondBranch|Delayed, V6)
	b.jump("jmpl", 0x38, 0, 0, ",d", Jsr|Delayed, V6)

	b.add("done", f3(2, 0x3e, 0)|rd(0), f3(^2, ^0x3e, ^0)|rd(^0)|rs1G0|simm13(^0), "", 0, V9)
	b.add("retry", f3(2, 0x3e, 0)|rd(1), f3(^2, ^0x3e, ^0)|rd(^1)|rs1G0|simm13(^0), "", 0, V9)
	b.add("saved", f3(2, 0x31, 0)|rd(0), f3(^2, ^0x31, ^0)|rd(^0)|rs1G0|simm13(^0), "", 0, V9)
	b.add("restored", f3(2, 0x31, 0)|rd(1), f3(^2, ^0x31, ^0)|rd(^1)|rs1G0|simm13(^0), "", 0, V9)
	b.add("sir", f3(2, 0x30, 1)|rd(0xf), f3(^2, ^0x30, ^1)|rd(^0xf)|rs1G0, "i", 0, V9)

	b.jump("flush", 0x3b, 0, 0, "", 0, V8)
	b.jump("iflush", 0x3b, 0, 0, "", Alias, V6)
	b.jump("return", 0x39, 0, 0, "", 0, V9)

	b.add("flushw", f3(2, 0x2b, 0), f3(^2, ^0x2b, ^0)|rdG0|rs1G0|asiRS2(^0), "", 0, V9)
	b.add("membar", f3(2, 0x28, 1)|rs1(0xf), f3(^2, ^0x28, ^1)|rdG0|rs1(^0xf)|simm13(^127), "K", 0, V9)
	b.add("stbar", f3(2, 0x28, 0)|rs1(0xf), f3(^2, ^0x28, ^0)|rdG0|rs1(^0xf)|simm13(^0), "", 0, V8)

	b.mem("prefetch", 0x2d, "", ",*", 0, 0, 0, V9)
	b.alt("prefetcha", 0x3d, "", ",*", 0, V9)

	// Shifts and multiply steps.
	b.shift("sll", 0x25)
	b.shift("sra", 0x27)
	b.shift("srl", 0x26)
	b.shift64("sllx", 0x25)
	b.shift64("srax", 0x27)
	b.shift64("srlx", 0x26)
	b.alu("mulscc", 0x24, false, 0, V6)
	b.alu("divscc", 0x1d, false, 0, Sparclite)
	b.alu("scan", 0x2c, false, 0, Sparclite)
	b.add("popc", f3(2, 0x2e, 0), f3(^2, ^0x2e, ^0)|rs1G0|asi(^0), "2,d", 0, V9)
	b.add("popc", f3(2, 0x2e, 1), f3(^2, ^0x2e, ^1)|rs1G0, "i,d", 0, V9)

	// Clears.
	b.add("clr", f3(2, 0x02, 0), f3(^2, ^0x02, ^0)|rdG0|rs1G0|asiRS2(^0), "d", Alias, V6)
	b.add("clr", f3(2, 0x02, 1), f3(^2, ^0x02, ^1)|rs1G0|simm13(^0), "d", Alias, V6)
	b.mem("clr", 0x04, "", "", 0, rdG0, Alias, V6)
	b.mem("clrb", 0x05, "", "", 0, rdG0, Alias, V6)
	b.mem("clrh", 0x06, "", "", 0, rdG0, Alias, V6)
	b.mem("clrx", 0x0e, "", "", 0, rdG0, Alias, V9)

	// Logical ops and state register access.
	b.alu("orcc", 0x12, true, 0, V6)
	b.alu("orncc", 0x16, false, 0, V6)
	b.alu("orn", 0x06, false, 0, V6)
	b.add("tst", f3(2, 0x12, 0), f3(^2, ^0x12, ^0)|rdG0|asiRS2(^0), "1", 0, V6)
	b.add("tst", f3(2, 0x12, 0), f3(^2, ^0x12, ^0)|rdG0|rs1G0|asi(^0), "2", 0, V6)
	b.add("tst", f3(2, 0x12, 1), f3(^2, ^0x12, ^1)|rdG0|simm13(^0), "1", 0, V6)

	b.stateRegisters("wr", "rd", 0)
	b.add("rdpr", f3(2, 0x2a, 0), f3(^2, ^0x2a, ^0)|simm13(^0), "?,d", 0, V9)
	b.add("wrpr", f3(2, 0x32, 0), f3(^2, ^0x32, ^0), "1,2,!", 0, V9)
	b.add("wrpr", f3(2, 0x32, 0), f3(^2, ^0x32, ^0)|simm13(^0), "1,!", 0, V9)
	b.add("wrpr", f3(2, 0x32, 1), f3(^2, ^0x32, ^1), "1,i,!", 0, V9)
	b.add("wrpr", f3(2, 0x32, 1), f3(^2, ^0x32, ^1), "i,1,!", Alias, V9)
	b.add("wrpr", f3(2, 0x32, 1), f3(^2, ^0x32, ^1)|rs1(^0), "i,!", 0, V9)

	b.moves()

	b.alu("or", 0x02, true, 0, V6)
	b.add("bset", f3(2, 0x02, 0), f3(^2, ^0x02, ^0)|asi(^0), "2,r", Alias, V6)
	b.add("bset", f3(2, 0x02, 1), f3(^2, ^0x02, ^1), "i,r", Alias, V6)
	b.alu("andn", 0x05, false, 0, V6)
	b.alu("andncc", 0x15, false, 0, V6)
	b.add("bclr", f3(2, 0x05, 0), f3(^2, ^0x05, ^0)|asi(^0), "2,r", Alias, V6)
	b.add("bclr", f3(2, 0x05, 1), f3(^2, ^0x05, ^1), "i,r", Alias, V6)
	b.add("cmp", f3(2, 0x14, 0), f3(^2, ^0x14, ^0)|rdG0|asi(^0), "1,2", 0, V6)
	b.add("cmp", f3(2, 0x14, 1), f3(^2, ^0x14, ^1)|rdG0, "1,i", 0, V6)

	// Arithmetic.
	b.alu("sub", 0x04, false, 0, V6)
	b.alu("subcc", 0x14, false, 0, V6)
	b.alu("subx", 0x0c, false, NotV9, V6)
	b.alu("subc", 0x0c, false, 0, V9)
	b.alu("subxcc", 0x1c, false, NotV9, V6)
	b.alu("subccc", 0x1c, false, 0, V9)
	b.alu("and", 0x01, true, 0, V6)
	b.alu("andcc", 0x11, true, 0, V6)
	b.step("dec", 0x04)
	b.step("deccc", 0x14)
	b.step("inc", 0x00)
	b.step("inccc", 0x10)
	b.add("btst", f3(2, 0x11, 0), f3(^2, ^0x11, ^0)|rdG0|asi(^0), "1,2", Alias, V6)
	b.add("btst", f3(2, 0x11, 1), f3(^2, ^0x11, ^1)|rdG0, "i,1", Alias, V6)
	b.add("neg", f3(2, 0x04, 0), f3(^2, ^0x04, ^0)|rs1G0|asi(^0), "2,d", Alias, V6)
	b.add("neg", f3(2, 0x04, 0), f3(^2, ^0x04, ^0)|rs1G0|asi(^0), "O", Alias, V6)
	b.alu("add", 0x00, true, 0, V6)
	b.alu("addcc", 0x10, true, 0, V6)
	b.alu("addx", 0x08, true, NotV9, V6)
	b.alu("addc", 0x08, true, 0, V9)
	b.alu("addxcc", 0x18, true, NotV9, V6)
	b.alu("addccc", 0x18, true, 0, V9)
	b.alu("smul", 0x0b, true, 0, V8)
	b.alu("smulcc", 0x1b, true, 0, V8)
	b.alu("umul", 0x0a, true, 0, V8)
	b.alu("umulcc", 0x1a, true, 0, V8)
	b.alu("sdiv", 0x0f, true, 0, V8)
	b.alu("sdivcc", 0x1f, true, 0, V8)
	b.alu("udiv", 0x0e, true, 0, V8)
	b.alu("udivcc", 0x1e, true, 0, V8)
	b.alu("mulx", 0x09, false, 0, V9)
	b.alu("sdivx", 0x2d, false, 0, V9)
	b.alu("udivx", 0x0d, false, 0, V9)

	// Calls.
	b.add("call", f1(1), f1(^1), "L", Jsr|Delayed, V6)
	b.add("call", f1(1), f1(^1), "L,#", Jsr|Delayed, V6)
	b.jump("call", 0x38, rd(0xf), rd(^0xf), "", Jsr|Delayed, V6)
	b.jump("call", 0x38, rd(0xf), rd(^0xf), ",#", Jsr|Delayed, V6)

	// Integer branches and traps.
	b.cond("b", "ta", condA, UncondBranch)
	b.cond("ba", "t", condA, UncondBranch|Alias)
	b.cond("bcc", "tcc", condCC, CondBranch)
	b.cond("bcs", "tcs", condCS, CondBranch)
	b.cond("be", "te", condE, CondBranch)
	b.cond("bg", "tg", condG, CondBranch)
	b.cond("bgt", "tgt", condG, CondBranch|Alias)
	b.cond("bge", "tge", condGE, CondBranch)
	b.cond("bgeu", "tgeu", condGEU, CondBranch|Alias)
	b.cond("bgu", "tgu", condGU, CondBranch)
	b.cond("bl", "tl", condL, CondBranch)
	b.cond("blt", "tlt", condL, CondBranch|Alias)
	b.cond("ble", "tle", condLE, CondBranch)
	b.cond("bleu", "tleu", condLEU, CondBranch)
	b.cond("blu", "tlu", condLU, CondBranch|Alias)
	b.cond("bn", "tn", condN, CondBranch)
	b.cond("bne", "tne", condNE, CondBranch)
	b.cond("bneg", "tneg", condNEG, CondBranch)
	b.cond("bnz", "tnz", condNZ, CondBranch|Alias)
	b.cond("bpos", "tpos", condPOS, CondBranch)
	b.cond("bvc", "tvc", condVC, CondBranch)
	b.cond("bvs", "tvs", condVS, CondBranch)
	b.cond("bz", "tz", condZ, CondBranch|Alias)

	// Branches and moves on register contents.
	rconds := []struct {
		name  string
		c     int
		flags Flags
	}{
		{"nz", 0x5, 0},
		{"z", 0x1, 0},
		{"gez", 0x7, 0},
		{"lz", 0x3, 0},
		{"lez", 0x2, 0},
		{"gz", 0x6, 0},
	}
	for _, r := range rconds {
		b.condr("br"+r.name, r.c, CondBranch)
	}
	movrConds := []struct {
		name  string
		c     int
		flags Flags
	}{
		{"ne", 0x5, 0},
		{"e", 0x1, 0},
		{"gez", 0x7, 0},
		{"lz", 0x3, 0},
		{"lez", 0x2, 0},
		{"gz", 0x6, 0},
		{"nz", 0x5, Alias},
		{"z", 0x1, Alias},
	}
	for _, r := range movrConds {
		b.movr("movr"+r.name, r.c, r.flags)
	}
	for _, size := range []int{fmSingle, fmDouble, fmQuad} {
		for _, r := range movrConds {
			b.fmovr(size, r.name, r.c, r.flags)
		}
	}

	// Conditional moves.
	b.movcc("mova", condA, fcondA, 0)
	b.movicc("movcc", condCC, 0)
	b.movicc("movgeu", condGEU, Alias)
	b.movicc("movcs", condCS, 0)
	b.movicc("movlu", condLU, Alias)
	b.movcc("move", condE, fcondE, 0)
	b.movcc("movg", condG, fcondG, 0)
	b.movcc("movge", condGE, fcondGE, 0)
	b.movicc("movgu", condGU, 0)
	b.movcc("movl", condL, fcondL, 0)
	b.movcc("movle", condLE, fcondLE, 0)
	b.movicc("movleu", condLEU, 0)
	b.movfcc("movlg", fcondLG, 0)
	b.movcc("movn", condN, fcondN, 0)
	b.movcc("movne", condNE, fcondNE, 0)
	b.movicc("movneg", condNEG, 0)
	b.movcc("movnz", condNZ, fcondNZ, Alias)
	b.movfcc("movo", fcondO, 0)
	b.movicc("movpos", condPOS, 0)
	b.movfcc("movu", fcondU, 0)
	b.movfcc("movue", fcondUE, 0)
	b.movfcc("movug", fcondUG, 0)
	b.movfcc("movuge", fcondUGE, 0)
	b.movfcc("movul", fcondUL, 0)
	b.movfcc("movule", fcondULE, 0)
	b.movicc("movvc", condVC, 0)
	b.movicc("movvs", condVS, 0)
	b.movcc("movz", condZ, fcondZ, Alias)

	b.fmovcc("a", condA, fcondA, 0)
	b.fmovicc("cc", condCC, 0)
	b.fmovicc("cs", condCS, 0)
	b.fmovcc("e", condE, fcondE, 0)
	b.fmovcc("g", condG, fcondG, 0)
	b.fmovcc("ge", condGE, fcondGE, 0)
	b.fmovicc("geu", condGEU, Alias)
	b.fmovicc("gu", condGU, 0)
	b.fmovcc("l", condL, fcondL, 0)
	b.fmovcc("le", condLE, fcondLE, 0)
	b.fmovicc("leu", condLEU, 0)
	b.fmovfcc("lg", fcondLG, 0)
	b.fmovicc("lu", condLU, Alias)
	b.fmovcc("n", condN, fcondN, 0)
	b.fmovcc("ne", condNE, fcondNE, 0)
	b.fmovicc("neg", condNEG, 0)
	b.fmovcc("nz", condNZ, fcondNZ, Alias)
	b.fmovfcc("o", fcondO, 0)
	b.fmovicc("pos", condPOS, 0)
	b.fmovfcc("u", fcondU, 0)
	b.fmovfcc("ue", fcondUE, 0)
	b.fmovfcc("ug", fcondUG, 0)
	b.fmovfcc("uge", fcondUGE, 0)
	b.fmovfcc("ul", fcondUL, 0)
	b.fmovfcc("ule", fcondULE, 0)
	b.fmovicc("vc", condVC, 0)
	b.fmovicc("vs", condVS, 0)
	b.fmovcc("z", condZ, fcondZ, Alias)

	// Floating-point and coprocessor branches.
	b.condfc("fb", "cb", fcondA, 0)
	b.condfc("fba", "cba", fcondA, Alias)
	b.condfc("fbe", "cb0", fcondE, 0)
	b.condfc("fbz", "", fcondZ, Alias)
	b.condfc("fbg", "cb2", fcondG, 0)
	b.condfc("fbge", "cb02", fcondGE, 0)
	b.condfc("fbl", "cb1", fcondL, 0)
	b.condfc("fble", "cb01", fcondLE, 0)
	b.condfc("fblg", "cb12", fcondLG, 0)
	b.condfc("fbn", "cbn", fcondN, 0)
	b.condfc("fbne", "cb123", fcondNE, 0)
	b.condfc("fbnz", "", fcondNZ, Alias)
	b.condfc("fbo", "cb012", fcondO, 0)
	b.condfc("fbu", "cb3", fcondU, 0)
	b.condfc("fbue", "cb03", fcondUE, 0)
	b.condfc("fbug", "cb23", fcondUG, 0)
	b.condfc("fbuge", "cb023", fcondUGE, 0)
	b.condfc("fbul", "cb13", fcondUL, 0)
	b.condfc("fbule", "cb013", fcondULE, 0)

	b.jump("jmp", 0x38, 0, rdG0, "", UncondBranch|Delayed, V6)

	// sethi and the constant-loading macros built on it.
	b.add("nop", f2(0, 4), 0xfeffffff, "", 0, V6)
	b.add("set", f2(0, 4), f2(^0, ^4), "Sh,d", Alias|Macro, V6)
	b.add("sethi", f2(0, 4), f2(^0, ^4), "h,d", 0, V6)
	b.add("setuw", f2(0, 4), f2(^0, ^4), "Sh,d", Alias|Macro, V6)
	b.add("setsw", f2(0, 4), f2(^0, ^4), "Sh,d", Alias|Macro, V6)
	b.add("setx", f2(0, 4), f2(^0, ^4), "Sh,1,d", Alias|Macro, V9)

	// Tagged arithmetic and the rest of the logical ops.
	b.alu("taddcc", 0x20, true, 0, V6)
	b.alu("taddcctv", 0x22, true, 0, V6)
	b.alu("tsubcc", 0x21, false, 0, V6)
	b.alu("tsubcctv", 0x23, false, 0, V6)
	b.add("unimp", f2(0, 0), 0xffc00000, "n", NotV9, V6)
	b.add("illtrap", f2(0, 0), f2(^0, ^0)|rdG0, "n", 0, V9)
	b.alu("xnor", 0x07, true, 0, V6)
	b.alu("xnorcc", 0x17, true, 0, V6)
	b.alu("xor", 0x03, true, 0, V6)
	b.alu("xorcc", 0x13, true, 0, V6)
	b.add("not", f3(2, 0x07, 0), f3(^2, ^0x07, ^0)|asi(^0), "1,d", Alias, V6)
	b.add("not", f3(2, 0x07, 0), f3(^2, ^0x07, ^0)|asi(^0), "r", Alias, V6)
	b.add("btog", f3(2, 0x03, 0), f3(^2, ^0x03, ^0)|asi(^0), "2,r", Alias, V6)
	b.add("btog", f3(2, 0x03, 1), f3(^2, ^0x03, ^1), "i,r", Alias, V6)

	// FPop1.
	b.fpop1("fdtoi", 0x0d2, "B,g", V6)
	b.fpop1("fstoi", 0x0d1, "f,g", V6)
	b.fpop1("fqtoi", 0x0d3, "R,g", V8)
	b.fpop1("fdtox", 0x082, "B,g", V9)
	b.fpop1("fstox", 0x081, "f,g", V9)
	b.fpop1("fqtox", 0x083, "R,g", V9)
	b.fpop1("fitod", 0x0c8, "f,H", V6)
	b.fpop1("fitos", 0x0c4, "f,g", V6)
	b.fpop1("fitoq", 0x0cc, "f,J", V8)
	b.fpop1("fxtod", 0x088, "f,H", V9)
	b.fpop1("fxtos", 0x084, "f,g", V9)
	b.fpop1("fxtoq", 0x08c, "f,J", V9)
	b.fpop1("fdtoq", 0x0ce, "B,J", V8)
	b.fpop1("fdtos", 0x0c6, "B,g", V6)
	b.fpop1("fqtod", 0x0cb, "R,H", V8)
	b.fpop1("fqtos", 0x0c7, "R,g", V8)
	b.fpop1("fstod", 0x0c9, "f,H", V6)
	b.fpop1("fstoq", 0x0cd, "f,J", V8)
	b.fpop("fdivd", 0x34, 0x04e, "v,B,H", false, Macro, V6)
	b.fpop("fdivq", 0x34, 0x04f, "V,R,J", false, Macro, V8)
	b.fpop("fdivs", 0x34, 0x04d, "e,f,g", false, Macro, V6)
	b.fpop1("fmuld", 0x04a, "v,B,H", V6)
	b.fpop1("fmulq", 0x04b, "V,R,J", V8)
	b.fpop1("fmuls", 0x049, "e,f,g", V6)
	b.fpop1("fdmulq", 0x06e, "v,B,J", V8)
	b.fpop1("fsmuld", 0x069, "e,f,H", V8)
	b.fpop1("fsqrtd", 0x02a, "B,H", V7)
	b.fpop1("fsqrtq", 0x02b, "R,J", V8)
	b.fpop1("fsqrts", 0x029, "f,g", V7)
	b.fpop1("fabsd", 0x00a, "B,H", V9)
	b.fpop1("fabsq", 0x00b, "R,J", V9)
	b.fpop1("fabss", 0x009, "f,g", V6)
	b.fpop1("fmovd", 0x002, "B,H", V9)
	b.fpop1("fmovq", 0x003, "R,J", V9)
	b.fpop1("fmovs", 0x001, "f,g", V6)
	b.fpop1("fnegd", 0x006, "B,H", V9)
	b.fpop1("fnegq", 0x007, "R,J", V9)
	b.fpop1("fnegs", 0x005, "f,g", V6)
	b.fpop1("faddd", 0x042, "v,B,H", V6)
	b.fpop1("faddq", 0x043, "V,R,J", V8)
	b.fpop1("fadds", 0x041, "e,f,g", V6)
	b.fpop1("fsubd", 0x046, "v,B,H", V6)
	b.fpop1("fsubq", 0x047, "V,R,J", V8)
	b.fpop1("fsubs", 0x045, "e,f,g", V6)

	// FPop2 compares.
	b.fcmp("fcmpd", 0x052, "v,B", V6)
	b.fcmp("fcmped", 0x056, "v,B", V6)
	b.fcmp("fcmpq", 0x053, "V,R", V8)
	b.fcmp("fcmpeq", 0x057, "V,R", V8)
	b.fcmp("fcmps", 0x051, "e,f", V6)
	b.fcmp("fcmpes", 0x055, "e,f", V6)

	// Extended FPops of the MB86934, in the old coprocessor space.
	efpops := []struct {
		name string
		op3  int
		x    int
		args string
	}{
		{"efitod", 0x36, 0x0c8, "f,H"},
		{"efitos", 0x36, 0x0c4, "f,g"},
		{"efdtoi", 0x36, 0x0d2, "B,g"},
		{"efstoi", 0x36, 0x0d1, "f,g"},
		{"efstod", 0x36, 0x0c9, "f,H"},
		{"efdtos", 0x36, 0x0c6, "B,g"},
		{"efmovs", 0x36, 0x001, "f,g"},
		{"efnegs", 0x36, 0x005, "f,g"},
		{"efabss", 0x36, 0x009, "f,g"},
		{"efsqrtd", 0x36, 0x02a, "B,H"},
		{"efsqrts", 0x36, 0x029, "f,g"},
		{"efaddd", 0x36, 0x042, "v,B,H"},
		{"efadds", 0x36, 0x041, "e,f,g"},
		{"efsubd", 0x36, 0x046, "v,B,H"},
		{"efsubs", 0x36, 0x045, "e,f,g"},
		{"efdivd", 0x36, 0x04e, "v,B,H"},
		{"efdivs", 0x36, 0x04d, "e,f,g"},
		{"efmuld", 0x36, 0x04a, "v,B,H"},
		{"efmuls", 0x36, 0x049, "e,f,g"},
		{"efsmuld", 0x36, 0x069, "e,f,H"},
		{"efcmpd", 0x37, 0x052, "v,B"},
		{"efcmped", 0x37, 0x056, "v,B"},
		{"efcmps", 0x37, 0x051, "e,f"},
		{"efcmpes", 0x37, 0x055, "e,f"},
	}
	for _, e := range efpops {
		if e.op3 == 0x37 {
			b.add(e.name, f3f(2, e.op3, e.x), f3f(^2, ^e.op3, ^e.x)|rdG0, e.args, Float, Sparclite)
			continue
		}
		b.fpop(e.name, e.op3, e.x, e.args, len(e.args) == 3, 0, Sparclite)
	}

	b.add("cpop1", f3(2, 0x36, 0), f3(^2, ^0x36, ^1), "[1+2],d", Alias|NotV9, V6)
	b.add("cpop2", f3(2, 0x37, 0), f3(^2, ^0x37, ^1), "[1+2],d", Alias|NotV9, V6)
	b.impdep("impdep1", 0x36)
	b.impdep("impdep2", 0x37)

	// Atomics and v9 synthetics.
	b.add("casa", f3(3, 0x3c, 0), f3(^3, ^0x3c, ^0), "[1]A,2,d", 0, V9)
	b.add("casa", f3(3, 0x3c, 1), f3(^3, ^0x3c, ^1), "[1]o,2,d", 0, V9)
	b.add("casxa", f3(3, 0x3e, 0), f3(^3, ^0x3e, ^0), "[1]A,2,d", 0, V9)
	b.add("casxa", f3(3, 0x3e, 1), f3(^3, ^0x3e, ^1), "[1]o,2,d", 0, V9)
	b.add("iprefetch", f2(0, 1)|bpXcc|bpred, f2(^0, ^1)|1<<20|annul|cond(^0), "G", 0, V9)
	b.add("signx", f3(2, 0x27, 0), f3(^2, ^0x27, ^0)|shiftX|asi(^0)|rs2G0, "1,d", Alias, V9)
	b.add("signx", f3(2, 0x27, 0), f3(^2, ^0x27, ^0)|shiftX|asi(^0)|rs2G0, "r", Alias, V9)
	b.add("clruw", f3(2, 0x26, 0), f3(^2, ^0x26, ^0)|shiftX|asi(^0)|rs2G0, "1,d", Alias, V9)
	b.add("clruw", f3(2, 0x26, 0), f3(^2, ^0x26, ^0)|shiftX|asi(^0)|rs2G0, "r", Alias, V9)
	b.add("cas", f3(3, 0x3c, 0)|asi(0x80), f3(^3, ^0x3c, ^0)|asi(^0x80), "[1],2,d", Alias, V9)
	b.add("casl", f3(3, 0x3c, 0)|asi(0x88), f3(^3, ^0x3c, ^0)|asi(^0x88), "[1],2,d", Alias, V9)
	b.add("casx", f3(3, 0x3e, 0)|asi(0x80), f3(^3, ^0x3e, ^0)|asi(^0x80), "[1],2,d", Alias, V9)
	b.add("casxl", f3(3, 0x3e, 0)|asi(0x88), f3(^3, ^0x3e, ^0)|asi(^0x88), "[1],2,d", Alias, V9)

	return b.list
}

// step adds the increment/decrement aliases: by one, or by an immediate.
func (b *builder) step(name string, op3 int) {
	b.add(name, f3(2, op3, 1)|simm13(1), f3(^2, ^op3, ^1)|simm13(^1), "r", Alias, V6)
	b.add(name, f3(2, op3, 1), f3(^2, ^op3, ^1), "i,r", Alias, V8)
}

// State registers reachable through rd and wr: the register code used in
// templates, the op3 of the write, the op3 of the read, the register
// number placed in rd or rs1, and the availability of the register.
var stateRegs = []struct {
	code     string
	wr, rd   int
	num      int
	flags    Flags
	arch     Arch
	implicit bool // register number is implied by op3
}{
	{"y", 0x30, 0x28, 0, 0, V6, true},
	{"p", 0x31, 0x29, 0, NotV9, V6, true},
	{"w", 0x32, 0x2a, 0, NotV9, V6, true},
	{"t", 0x33, 0x2b, 0, NotV9, V6, true},
	{"E", 0x30, 0x28, 2, 0, V9, false},
	{"o", 0x30, 0x28, 3, 0, V9, false},
	{"W", 0x30, 0x28, 4, 0, V9, false},
	{"P", 0x30, 0x28, 5, 0, V9, false},
	{"s", 0x30, 0x28, 6, 0, V9, false},
}

// stateRegisters adds the wr and rd groups.
func (b *builder) stateRegisters(wrName, rdName string, flags Flags) {
	b.add(wrName, f3(2, 0x30, 0), f3(^2, ^0x30, ^0)|asi(^0), "1,2,m", flags, V8)
	b.add(wrName, f3(2, 0x30, 0), f3(^2, ^0x30, ^0)|rdG0|asi(^0), "1,2,y", flags, V6)
	b.add(wrName, f3(2, 0x30, 1), f3(^2, ^0x30, ^1), "1,i,m", flags, V8)
	b.add(wrName, f3(2, 0x30, 1), f3(^2, ^0x30, ^1)|rdG0, "1,i,y", flags, V6)
	for _, r := range stateRegs[1:] {
		// %tick and %pc are read-only.
		if r.code == "W" || r.code == "P" {
			continue
		}
		if r.implicit {
			b.add(wrName, f3(2, r.wr, 0), f3(^2, ^r.wr, ^0)|rdG0|asi(^0), "1,2,"+r.code, flags|r.flags, r.arch)
			b.add(wrName, f3(2, r.wr, 1), f3(^2, ^r.wr, ^1)|rdG0, "1,i,"+r.code, flags|r.flags, r.arch)
			continue
		}
		b.add(wrName, f3(2, r.wr, 0)|rd(r.num), f3(^2, ^r.wr, ^0)|rd(^r.num)|asi(^0), "1,2,"+r.code, flags|r.flags, r.arch)
		b.add(wrName, f3(2, r.wr, 1)|rd(r.num), f3(^2, ^r.wr, ^1)|rd(^r.num), "1,i,"+r.code, flags|r.flags, r.arch)
	}

	b.add(rdName, f3(2, 0x28, 0), f3(^2, ^0x28, ^0)|simm13(^0), "M,d", flags, V8)
	for _, r := range stateRegs {
		lose := f3(^2, ^r.rd, ^0) | simm13(^0)
		if r.implicit {
			b.add(rdName, f3(2, r.rd, 0), lose|rs1G0, r.code+",d", flags|r.flags, r.arch)
			continue
		}
		b.add(rdName, f3(2, r.rd, 0)|rs1(r.num), lose|rs1(^r.num), r.code+",d", flags|r.flags, r.arch)
	}
}

// moves adds the mov synthetic: state register writes and reads, then
// register and immediate copies.
func (b *builder) moves() {
	b.add("mov", f3(2, 0x30, 0), f3(^2, ^0x30, ^0)|asi(^0), "1,2,m", Alias, V8)
	b.add("mov", f3(2, 0x30, 0), f3(^2, ^0x30, ^0)|rdG0|asi(^0), "1,2,y", Alias, V6)
	b.add("mov", f3(2, 0x30, 1), f3(^2, ^0x30, ^1), "1,i,m", Alias, V8)
	b.add("mov", f3(2, 0x30, 1), f3(^2, ^0x30, ^1)|rdG0, "1,i,y", Alias, V6)
	for _, r := range stateRegs[1:4] {
		b.add("mov", f3(2, r.wr, 0), f3(^2, ^r.wr, ^0)|rdG0|asi(^0), "1,2,"+r.code, Alias|r.flags, r.arch)
		b.add("mov", f3(2, r.wr, 1), f3(^2, ^r.wr, ^1)|rdG0, "1,i,"+r.code, Alias|r.flags, r.arch)
	}
	b.add("mov", f3(2, 0x28, 0), f3(^2, ^0x28, ^0)|simm13(^0), "M,d", Alias, V8)
	for _, r := range stateRegs[:4] {
		b.add("mov", f3(2, r.rd, 0), f3(^2, ^r.rd, ^0)|rs1G0|simm13(^0), r.code+",d", Alias|r.flags, r.arch)
	}
	for _, r := range stateRegs[:4] {
		b.add("mov", f3(2, r.wr, 0), f3(^2, ^r.wr, ^0)|asiRS2(^0), "1,"+r.code, Alias|r.flags, r.arch)
		b.add("mov", f3(2, r.wr, 1), f3(^2, ^r.wr, ^1), "i,"+r.code, Alias|r.flags, r.arch)
		b.add("mov", f3(2, r.wr, 1), f3(^2, ^r.wr, ^1)|simm13(^0), "1,"+r.code, Alias|r.flags, r.arch)
	}
	b.add("mov", f3(2, 0x02, 0), f3(^2, ^0x02, ^0)|rs1G0|asi(^0), "2,d", 0, V6)
	b.add("mov", f3(2, 0x02, 1), f3(^2, ^0x02, ^1)|rs1G0, "i,d", 0, V6)
	b.add("mov", f3(2, 0x02, 0), f3(^2, ^0x02, ^0)|asiRS2(^0), "1,d", 0, V6)
	b.add("mov", f3(2, 0x02, 1), f3(^2, ^0x02, ^1)|simm13(^0), "1,d", 0, V6)
}
