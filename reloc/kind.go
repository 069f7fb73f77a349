// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reloc resolves assembler fixups into SPARC instruction words and
// converts the ones that must survive to link time into ELF relocations.
package reloc

import (
	"debug/elf"
	"fmt"
)

// Kind is an internal relocation kind.
type Kind byte

// Relocation kinds.
const (
	None    Kind = iota
	Data8        // 8-bit absolute data
	Data16       // 16-bit absolute data
	Data32       // 32-bit absolute data
	Data64       // 64-bit absolute data
	WDisp30      // call displacement
	HI22         // sethi %hi
	LO10         // %lo
	SPARC13      // 13-bit signed immediate
	SPARC22      // 22-bit immediate
	WDisp22      // Bicc displacement
	WDisp16      // BPr displacement
	WDisp19      // BPcc displacement
	SPARC10      // 10-bit signed immediate
	SPARC11      // 11-bit signed immediate
	SPARC5       // 5-bit shift count
	SPARC6       // 6-bit shift count
	HH22         // %uhi
	HM10         // %ulo
	LM22         // low 32 bits, high 22
	WPLT30       // call through the PLT
	GOT10        // %lo of a GOT slot
	GOT13        // 13-bit GOT slot offset
	GOT22        // %hi of a GOT slot
	PC10         // %lo relative to the PC
	PC22         // %hi relative to the PC

	numKinds = iota
)

type kindData struct {
	name  string
	elf   elf.R_SPARC
	pcrel bool
}

var kinds = [numKinds]kindData{
	None:    {"NONE", elf.R_SPARC_NONE, false},
	Data8:   {"8", elf.R_SPARC_8, false},
	Data16:  {"16", elf.R_SPARC_16, false},
	Data32:  {"32", elf.R_SPARC_32, false},
	Data64:  {"64", elf.R_SPARC_64, false},
	WDisp30: {"WDISP30", elf.R_SPARC_WDISP30, true},
	HI22:    {"HI22", elf.R_SPARC_HI22, false},
	LO10:    {"LO10", elf.R_SPARC_LO10, false},
	SPARC13: {"13", elf.R_SPARC_13, false},
	SPARC22: {"22", elf.R_SPARC_22, false},
	WDisp22: {"WDISP22", elf.R_SPARC_WDISP22, true},
	WDisp16: {"WDISP16", elf.R_SPARC_WDISP16, true},
	WDisp19: {"WDISP19", elf.R_SPARC_WDISP19, true},
	SPARC10: {"10", elf.R_SPARC_10, false},
	SPARC11: {"11", elf.R_SPARC_11, false},
	SPARC5:  {"5", elf.R_SPARC_5, false},
	SPARC6:  {"6", elf.R_SPARC_6, false},
	HH22:    {"HH22", elf.R_SPARC_HH22, false},
	HM10:    {"HM10", elf.R_SPARC_HM10, false},
	LM22:    {"LM22", elf.R_SPARC_LM22, false},
	WPLT30:  {"WPLT30", elf.R_SPARC_WPLT30, true},
	GOT10:   {"GOT10", elf.R_SPARC_GOT10, false},
	GOT13:   {"GOT13", elf.R_SPARC_GOT13, false},
	GOT22:   {"GOT22", elf.R_SPARC_GOT22, false},
	PC10:    {"PC10", elf.R_SPARC_PC10, true},
	PC22:    {"PC22", elf.R_SPARC_PC22, true},
}

func (k Kind) String() string {
	if k < numKinds {
		return kinds[k].name
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ELF returns the ELF relocation type for the kind.
func (k Kind) ELF() elf.R_SPARC {
	if k < numKinds {
		return kinds[k].elf
	}
	return elf.R_SPARC_NONE
}

// PCRelative reports whether the relocated field holds a PC-relative
// value.
func (k Kind) PCRelative() bool {
	return k < numKinds && kinds[k].pcrel
}
