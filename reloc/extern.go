// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reloc

import (
	"debug/elf"
	"fmt"
)

// GOTSymbol is the name of the global offset table base. In PIC code,
// %hi and %lo references to it are made relative to the PC instead of
// being routed through the table.
const GOTSymbol = "_GLOBAL_OFFSET_TABLE_"

// Symbol describes the target of an externalized fixup.
type Symbol struct {
	Name    string
	Defined bool // defined in this assembly
	Global  bool // visible outside this assembly
	Section bool // the symbol stands for a section
}

// A Relocation is a fixup in the form written to an ELF object.
type Relocation struct {
	Offset int64       `json:"offset"`
	Kind   Kind        `json:"kind"`
	Type   elf.R_SPARC `json:"type"`
	Symbol string      `json:"symbol"`
	Addend int64       `json:"addend"`
}

func (r Relocation) String() string {
	return fmt.Sprintf("%08x %-14s %s%+d", r.Offset, r.Type, r.Symbol, r.Addend)
}

// ExternOptions control the translation of fixups into relocations.
type ExternOptions struct {
	PIC  bool  // generate position-independent relocations
	Base int64 // section start address
}

// exportable lists the kinds an object file can carry.
func exportable(k Kind) bool {
	switch k {
	case Data16, Data32, Data64, HI22, LO10, WDisp30, SPARC13, WDisp16,
		WDisp19, WDisp22, SPARC10, SPARC11, HH22, HM10, LM22, PC10, PC22:
		return true
	}
	return false
}

// picKind returns the relocation kind used for k in position-independent
// code.
func picKind(k Kind, sym Symbol) Kind {
	switch k {
	case WDisp30:
		if !sym.Defined || sym.Global {
			return WPLT30
		}
	case HI22:
		if sym.Name == GOTSymbol {
			return PC22
		}
		return GOT22
	case LO10:
		if sym.Name == GOTSymbol {
			return PC10
		}
		return GOT10
	case SPARC13:
		return GOT13
	}
	return k
}

// Externalize converts a fixup that must survive to link time into a
// relocation against sym. Apply must have been called on f first so that
// its value is known.
func Externalize(f *Fixup, sym Symbol, opts ExternOptions) (Relocation, error) {
	if !exportable(f.Kind) {
		return Relocation{}, fmt.Errorf("internal error: can't export reloc type %d (`%s')", f.Kind, f.Kind)
	}

	kind := f.Kind
	if opts.PIC {
		kind = picKind(kind, sym)
	}

	r := Relocation{
		Offset: opts.Base + int64(f.Offset),
		Kind:   kind,
		Type:   kind.ELF(),
		Symbol: sym.Name,
	}

	switch {
	case !kind.PCRelative() || kind == PC10 || kind == PC22:
		r.Addend = f.Value
	case sym.Section:
		r.Addend = opts.Base + f.Value + PCRelFrom(f, 0, opts.PIC)
	default:
		r.Addend = f.Expr.Addend
	}
	return r, nil
}
