// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reloc

import "fmt"

// Expr is the symbolic value of a fixup: a symbol plus a constant addend.
// A pure constant has no symbol.
type Expr struct {
	Symbol string
	Addend int64
}

// IsConstant reports whether the expression refers to no symbol.
func (e Expr) IsConstant() bool {
	return e.Symbol == ""
}

func (e Expr) String() string {
	switch {
	case e.Symbol == "":
		return fmt.Sprintf("%d", e.Addend)
	case e.Addend == 0:
		return e.Symbol
	case e.Addend < 0:
		return fmt.Sprintf("%s-%d", e.Symbol, -e.Addend)
	default:
		return fmt.Sprintf("%s+%d", e.Symbol, e.Addend)
	}
}

// A Fixup asks for a value to be stored into a field of the output once
// the value is known.
type Fixup struct {
	Offset int   // byte offset of the patched word within the section
	Size   int   // bytes covered; 4 for instruction fields
	Kind   Kind  // field being patched
	Expr   Expr  // value to store
	PCRel  bool  // value is relative to the fixup location
	Line   int   // source line, for diagnostics
	Extern bool  // survives to link time as a relocation
	Done   bool  // value has been stored and no relocation is needed
	Value  int64 // last value passed to Apply, used for relocation addends

	// SectionSymbol is set when Expr.Symbol names a section rather than
	// a label, as when a local reference is externalized.
	SectionSymbol bool
}

// Severity grades an overflow diagnostic.
type Severity byte

// Overflow severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// OverflowError reports a value that does not fit the field it was
// stored into. The truncated value is still written.
type OverflowError struct {
	Kind     Kind
	Value    int64
	Severity Severity
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("relocation overflow (%s, value %d)", e.Kind, e.Value)
}

// strict kinds hold immediates the user wrote directly. Overflowing one
// of them is an error; overflowing a displacement or data field is
// advisory.
func strict(k Kind) bool {
	switch k {
	case SPARC5, SPARC6, SPARC10, SPARC11, SPARC13, SPARC22, GOT13:
		return true
	}
	return false
}

func overflow(k Kind, v int64) error {
	sev := SeverityWarning
	if strict(k) {
		sev = SeverityError
	}
	return &OverflowError{Kind: k, Value: v, Severity: sev}
}
