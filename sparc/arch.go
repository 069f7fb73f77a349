// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

import (
	"fmt"
	"strings"
)

// Arch identifies a SPARC architecture revision.
type Arch byte

// Architecture revisions, oldest first. Sparclet and Sparclite are vendor
// variants of v8 and are not ordered with respect to each other or v9.
const (
	V6 Arch = iota
	V7
	V8
	Sparclet
	Sparclite
	V9
	V9a

	numArch = iota
)

var archNames = [numArch]string{
	"v6",
	"v7",
	"v8",
	"sparclet",
	"sparclite",
	"v9",
	"v9a",
}

// Names accepted by ParseArch in addition to the canonical ones.
var archAliases = map[string]Arch{
	"v8plus":  V9,
	"v8plusa": V9a,
}

func (a Arch) String() string {
	if int(a) < len(archNames) {
		return archNames[a]
	}
	return fmt.Sprintf("arch(%d)", a)
}

// ParseArch converts an architecture name like "v8" or "sparclite" into
// an Arch.
func ParseArch(name string) (Arch, error) {
	name = strings.ToLower(name)
	for i, n := range archNames {
		if n == name {
			return Arch(i), nil
		}
	}
	if a, ok := archAliases[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("invalid architecture '%s'", name)
}

// Archs returns all architecture revisions in bump preference order.
func Archs() []Arch {
	archs := make([]Arch, numArch)
	for i := range archs {
		archs[i] = Arch(i)
	}
	return archs
}

// An ArchMask is a set of architecture revisions.
type ArchMask uint8

// MaskOf returns the set containing the listed revisions.
func MaskOf(archs ...Arch) ArchMask {
	var m ArchMask
	for _, a := range archs {
		m |= 1 << a
	}
	return m
}

// Has reports whether the mask contains a.
func (m ArchMask) Has(a Arch) bool {
	return m&(1<<a) != 0
}

func (m ArchMask) String() string {
	var names []string
	for i := Arch(0); i < numArch; i++ {
		if m.Has(i) {
			names = append(names, i.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// includes[a] is the set of revisions whose instructions a can execute.
var includes = [numArch]ArchMask{
	V6:        MaskOf(V6),
	V7:        MaskOf(V6, V7),
	V8:        MaskOf(V6, V7, V8),
	Sparclet:  MaskOf(V6, V7, V8, Sparclet),
	Sparclite: MaskOf(V6, V7, V8, Sparclite),
	V9:        MaskOf(V6, V7, V8, V9),
	V9a:       MaskOf(V6, V7, V8, V9, V9a),
}

// Includes reports whether revision a is a superset of revision b.
func Includes(a, b Arch) bool {
	return includes[a].Has(b)
}

// Conflicts reports whether neither revision is a superset of the other,
// which means no single bump can reach both.
func Conflicts(a, b Arch) bool {
	return !Includes(a, b) && !Includes(b, a)
}

// supporting returns the set of revisions able to execute an instruction
// introduced in revision a.
func supporting(a Arch) ArchMask {
	var m ArchMask
	for l := Arch(0); l < numArch; l++ {
		if Includes(l, a) {
			m |= 1 << l
		}
	}
	return m
}

// ArchState tracks the architecture revision required by the instructions
// assembled so far. Current never decreases. Max bounds it only when a
// revision was requested without bumping.
type ArchState struct {
	Current    Arch // revision required so far
	Max        Arch // highest revision a bump may reach
	WarnAfter  Arch // bumps beyond this revision are reported
	WarnOnBump bool // report bumps past WarnAfter
	Requested  bool // an explicit revision was requested
}

// NewArchState returns the default state: start at v6 and bump silently
// up to v9a.
func NewArchState() *ArchState {
	return &ArchState{
		Current:   V6,
		Max:       V9a,
		WarnAfter: V6,
	}
}

// Request pins the state to an explicitly requested revision. With bump
// set, instructions may still raise the revision up to v9a, and each such
// bump is reported.
func (s *ArchState) Request(a Arch, bump bool) {
	s.Current, s.WarnAfter, s.Requested = a, a, true
	s.WarnOnBump = bump
	if bump {
		s.Max = V9a
	} else {
		s.Max = a
	}
}

// A Bump describes the outcome of a successful Requires call.
type Bump struct {
	Bumped bool // the current revision changed
	From   Arch // revision before the instruction
	To     Arch // revision after the instruction
	Warn   bool // the bump should be reported
}

func (b Bump) String() string {
	return fmt.Sprintf("architecture bumped from \"%s\" to \"%s\"", b.From, b.To)
}

// ArchMismatchError is returned by Requires when no permitted revision can
// execute an instruction.
type ArchMismatchError struct {
	Insn      string   // instruction text
	Required  ArchMask // revisions that would accept the instruction
	Available Arch     // highest revision permitted
}

func (e *ArchMismatchError) Error() string {
	return fmt.Sprintf("Architecture mismatch on \"%s\". (Requires %s; requested architecture is %s.)",
		e.Insn, e.Required, e.Available)
}

// Requires checks that an instruction executable on the revisions in mask
// may be assembled, bumping the current revision if needed. The state is
// left untouched when an error is returned.
func (s *ArchState) Requires(insn string, mask ArchMask) (Bump, error) {
	b := Bump{From: s.Current, To: s.Current}
	if mask.Has(s.Current) {
		return b, nil
	}

	for l := Arch(0); l < numArch; l++ {
		if !mask.Has(l) || !s.permits(l) || !Includes(l, s.Current) {
			continue
		}
		b.Bumped, b.To = true, l
		if s.WarnOnBump && !Includes(s.WarnAfter, l) {
			b.Warn = true
			s.WarnAfter = l
		}
		s.Current = l
		return b, nil
	}

	return b, &ArchMismatchError{Insn: insn, Required: mask, Available: s.Max}
}

// permits reports whether a bump may reach l. A pinned revision caps the
// state at Max. Otherwise any level works unless it conflicts with Current.
func (s *ArchState) permits(l Arch) bool {
	if s.Requested && !s.WarnOnBump {
		return Includes(s.Max, l)
	}
	return true
}
