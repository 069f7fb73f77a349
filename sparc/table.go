// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

import (
	"fmt"
	"strings"
)

// Flags describe the behavior of an instruction form.
type Flags uint16

// Descriptor flags.
const (
	Delayed      Flags = 1 << iota // has a delay slot
	Alias                          // synthetic spelling of another form
	Jsr                            // subroutine call
	UncondBranch                   // unconditional branch
	CondBranch                     // conditional branch
	Float                          // floating-point operate instruction
	FloatBranch                    // floating-point conditional branch
	NotV9                          // not available on v9 and later
	Macro                          // expands to more than one word
)

var flagNames = []string{
	"delayed", "alias", "jsr", "unbr", "condbr", "float", "fbr", "notv9", "macro",
}

func (f Flags) String() string {
	var names []string
	for i, n := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, "|")
}

// A Descriptor is one matchable form of an instruction: a mnemonic, the
// bits it always sets, the bits it never sets, its operand template, and
// the revision that introduced it.
type Descriptor struct {
	Name     string    // mnemonic, shared by all forms in a group
	Match    uint32    // bits set in every encoding
	Lose     uint32    // bits clear in every encoding
	Args     string    // operand template
	Flags    Flags     // behavior flags
	Arch     Arch      // revision that introduced the form
	Operands []Operand // compiled template
}

// Mask returns the set of revisions able to execute the form.
func (d *Descriptor) Mask() ArchMask {
	m := supporting(d.Arch)
	if d.Flags&NotV9 != 0 {
		m &^= MaskOf(V9, V9a)
	}
	return m
}

func (d *Descriptor) String() string {
	if d.Args == "" {
		return d.Name
	}
	return d.Name + " " + d.Args
}

// A Table indexes the opcode catalog by mnemonic. Forms sharing a mnemonic
// are kept in catalog order, which is the order they are tried in.
type Table struct {
	forms  []*Descriptor
	groups map[string][]*Descriptor
}

// TableError lists every descriptor that failed the catalog self-check.
type TableError struct {
	Problems []string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("broken opcode table (%d problems): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

// NewTable builds the mnemonic index over the opcode catalog. It fails if
// any descriptor sets a bit in both its match and lose masks, if a
// template uses an unknown operand code, or if the forms of a mnemonic are
// not contiguous in the catalog.
func NewTable() (*Table, error) {
	return newTable(catalog())
}

func newTable(list []Descriptor) (*Table, error) {
	t := &Table{
		forms:  make([]*Descriptor, 0, len(list)),
		groups: make(map[string][]*Descriptor),
	}

	var problems []string
	prev := ""
	for i := range list {
		d := &list[i]

		if d.Match&d.Lose != 0 {
			problems = append(problems,
				fmt.Sprintf("%s: match %#08x and lose %#08x overlap", d, d.Match, d.Lose))
		}

		ops, err := compileTemplate(d.Args)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", d.Name, err))
		}
		d.Operands = ops

		if d.Name != prev {
			if _, seen := t.groups[d.Name]; seen {
				problems = append(problems,
					fmt.Sprintf("%s: forms are not contiguous", d.Name))
			}
			prev = d.Name
		}

		t.forms = append(t.forms, d)
		t.groups[d.Name] = append(t.groups[d.Name], d)
	}

	if len(problems) > 0 {
		return nil, &TableError{Problems: problems}
	}
	return t, nil
}

// Lookup returns every form of the mnemonic in the order they should be
// tried, or nil if the mnemonic is unknown.
func (t *Table) Lookup(name string) []*Descriptor {
	return t.groups[name]
}

// Descriptors returns the whole catalog in order.
func (t *Table) Descriptors() []*Descriptor {
	return t.forms
}

// Mnemonics returns the number of distinct mnemonics in the table.
func (t *Table) Mnemonics() int {
	return len(t.groups)
}

var defaultTable *Table

// Default returns the table built from the built-in catalog, creating it
// on first use. A catalog that fails its self-check is a programming
// error, so Default panics rather than returning it.
func Default() *Table {
	if defaultTable == nil {
		t, err := NewTable()
		if err != nil {
			panic(err)
		}
		defaultTable = t
	}
	return defaultTable
}
