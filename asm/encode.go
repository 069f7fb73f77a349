// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/gosparc/reloc"
	"github.com/beevik/gosparc/sparc"
)

// An Evaluator evaluates the expression at the start of an operand
// string. It returns the expression's value and the number of bytes of
// text it consumed.
type Evaluator interface {
	Evaluate(text string) (v reloc.Expr, n int, err error)
}

// EncodeError reports an instruction that could not be encoded.
type EncodeError struct {
	Insn string // instruction text
	Msg  string // diagnostic
}

func (e *EncodeError) Error() string {
	return e.Msg
}

// An Instruction holds the words produced for one source instruction.
type Instruction struct {
	Desc     *sparc.Descriptor // form that matched
	Words    []uint32          // instruction words
	Fixups   []reloc.Fixup     // offsets are relative to the first word
	Warnings []string          // diagnostics that did not stop encoding
	Bump     sparc.Bump        // architecture change caused by the form
}

// Size returns the number of bytes the instruction occupies.
func (i *Instruction) Size() int {
	return 4 * len(i.Words)
}

// Bytes returns the instruction words in big-endian byte order.
func (i *Instruction) Bytes() []byte {
	return wordBytes(i.Words)
}

// Resolve stores the PC-relative fixups whose target is a constant
// address, as if the instruction were placed at addr.
func (i *Instruction) Resolve(addr int64) error {
	return i.applyConstants(addr, true)
}

// Store constant-valued fixups into the words. Overflows graded as
// warnings are recorded with the instruction; the first error is
// returned.
func (i *Instruction) applyConstants(base int64, pcrel bool) error {
	code := i.Bytes()
	var first error
	for n := range i.Fixups {
		f := &i.Fixups[n]
		if f.Done || !f.Expr.IsConstant() || f.PCRel != pcrel {
			continue
		}
		val := f.Expr.Addend
		if f.PCRel {
			val -= reloc.PCRelFrom(f, base, false)
		}
		err := reloc.Apply(code, f, val)
		var oe *reloc.OverflowError
		switch {
		case err == nil:
		case errors.As(err, &oe) && oe.Severity == reloc.SeverityWarning:
			i.Warnings = append(i.Warnings, err.Error())
		case first == nil:
			first = err
		}
	}
	for n := range i.Words {
		i.Words[n] = uint32(code[4*n])<<24 | uint32(code[4*n+1])<<16 |
			uint32(code[4*n+2])<<8 | uint32(code[4*n+3])
	}
	return first
}

// An Encoder turns mnemonic and operand text into instruction words,
// trying each form of the mnemonic in catalog order.
type Encoder struct {
	table *sparc.Table
	arch  *sparc.ArchState
	eval  Evaluator
	prev  *sparc.Descriptor // previous instruction, for the FP branch checks
}

// NewEncoder returns an encoder over the given opcode table that records
// architecture changes in arch and evaluates operand expressions with
// eval. Nil arguments select the default table, a fresh default
// architecture state, and an evaluator that knows no symbols.
func NewEncoder(table *sparc.Table, arch *sparc.ArchState, eval Evaluator) *Encoder {
	if table == nil {
		table = sparc.Default()
	}
	if arch == nil {
		arch = sparc.NewArchState()
	}
	if eval == nil {
		eval = Symbols(nil)
	}
	return &Encoder{table: table, arch: arch, eval: eval}
}

// Arch returns the architecture state updated by the encoder.
func (e *Encoder) Arch() *sparc.ArchState {
	return e.arch
}

// ClearHistory forgets the previously encoded instruction, so that the
// next one is not checked against it. It is called when data separates
// two instructions.
func (e *Encoder) ClearHistory() {
	e.prev = nil
}

// EncodeLine encodes an instruction written on one line, mnemonic first.
func (e *Encoder) EncodeLine(line string) (*Instruction, error) {
	line = strings.TrimSpace(line)
	i := 0
	for i < len(line) && mnemonicChar(line[i]) {
		i++
	}
	if i < len(line) && line[i] != ',' && !whitespace(line[i]) {
		return nil, &EncodeError{Insn: line, Msg: fmt.Sprintf("Unknown opcode: `%s'", line)}
	}
	return e.Encode(line[:i], line[i:])
}

// Encode encodes one instruction. The operand text starts after the
// mnemonic; a ",a" or ",pt" suffix belongs to the operands.
func (e *Encoder) Encode(mnemonic, operands string) (*Instruction, error) {
	args := normalize(operands)
	insn := mnemonic
	switch {
	case args == "":
	case args[0] == ',':
		insn += args
	default:
		insn += " " + args
	}

	forms := e.table.Lookup(mnemonic)
	if len(forms) == 0 {
		return nil, &EncodeError{Insn: insn, Msg: fmt.Sprintf("Unknown opcode: `%s'", mnemonic)}
	}

	hint := ""
	var archErr error
	for _, d := range forms {
		m := matcher{eval: e.eval, arch: e.arch, args: args, word: d.Match, hint: &hint}
		if !m.match(d) {
			continue
		}
		if m.err != "" {
			return nil, &EncodeError{Insn: insn, Msg: m.err}
		}

		mask := d.Mask()
		if m.v9 {
			mask &= sparc.MaskOf(sparc.V9, sparc.V9a)
		}
		bump, err := e.arch.Requires(insn, mask)
		if err != nil {
			if archErr == nil {
				archErr = err
			}
			continue
		}
		return e.finish(d, &m, insn, bump)
	}

	if archErr != nil {
		return nil, archErr
	}
	return nil, &EncodeError{Insn: insn, Msg: "Illegal operands" + hint}
}

// Build the instruction for a matched form: expand macros, apply
// constant fixups, and run the floating-point branch checks.
func (e *Encoder) finish(d *sparc.Descriptor, m *matcher, insn string, bump sparc.Bump) (*Instruction, error) {
	inst := &Instruction{Desc: d, Bump: bump}
	if bump.Warn {
		inst.Warnings = append(inst.Warnings, fmt.Sprintf("%s on \"%s\"", bump, insn))
	}

	if d.Flags&sparc.Macro != 0 {
		if err := expand(inst, m); err != nil {
			return nil, &EncodeError{Insn: insn, Msg: err.Error()}
		}
	} else {
		inst.Words = []uint32{m.word}
		if m.imm != nil {
			inst.Fixups = append(inst.Fixups, m.imm.fixup(0))
		}
	}

	if err := inst.applyConstants(0, false); err != nil {
		return nil, &EncodeError{Insn: insn, Msg: err.Error()}
	}

	if d.Flags&sparc.FloatBranch != 0 && e.prev != nil {
		switch {
		case e.prev.Flags&sparc.Delayed != 0:
			inst.Warnings = append(inst.Warnings, "FP branch in delay slot")
		case e.prev.Flags&sparc.Float != 0 && !sparc.Includes(e.arch.Max, sparc.V9):
			inst.Words = append([]uint32{sparc.Nop}, inst.Words...)
			for n := range inst.Fixups {
				inst.Fixups[n].Offset += 4
			}
			inst.Warnings = append(inst.Warnings, "FP branch preceded by FP instruction; NOP inserted")
		}
	}
	e.prev = d

	return inst, nil
}

// Reduce the whitespace of operand text. A single blank survives only
// between two characters of a word, as in ",a label".
func normalize(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !whitespace(c) {
			b = append(b, c)
			continue
		}
		j := i
		for j < len(s) && whitespace(s[j]) {
			j++
		}
		if len(b) > 0 && j < len(s) && labelChar(b[len(b)-1]) && labelChar(s[j]) {
			b = append(b, ' ')
		}
		i = j - 1
	}
	return string(b)
}

// A pending relocation recorded while matching an immediate operand.
type pending struct {
	kind  reloc.Kind
	pcrel bool
	expr  reloc.Expr
	raw   int64 // constant as written, before any %uhi or %hi adjustment
}

func (p *pending) fixup(offset int) reloc.Fixup {
	return reloc.Fixup{
		Offset: offset,
		Size:   4,
		Kind:   p.kind,
		Expr:   p.expr,
		PCRel:  p.pcrel,
	}
}

// A matcher holds the state of one attempt to match operand text against
// a form's template.
type matcher struct {
	eval Evaluator
	arch *sparc.ArchState
	args string   // normalized operand text
	pos  int      // next unconsumed byte of args
	word uint32   // opcode word built so far
	imm  *pending // the immediate operand, if any
	v9   bool     // a v9-only register number was used
	err  string   // a hard error in an otherwise matching form
	hint *string  // reason for the latest mismatch, shared by all forms
}

func (m *matcher) rest() string {
	return m.args[m.pos:]
}

func (m *matcher) peek() byte {
	if m.pos < len(m.args) {
		return m.args[m.pos]
	}
	return 0
}

func (m *matcher) fail(hint string) bool {
	*m.hint = hint
	return false
}

// Walk the template of d, consuming operand text. Report whether the
// whole text matched.
func (m *matcher) match(d *sparc.Descriptor) bool {
	for _, op := range d.Operands {
		var ok bool
		switch o := op.(type) {
		case sparc.Literal:
			ok = m.literal(o.Char)
		case sparc.Plus:
			ok = m.plus()
		case sparc.IntReg:
			ok = m.intReg(o)
		case sparc.FloatReg:
			ok = m.floatReg(o)
		case sparc.CoprocReg:
			ok = m.coprocReg(o)
		case sparc.Immediate:
			ok = m.immediate(o)
		case sparc.ASI:
			ok = m.asi()
		case sparc.Membar:
			ok = m.membar()
		case sparc.Prefetch:
			ok = m.prefetch()
		case sparc.PrivReg:
			ok = m.privReg(o)
		case sparc.ASR:
			ok = m.asr(o)
		case sparc.Fixed:
			ok = m.fixed(o)
		case sparc.Annul:
			if ok = m.peek() == 'a'; ok {
				m.pos++
				m.word |= sparc.AnnulBit
			}
		case sparc.Digits:
			n := 0
			for m.pos+n < len(m.args) && decimal(m.args[m.pos+n]) {
				n++
			}
			m.pos += n
			ok = n > 0
		case sparc.OPF:
			ok = m.opf()
		case sparc.MacroMark:
			ok = true
		}
		if !ok {
			return false
		}
	}
	return m.pos == len(m.args)
}

func (m *matcher) literal(c byte) bool {
	if c == ' ' {
		// The blank of ",a label" is only required where dropping it
		// would merge two words.
		switch {
		case m.peek() == ' ':
			m.pos++
		case labelChar(m.peek()):
			return false
		}
		return true
	}
	if m.peek() != c {
		return false
	}
	m.pos++
	return true
}

// '+' also accepts a '-' that the following expression consumes.
func (m *matcher) plus() bool {
	switch m.peek() {
	case '+':
		m.pos++
		return true
	case '-':
		return true
	}
	return false
}

func (m *matcher) intReg(o sparc.IntReg) bool {
	n, l, ok := parseIntReg(m.rest())
	if !ok {
		return false
	}
	m.pos += l
	m.word |= o.Slot.Place(n)
	return true
}

func (m *matcher) floatReg(o sparc.FloatReg) bool {
	n, l, ok := parseNumberedReg(m.rest(), 'f')
	if !ok || n%o.Align != 0 {
		return false
	}
	switch {
	case n >= 64:
		if sparc.Includes(m.arch.Current, sparc.V9) {
			return m.fail(": There are only 64 f registers; [0-63]")
		}
		return m.fail(": There are only 32 f registers; [0-31]")
	case n >= 32:
		if o.Align == 1 || !sparc.Includes(m.arch.Max, sparc.V9) {
			return m.fail(": There are only 32 f registers; [0-31]")
		}
		// Registers 32..62 are encoded with bit 5 moved into bit 0.
		m.v9 = true
		n -= 31
	}
	m.pos += l
	m.word |= o.Slot.Place(n)
	return true
}

func (m *matcher) coprocReg(o sparc.CoprocReg) bool {
	n, l, ok := parseNumberedReg(m.rest(), 'c')
	if !ok || n >= 32 {
		return false
	}
	m.pos += l
	m.word |= o.Slot.Place(n)
	return true
}

// Relocation prefixes that override an immediate's default kind.
var relocPrefixes = []struct {
	text string
	kind reloc.Kind
}{
	{"%hi", reloc.HI22},
	{"%lo", reloc.LO10},
	{"%uhi", reloc.HH22},
	{"%ulo", reloc.HM10},
}

func (m *matcher) immediate(o sparc.Immediate) bool {
	if m.peek() == ' ' {
		m.pos++
	}

	kind := o.Kind
	if m.peek() == '%' {
		found := false
		for _, p := range relocPrefixes {
			if strings.HasPrefix(m.rest(), p.text) {
				kind, found = p.kind, true
				m.pos += len(p.text)
				break
			}
		}
		if !found {
			return false
		}
	}

	end := m.pos
	for end < len(m.args) && m.args[end] != ',' && m.args[end] != ']' {
		end++
	}
	end = cutRegister(m.args, m.pos, end)

	v, n, err := m.eval.Evaluate(m.args[m.pos:end])
	if err != nil {
		return m.fail(": " + err.Error())
	}
	m.pos += n

	raw := v.Addend
	if v.IsConstant() {
		switch kind {
		case reloc.HH22:
			kind, v.Addend = reloc.HI22, v.Addend>>32
		case reloc.HM10:
			kind, v.Addend = reloc.LO10, v.Addend>>32
		case reloc.HI22, reloc.LO10:
			v.Addend &= 0xffffffff
		}

		// A small constant call target is almost always a mistake.
		if o.PCRel && kind == reloc.WDisp30 && v.Addend <= 0x3fff && v.Addend >= ^0x3fff {
			return m.fail(": PC-relative operand can't be a constant")
		}

		if kind != reloc.LO10 && kind != reloc.HI22 && !o.PCRel && !o.InRange(v.Addend) {
			lo := ^o.Max
			if o.Bitfield {
				lo = ^(o.Max >> 1)
			}
			m.err = fmt.Sprintf("constant value %d out of range (%d .. %d)", v.Addend, lo, o.Max)
		}
	}

	m.imm = &pending{kind: kind, pcrel: o.PCRel, expr: v, raw: raw}
	return true
}

// Find where the expression of an immediate ends. In "[sym+%g1]" the
// "+%g1" is a register term of the address, not part of the expression.
func cutRegister(s string, start, end int) int {
	i := strings.LastIndex(s[start:end], "+%")
	if i < 0 {
		return end
	}
	i += start
	if _, l, ok := parseIntReg(s[i+1 : end]); ok && i+1+l == end {
		return i
	}
	return end
}

// Evaluate a keyword operand's numeric fallback. Register-like text is
// never an expression.
func (m *matcher) constArg() (int64, bool) {
	if m.peek() == '%' {
		return 0, false
	}
	v, n, err := m.eval.Evaluate(m.rest())
	if err != nil || !v.IsConstant() {
		return 0, false
	}
	m.pos += n
	return v.Addend, true
}

// Look up a "#name" keyword at the current position.
func (m *matcher) keyword(t sparc.KeywordTable) (int, bool) {
	s := m.rest()
	i := 0
	if i < len(s) && s[i] == '#' {
		i++
	}
	for i < len(s) && (alpha(s[i]) || s[i] == '_') {
		i++
	}
	v, ok := t.Lookup(s[:i])
	if ok {
		m.pos += i
	}
	return v, ok
}

func (m *matcher) asi() bool {
	var v int64
	if m.peek() == '#' {
		n, ok := m.keyword(sparc.ASINames)
		if !ok {
			return m.fail(": invalid ASI name")
		}
		v = int64(n)
	} else {
		var ok bool
		if v, ok = m.constArg(); !ok {
			return m.fail(": invalid ASI expression")
		}
		if v < 0 || v > 255 {
			return m.fail(": invalid ASI number")
		}
	}
	m.word |= sparc.ASIField(int(v))
	return true
}

func (m *matcher) membar() bool {
	var mask int64
	if m.peek() == '#' {
		for m.peek() == '#' {
			n, ok := m.keyword(sparc.MembarNames)
			if !ok {
				return m.fail(": invalid membar mask name")
			}
			mask |= int64(n)
			if c := m.peek(); c == '|' || c == '+' {
				m.pos++
			}
		}
	} else {
		var ok bool
		if mask, ok = m.constArg(); !ok {
			return m.fail(": invalid membar mask expression")
		}
		if mask < 0 || mask > 127 {
			return m.fail(": invalid membar mask number")
		}
	}
	m.word |= sparc.MembarField(int(mask))
	return true
}

func (m *matcher) prefetch() bool {
	var fcn int64
	if m.peek() == '#' {
		n, ok := m.keyword(sparc.PrefetchNames)
		if !ok {
			return m.fail(": invalid prefetch function name")
		}
		fcn = int64(n)
	} else {
		var ok bool
		if fcn, ok = m.constArg(); !ok {
			return m.fail(": invalid prefetch function expression")
		}
		if fcn < 0 || fcn > 31 {
			return m.fail(": invalid prefetch function number")
		}
	}
	m.word |= sparc.SlotRD.Place(int(fcn))
	return true
}

func (m *matcher) privReg(o sparc.PrivReg) bool {
	if m.peek() != '%' {
		return m.fail(": unrecognizable privileged register")
	}
	v, n, ok := sparc.PrivRegNames.MatchPrefix(m.rest()[1:])
	if !ok {
		return m.fail(": unrecognizable privileged register")
	}
	m.pos += 1 + n
	m.word |= o.Slot.Place(v)
	return true
}

func (m *matcher) asr(o sparc.ASR) bool {
	if !strings.HasPrefix(m.rest(), "%asr") {
		return false
	}
	s := m.rest()[4:]
	i, num := 0, 0
	for i < len(s) && decimal(s[i]) && num < 100 {
		num = num*10 + int(s[i]-'0')
		i++
	}
	switch {
	case i == 0:
		return m.fail(": expecting %asrN")
	case num < 16 || num > 31:
		return m.fail(": asr number must be between 16 and 31")
	}
	m.pos += 4 + i
	m.word |= o.Slot.Place(num)
	return true
}

func (m *matcher) fixed(o sparc.Fixed) bool {
	if o.SkipSpace && m.peek() == ' ' {
		m.pos++
	}
	if !strings.HasPrefix(m.rest(), o.Text) {
		return false
	}
	m.pos += len(o.Text)
	return true
}

// The opf operand of impdep instructions must be a constant. Problems
// with it are errors rather than mismatches.
func (m *matcher) opf() bool {
	v, n, err := m.eval.Evaluate(m.rest())
	if err != nil {
		return m.fail(": " + err.Error())
	}
	m.pos += n
	switch {
	case !v.IsConstant():
		m.err = "non-immediate OPF operand, ignored"
	case v.Addend&^0x1ff != 0:
		m.err = "OPF immediate operand out of range (0-0x1ff)"
	default:
		m.word |= sparc.OPFField(int(v.Addend))
	}
	return true
}

// Register bank bases for %g, %o, %l and %i.
var regBanks = map[byte]int{'g': 0, 'o': 8, 'l': 16, 'i': 24}

// Parse a general register: %g0-%g7, %o0-%o7, %l0-%l7, %i0-%i7, %fp, %sp,
// %r0-%r31, or a bare %0-%31. Return the register number and the length
// of its spelling.
func parseIntReg(s string) (n, l int, ok bool) {
	if len(s) < 2 || s[0] != '%' {
		return 0, 0, false
	}
	switch c := s[1]; {
	case decimal(c):
		n, l, ok = regNumber(s[1:])
		return n, l + 1, ok
	case len(s) < 3:
		return 0, 0, false
	case c == 'f' && s[2] == 'p':
		return 30, 3, true
	case c == 's' && s[2] == 'p':
		return 14, 3, true
	case c == 'g' || c == 'o' || c == 'l' || c == 'i':
		if octal(s[2]) {
			return regBanks[c] + int(s[2]-'0'), 3, true
		}
		return 0, 0, false
	case c == 'r':
		n, l, ok = regNumber(s[2:])
		return n, l + 2, ok
	}
	return 0, 0, false
}

// Parse a one or two digit register number below 32.
func regNumber(s string) (n, l int, ok bool) {
	if len(s) == 0 || !decimal(s[0]) {
		return 0, 0, false
	}
	n, l = int(s[0]-'0'), 1
	if len(s) > 1 && decimal(s[1]) {
		n, l = n*10+int(s[1]-'0'), 2
		if n >= 32 {
			return 0, 0, false
		}
	}
	return n, l, true
}

// Parse a register spelled '%', a class letter, and a decimal number of
// any size, as in "%f40" or "%c3".
func parseNumberedReg(s string, class byte) (n, l int, ok bool) {
	if len(s) < 3 || s[0] != '%' || s[1] != class || !decimal(s[2]) {
		return 0, 0, false
	}
	l = 2
	for l < len(s) && decimal(s[l]) && n < 1000 {
		n = n*10 + int(s[l]-'0')
		l++
	}
	return n, l, true
}
