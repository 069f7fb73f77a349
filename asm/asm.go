// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a SPARC assembler. An Encoder turns one
// instruction into machine words and fixups; Assemble drives it over a
// source file, resolves what can be resolved locally, and leaves the rest
// as relocations.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/gosparc/reloc"
	"github.com/beevik/gosparc/sparc"
	"github.com/retroenv/retrogolib/log"
)

var (
	errParse = errors.New("parse error")
)

// The only section. Local addresses that must survive to link time are
// expressed relative to it.
const textSection = ".text"

type pseudoOpData struct {
	fn    func(a *assembler, line, label fstring, param any) error
	param any
}

var pseudoOps = map[string]pseudoOpData{
	".ar":     {fn: (*assembler).parseArch},
	".arch":   {fn: (*assembler).parseArch},
	".equ":    {fn: (*assembler).parseEquate},
	".set":    {fn: (*assembler).parseEquate},
	".byte":   {fn: (*assembler).parseData, param: 1},
	".half":   {fn: (*assembler).parseData, param: 2},
	".word":   {fn: (*assembler).parseData, param: 4},
	".xword":  {fn: (*assembler).parseData, param: 8},
	".align":  {fn: (*assembler).parseAlign},
	".skip":   {fn: (*assembler).parsePadding},
	".space":  {fn: (*assembler).parsePadding},
	".global": {fn: (*assembler).parseExport},
	".globl":  {fn: (*assembler).parseExport},
	".text":   {fn: (*assembler).parseSection},
}

func init() {
	// The .include pseudo-op must be initialized here to bypass go's overly
	// aggressive initialization loop detection.
	pseudoOps[".include"] = pseudoOpData{fn: (*assembler).parseInclude}
}

var dataKinds = map[int]reloc.Kind{
	1: reloc.Data8,
	2: reloc.Data16,
	4: reloc.Data32,
	8: reloc.Data64,
}

// An asmerror is used to keep track of errors encountered
// during assembly.
type asmerror struct {
	line fstring // line causing the error
	msg  string  // error message
}

// A fixupSite is a fixup waiting for the end of the assembly, together
// with the source text that produced it.
type fixupSite struct {
	reloc.Fixup
	line fstring
}

// The assembler is a state object used during the assembly of
// machine code from assembly code.
type assembler struct {
	config      Config
	arch        *sparc.ArchState      // architecture bookkeeping
	encoder     *Encoder              // instruction encoder
	code        []byte                // generated machine code
	r           io.Reader             // the reader passed to Assemble
	equates     map[string]reloc.Expr // equate -> value
	labels      map[string]int64      // label -> section offset
	globals     map[string]bool       // symbols declared global
	globalOrder []string              // global symbols in declaration order
	fixups      []*fixupSite          // fixups left for the resolution pass
	relocs      []reloc.Relocation    // relocations for the object file
	exports     []Export              // exported addresses
	sourceLines []SourceLine          // source code line mappings
	files       []string              // processed files
	out         io.Writer             // output used for verbose output
	verbose     bool                  // verbose output
	logger      *log.Logger           // structured diagnostics
	exprParser  exprParser            // used to parse math expressions
	errors      []asmerror            // errors encountered during assembly
	warnings    []asmerror            // warnings encountered during assembly
}

// An Export describes an exported address.
type Export struct {
	Label   string
	Address int64
}

// Assembly contains the assembled machine code and other data associated with
// the machine code.
type Assembly struct {
	Code        []byte             // Assembled machine code
	Relocations []reloc.Relocation // Fixups left for the linker
	Arch        sparc.Arch         // Architecture the code requires
	Errors      []string           // Errors encountered during assembly
	Warnings    []string           // Warnings encountered during assembly
}

// ReadFrom reads machine code from a binary input source.
func (a *Assembly) ReadFrom(r io.Reader) (n int64, err error) {
	a.Errors = []string{}
	a.Code, err = io.ReadAll(r)
	return int64(len(a.Code)), err
}

// WriteTo saves machine code as binary data into an output writer.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	nn, err := w.Write(a.Code)
	return int64(nn), err
}

// Option type used by the Assembly function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// Config holds the settings of one assembly.
type Config struct {
	Arch    *sparc.Arch // requested architecture; nil bumps freely up to v9a
	Bump    bool        // report architecture bumps past the requested one
	PIC     bool        // emit position-independent relocations
	Origin  int64       // load address of the code
	Logger  *log.Logger // receives warnings and debug output; may be nil
	Options Option
}

// AssembleFile reads a file containing SPARC assembly code, assembles it,
// and produces a binary output file and a source map file.
func AssembleFile(path string, config *Config, out io.Writer) error {
	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	assembly, sourceMap, err := Assemble(inFile, path, out, config)
	for _, w := range assembly.Warnings {
		fmt.Fprintln(out, w)
	}
	if err != nil {
		for _, e := range assembly.Errors {
			fmt.Fprintln(out, e)
		}
		return err
	}

	ext := filepath.Ext(path)
	prefix := path[:len(path)-len(ext)]
	binPath := prefix + ".bin"
	binFile, err := os.OpenFile(binPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer binFile.Close()

	_, err = assembly.WriteTo(binFile)
	if err != nil {
		return err
	}

	mapPath := prefix + ".map"
	mapFile, err := os.OpenFile(mapPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer mapFile.Close()

	_, err = sourceMap.WriteTo(mapFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s' and '%s'.\n",
		filepath.Base(path),
		filepath.Base(binPath),
		filepath.Base(mapPath))
	return nil
}

// Assemble reads data from the provided stream and attempts to assemble it
// into SPARC machine code. A nil config selects the defaults.
func Assemble(r io.Reader, filename string, out io.Writer, config *Config) (*Assembly, *SourceMap, error) {
	if out == nil {
		out = os.Stdout
	}
	if config == nil {
		config = &Config{}
	}

	a := &assembler{
		config:  *config,
		arch:    sparc.NewArchState(),
		r:       r,
		equates: make(map[string]reloc.Expr),
		labels:  make(map[string]int64),
		globals: make(map[string]bool),
		files:   []string{filename},
		exports: make([]Export, 0),
		out:     out,
		verbose: (config.Options & Verbose) != 0,
		logger:  config.Logger,
	}
	switch {
	case config.Arch != nil:
		a.arch.Request(*config.Arch, config.Bump)
	case config.Bump:
		a.arch.WarnOnBump = true
	}
	a.encoder = NewEncoder(sparc.Default(), a.arch, a)

	// Assembly consists of the following steps
	steps := []func(a *assembler) error{
		(*assembler).parse,         // Parse and encode the assembly code
		(*assembler).resolveFixups, // Store local values, externalize the rest
		(*assembler).collectExports,
	}

	// Execute assembler steps, breaking if an error is encountered
	// in any one of them.
	var err error
	for _, step := range steps {
		err = step(a)
		if err != nil {
			break
		}
		if len(a.errors) > 0 {
			err = errParse
			break
		}
	}

	assembly := &Assembly{
		Code:        a.code,
		Relocations: a.relocs,
		Arch:        a.arch.Current,
		Errors:      a.format("Error", a.errors),
		Warnings:    a.format("Warning", a.warnings),
	}

	sourceMap := &SourceMap{
		Origin:      a.config.Origin,
		Size:        uint32(len(a.code)),
		CRC:         crc32.ChecksumIEEE(a.code),
		Arch:        a.arch.Current.String(),
		Files:       a.files,
		Lines:       a.sourceLines,
		Exports:     sortExports(a.exports),
		Relocations: a.relocs,
	}

	return assembly, sourceMap, err
}

func (a *assembler) format(kind string, list []asmerror) []string {
	s := make([]string, 0, len(list))
	for _, e := range list {
		filename := a.files[e.line.fileIndex]
		s = append(s, fmt.Sprintf("%s in '%s' line %d, col %d: %s", kind, filename, e.line.row, e.line.column+1, e.msg))
	}
	return s
}

// Read the assembly code, encoding each instruction as it is parsed.
func (a *assembler) parse() error {
	a.logSection("Parsing assembly code")
	return a.parseFile(bufio.NewScanner(a.r), 0)
}

// Parse a single file. This may be called to parse the original file
// passed to the assembler, or it may be called in response to including
// a file.
func (a *assembler) parseFile(scanner *bufio.Scanner, fileIndex int) error {
	row := 1
	for scanner.Scan() {
		text := scanner.Text()
		line := newFstring(fileIndex, row, text)
		err := a.parseLine(line.stripTrailingComment())
		if err != nil {
			return err
		}
		row++
	}
	return scanner.Err()
}

//
// symtab and Evaluator
//

func (a *assembler) equate(name string) (reloc.Expr, bool) {
	if name == "." {
		return reloc.Expr{Symbol: textSection, Addend: int64(len(a.code))}, true
	}
	v, ok := a.equates[name]
	return v, ok
}

func (a *assembler) label(name string) (int64, bool) {
	if name == textSection {
		return 0, true
	}
	v, ok := a.labels[name]
	return v, ok
}

// Evaluate implements Evaluator over the equates and labels seen so far.
func (a *assembler) Evaluate(text string) (reloc.Expr, int, error) {
	return evaluate(&a.exprParser, text, a)
}

//
// line parsing
//

// Parse a single line of assembly code.
func (a *assembler) parseLine(line fstring) error {
	line = line.consumeWhitespace()
	if line.isEmpty() || line.startsWithChar('#') {
		return nil
	}

	a.log("---")

	// Any number of "label:" prefixes.
	var label fstring
	for line.startsWith(labelStartChar) {
		word, remain := line.consumeWhile(labelChar)
		if !remain.startsWithChar(':') {
			break
		}
		label = word
		if err := a.storeLabel(word); err != nil {
			return err
		}
		line = remain.consume(1).consumeWhitespace()
	}
	if line.isEmpty() {
		return nil
	}

	// Is the next word a pseudo-op, rather than an opcode?
	if line.startsWithChar('.') {
		word, remain := line.consumeWhile(labelChar)
		op, ok := pseudoOps[strings.ToLower(word.str)]
		if !ok {
			a.addError(word, "unknown pseudo-op '%s'", word.str)
			return nil
		}
		return op.fn(a, remain.consumeWhitespace(), label, op.param)
	}

	// "name = expr"
	if line.startsWith(identifierStartChar) {
		word, remain := line.consumeWhile(identifierChar)
		remain = remain.consumeWhitespace()
		if remain.startsWithChar('=') {
			return a.defineEquate(word, remain.consume(1).consumeWhitespace())
		}
	}

	return a.parseInstruction(line)
}

// Store a label into the assembler's label list.
func (a *assembler) storeLabel(label fstring) error {
	if _, found := a.labels[label.str]; found {
		a.addError(label, "label '%s' used more than once", label.str)
		return nil
	}
	if _, found := a.equates[label.str]; found {
		a.addError(label, "symbol '%s' is already an equate", label.str)
		return nil
	}

	a.labels[label.str] = int64(len(a.code))
	a.logLine(label, "label=%s", label.str)
	return nil
}

// Encode one instruction and append it to the code.
func (a *assembler) parseInstruction(line fstring) error {
	a.logLine(line, "insn")

	inst, err := a.encoder.EncodeLine(line.str)
	if err != nil {
		a.addError(line, "%s", err.Error())
		return nil
	}

	offset := len(a.code)
	for _, w := range inst.Warnings {
		a.addWarning(line, "%s", w)
	}
	if inst.Bump.Bumped && a.logger != nil {
		a.logger.Debug("architecture bumped",
			log.String("from", inst.Bump.From.String()),
			log.String("to", inst.Bump.To.String()),
			log.Int("line", line.row))
	}

	a.code = append(a.code, inst.Bytes()...)
	for _, f := range inst.Fixups {
		if f.Done {
			continue
		}
		f.Offset += offset
		f.Line = line.row
		a.fixups = append(a.fixups, &fixupSite{Fixup: f, line: line})
	}

	a.sourceLines = append(a.sourceLines, SourceLine{
		Address:   a.config.Origin + int64(offset),
		FileIndex: line.fileIndex,
		Line:      line.row,
	})
	a.logBytes(offset, a.code[offset:])
	return nil
}

//
// pseudo-ops
//

// Parse an architecture pseudo-op.
func (a *assembler) parseArch(line, label fstring, param any) error {
	name, _ := line.consumeWhile(labelChar)
	arch, err := sparc.ParseArch(name.str)
	if err != nil {
		a.addError(line, "%s", err.Error())
		return nil
	}
	if len(a.code) > 0 {
		a.addError(line, "architecture directive must appear before first instruction")
		return nil
	}

	a.logLine(line, "arch=%s", arch)
	a.arch.Request(arch, a.config.Bump)
	return nil
}

// Parse an ".equ" or ".set" definition: name, expression.
func (a *assembler) parseEquate(line, label fstring, param any) error {
	name, remain := line.consumeWhile(identifierChar)
	remain = remain.consumeWhitespace()
	if name.isEmpty() || !remain.startsWithChar(',') {
		a.addError(line, "expected symbol name and expression")
		return nil
	}
	return a.defineEquate(name, remain.consume(1).consumeWhitespace())
}

func (a *assembler) defineEquate(name, line fstring) error {
	if _, found := a.labels[name.str]; found {
		a.addError(name, "symbol '%s' is already a label", name.str)
		return nil
	}

	v, ok := a.parseExpr(line)
	if !ok {
		return nil
	}

	a.logLine(line, "equate=%s val=%s", name.str, v)
	a.equates[name.str] = v
	return nil
}

// Evaluate an expression that must occupy all of line.
func (a *assembler) parseExpr(line fstring) (reloc.Expr, bool) {
	line = line.trunc(len(strings.TrimRight(line.str, " \t")))
	v, n, err := a.Evaluate(line.str)
	switch {
	case err != nil:
		a.addError(line, "%s", err.Error())
		return v, false
	case n != len(line.str):
		rest := line.consume(n)
		a.addError(rest, "junk at end of line: '%s'", rest.str)
		return v, false
	}
	return v, true
}

// Parse a data pseudo-op. Each value becomes a fixup so that symbolic
// and constant data share one path through range checking.
func (a *assembler) parseData(line, label fstring, param any) error {
	unit := param.(int)
	a.logLine(line, "data unit=%d", unit)
	a.encoder.ClearHistory()

	start := len(a.code)
	remain := line
	for !remain.isEmpty() {
		var text fstring
		text, remain = remain.consumeUntilUnquotedChar(',')
		if !remain.isEmpty() {
			remain = remain.consume(1).consumeWhitespace()
		}

		v, ok := a.parseExpr(text)
		if !ok {
			return nil
		}

		f := &fixupSite{
			Fixup: reloc.Fixup{
				Offset: len(a.code),
				Size:   unit,
				Kind:   dataKinds[unit],
				Expr:   v,
				Line:   text.row,
			},
			line: text,
		}
		a.code = append(a.code, make([]byte, unit)...)
		a.fixups = append(a.fixups, f)
	}

	a.logBytes(start, a.code[start:])
	return nil
}

// Parse an align pseudo-op
func (a *assembler) parseAlign(line, label fstring, param any) error {
	a.logLine(line, "align=")

	v, ok := a.parseExpr(line)
	if !ok {
		return nil
	}
	n := v.Addend
	if !v.IsConstant() || n <= 0 || n&(n-1) != 0 {
		a.addError(line, "alignment must be a power of 2")
		return nil
	}

	a.encoder.ClearHistory()
	pad := alignUp(len(a.code), int(n)) - len(a.code)
	a.code = append(a.code, make([]byte, pad)...)
	a.moveLabel(label)
	return nil
}

// A label on an alignment directive names the aligned address.
func (a *assembler) moveLabel(label fstring) {
	if !label.isEmpty() {
		a.labels[label.str] = int64(len(a.code))
	}
}

// Parse a padding pseudo-op: length, optional fill byte.
func (a *assembler) parsePadding(line, label fstring, param any) error {
	a.logLine(line, "pad=")

	lenText, remain := line.consumeUntilUnquotedChar(',')
	n, ok := a.parseExpr(lenText)
	if !ok {
		return nil
	}
	if !n.IsConstant() || n.Addend < 0 {
		a.addError(lenText, "padding length expression could not be evaluated")
		return nil
	}

	var fill int64
	if !remain.isEmpty() {
		valText := remain.consume(1).consumeWhitespace()
		v, ok := a.parseExpr(valText)
		if !ok {
			return nil
		}
		if !v.IsConstant() {
			a.addError(valText, "padding value expression could not be evaluated")
			return nil
		}
		fill = v.Addend
	}

	a.encoder.ClearHistory()
	start := len(a.code)
	for i := int64(0); i < n.Addend; i++ {
		a.code = append(a.code, byte(fill))
	}
	a.logBytes(start, a.code[start:])
	return nil
}

// Parse a global pseudo-op naming one or more symbols.
func (a *assembler) parseExport(line, label fstring, param any) error {
	a.logLine(line, "global=")

	remain := line
	for !remain.isEmpty() {
		var name fstring
		name, remain = remain.consumeUntilUnquotedChar(',')
		name, junk := name.consumeWhile(labelChar)
		junk = junk.consumeWhitespace()
		if name.isEmpty() || !junk.isEmpty() {
			a.addError(line, "invalid symbol name")
			return nil
		}
		if !a.globals[name.str] {
			a.globals[name.str] = true
			a.globalOrder = append(a.globalOrder, name.str)
		}
		if !remain.isEmpty() {
			remain = remain.consume(1).consumeWhitespace()
		}
	}
	return nil
}

// Parse a section pseudo-op. Only the text section exists.
func (a *assembler) parseSection(line, label fstring, param any) error {
	a.logLine(line, "section=%s", textSection)
	return nil
}

// Parse an include pseudo-op
func (a *assembler) parseInclude(line, label fstring, param any) error {
	a.logLine(line, "include")

	filename, _ := line.consumeUntil(whitespace)
	if filename.startsWith(stringQuote) && len(filename.str) > 1 {
		filename = filename.consume(1).trunc(len(filename.str) - 2)
	}
	if filename.isEmpty() {
		a.addError(filename, "invalid filename")
		return errParse
	}

	file, err := os.Open(filename.str)
	if err != nil {
		a.addError(filename, "unable to open '%s'", filename.str)
		return err
	}
	defer file.Close()

	fileIndex := len(a.files)
	a.files = append(a.files, filename.str)

	return a.parseFile(bufio.NewScanner(file), fileIndex)
}

//
// resolution
//

// Follow equates until a constant, a label or an undefined symbol
// remains.
func (a *assembler) resolveExpr(v reloc.Expr) (reloc.Expr, error) {
	for depth := 0; !v.IsConstant(); depth++ {
		e, ok := a.equates[v.Symbol]
		if !ok {
			break
		}
		if depth > len(a.equates) {
			return v, fmt.Errorf("equate '%s' refers to itself", v.Symbol)
		}
		v = reloc.Expr{Symbol: e.Symbol, Addend: e.Addend + v.Addend}
	}
	return v, nil
}

// Store every fixup whose value is known now. Fixups against global or
// undefined symbols, and absolute references to local labels, become
// relocations.
func (a *assembler) resolveFixups() error {
	a.logSection("Resolving fixups")

	opts := reloc.ExternOptions{PIC: a.config.PIC}
	for _, s := range a.fixups {
		f := &s.Fixup
		v, err := a.resolveExpr(f.Expr)
		if err != nil {
			a.addError(s.line, "%s", err.Error())
			continue
		}
		f.Expr = v

		offset, defined := a.label(v.Symbol)
		switch {
		case v.IsConstant():
			val := v.Addend
			if f.PCRel {
				val -= reloc.PCRelFrom(f, a.config.Origin, false)
			}
			a.apply(s, val)

		case defined && !a.globals[v.Symbol] && f.PCRel:
			a.apply(s, offset+v.Addend-reloc.PCRelFrom(f, 0, false))

		case defined && !a.globals[v.Symbol]:
			// The load address is unknown, so the reference is made
			// against the section.
			sym := reloc.Symbol{Name: textSection, Defined: true, Section: true}
			if a.config.PIC {
				sym = reloc.Symbol{Name: v.Symbol, Defined: true, Section: v.Symbol == textSection}
			} else {
				f.Expr = reloc.Expr{Symbol: textSection, Addend: offset + v.Addend}
				f.SectionSymbol = true
			}
			f.Extern = true
			a.apply(s, offset+v.Addend)
			a.externalize(s, sym, opts)

		default:
			f.Extern = true
			a.apply(s, v.Addend)
			sym := reloc.Symbol{Name: v.Symbol, Defined: defined, Global: a.globals[v.Symbol]}
			a.externalize(s, sym, opts)
		}
	}
	return nil
}

func (a *assembler) apply(s *fixupSite, val int64) {
	err := reloc.Apply(a.code, &s.Fixup, val)
	var oe *reloc.OverflowError
	switch {
	case err == nil:
		a.log("%08X  %-8s %s = %d", s.Offset, s.Kind, s.Expr, val)
	case errors.As(err, &oe) && oe.Severity == reloc.SeverityWarning:
		a.addWarning(s.line, "%s", err.Error())
	default:
		a.addError(s.line, "%s", err.Error())
	}
}

func (a *assembler) externalize(s *fixupSite, sym reloc.Symbol, opts reloc.ExternOptions) {
	r, err := reloc.Externalize(&s.Fixup, sym, opts)
	if err != nil {
		a.addError(s.line, "%s", err.Error())
		return
	}
	a.log("%s", r)
	a.relocs = append(a.relocs, r)
}

// Record the addresses of global labels.
func (a *assembler) collectExports() error {
	for _, name := range a.globalOrder {
		if offset, ok := a.labels[name]; ok {
			a.exports = append(a.exports, Export{Label: name, Address: a.config.Origin + offset})
		}
	}
	return nil
}

//
// diagnostics
//

// Append an error message to the assembler's error state.
func (a *assembler) addError(l fstring, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, asmerror{l, msg})
	if a.verbose {
		filename := a.files[l.fileIndex]
		fmt.Fprintf(a.out, "Error in '%s' line %d, col %d: %s\n", filename, l.row, l.column+1, msg)
		fmt.Fprintln(a.out, l.full)
		for i := 0; i < l.column; i++ {
			fmt.Fprintf(a.out, "-")
		}
		fmt.Fprintln(a.out, "^")
	}
}

// Append a warning to the assembler's warning state and pass it to the
// logger.
func (a *assembler) addWarning(l fstring, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.warnings = append(a.warnings, asmerror{l, msg})
	if a.logger != nil {
		a.logger.Warn(msg,
			log.String("file", a.files[l.fileIndex]),
			log.Int("line", l.row),
			log.Hex("offset", len(a.code)))
	}
}

// In verbose mode, log a string to standard output.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and its associated line
// of assembly code.
func (a *assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

// In verbose mode, log a series of bytes with starting offset, one word
// per row.
func (a *assembler) logBytes(offset int, b []byte) {
	if a.verbose {
		for i, n := 0, len(b); i < n; i += 4 {
			j := min(i+4, n)
			a.log("%08X-  %s", a.config.Origin+int64(offset+i), byteString(b[i:j]))
		}
	}
}

// In verbose mode, log a section header to the standard output.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
