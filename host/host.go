// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides a command shell built around the SPARC assembler.
//
// Within the host it is possible to assemble source files, encode single
// instructions against a persistent architecture state, list the forms of
// an opcode, load an assembled binary along with its source map, and
// inspect the loaded code, its exports and its relocations.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/gosparc/asm"
	"github.com/beevik/gosparc/reloc"
	"github.com/beevik/gosparc/sparc"
	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/retrogolib/log"
)

const helpWidth = 80

var errQuit = errors.New("Exiting program")

// A Host holds the state of an assembler session: the settings used for
// assembly, the architecture state of the line encoder, and the binary
// most recently loaded for inspection.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	logger      *log.Logger
	lastCmd     *cmd.Selection
	settings    *settings
	arch        *sparc.ArchState
	encoder     *asm.Encoder
	code        []byte
	sourceMap   *asm.SourceMap
	sources     map[string][]string
}

// New creates a new host. A nil logger selects the default configuration.
func New(logger *log.Logger) *Host {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	h := &Host{
		output:   bufio.NewWriter(os.Stdout),
		logger:   logger,
		settings: newSettings(),
		sources:  make(map[string][]string),
	}
	h.resetEncoder()
	return h
}

// Configure replaces the assembly settings of the host with those of c.
func (h *Host) Configure(c *asm.Config) {
	h.settings.apply(c)
	h.resetEncoder()
}

// AssembleFile assembles a source file using the host's settings and
// saves the binary and source map next to it. Diagnostics are written
// to w.
func (h *Host) AssembleFile(filename string, w io.Writer) error {
	config, err := h.settings.config()
	if err != nil {
		return err
	}
	config.Logger = h.logger
	return asm.AssembleFile(filename, config, w)
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	err := h.processCommands()
	if err != nil && err != io.EOF && err != errQuit {
		h.logger.Error("Reading commands failed", log.Err(err))
	}
	h.flush()
}

// Read and dispatch commands until the input ends or a command asks to
// quit.
func (h *Host) processCommands() error {
	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.interactive && h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}

		handler, ok := c.Command.Data.(func(*Host, cmd.Selection) error)
		if !ok {
			h.displayCommands(c.Command.Name)
			continue
		}
		h.lastCmd = &c

		if err := handler(h, c); err != nil {
			return err
		}
	}
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) cmdArch(c cmd.Selection) error {
	if len(c.Args) > 0 {
		arch, err := sparc.ParseArch(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.settings.Arch = arch.String()
		h.resetEncoder()
	}

	a := h.arch
	h.printf("Current architecture: %s\n", a.Current)
	h.printf("Maximum architecture: %s\n", a.Max)
	if a.WarnOnBump {
		h.printf("Bumps past %s are reported.\n", a.WarnAfter)
	}
	return nil
}

func (h *Host) cmdAssembleFile(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".s"
	}

	config, err := h.settings.config()
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	config.Logger = h.logger

	if len(c.Args) >= 2 {
		verbose, err := stringToBool(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if verbose {
			config.Options |= asm.Verbose
		}
	}

	err = asm.AssembleFile(filename, config, h.output)
	if err != nil {
		h.printf("Failed to assemble '%s': %v\n", filepath.Base(filename), err)
	}
	h.flush()
	return nil
}

func (h *Host) cmdAssembleLine(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	inst, err := h.encoder.EncodeLine(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	// Constant branch targets are taken relative to the origin.
	if err := inst.Resolve(h.settings.Origin); err != nil {
		h.printf("%v\n", err)
		return nil
	}

	for _, w := range inst.Warnings {
		h.printf("Warning: %s\n", w)
	}
	h.println(wordString(inst.Words))
	for _, f := range inst.Fixups {
		if !f.Done {
			h.printf("    +%d %-8s %s\n", f.Offset, f.Kind, f.Expr)
		}
	}
	return nil
}

func (h *Host) cmdEvaluate(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	v, err := h.evaluate(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	switch {
	case !v.IsConstant():
		h.println(v.String())
	case h.settings.HexMode:
		h.printf("0x%X\n", uint64(v.Addend))
	default:
		h.printf("%d\n", v.Addend)
	}
	return nil
}

func (h *Host) cmdExecute(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	defer file.Close()

	input, interactive := h.input, h.interactive
	h.input, h.interactive = bufio.NewScanner(file), false
	err = h.processCommands()
	h.input, h.interactive = input, interactive

	if err == io.EOF {
		return nil
	}
	return err
}

func (h *Host) cmdExports(c cmd.Selection) error {
	if h.sourceMap == nil || len(h.sourceMap.Exports) == 0 {
		h.println("No active exports.")
		return nil
	}
	for _, e := range h.sourceMap.Exports {
		h.printf("%-16s 0x%08X\n", e.Label, e.Address)
	}
	return nil
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.displayCommands("")
		return nil
	}

	name := strings.Join(c.Args, " ")
	s, err := cmds.Lookup(name)
	if err == nil && s.Command != nil {
		if d, ok := findHelp(s.Command.Name); ok {
			h.displayHelp(d)
			return nil
		}
		name = s.Command.Name
	}
	if !h.displayCommands(name) {
		h.printf("No help for '%s'.\n", name)
	}
	return nil
}

func (h *Host) cmdList(c cmd.Selection) error {
	if h.sourceMap == nil || len(h.sourceMap.Lines) == 0 {
		h.println("No source map loaded.")
		return nil
	}

	addr := h.settings.NextSourceAddr
	if len(c.Args) > 0 {
		a, err := h.evaluateConstant(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	count := int64(h.settings.SourceLines)
	if len(c.Args) >= 2 {
		n, err := h.evaluateConstant(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = n
	}

	lines := h.sourceMap.Lines
	i := sort.Search(len(lines), func(i int) bool { return lines[i].Address >= addr })
	if i == len(lines) {
		h.printf("No source lines at or after 0x%08X.\n", addr)
		return nil
	}

	for n := int64(0); n < count && i < len(lines); n, i = n+1, i+1 {
		l := lines[i]
		filename := h.sourceMap.Files[l.FileIndex]
		word := "        "
		if w, ok := h.loadWord(l.Address); ok {
			word = fmt.Sprintf("%08X", w)
		}
		h.printf("%08X- %s %5d  %s\n", l.Address, word, l.Line, h.sourceText(filename, l.Line))
	}

	h.settings.NextSourceAddr = h.sourceMap.Origin + int64(h.sourceMap.Size)
	if i < len(lines) {
		h.settings.NextSourceAddr = lines[i].Address
	}
	if h.lastCmd != nil {
		h.lastCmd.Args = []string{}
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	a := &asm.Assembly{}
	_, err = a.ReadFrom(file)
	file.Close()
	if err != nil {
		h.printf("Failed to read '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	ext := filepath.Ext(filename)
	mapFilename := filename[:len(filename)-len(ext)] + ".map"

	var sourceMap *asm.SourceMap
	if file, err := os.Open(mapFilename); err == nil {
		sourceMap = &asm.SourceMap{}
		_, err = sourceMap.ReadFrom(file)
		file.Close()
		switch {
		case err != nil:
			h.printf("Failed to read '%s': %v\n", filepath.Base(mapFilename), err)
			sourceMap = nil
		case sourceMap.CRC != crc32.ChecksumIEEE(a.Code) || int(sourceMap.Size) != len(a.Code):
			h.printf("Source map '%s' does not match the binary; ignored.\n", filepath.Base(mapFilename))
			sourceMap = nil
		default:
			h.printf("Loaded '%s' source map\n", filepath.Base(mapFilename))
		}
	}
	if sourceMap == nil {
		sourceMap = &asm.SourceMap{
			Origin: h.settings.Origin,
			Size:   uint32(len(a.Code)),
			CRC:    crc32.ChecksumIEEE(a.Code),
		}
	}

	h.code, h.sourceMap = a.Code, sourceMap
	h.sources = make(map[string][]string)
	h.settings.NextMemDumpAddr = sourceMap.Origin
	h.settings.NextSourceAddr = sourceMap.Origin

	h.logger.Debug("binary loaded",
		log.String("file", filename),
		log.Int("size", len(a.Code)),
		log.Hex("origin", sourceMap.Origin))

	h.printf("Loaded '%s' to 0x%08X..0x%08X\n", filepath.Base(filename),
		sourceMap.Origin, sourceMap.Origin+int64(len(a.Code))-1)
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if h.code == nil {
		h.println("No binary loaded.")
		return nil
	}

	addr := h.settings.NextMemDumpAddr
	if len(c.Args) > 0 {
		a, err := h.evaluateConstant(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := int64(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		n, err := h.evaluateConstant(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = n
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	if h.lastCmd != nil {
		h.lastCmd.Args = []string{}
	}
	return nil
}

func (h *Host) cmdOpcodes(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	forms := sparc.Default().Lookup(strings.ToLower(c.Args[0]))
	if len(forms) == 0 {
		h.printf("Unknown opcode '%s'.\n", c.Args[0])
		return nil
	}

	verbose := false
	if len(c.Args) >= 2 {
		var err error
		verbose, err = stringToBool(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	for _, d := range forms {
		h.printf("%08X  %-24s %-32s %s\n", d.Match, d, d.Mask(), d.Flags)
		if verbose {
			spew.Fdump(h.output, d)
		}
	}
	h.flush()
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func (h *Host) cmdRelocations(c cmd.Selection) error {
	if h.sourceMap == nil || len(h.sourceMap.Relocations) == 0 {
		h.println("No relocations.")
		return nil
	}
	for _, r := range h.sourceMap.Relocations {
		h.println(r.String())
	}
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")
		prev := *h.settings

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("Setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, strings.Trim(value, "\""))
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v int64
			v, err = h.evaluateConstant(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			err = h.onSettingsUpdate(&prev)
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}

	return nil
}

// Validate changed settings and reset the line encoder when the
// architecture settings differ from prev.
func (h *Host) onSettingsUpdate(prev *settings) error {
	if h.settings.Arch != "" {
		arch, err := sparc.ParseArch(h.settings.Arch)
		if err != nil {
			h.settings.Arch = prev.Arch
			return err
		}
		h.settings.Arch = arch.String()
	}
	if h.settings.Arch != prev.Arch || h.settings.Bump != prev.Bump {
		h.resetEncoder()
	}
	return nil
}

// Start the line encoder over with a fresh architecture state built from
// the settings.
func (h *Host) resetEncoder() {
	h.arch = sparc.NewArchState()
	if config, err := h.settings.config(); err == nil {
		switch {
		case config.Arch != nil:
			h.arch.Request(*config.Arch, config.Bump)
		case config.Bump:
			h.arch.WarnOnBump = true
		}
	}
	h.encoder = asm.NewEncoder(nil, h.arch, h)
}

// Evaluate implements asm.Evaluator. Labels exported by the loaded source
// map evaluate to their addresses.
func (h *Host) Evaluate(text string) (reloc.Expr, int, error) {
	symbols := asm.Symbols{}
	if h.sourceMap != nil {
		for _, e := range h.sourceMap.Exports {
			symbols[e.Label] = e.Address
		}
	}
	return symbols.Evaluate(text)
}

func (h *Host) evaluate(text string) (reloc.Expr, error) {
	v, n, err := h.Evaluate(text)
	if err != nil {
		return v, err
	}
	if rest := strings.TrimSpace(text[n:]); rest != "" {
		return v, fmt.Errorf("junk at end of expression: '%s'", rest)
	}
	return v, nil
}

func (h *Host) evaluateConstant(text string) (int64, error) {
	v, err := h.evaluate(text)
	if err != nil {
		return 0, err
	}
	if !v.IsConstant() {
		return 0, fmt.Errorf("symbol '%s' not found", v.Symbol)
	}
	return v.Addend, nil
}

func (h *Host) loadByte(addr int64) (byte, bool) {
	if h.sourceMap == nil {
		return 0, false
	}
	i := addr - h.sourceMap.Origin
	if i < 0 || i >= int64(len(h.code)) {
		return 0, false
	}
	return h.code[i], true
}

func (h *Host) loadWord(addr int64) (uint32, bool) {
	var w uint32
	for i := int64(0); i < 4; i++ {
		b, ok := h.loadByte(addr + i)
		if !ok {
			return 0, false
		}
		w = w<<8 | uint32(b)
	}
	return w, true
}

func (h *Host) dumpMemory(addr0, bytes int64) {
	if bytes <= 0 {
		return
	}
	addr1 := addr0 + bytes - 1

	buf := []byte("        -" + strings.Repeat(" ", 35))

	// Rows start on 8-byte boundaries.
	for row := addr0 &^ 7; row <= addr1; row += 8 {
		addrToBuf(uint32(row), buf[0:8])
		for a, c1, c2 := row, 10, 36; a < row+8; a, c1, c2 = a+1, c1+3, c2+1 {
			m, ok := h.loadByte(a)
			if !ok || a < addr0 || a > addr1 {
				buf[c1], buf[c1+1], buf[c2] = ' ', ' ', ' '
				continue
			}
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
	}
}

// Return the text of a line of a source file, or an empty string if the
// file cannot be read.
func (h *Host) sourceText(filename string, line int) string {
	lines, ok := h.sources[filename]
	if !ok {
		b, err := os.ReadFile(filename)
		if err != nil {
			h.logger.Debug("source file unavailable", log.String("file", filename), log.Err(err))
		}
		lines = strings.Split(string(b), "\n")
		h.sources[filename] = lines
	}
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], " \t\r")
}

// Return the help entry of a command, given its full name or the name of
// its last word.
func findHelp(name string) (cmd.CommandDescriptor, bool) {
	for _, d := range helpIndex {
		if d.Name == name {
			return d, true
		}
	}
	for _, d := range helpIndex {
		if strings.HasSuffix(d.Name, " "+name) {
			return d, true
		}
	}
	return cmd.CommandDescriptor{}, false
}

func (h *Host) displayUsage(c *cmd.Command) {
	if d, ok := findHelp(c.Name); ok && d.Usage != "" {
		h.printf("Usage: %s\n", d.Usage)
	} else {
		h.println("<no usage text>")
	}
}

func (h *Host) displayHelp(d cmd.CommandDescriptor) {
	if d.Usage != "" {
		h.printf("Usage: %s\n\n", d.Usage)
	}
	switch {
	case d.Description != "":
		h.printf("Description:\n%s\n\n", indentWrap(3, helpWidth, d.Description))
	case d.Brief != "":
		h.printf("Description:\n%s.\n\n", indentWrap(3, helpWidth, d.Brief))
	}
}

// List the commands whose names start with group, or all commands if
// group is empty. Report whether any were listed.
func (h *Host) displayCommands(group string) bool {
	var list []cmd.CommandDescriptor
	for _, d := range helpIndex {
		if group == "" || strings.HasPrefix(d.Name, group+" ") {
			list = append(list, d)
		}
	}
	if len(list) == 0 {
		return false
	}

	if group == "" {
		h.println("Commands:")
	} else {
		h.printf("%s commands:\n", group)
	}
	for _, d := range list {
		h.printf("    %-18s %s\n", d.Name, d.Brief)
	}
	return true
}
