// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/gosparc/asm"
	"github.com/beevik/gosparc/sparc"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func runScript(t *testing.T, h *Host, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	h.RunCommands(strings.NewReader(strings.Join(lines, "\n")), &out, false)
	return out.String()
}

func contains(t *testing.T, out, substr string) {
	t.Helper()
	assert.True(t, strings.Contains(out, substr), "missing "+substr+" in:\n"+out)
}

func TestAssembleLine(t *testing.T) {
	h := New(log.NewTestLogger(t))
	out := runScript(t, h,
		"assemble line add %g1, %g2, %g3",
		"assemble line set 0x12345678, %g1",
		"assemble line call printf")
	contains(t, out, "86004002")
	contains(t, out, "03048D15 82106278")
	contains(t, out, "40000000")
	contains(t, out, "+0 WDISP30  printf")
}

func TestArchCommand(t *testing.T) {
	h := New(log.NewTestLogger(t))
	out := runScript(t, h,
		"arch v8",
		"assemble line ldx [%o0], %o1")
	contains(t, out, "Current architecture: v8")
	contains(t, out, "Architecture mismatch")

	h = New(log.NewTestLogger(t))
	out = runScript(t, h,
		"set bump true",
		"arch v8",
		"assemble line ldx [%o0], %o1",
		"arch")
	contains(t, out, `Warning: architecture bumped from "v8" to "v9"`)
	contains(t, out, "Current architecture: v9")

	out = runScript(t, h, "arch v10")
	contains(t, out, "invalid architecture 'v10'")
}

func TestSetCommand(t *testing.T) {
	h := New(log.NewTestLogger(t))
	out := runScript(t, h,
		"set arch v8plus",
		"set origin 0x4000",
		"set pic true",
		"set arch bogus")
	contains(t, out, "Setting updated.")
	contains(t, out, "invalid architecture 'bogus'")
	assert.Equal(t, "v9", h.settings.Arch)
	assert.Equal(t, int64(0x4000), h.settings.Origin)
	assert.True(t, h.settings.PIC)
	assert.Equal(t, sparc.V9, h.arch.Current)

	out = runScript(t, h, "set nosuch 1", "set")
	contains(t, out, "Setting 'nosuch' not found")
	contains(t, out, "Origin")
}

func TestConfigure(t *testing.T) {
	h := New(log.NewTestLogger(t))
	v7 := sparc.V7
	h.Configure(&asm.Config{Arch: &v7, Bump: true, Options: asm.Verbose})
	assert.Equal(t, "v7", h.settings.Arch)
	assert.True(t, h.settings.Verbose)
	assert.Equal(t, sparc.V7, h.arch.Current)
	assert.Equal(t, sparc.V9a, h.arch.Max)

	config, err := h.settings.config()
	assert.NoError(t, err)
	assert.Equal(t, sparc.V7, *config.Arch)
	assert.Equal(t, asm.Verbose, config.Options)
}

func TestEvaluateCommand(t *testing.T) {
	h := New(log.NewTestLogger(t))
	out := runScript(t, h,
		"evaluate (1<<4)|1",
		"evaluate foo+4",
		"set hexmode true",
		"evaluate 255",
		"evaluate 1/0")
	contains(t, out, "17\n")
	contains(t, out, "foo+4\n")
	contains(t, out, "0xFF\n")
	contains(t, out, "division by zero")
}

func TestOpcodesCommand(t *testing.T) {
	h := New(log.NewTestLogger(t))
	out := runScript(t, h, "opcodes ret", "opcodes frob")
	contains(t, out, "81C7E008")
	contains(t, out, "v6|v7|v8")
	contains(t, out, "Unknown opcode 'frob'.")

	out = runScript(t, h, "opcodes retl true")
	contains(t, out, "Match")
}

func TestAssembleAndInspect(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.s")
	err := os.WriteFile(source, []byte(".global main\nmain:\tnop\n\tretl\n\tnop\n\t.word printf\n"), 0600)
	assert.NoError(t, err)

	h := New(log.NewTestLogger(t))
	out := runScript(t, h,
		"assemble file "+source,
		"load "+filepath.Join(dir, "main"),
		"exports",
		"relocations",
		"memory dump 0 8",
		"list 4 1")
	contains(t, out, "Assembled 'main.s'")
	contains(t, out, "Loaded 'main.map' source map")
	contains(t, out, "main             0x00000000")
	contains(t, out, "R_SPARC_32")
	contains(t, out, "00000000- 01 00 00 00 81 C3 E0 08")
	contains(t, out, "00000004- 81C3E008     3  \tretl")
}

func TestExecuteAndQuit(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.cmd")
	err := os.WriteFile(script, []byte("# comment\nassemble line nop\nquit\nassemble line retl\n"), 0600)
	assert.NoError(t, err)

	h := New(log.NewTestLogger(t))
	out := runScript(t, h, "execute "+script, "assemble line ret")
	contains(t, out, "01000000")
	assert.False(t, strings.Contains(out, "81C3E008"))
	assert.False(t, strings.Contains(out, "81C7E008"))
}

func TestHelpAndErrors(t *testing.T) {
	h := New(log.NewTestLogger(t))
	out := runScript(t, h, "help", "help set", "bogus", "memory dump", "list", "exports")
	contains(t, out, "assemble file")
	contains(t, out, "Usage: set [<var> <value>]")
	contains(t, out, "Command not found.")
	contains(t, out, "No binary loaded.")
	contains(t, out, "No source map loaded.")
	contains(t, out, "No active exports.")
}
