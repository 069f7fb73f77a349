// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/gosparc/asm"
	"github.com/beevik/gosparc/sparc"
	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	Arch            string `doc:"requested architecture, empty to bump freely"`
	Bump            bool   `doc:"warn when an instruction bumps the architecture"`
	PIC             bool   `doc:"emit position-independent relocations"`
	Verbose         bool   `doc:"verbose assembler output"`
	Origin          int64  `doc:"load address of assembled code"`
	HexMode         bool   `doc:"display values in hexadecimal"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	SourceLines     int    `doc:"default number of source lines to display"`
	NextMemDumpAddr int64  `doc:"address of next memory dump"`
	NextSourceAddr  int64  `doc:"address of next source line display"`
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes: 64,
		SourceLines:  10,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.String:
			s = fmt.Sprintf("    %-16s \"%s\"", f.name, v.String())
		case reflect.Int64:
			s = fmt.Sprintf("    %-16s 0x%08X", f.name, v.Int())
		default:
			s = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-32s (%s)\n", s, f.doc)
	}
}

func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Type().Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Type().Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}
	vInConverted := vIn.Convert(f.typ)

	vOut := reflect.ValueOf(s).Elem().Field(f.index).Addr().Elem()
	vOut.Set(vInConverted)

	return nil
}

// config returns the assembler configuration the settings describe.
func (s *settings) config() (*asm.Config, error) {
	c := &asm.Config{
		Bump:   s.Bump,
		PIC:    s.PIC,
		Origin: s.Origin,
	}
	if s.Arch != "" {
		arch, err := sparc.ParseArch(s.Arch)
		if err != nil {
			return nil, err
		}
		c.Arch = &arch
	}
	if s.Verbose {
		c.Options |= asm.Verbose
	}
	return c, nil
}

// apply copies an assembler configuration into the settings.
func (s *settings) apply(c *asm.Config) {
	s.Arch = ""
	if c.Arch != nil {
		s.Arch = c.Arch.String()
	}
	s.Bump = c.Bump
	s.PIC = c.PIC
	s.Origin = c.Origin
	s.Verbose = c.Options&asm.Verbose != 0
}
