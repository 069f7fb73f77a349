package asm

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/beevik/gosparc/reloc"
)

// A SourceMap describes the mapping between source code line numbers and
// assembly code addresses, along with what a loader needs to place the
// code.
type SourceMap struct {
	Origin      int64
	Size        uint32
	CRC         uint32
	Arch        string
	Files       []string
	Lines       []SourceLine
	Exports     []Export
	Relocations []reloc.Relocation
}

// A SourceLine represents a mapping between a machine code address and
// the source code file and line number used to generate it.
type SourceLine struct {
	Address   int64 // Machine code address
	FileIndex int   // Source code file index
	Line      int   // Source code line number
}

// Search searches the source map for a mapping with the requested address.
func (s *SourceMap) Search(addr int64) (filename string, line int) {
	i := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].Address >= addr
	})
	if i < len(s.Lines) && s.Lines[i].Address == addr {
		return s.Files[s.Lines[i].FileIndex], s.Lines[i].Line
	}
	return "", -1
}

// Find returns the address of an exported label.
func (s *SourceMap) Find(label string) (int64, bool) {
	for _, e := range s.Exports {
		if e.Label == label {
			return e.Address, true
		}
	}
	return 0, false
}

// ReadFrom reads the contents of an exported source map file.
func (s *SourceMap) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	err = json.Unmarshal(b, s)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// WriteTo writes the contents of the source map to an output stream.
func (s *SourceMap) WriteTo(w io.Writer) (n int64, err error) {
	b, err := json.Marshal(*s)
	if err != nil {
		return 0, err
	}

	nn, err := w.Write(b)
	return int64(nn), err
}

func sortExports(e []Export) []Export {
	sort.Slice(e, func(i, j int) bool {
		return e[i].Address < e[j].Address
	})
	return e
}
