// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reloc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Instruction words are always big-endian.
var order = binary.BigEndian

// fits reports whether v lies within ±mask, the range check applied to
// displacement and short immediate fields.
func fits(v, mask int64) bool {
	switch {
	case v > 0:
		return v&^mask == 0
	case v < 0:
		return -v&^mask == 0
	default:
		return true
	}
}

func inSigned(v, max int64) bool {
	return v <= max && v >= ^max
}

// set replaces the bits of word selected by mask with v.
func set(word, mask uint32, v int64) uint32 {
	return word&^mask | uint32(v)&mask
}

// Patch stores val into the field of word selected by kind and returns
// the new word. For PC-relative kinds, val is measured from the address
// returned by PCRelFrom. When val does not fit, Patch returns the
// truncated word together with an *OverflowError.
func Patch(word uint32, kind Kind, val int64) (uint32, error) {
	var err error
	switch kind {
	case WDisp30, WPLT30:
		if !inSigned(val, 1<<31-1) {
			err = overflow(kind, val)
		}
		word = set(word, 0x3fffffff, val>>2+1)

	case WDisp22:
		if !fits(val, 0x7ffffc) {
			err = overflow(kind, val)
		}
		word = set(word, 0x3fffff, val>>2+1)

	case WDisp19:
		if !fits(val, 0x1ffffc) {
			err = overflow(kind, val)
		}
		word = set(word, 0x7ffff, val>>2+1)

	case WDisp16:
		if !fits(val, 0x3fffc) {
			err = overflow(kind, val)
		}
		v := val>>2 + 1
		word = set(word, 0x3<<20, (v>>14)<<20)
		word = set(word, 0x3fff, v)

	case SPARC13, GOT13:
		if !inSigned(val, 0xfff) {
			err = overflow(kind, val)
		}
		word = set(word, 0x1fff, val)

	case SPARC11:
		if !fits(val, 0x7ff) {
			err = overflow(kind, val)
		}
		word = set(word, 0x7ff, val)

	case SPARC10:
		if !fits(val, 0x3ff) {
			err = overflow(kind, val)
		}
		word = set(word, 0x3ff, val)

	case SPARC6:
		if val < 0 || val > 0x3f {
			err = overflow(kind, val)
		}
		word = set(word, 0x3f, val)

	case SPARC5:
		if val < 0 || val > 0x1f {
			err = overflow(kind, val)
		}
		word = set(word, 0x1f, val)

	case SPARC22:
		if val&^0x3fffff != 0 {
			err = overflow(kind, val)
		}
		word = set(word, 0x3fffff, val)

	case HH22:
		word = set(word, 0x3fffff, int64(uint64(val)>>42))

	case HI22, LM22, GOT22, PC22:
		word = set(word, 0x3fffff, int64(uint64(val)>>10))

	case HM10:
		word = set(word, 0x3ff, int64(uint64(val)>>32))

	case LO10, GOT10, PC10:
		word = set(word, 0x3ff, val)

	default:
		return word, fmt.Errorf("bad or unhandled relocation type: %s", kind)
	}
	return word, err
}

// Apply resolves f against val and stores the result into code, which
// holds the section contents. An externalized fixup only records val as
// the future relocation addend; the code is left alone, since ELF SPARC
// relocations carry their addend out of line. Any other fixup is patched
// and marked done. Overflow is reported through an *OverflowError after
// the truncated value has been written.
func Apply(code []byte, f *Fixup, val int64) error {
	f.Value = val
	if f.Extern {
		return nil
	}

	if f.Offset < 0 || f.Offset+f.Size > len(code) {
		return fmt.Errorf("fixup at offset %d outside section", f.Offset)
	}
	buf := code[f.Offset : f.Offset+f.Size]

	var err error
	switch f.Kind {
	case Data8:
		if val < -0x80 || val > 0xff {
			err = overflow(f.Kind, val)
		}
		buf[0] = byte(val)
	case Data16:
		if val < -0x8000 || val > 0xffff {
			err = overflow(f.Kind, val)
		}
		order.PutUint16(buf, uint16(val))
	case Data32:
		if val < -0x80000000 || val > 0xffffffff {
			err = overflow(f.Kind, val)
		}
		order.PutUint32(buf, uint32(val))
	case Data64:
		order.PutUint64(buf, uint64(val))
	default:
		var word uint32
		word, err = Patch(order.Uint32(buf), f.Kind, val)
		var oe *OverflowError
		if err != nil && !errors.As(err, &oe) {
			return err
		}
		order.PutUint32(buf, word)
	}

	f.Done = true
	return err
}

// PCRelFrom returns the address a PC-relative value in f is measured
// from: the end of the patched word. In PIC code a reference to a named
// symbol is measured from the start of the word instead. base is the
// address of the start of the section.
func PCRelFrom(f *Fixup, base int64, pic bool) int64 {
	from := base + int64(f.Offset)
	if !pic || f.Expr.IsConstant() || f.SectionSymbol {
		from += int64(f.Size)
	}
	return from
}
