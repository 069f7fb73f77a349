// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"
)

func wordString(words []uint32) string {
	s := make([]string, len(words))
	for i, w := range words {
		s[i] = fmt.Sprintf("%08X", w)
	}
	return strings.Join(s, " ")
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

var hexString = "0123456789ABCDEF"

func addrToBuf(addr uint32, b []byte) {
	for i := 7; i >= 0; i-- {
		b[i] = hexString[addr&0xf]
		addr >>= 4
	}
}

func byteToBuf(v byte, b []byte) {
	b[0] = hexString[(v>>4)&0xf]
	b[1] = hexString[v&0xf]
}

func toPrintableChar(v byte) byte {
	if v >= 32 && v < 127 {
		return v
	}
	return '.'
}

// Break s into lines no wider than width, each indented by indent
// spaces.
func indentWrap(indent, width int, s string) string {
	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(s) {
		if n > 0 && n+1+len(w) > width-indent {
			b.WriteByte('\n')
			n = 0
		}
		if n == 0 {
			b.WriteString(pad)
		} else {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(w)
		n += len(w)
	}
	return b.String()
}
