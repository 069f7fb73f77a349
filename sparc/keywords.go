// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparc

import "strings"

// A Keyword associates a symbolic operand name with its numeric value.
type Keyword struct {
	Name  string
	Value int
}

// A KeywordTable is a small name table consulted by keyword operands.
type KeywordTable []Keyword

// Lookup returns the value of the named keyword. Names are case
// sensitive.
func (t KeywordTable) Lookup(name string) (int, bool) {
	for _, k := range t {
		if k.Name == name {
			return k.Value, true
		}
	}
	return 0, false
}

// Name returns the first name registered for a value.
func (t KeywordTable) Name(value int) (string, bool) {
	for _, k := range t {
		if k.Value == value {
			return k.Name, true
		}
	}
	return "", false
}

// ASINames holds the address space identifiers accepted by 'A' operands.
var ASINames = KeywordTable{
	{"#ASI_AIUP", 0x10},
	{"#ASI_AIUS", 0x11},
	{"#ASI_AIUP_L", 0x18},
	{"#ASI_AIUS_L", 0x19},
	{"#ASI_P", 0x80},
	{"#ASI_S", 0x81},
	{"#ASI_PNF", 0x82},
	{"#ASI_SNF", 0x83},
	{"#ASI_P_L", 0x88},
	{"#ASI_S_L", 0x89},
	{"#ASI_PNF_L", 0x8a},
	{"#ASI_SNF_L", 0x8b},
	{"#ASI_AS_IF_USER_PRIMARY", 0x10},
	{"#ASI_AS_IF_USER_SECONDARY", 0x11},
	{"#ASI_AS_IF_USER_PRIMARY_L", 0x18},
	{"#ASI_AS_IF_USER_SECONDARY_L", 0x19},
	{"#ASI_PRIMARY", 0x80},
	{"#ASI_SECONDARY", 0x81},
	{"#ASI_PRIMARY_NOFAULT", 0x82},
	{"#ASI_SECONDARY_NOFAULT", 0x83},
	{"#ASI_PRIMARY_LITTLE", 0x88},
	{"#ASI_SECONDARY_LITTLE", 0x89},
	{"#ASI_PRIMARY_NOFAULT_LITTLE", 0x8a},
	{"#ASI_SECONDARY_NOFAULT_LITTLE", 0x8b},
}

// MembarNames holds the membar mask bits accepted by 'K' operands.
var MembarNames = KeywordTable{
	{"#Sync", 0x40},
	{"#MemIssue", 0x20},
	{"#Lookaside", 0x10},
	{"#StoreStore", 0x08},
	{"#LoadStore", 0x04},
	{"#StoreLoad", 0x02},
	{"#LoadLoad", 0x01},
}

// PrefetchNames holds the prefetch functions accepted by '*' operands.
var PrefetchNames = KeywordTable{
	{"#n_reads", 0},
	{"#one_read", 1},
	{"#n_writes", 2},
	{"#one_write", 3},
	{"#page", 4},
}

// PrivRegNames holds the v9 privileged registers, without the leading '%'.
var PrivRegNames = KeywordTable{
	{"tpc", 0},
	{"tnpc", 1},
	{"tstate", 2},
	{"tt", 3},
	{"tick", 4},
	{"tba", 5},
	{"pstate", 6},
	{"tl", 7},
	{"pil", 8},
	{"cwp", 9},
	{"cansave", 10},
	{"canrestore", 11},
	{"cleanwin", 12},
	{"otherwin", 13},
	{"wstate", 14},
	{"fq", 15},
	{"ver", 31},
}

// MatchPrefix finds the longest name in the table that prefixes s. It
// returns the keyword's value and the length of the matched name.
func (t KeywordTable) MatchPrefix(s string) (value, n int, ok bool) {
	for _, k := range t {
		if len(k.Name) > n && strings.HasPrefix(s, k.Name) {
			value, n, ok = k.Value, len(k.Name), true
		}
	}
	return value, n, ok
}
