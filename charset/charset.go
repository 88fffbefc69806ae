// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charset supplies the character-set lookup tables used by the
// assembler's .text directive. Tables are plain data. A caller can pass its
// own Table as the assembler's initial charset; the assembler's default
// (ASCII) and its .ascii, .petscii and .screen directives always use the
// built-in tables below.
package charset

import "strings"

// Table maps the 256 possible input byte values of a .text string literal
// to the byte values emitted into the assembled output.
type Table struct {
	Name string
	Map  [256]byte
}

// Translate returns the output byte for an input character. Characters with
// no mapping in the table emit 0.
func (t *Table) Translate(c byte) byte {
	return t.Map[c]
}

// ASCII is the identity mapping: every input byte passes through unchanged.
var ASCII = &Table{Name: "ASCII", Map: identityMap()}

func identityMap() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = byte(i)
	}
	return m
}

// PETSCII is the Commodore 8-bit character encoding used by text mode on
// the VIC-20, C64 and successors. Unmapped code points are 0.
var PETSCII = &Table{Name: "PETSCII", Map: petsciiMap()}

func petsciiMap() [256]byte {
	var m [256]byte

	// Control codes below the printable range pass straight through;
	// PETSCII and ASCII agree here.
	for i := 0; i < 0x20; i++ {
		m[i] = byte(i)
	}

	// Space through the digits and punctuation up to '?' match ASCII.
	for i := 0x20; i <= 0x3F; i++ {
		m[i] = byte(i)
	}

	// '@' matches ASCII.
	m['@'] = '@'

	// Uppercase letters A-Z (0x41-0x5A in ASCII) occupy the same range in
	// PETSCII's unshifted character set.
	for i := 0; i < 26; i++ {
		m['A'+byte(i)] = 0x41 + byte(i)
	}

	m['['] = 0x5B
	m['\\'] = 0x5C // shown as a British pound sign on real hardware
	m[']'] = 0x5D
	m['^'] = 0x5E // up arrow
	m['_'] = 0x5F // left arrow

	// Lowercase ASCII letters map into PETSCII's 0xC1-0xDA range, where
	// the unshifted charset keeps its graphics symbols at 0x61-0x7A.
	for i := 0; i < 26; i++ {
		m['a'+byte(i)] = 0xC1 + byte(i)
	}

	return m
}

// Screen is the VIC-II "screen code" encoding used for characters written
// directly to screen memory, distinct from PETSCII. Unmapped code points
// are 0.
var Screen = &Table{Name: "Screen", Map: screenMap()}

func screenMap() [256]byte {
	var m [256]byte

	// '@' is screen code 0x00.
	m['@'] = 0x00

	// Uppercase letters are screen codes 0x01-0x1A.
	for i := 0; i < 26; i++ {
		m['A'+byte(i)] = 0x01 + byte(i)
	}

	m['['] = 0x1B
	m['\\'] = 0x1C
	m[']'] = 0x1D
	m['^'] = 0x1E
	m['_'] = 0x1F

	// Space through '?' sit at screen codes 0x20-0x3F, matching ASCII
	// order since the symbols and digits are laid out identically.
	for i := 0x20; i <= 0x3F; i++ {
		m[byte(i)] = byte(i)
	}

	// Lowercase letters share the uppercase letters' screen codes in the
	// unshifted charset (there's no separate lowercase glyph).
	for i := 0; i < 26; i++ {
		m['a'+byte(i)] = 0x01 + byte(i)
	}

	return m
}

// ByName returns the built-in table matching name (case-insensitive, one
// of "ascii", "petscii", "screen"), or nil if name is not recognized.
func ByName(name string) *Table {
	switch strings.ToLower(name) {
	case "ascii":
		return ASCII
	case "petscii":
		return PETSCII
	case "screen":
		return Screen
	}
	return nil
}
