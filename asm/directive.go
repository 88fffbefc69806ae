// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"

	"github.com/nullflux/xasm6502/charset"
)

// directiveFunc handles one pseudo-op's operand text.
type directiveFunc func(a *Assembler, line fstring) *Error

var directives = map[string]directiveFunc{
	".pc":      (*Assembler).parsePC,
	".byte":    (*Assembler).parseByteData,
	".word":    (*Assembler).parseWordData,
	".text":    (*Assembler).parseText,
	".ascii":   setCharsetDirective(charset.ASCII),
	".petscii": setCharsetDirective(charset.PETSCII),
	".screen":  setCharsetDirective(charset.Screen),
}

// parseDirective dispatches a line beginning with '.' to its handler.
func (a *Assembler) parseDirective(line fstring) *Error {
	keyword, rest := line.consumeWhile(wordChar)
	fn, ok := directives[strings.ToLower(keyword.str)]
	if !ok {
		return &Error{
			Kind: KindSyntax,
			Line: line.row,
			Text: line.full,
			Msg:  "Unrecognized directive",
		}
	}
	return fn(a, rest.consumeWhitespace())
}

// parsePC handles ".pc = $HHHH". If no chunk is currently open, a new one
// is created starting at the given address; otherwise the current chunk
// is finalized and a new one is opened.
func (a *Assembler) parsePC(line fstring) *Error {
	rest := line.consumeWhitespace()
	if !rest.startsWithChar('=') {
		return a.syntaxError(line, "Invalid .pc directive")
	}
	rest = rest.consume(1).consumeWhitespace()

	addrText, rest := rest.consumeWhile(wordChar)
	if !rest.isEmpty() {
		return a.syntaxError(rest, "Invalid .pc directive")
	}

	value, ok := parseNumber(addrText.str)
	if !ok || value < 0 || value > 0xFFFF {
		return &Error{
			Kind: KindRange,
			Line: line.row,
			Text: line.full,
			Msg:  "Address out of range",
		}
	}

	a.openChunk(uint16(value))
	return nil
}

// openChunk finalizes any chunk currently open and starts a new one at
// addr, updating pc.
func (a *Assembler) openChunk(addr uint16) {
	if a.chunk != nil {
		a.chunk.finalize()
		a.chunks = append(a.chunks, a.chunk)
	}
	a.chunk = newMemChunk(addr)
	a.pc = addr
	a.pcSet = true
}

// parseByteData handles ".byte v1, v2, …": 8-bit values, each incrementing
// pc by 1.
func (a *Assembler) parseByteData(line fstring) *Error {
	if !a.pcSet {
		return a.orderError(line)
	}

	remain := line
	for !remain.isEmpty() {
		var tok fstring
		tok, remain = remain.consumeUntilChar(',')
		if !remain.isEmpty() {
			remain = remain.consume(1).consumeWhitespace()
		}

		value, ok := parseNumber(tok.str)
		if !ok {
			return a.syntaxError(tok, "Invalid number type")
		}
		if value < 0 || value > 0xFF {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Value out of byte range"}
		}

		if !a.emitByte(byte(value)) {
			return a.overflowError(line)
		}
	}
	return nil
}

// parseWordData handles ".word v1, v2, …": 16-bit little-endian values,
// each incrementing pc by 2. The range check and emission both operate on
// the full 16-bit value (the distilled original's 8-bit truncation before
// the range check is not reproduced here).
func (a *Assembler) parseWordData(line fstring) *Error {
	if !a.pcSet {
		return a.orderError(line)
	}

	remain := line
	for !remain.isEmpty() {
		var tok fstring
		tok, remain = remain.consumeUntilChar(',')
		if !remain.isEmpty() {
			remain = remain.consume(1).consumeWhitespace()
		}

		value, ok := parseNumber(tok.str)
		if !ok {
			return a.syntaxError(tok, "Invalid number type")
		}
		if value < 0 || value > 0xFFFF {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Value out of word range"}
		}

		if !a.emitWord(uint16(value)) {
			return a.overflowError(line)
		}
	}
	return nil
}

// parseText handles '.text "string"'. Each character is translated
// through the active charset table; "\"" and "\\" are the only
// recognized escapes.
func (a *Assembler) parseText(line fstring) *Error {
	if !a.pcSet {
		return a.orderError(line)
	}
	if !line.startsWithChar('"') {
		return a.syntaxError(line, "Expected string literal")
	}

	s := line.str[1:]
	var out []byte
	i := 0
	closed := false
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"':
			closed = true
			i++
		case c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\'):
			out = append(out, s[i+1])
			i += 2
			continue
		case c == '\\':
			return a.syntaxError(line, "Invalid escape in string literal")
		default:
			out = append(out, c)
			i++
			continue
		}
		break
	}
	if !closed {
		return a.syntaxError(line, "Unterminated string literal")
	}

	translated := make([]byte, len(out))
	for i, c := range out {
		translated[i] = a.charset.Translate(c)
	}

	if !a.emitBytes(translated) {
		return a.overflowError(line)
	}
	return nil
}

// setCharsetDirective returns a directive handler that switches the active
// charset used by subsequent .text directives.
func setCharsetDirective(table *charset.Table) directiveFunc {
	return func(a *Assembler, line fstring) *Error {
		a.charset = table
		return nil
	}
}
