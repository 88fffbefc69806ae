// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// parseLabel recognizes a label definition at the start of a line: "NAME:"
// where NAME matches [A-Z][A-Z0-9_!]* (letters of either case are accepted;
// the returned name is upper-cased). The
// colon is what distinguishes a label from the start of an instruction
// mnemonic, so it is required, not optional. It reports whether a label
// was found, the label name, and the remainder of the line following it.
func parseLabel(line fstring) (name string, remain fstring, found bool) {
	if !line.startsWith(labelStartChar) {
		return "", line, false
	}

	word, rest := line.consumeWhile(labelChar)
	if !rest.startsWithChar(':') {
		return "", line, false
	}
	rest = rest.consume(1)

	return strings.ToUpper(word.str), rest.consumeWhitespace(), true
}

// storeLabel binds name to the current program counter, failing with a
// redefinition error if it is already bound.
func (a *Assembler) storeLabel(name string, line fstring) *Error {
	if !a.symbols.define(name, a.pc) {
		return &Error{
			Kind: KindRedefinition,
			Line: line.row,
			Text: line.full,
			Msg:  "Label already defined",
		}
	}
	return nil
}
