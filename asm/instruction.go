// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"

	"github.com/nullflux/xasm6502/isa"
)

// operandForm classifies the syntactic shape of an operand, independent
// of whether its core token turns out to be numeric or a label.
type operandForm int

const (
	formImmediate operandForm = iota
	formPlain                 // NN
	formIndexedX              // NN,X
	formIndexedY              // NN,Y
	formIndirect              // (NN)
	formIndirectX             // (NN,X)
	formIndirectY             // (NN),Y
)

// prefixKind classifies the '#' family of operand prefixes.
type prefixKind int

const (
	prefixNone prefixKind = iota
	prefixImmediate
	prefixLow  // #<
	prefixHigh // #>
)

// parseInstruction parses "MNE [operand]" and emits the encoded bytes for
// it, or registers a forward reference if the operand names a
// not-yet-defined label.
func (a *Assembler) parseInstruction(line fstring) *Error {
	if !a.pcSet {
		return a.orderError(line)
	}

	mneTok, rest := line.consumeWhile(alpha)
	if len(mneTok.str) != 3 || (!rest.isEmpty() && !rest.startsWith(whitespace)) {
		return &Error{Kind: KindUnknownSymbol, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
	}
	mnemonic := strings.ToUpper(mneTok.str)
	rest = rest.consumeWhitespace()

	if opcode, ok := isa.SingleByteOpcode(mnemonic); ok {
		if !rest.isEmpty() {
			return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
		}
		if !a.emitByte(opcode) {
			return a.overflowError(line)
		}
		return nil
	}

	inst := isa.Lookup(mnemonic)
	if inst == nil {
		return &Error{Kind: KindUnknownSymbol, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
	}

	if rest.isEmpty() {
		if isa.IsAccumulatorImplicit(mnemonic) {
			if !a.emitByte(inst.Codes[isa.Implicit]) {
				return a.overflowError(line)
			}
			return nil
		}
		return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
	}

	return a.encodeAddressed(inst, mnemonic, rest, line)
}

// encodeAddressed classifies and emits a non-empty, non-accumulator
// operand against the instruction's addressing-mode table.
func (a *Assembler) encodeAddressed(inst *isa.Instruction, mnemonic string, operand, line fstring) *Error {
	prefix, form, core, aerr := splitOperand(operand)
	if aerr != nil {
		aerr.Line, aerr.Text = line.row, line.full
		return aerr
	}

	value, forceAbsolute, labelName, aerr := a.resolveCore(core, form == formImmediate)
	if aerr != nil {
		aerr.Line, aerr.Text = line.row, line.full
		return aerr
	}

	switch form {
	case formImmediate:
		return a.encodeImmediate(inst, prefix, value, labelName, core, line)

	case formPlain:
		if inst.Supports(isa.BranchRelative) {
			return a.encodeBranch(inst, value, labelName, line)
		}
		return a.encodeSized(inst, isa.ZeroPage, isa.Absolute, value, forceAbsolute, labelName, line)

	case formIndexedX:
		return a.encodeSized(inst, isa.ZeroPageX, isa.AbsoluteX, value, forceAbsolute, labelName, line)

	case formIndexedY:
		return a.encodeSized(inst, isa.ZeroPageY, isa.AbsoluteY, value, forceAbsolute, labelName, line)

	case formIndirect:
		// Fixed JMP ($nnnn) encoding: emitted for this operand pattern
		// regardless of the mnemonic that precedes it.
		if value < 0 || value > 0xFFFF {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Address out of range"}
		}
		opAddr := a.pc + 1
		if !a.emitByte(isa.JMPIndirectOpcode) {
			return a.overflowError(line)
		}
		if !a.emitWord(uint16(value)) {
			return a.overflowError(line)
		}
		if labelName != "" && !a.labelResolved(labelName) {
			a.addForwardRef(labelName, opAddr, patchAbs16, line)
		}
		return nil

	case formIndirectX:
		if value > 0xFF {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Value out of byte range"}
		}
		if !inst.Supports(isa.IndexedIndirect) {
			return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
		}
		opAddr := a.pc + 1
		if !a.emitByte(inst.Codes[isa.IndexedIndirect]) || !a.emitByte(byte(value)) {
			return a.overflowError(line)
		}
		if labelName != "" && !a.labelResolved(labelName) {
			a.addForwardRef(labelName, opAddr, patchLow8, line)
		}
		return nil

	case formIndirectY:
		if value > 0xFF {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Value out of byte range"}
		}
		if !inst.Supports(isa.IndirectIndexed) {
			return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
		}
		opAddr := a.pc + 1
		if !a.emitByte(inst.Codes[isa.IndirectIndexed]) || !a.emitByte(byte(value)) {
			return a.overflowError(line)
		}
		if labelName != "" && !a.labelResolved(labelName) {
			a.addForwardRef(labelName, opAddr, patchLow8, line)
		}
		return nil
	}

	return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
}

// encodeImmediate handles the "#...", "#<..." and "#>..." operand forms.
func (a *Assembler) encodeImmediate(inst *isa.Instruction, prefix prefixKind, value int, labelName string, core, line fstring) *Error {
	if !inst.Supports(isa.Immediate) {
		return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
	}

	var immVal int
	var kind patchKind
	switch {
	case labelName != "" && prefix == prefixHigh:
		immVal, kind = (value>>8)&0xFF, patchHigh8
	case labelName != "":
		immVal, kind = value&0xFF, patchLow8 // bare "#LABEL" and "#<LABEL" both take the low byte
	case prefix == prefixHigh:
		immVal = (value >> 8) & 0xFF
	case prefix == prefixLow:
		immVal = value & 0xFF
	default:
		immVal = value
		if immVal < 0 || immVal > 0xFF {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Value out of byte range"}
		}
	}

	opAddr := a.pc + 1
	if !a.emitByte(inst.Codes[isa.Immediate]) || !a.emitByte(byte(immVal)) {
		return a.overflowError(line)
	}
	if labelName != "" && !a.labelResolved(labelName) {
		a.addForwardRef(labelName, opAddr, kind, line)
	}
	return nil
}

// encodeBranch handles the relative-branch addressing mode. The offset of
// a branch to an already-defined target is range-checked here; a forward
// branch is range-checked when resolveForwardRefs patches it in pass 2.
func (a *Assembler) encodeBranch(inst *isa.Instruction, target int, labelName string, line fstring) *Error {
	opAddr := a.pc + 1
	resolved := labelName == "" || a.labelResolved(labelName)

	offset := 0
	if resolved {
		offset = target - (int(a.pc) + 2)
		if offset < -128 || offset > 127 {
			return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Branch out of range"}
		}
	}

	if !a.emitByte(inst.Codes[isa.BranchRelative]) {
		return a.overflowError(line)
	}
	var offByte byte
	if offset < 0 {
		offByte = byte(256 + offset)
	} else {
		offByte = byte(offset)
	}
	if !a.emitByte(offByte) {
		return a.overflowError(line)
	}

	if !resolved {
		a.addForwardRef(labelName, opAddr, patchBranchRel8, line)
	}
	return nil
}

// encodeSized picks between a zero-page-sized and absolute-sized encoding
// based on the operand's magnitude, unless forceAbsolute (a label
// reference that hasn't been narrowed with #</#>) requires the absolute
// form regardless of the value's magnitude.
func (a *Assembler) encodeSized(inst *isa.Instruction, zp, abs isa.Mode, value int, forceAbsolute bool, labelName string, line fstring) *Error {
	useZeroPage := !forceAbsolute && value >= 0 && value <= 0xFF

	if useZeroPage {
		if !inst.Supports(zp) {
			return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
		}
		if !a.emitByte(inst.Codes[zp]) || !a.emitByte(byte(value)) {
			return a.overflowError(line)
		}
		return nil
	}

	if value < 0 || value > 0xFFFF {
		return &Error{Kind: KindRange, Line: line.row, Text: line.full, Msg: "Address out of range"}
	}
	if !inst.Supports(abs) {
		return &Error{Kind: KindAddressingMode, Line: line.row, Text: line.full, Msg: "Unknown instruction"}
	}

	opAddr := a.pc + 1
	if !a.emitByte(inst.Codes[abs]) || !a.emitWord(uint16(value)) {
		return a.overflowError(line)
	}
	if labelName != "" && !a.labelResolved(labelName) {
		a.addForwardRef(labelName, opAddr, patchAbs16, line)
	}
	return nil
}

// labelResolved reports whether name is already bound in the symbol
// table at the point this operand is being encoded (a backward
// reference), as opposed to a forward reference that still needs a pass
// 2 patch.
func (a *Assembler) labelResolved(name string) bool {
	_, ok := a.symbols.lookup(name)
	return ok
}

// splitOperand recognizes the operand's syntactic shape: an optional '#'
// family prefix, then either a bare core token, a core with a ",X"/",Y"
// suffix, or a parenthesized core with an optional ",X" inside or ",Y"
// outside the parens.
func splitOperand(line fstring) (prefix prefixKind, form operandForm, core fstring, err *Error) {
	switch {
	case line.startsWithString("#<"):
		prefix, line = prefixLow, line.consume(2)
	case line.startsWithString("#>"):
		prefix, line = prefixHigh, line.consume(2)
	case line.startsWithChar('#'):
		prefix, line = prefixImmediate, line.consume(1)
	}

	if prefix != prefixNone {
		form, core = formImmediate, line
		return
	}

	if line.startsWithChar('(') {
		afterParen := line.consume(1)
		inner, remain := afterParen.consumeUntil(func(c byte) bool { return c == ',' || c == ')' })
		switch {
		case remain.startsWithString(",X)") || remain.startsWithString(",x)"):
			form, remain = formIndirectX, remain.consume(3)
		case remain.startsWithString("),Y") || remain.startsWithString("),y"):
			form, remain = formIndirectY, remain.consume(3)
		case remain.startsWithChar(')'):
			form, remain = formIndirect, remain.consume(1)
		default:
			err = &Error{Kind: KindSyntax, Msg: "Unknown addressing mode format"}
			return
		}
		if !remain.isEmpty() {
			err = &Error{Kind: KindSyntax, Msg: "Unknown addressing mode format"}
			return
		}
		core = inner
		return
	}

	inner, remain := line.consumeUntilChar(',')
	switch {
	case remain.startsWithString(",X") || remain.startsWithString(",x"):
		form, remain = formIndexedX, remain.consume(2)
	case remain.startsWithString(",Y") || remain.startsWithString(",y"):
		form, remain = formIndexedY, remain.consume(2)
	default:
		form = formPlain
	}
	if !remain.isEmpty() {
		err = &Error{Kind: KindSyntax, Msg: "Unknown addressing mode format"}
		return
	}
	core = inner
	return
}

// resolveCore interprets a core operand token as a label reference, a
// '*'-relative reference, or a numeric literal, returning its value and
// (for label references outside immediate mode) whether the reference
// forces the absolute-sized encoding.
func (a *Assembler) resolveCore(core fstring, isImmediate bool) (value int, forceAbsolute bool, labelName string, err *Error) {
	s := core.str

	switch {
	case s == "*":
		value = int(a.pc)
		return

	case len(s) > 1 && s[0] == '*' && (s[1] == '+' || s[1] == '-'):
		n, ok := parseNumber(s[2:])
		if !ok || n > 127 {
			err = &Error{Kind: KindRange, Msg: "Branch out of range"}
			return
		}
		if s[1] == '-' {
			n = -n
		}
		value = (int(a.pc) + n) & 0xFFFF
		return

	case len(s) > 0 && labelStartChar(s[0]):
		for i := 1; i < len(s); i++ {
			if !labelChar(s[i]) {
				err = &Error{Kind: KindSyntax, Msg: "Invalid number type"}
				return
			}
		}
		labelName = strings.ToUpper(s)
		if addr, ok := a.symbols.lookup(labelName); ok {
			value = int(addr)
		} else {
			value = int(a.pc)
		}
		forceAbsolute = !isImmediate
		return

	case len(s) > 0 && (s[0] == '$' || s[0] == '%' || decimal(s[0])):
		v, ok := parseNumber(s)
		if !ok {
			err = &Error{Kind: KindSyntax, Msg: "Invalid number type"}
			return
		}
		value = v
		return

	default:
		err = &Error{Kind: KindSyntax, Msg: "Invalid number type"}
		return
	}
}
