// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set disassembler over the
// chunks produced by package asm, using package isa's reverse opcode
// table rather than an emulator's live memory.
package disasm

import (
	"fmt"

	"github.com/nullflux/xasm6502/asm"
	"github.com/nullflux/xasm6502/isa"
)

// modeFormat gives the operand format string for each addressing mode,
// keyed the same way the teacher's disasm package keys its own table.
var modeFormat = map[isa.Mode]string{
	isa.Immediate:       "#$%s",
	isa.ZeroPage:        "$%s",
	isa.ZeroPageX:       "$%s,X",
	isa.ZeroPageY:       "$%s,Y",
	isa.Absolute:        "$%s",
	isa.AbsoluteX:       "$%s,X",
	isa.AbsoluteY:       "$%s,Y",
	isa.IndexedIndirect: "($%s,X)",
	isa.IndirectIndexed: "($%s),Y",
	isa.Implicit:        "%s",
	isa.BranchRelative:  "$%s",
	isa.Indirect:        "($%s)",
}

var hex = "0123456789ABCDEF"

// hexString renders the little-endian operand bytes b (as stored in
// memory) as a most-significant-byte-first hex string, the way operands
// are conventionally displayed in assembly listings.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Line is one disassembled output line: the address it starts at, the
// raw bytes it consumed, and its rendered mnemonic text.
type Line struct {
	Addr uint16
	Raw  []byte
	Text string
}

// Disassemble walks chunk's bytes front-to-back, decoding one instruction
// (or, for unrecognized or truncated bytes, one .BYTE directive) per
// Line. A chunk containing unknown bytes always disassembles fully; it
// never aborts partway through.
func Disassemble(chunk *asm.MemChunk) []Line {
	data := chunk.Bytes()
	var lines []Line

	for i := 0; i < len(data); {
		addr := chunk.Start + uint16(i)
		entry, ok := isa.LookupOpcode(data[i])
		if !ok {
			lines = append(lines, byteLine(addr, data[i]))
			i++
			continue
		}

		length := 1 + entry.Mode.OperandLen()
		if i+length > len(data) {
			lines = append(lines, byteLine(addr, data[i]))
			i++
			continue
		}

		operand := data[i+1 : i+length]
		lines = append(lines, Line{
			Addr: addr,
			Raw:  data[i : i+length],
			Text: formatInstruction(entry, addr, operand),
		})
		i += length
	}

	return lines
}

func byteLine(addr uint16, b byte) Line {
	return Line{Addr: addr, Raw: []byte{b}, Text: fmt.Sprintf(".BYTE $%02X", b)}
}

// formatInstruction renders one decoded instruction as mnemonic + operand
// text, converting a BranchRelative operand from its stored signed offset
// to the absolute target address it represents.
func formatInstruction(entry isa.ByOpcodeEntry, addr uint16, operand []byte) string {
	if entry.Mode == isa.Implicit {
		return entry.Name
	}

	format, ok := modeFormat[entry.Mode]
	if !ok {
		format = "%s"
	}

	if entry.Mode == isa.BranchRelative {
		offset := int(int8(operand[0]))
		target := uint16(int(addr) + 2 + offset)
		return fmt.Sprintf("%s "+format, entry.Name, hexString([]byte{byte(target), byte(target >> 8)}))
	}

	return fmt.Sprintf("%s "+format, entry.Name, hexString(operand))
}
