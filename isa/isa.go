// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isa describes the MOS 6502 instruction set the way the
// cross-assembler needs it: one 11-slot addressing-mode vector per
// mnemonic, rather than the emulator-oriented opcode-to-behavior table a
// CPU interpreter would want.
package isa

import "strings"

// Mode identifies one of the eleven addressing-mode columns of an
// Instruction's Codes vector.
type Mode int

// The eleven addressing-mode columns, in table order.
const (
	Immediate Mode = iota
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
	Implicit        // also covers Accumulator
	BranchRelative
	numModes // count of forward-encoding columns; not itself a valid Mode

	// Indirect is not one of the eleven forward-encoding columns (the
	// 6502 base instruction set only reaches it via JMP, which the
	// assembler encodes as the fixed JMPIndirectOpcode rather than a
	// table lookup). It exists solely so the disassembler's reverse
	// table can describe the JMP ($nnnn) form.
	Indirect
	numModesWithIndirect
)

// modeName is used by the disassembler and by error messages.
var modeName = [numModesWithIndirect]string{
	Immediate:       "Immediate",
	ZeroPage:        "ZeroPage",
	ZeroPageX:       "ZeroPage,X",
	ZeroPageY:       "ZeroPage,Y",
	Absolute:        "Absolute",
	AbsoluteX:       "Absolute,X",
	AbsoluteY:       "Absolute,Y",
	IndexedIndirect: "(Indirect,X)",
	IndirectIndexed: "(Indirect),Y",
	Implicit:        "Implicit",
	BranchRelative:  "Relative",
	Indirect:        "(Indirect)",
}

// String returns the human-readable name of a Mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeName) {
		return "?"
	}
	return modeName[m]
}

// operandLen reports how many operand bytes follow the opcode in the
// given mode. BranchRelative and the single-byte immediate/zero-page
// forms all take one; Absolute and its indexed variants take two;
// Implicit takes none.
var operandLen = [numModesWithIndirect]int{
	Immediate:       1,
	ZeroPage:        1,
	ZeroPageX:       1,
	ZeroPageY:       1,
	Absolute:        2,
	AbsoluteX:       2,
	AbsoluteY:       2,
	IndexedIndirect: 1,
	IndirectIndexed: 1,
	Implicit:        0,
	BranchRelative:  1,
	Indirect:        2,
}

// OperandLen returns the number of operand bytes following the opcode
// byte for the given addressing mode.
func (m Mode) OperandLen() int {
	if m < 0 || int(m) >= len(operandLen) {
		return 0
	}
	return operandLen[m]
}

// Instruction describes one mnemonic's full set of opcode encodings.
type Instruction struct {
	Name  string      // uppercased 3-letter mnemonic
	Codes [numModes]byte // opcode byte per addressing mode; 0 = unsupported
}

// Supports reports whether the instruction has an opcode assigned to the
// given addressing mode.
func (i *Instruction) Supports(m Mode) bool {
	return i.Codes[m] != 0
}

// JMPIndirectOpcode is the fixed byte used for the 6502's only absolute
// indirect addressing form, "JMP ($nnnn)". It has no column of its own in
// the 11-slot table because, on the base instruction set, only JMP ever
// reaches this addressing form.
const JMPIndirectOpcode = 0x6C

// BRKOpcode is the single-byte encoding of BRK. BRK is deliberately kept
// out of the 55-entry Codes table below: its real opcode is 0x00, the same
// value every other mnemonic's Codes slot uses to mean "not supported",
// and folding it into the generic table would make that sentinel
// ambiguous. BRK is recognized directly by the assembler's single-byte
// instruction class instead.
const BRKOpcode = 0x00

// table holds the 55 table-driven mnemonics (every mnemonic except BRK,
// which is in singleByte only), keyed by uppercase name. Values are
// grounded byte-for-byte on the NMOS 6502 opcode matrix.
var table map[string]*Instruction

func init() {
	table = make(map[string]*Instruction, len(entries))
	for i := range entries {
		table[entries[i].Name] = &entries[i]
	}
}

// Lookup returns the Instruction for the given mnemonic (case-insensitive),
// or nil if the mnemonic is not part of the instruction set.
func Lookup(mnemonic string) *Instruction {
	return table[strings.ToUpper(mnemonic)]
}

// singleByte lists every mnemonic that takes no operand and has exactly
// one encoding, including BRK (see BRKOpcode).
var singleByte = map[string]byte{
	"CLC": 0x18, "SEC": 0x38, "CLI": 0x58, "SEI": 0x78,
	"CLD": 0xD8, "SED": 0xF8, "CLV": 0xB8,
	"TAX": 0xAA, "TXA": 0x8A, "TAY": 0xA8, "TYA": 0x98,
	"TXS": 0x9A, "TSX": 0xBA,
	"DEX": 0xCA, "INX": 0xE8, "DEY": 0x88, "INY": 0xC8,
	"RTI": 0x40, "RTS": 0x60,
	"PHA": 0x48, "PLA": 0x68, "PHP": 0x08, "PLP": 0x28,
	"NOP": 0xEA,
	"BRK": BRKOpcode,
}

// SingleByteOpcode returns the dedicated one-byte opcode for mnemonics in
// the "single-byte class" (§4.4 of the specification) and reports whether
// the mnemonic belongs to that class at all.
func SingleByteOpcode(mnemonic string) (byte, bool) {
	op, ok := singleByte[strings.ToUpper(mnemonic)]
	return op, ok
}

// accumulatorImplicit lists the mnemonics that may be written with no
// operand (meaning "operate on the accumulator") but also support
// addressed forms.
var accumulatorImplicit = map[string]bool{
	"ROL": true, "ROR": true, "ASL": true, "LSR": true,
}

// IsAccumulatorImplicit reports whether mnemonic belongs to the
// accumulator-implicit class: ROL, ROR, ASL, LSR.
func IsAccumulatorImplicit(mnemonic string) bool {
	return accumulatorImplicit[strings.ToUpper(mnemonic)]
}

// branchMnemonics lists the eight relative-branch instructions.
var branchMnemonics = map[string]bool{
	"BCC": true, "BCS": true, "BEQ": true, "BNE": true,
	"BMI": true, "BPL": true, "BVC": true, "BVS": true,
}

// IsBranch reports whether mnemonic is one of the eight relative branches.
func IsBranch(mnemonic string) bool {
	return branchMnemonics[strings.ToUpper(mnemonic)]
}

// entries is the 55-mnemonic table-driven instruction set (every mnemonic
// except BRK, which is handled outside the table; see BRKOpcode). Column
// order matches the Mode iota order above:
//
//	IMM  ZPG  ZPX  ZPY  ABS  ABX  ABY  IDX  IDY  IMP  REL
var entries = []Instruction{
	{"LDA", [numModes]byte{Immediate: 0xA9, ZeroPage: 0xA5, ZeroPageX: 0xB5, Absolute: 0xAD, AbsoluteX: 0xBD, AbsoluteY: 0xB9, IndexedIndirect: 0xA1, IndirectIndexed: 0xB1}},
	{"LDX", [numModes]byte{Immediate: 0xA2, ZeroPage: 0xA6, ZeroPageY: 0xB6, Absolute: 0xAE, AbsoluteY: 0xBE}},
	{"LDY", [numModes]byte{Immediate: 0xA0, ZeroPage: 0xA4, ZeroPageX: 0xB4, Absolute: 0xAC, AbsoluteX: 0xBC}},
	{"STA", [numModes]byte{ZeroPage: 0x85, ZeroPageX: 0x95, Absolute: 0x8D, AbsoluteX: 0x9D, AbsoluteY: 0x99, IndexedIndirect: 0x81, IndirectIndexed: 0x91}},
	{"STX", [numModes]byte{ZeroPage: 0x86, ZeroPageY: 0x96, Absolute: 0x8E}},
	{"STY", [numModes]byte{ZeroPage: 0x84, ZeroPageX: 0x94, Absolute: 0x8C}},
	{"ADC", [numModes]byte{Immediate: 0x69, ZeroPage: 0x65, ZeroPageX: 0x75, Absolute: 0x6D, AbsoluteX: 0x7D, AbsoluteY: 0x79, IndexedIndirect: 0x61, IndirectIndexed: 0x71}},
	{"SBC", [numModes]byte{Immediate: 0xE9, ZeroPage: 0xE5, ZeroPageX: 0xF5, Absolute: 0xED, AbsoluteX: 0xFD, AbsoluteY: 0xF9, IndexedIndirect: 0xE1, IndirectIndexed: 0xF1}},
	{"CMP", [numModes]byte{Immediate: 0xC9, ZeroPage: 0xC5, ZeroPageX: 0xD5, Absolute: 0xCD, AbsoluteX: 0xDD, AbsoluteY: 0xD9, IndexedIndirect: 0xC1, IndirectIndexed: 0xD1}},
	{"CPX", [numModes]byte{Immediate: 0xE0, ZeroPage: 0xE4, Absolute: 0xEC}},
	{"CPY", [numModes]byte{Immediate: 0xC0, ZeroPage: 0xC4, Absolute: 0xCC}},
	{"BIT", [numModes]byte{ZeroPage: 0x24, Absolute: 0x2C}},
	{"AND", [numModes]byte{Immediate: 0x29, ZeroPage: 0x25, ZeroPageX: 0x35, Absolute: 0x2D, AbsoluteX: 0x3D, AbsoluteY: 0x39, IndexedIndirect: 0x21, IndirectIndexed: 0x31}},
	{"ORA", [numModes]byte{Immediate: 0x09, ZeroPage: 0x05, ZeroPageX: 0x15, Absolute: 0x0D, AbsoluteX: 0x1D, AbsoluteY: 0x19, IndexedIndirect: 0x01, IndirectIndexed: 0x11}},
	{"EOR", [numModes]byte{Immediate: 0x49, ZeroPage: 0x45, ZeroPageX: 0x55, Absolute: 0x4D, AbsoluteX: 0x5D, AbsoluteY: 0x59, IndexedIndirect: 0x41, IndirectIndexed: 0x51}},
	{"INC", [numModes]byte{ZeroPage: 0xE6, ZeroPageX: 0xF6, Absolute: 0xEE, AbsoluteX: 0xFE}},
	{"DEC", [numModes]byte{ZeroPage: 0xC6, ZeroPageX: 0xD6, Absolute: 0xCE, AbsoluteX: 0xDE}},
	{"JMP", [numModes]byte{Absolute: 0x4C}}, // JMP ($nnnn) handled via JMPIndirectOpcode, not a table column
	{"JSR", [numModes]byte{Absolute: 0x20}},
	{"ASL", [numModes]byte{Implicit: 0x0A, ZeroPage: 0x06, ZeroPageX: 0x16, Absolute: 0x0E, AbsoluteX: 0x1E}},
	{"LSR", [numModes]byte{Implicit: 0x4A, ZeroPage: 0x46, ZeroPageX: 0x56, Absolute: 0x4E, AbsoluteX: 0x5E}},
	{"ROL", [numModes]byte{Implicit: 0x2A, ZeroPage: 0x26, ZeroPageX: 0x36, Absolute: 0x2E, AbsoluteX: 0x3E}},
	{"ROR", [numModes]byte{Implicit: 0x6A, ZeroPage: 0x66, ZeroPageX: 0x76, Absolute: 0x6E, AbsoluteX: 0x7E}},
	{"BCC", [numModes]byte{BranchRelative: 0x90}},
	{"BCS", [numModes]byte{BranchRelative: 0xB0}},
	{"BEQ", [numModes]byte{BranchRelative: 0xF0}},
	{"BNE", [numModes]byte{BranchRelative: 0xD0}},
	{"BMI", [numModes]byte{BranchRelative: 0x30}},
	{"BPL", [numModes]byte{BranchRelative: 0x10}},
	{"BVC", [numModes]byte{BranchRelative: 0x50}},
	{"BVS", [numModes]byte{BranchRelative: 0x70}},
	{"CLC", [numModes]byte{Implicit: 0x18}},
	{"SEC", [numModes]byte{Implicit: 0x38}},
	{"CLI", [numModes]byte{Implicit: 0x58}},
	{"SEI", [numModes]byte{Implicit: 0x78}},
	{"CLD", [numModes]byte{Implicit: 0xD8}},
	{"SED", [numModes]byte{Implicit: 0xF8}},
	{"CLV", [numModes]byte{Implicit: 0xB8}},
	{"INX", [numModes]byte{Implicit: 0xE8}},
	{"INY", [numModes]byte{Implicit: 0xC8}},
	{"DEX", [numModes]byte{Implicit: 0xCA}},
	{"DEY", [numModes]byte{Implicit: 0x88}},
	{"RTS", [numModes]byte{Implicit: 0x60}},
	{"RTI", [numModes]byte{Implicit: 0x40}},
	{"NOP", [numModes]byte{Implicit: 0xEA}},
	{"TAX", [numModes]byte{Implicit: 0xAA}},
	{"TXA", [numModes]byte{Implicit: 0x8A}},
	{"TAY", [numModes]byte{Implicit: 0xA8}},
	{"TYA", [numModes]byte{Implicit: 0x98}},
	{"TXS", [numModes]byte{Implicit: 0x9A}},
	{"TSX", [numModes]byte{Implicit: 0xBA}},
	{"PHA", [numModes]byte{Implicit: 0x48}},
	{"PLA", [numModes]byte{Implicit: 0x68}},
	{"PHP", [numModes]byte{Implicit: 0x08}},
	{"PLP", [numModes]byte{Implicit: 0x28}},
}

// ByOpcodeEntry is one entry of the reverse lookup table (opcode byte ->
// instruction name and addressing mode) that is built at package init from
// entries plus the single-byte and JMP-indirect special cases. It is used
// by the disassembler.
type ByOpcodeEntry struct {
	Name string
	Mode Mode
}

var byOpcode map[byte]ByOpcodeEntry

func init() {
	byOpcode = make(map[byte]ByOpcodeEntry, 206)
	for _, e := range entries {
		for m := Mode(0); m < numModes; m++ {
			if e.Codes[m] != 0 {
				byOpcode[e.Codes[m]] = ByOpcodeEntry{Name: e.Name, Mode: m}
			}
		}
	}
	for name, op := range singleByte {
		if _, exists := byOpcode[op]; !exists || name == "BRK" {
			byOpcode[op] = ByOpcodeEntry{Name: name, Mode: Implicit}
		}
	}
	byOpcode[JMPIndirectOpcode] = ByOpcodeEntry{Name: "JMP", Mode: Indirect}
}

// LookupOpcode returns the mnemonic and addressing mode associated with a
// raw opcode byte, if any.
func LookupOpcode(b byte) (ByOpcodeEntry, bool) {
	e, ok := byOpcode[b]
	return e, ok
}
