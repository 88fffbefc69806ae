// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
	"testing"

	"github.com/nullflux/xasm6502/charset"
)

func assemble(code string) (*Result, error) {
	return Assemble(strings.NewReader(code), Options{})
}

// checkASM assembles code and compares the concatenated bytes of every
// emitted chunk, in order, against expected as a space-separated hex
// string (matching byteString's own format).
func checkASM(t *testing.T, code string, expected string) {
	t.Helper()
	result, err := assemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var all []byte
	for _, c := range result.Chunks {
		all = append(all, c.Bytes()...)
	}

	if got := byteString(all); got != expected {
		t.Errorf("code doesn't match expected\ngot: %s\nexp: %s", got, expected)
	}
}

func checkASMError(t *testing.T, code string, wantKind Kind, wantMsg string) {
	t.Helper()
	_, err := assemble(code)
	if err == nil {
		t.Fatalf("expected error assembling %q, got none", code)
	}
	aerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if aerr.Kind != wantKind {
		t.Errorf("got Kind %v, want %v", aerr.Kind, wantKind)
	}
	if aerr.Msg != wantMsg {
		t.Errorf("got Msg %q, want %q", aerr.Msg, wantMsg)
	}
}

func TestImmediateAddressing(t *testing.T) {
	code := `
	.pc = $1000
	LDA #$20
	LDX #$20
	LDY #$20
	ADC #$20
	SBC #$20
	CMP #$20
	CPX #$20
	CPY #$20
	AND #$20
	ORA #$20
	EOR #$20`

	checkASM(t, code, "A9 20 A2 20 A0 20 69 20 E9 20 C9 20 E0 20 C0 20 29 20 09 20 49 20")
}

func TestAbsoluteAddressing(t *testing.T) {
	code := `
	.pc = $1000
	LDA $2000
	STA $2000
	JMP $2000
	JSR $2000`

	checkASM(t, code, "AD 00 20 8D 00 20 4C 00 20 20 00 20")
}

func TestZeroPageAddressing(t *testing.T) {
	code := `
	.pc = $1000
	LDA $20
	STA $20
	INC $20`

	checkASM(t, code, "A5 20 85 20 E6 20")
}

func TestIndexedAddressing(t *testing.T) {
	code := `
	.pc = $1000
	LDA $20,X
	LDX $20,Y
	LDA $2000,X
	LDA $2000,Y`

	checkASM(t, code, "B5 20 B6 20 BD 00 20 B9 00 20")
}

func TestIndirectAddressing(t *testing.T) {
	code := `
	.pc = $1000
	LDA ($20,X)
	LDA ($20),Y
	JMP ($2000)`

	checkASM(t, code, "A1 20 B1 20 6C 00 20")
}

func TestAccumulatorImplicit(t *testing.T) {
	code := `
	.pc = $1000
	ASL
	LSR
	ROL
	ROR
	ASL $20`

	checkASM(t, code, "0A 4A 2A 6A 06 20")
}

func TestSingleByteInstructions(t *testing.T) {
	code := `
	.pc = $1000
	CLC
	SEC
	NOP
	BRK
	RTS`

	checkASM(t, code, "18 38 EA 00 60")
}

// TestBackwardBranch exercises the loop case: BNE targets a label defined
// two instructions earlier, so the relative offset is computed in pass 1
// without a pass-2 patch.
func TestBackwardBranch(t *testing.T) {
	code := `
	.pc = $1000
	LDX #$00
LOOP:
	INX
	CPX #$05
	BNE LOOP
	RTS`

	checkASM(t, code, "A2 00 E8 E0 05 D0 FB 60")
}

// TestForwardLabelLowHigh exercises a forward reference to a label used
// with both the #< and #> prefixes, each requiring its own pass-2 patch.
func TestForwardLabelLowHigh(t *testing.T) {
	code := `
	.pc = $1000
	LDA #<TARGET
	LDA #>TARGET
TARGET:
	RTS`

	checkASM(t, code, "A9 04 A9 10 60")
}

func TestBackwardLabel(t *testing.T) {
	code := `
	.pc = $1000
START:
	NOP
	JMP START`

	checkASM(t, code, "EA 4C 00 10")
}

func TestMultipleChunks(t *testing.T) {
	code := `
	.pc = $1000
	NOP
	.pc = $2000
	NOP`

	result, err := assemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(result.Chunks))
	}
	if result.Chunks[0].Start != 0x1000 || result.Chunks[1].Start != 0x2000 {
		t.Errorf("unexpected chunk start addresses: %04X, %04X", result.Chunks[0].Start, result.Chunks[1].Start)
	}
}

func TestByteDirective(t *testing.T) {
	code := `
	.pc = $1000
	.byte $01, %00000010, 3`

	checkASM(t, code, "01 02 03")
}

func TestWordDirective(t *testing.T) {
	code := `
	.pc = $1000
	.word $1234, 4660`

	checkASM(t, code, "34 12 34 12")
}

func TestTextDirectiveASCII(t *testing.T) {
	code := `
	.pc = $1000
	.text "AB"`

	checkASM(t, code, "41 42")
}

func TestTextDirectiveEscapes(t *testing.T) {
	code := `
	.pc = $1000
	.text "A\"B\\C"`

	checkASM(t, code, "41 22 42 5C 43")
}

func TestCharsetSwitch(t *testing.T) {
	code := `
	.pc = $1000
	.petscii
	.text "a"`

	result, err := assemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := charset.PETSCII.Translate('a')
	got := result.Chunks[0].Bytes()[0]
	if got != want {
		t.Errorf("got %02X, want %02X", got, want)
	}
}

func TestStarRelative(t *testing.T) {
	code := `
	.pc = $1000
	NOP
	JMP *-1`

	checkASM(t, code, "EA 4C 00 10")
}

func TestUnknownInstruction(t *testing.T) {
	checkASMError(t, "\t.pc = $1000\n\tFOO #$20", KindUnknownSymbol, "Unknown instruction")
}

func TestUnresolvedLabel(t *testing.T) {
	checkASMError(t, "\t.pc = $1000\n\tJMP MISSING", KindUnknownSymbol, "Unresolved label definition 'MISSING'")
}

func TestLabelRedefinition(t *testing.T) {
	code := "\t.pc = $1000\nFOO:\n\tNOP\nFOO:\n\tNOP"
	checkASMError(t, code, KindRedefinition, "Label already defined")
}

func TestBranchOutOfRange(t *testing.T) {
	var b strings.Builder
	b.WriteString("\t.pc = $1000\nLOOP:\n")
	for i := 0; i < 140; i++ {
		b.WriteString("\tNOP\n")
	}
	b.WriteString("\tBNE LOOP\n")
	checkASMError(t, b.String(), KindRange, "Branch out of range")
}

func TestEmitBeforePCSet(t *testing.T) {
	checkASMError(t, "\tNOP", KindOrder, "No .pc set before emitting data")
}

func TestAddressOutOfRangePC(t *testing.T) {
	checkASMError(t, "\t.pc = $10000", KindRange, "Address out of range")
}

func TestByteValueOutOfRange(t *testing.T) {
	checkASMError(t, "\t.pc = $1000\n\t.byte $100", KindRange, "Value out of byte range")
}

func TestUnknownDirective(t *testing.T) {
	checkASMError(t, "\t.pc = $1000\n\t.bogus 1", KindSyntax, "Unrecognized directive")
}
