// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"strings"
	"testing"

	"github.com/nullflux/xasm6502/asm"
)

func assembleChunk(t *testing.T, code string) *asm.MemChunk {
	t.Helper()
	result, err := asm.Assemble(strings.NewReader(code), asm.Options{})
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	if len(result.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(result.Chunks))
	}
	return result.Chunks[0]
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestDisassembleAddressingModes(t *testing.T) {
	code := `
	.pc = $1000
	LDA #$20
	LDA $20
	LDA $20,X
	LDA $2000
	LDA $2000,X
	LDA $2000,Y
	LDA ($20,X)
	LDA ($20),Y
	JMP ($2000)
	NOP`

	chunk := assembleChunk(t, code)
	lines := Disassemble(chunk)

	want := []string{
		"LDA #$20",
		"LDA $20",
		"LDA $20,X",
		"LDA $2000",
		"LDA $2000,X",
		"LDA $2000,Y",
		"LDA ($20,X)",
		"LDA ($20),Y",
		"JMP ($2000)",
		"NOP",
	}

	got := texts(lines)
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDisassembleBranchTarget(t *testing.T) {
	code := `
	.pc = $1000
	LDX #$00
LOOP:
	INX
	CPX #$05
	BNE LOOP
	RTS`

	chunk := assembleChunk(t, code)
	lines := Disassemble(chunk)

	var branch *Line
	for i := range lines {
		if strings.HasPrefix(lines[i].Text, "BNE") {
			branch = &lines[i]
		}
	}
	if branch == nil {
		t.Fatal("no BNE line found")
	}
	if branch.Text != "BNE $1002" {
		t.Errorf("got %q, want %q", branch.Text, "BNE $1002")
	}
}

func TestDisassembleUnknownByte(t *testing.T) {
	code := `
	.pc = $1000
	.byte $02
	NOP`

	chunk := assembleChunk(t, code)
	lines := Disassemble(chunk)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != ".BYTE $02" {
		t.Errorf("got %q, want %q", lines[0].Text, ".BYTE $02")
	}
	if lines[1].Text != "NOP" {
		t.Errorf("got %q, want %q", lines[1].Text, "NOP")
	}
}

func TestDisassembleAddressesAdvance(t *testing.T) {
	code := `
	.pc = $1000
	NOP
	LDA $2000`

	chunk := assembleChunk(t, code)
	lines := Disassemble(chunk)

	if lines[0].Addr != 0x1000 {
		t.Errorf("got addr %04X, want 1000", lines[0].Addr)
	}
	if lines[1].Addr != 0x1001 {
		t.Errorf("got addr %04X, want 1001", lines[1].Addr)
	}
}
