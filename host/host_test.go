// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, code string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.asm")
	if err := os.WriteFile(path, []byte(code), 0600); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestAssembleAndDisassemble(t *testing.T) {
	path := writeTempSource(t, "\t.pc = $1000\n\tNOP\n\tRTS\n")

	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("assemble "+path+"\ndisassemble\nquit\n"), &out, false)

	got := out.String()
	if !strings.Contains(got, "Assembled") {
		t.Errorf("expected assemble confirmation, got: %s", got)
	}
	if !strings.Contains(got, "NOP") || !strings.Contains(got, "RTS") {
		t.Errorf("expected disassembly to include NOP and RTS, got: %s", got)
	}
}

func TestSymbolsCommand(t *testing.T) {
	path := writeTempSource(t, "\t.pc = $1000\nSTART:\n\tNOP\n\tJMP START\n")

	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("assemble "+path+"\nsymbols\nquit\n"), &out, false)

	got := out.String()
	if !strings.Contains(got, "START") {
		t.Errorf("expected symbol table to list START, got: %s", got)
	}
}

func TestSymbolsBeforeAssembleIsEmpty(t *testing.T) {
	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("symbols\nquit\n"), &out, false)

	if !strings.Contains(out.String(), "No symbols") {
		t.Errorf("expected 'no symbols' message, got: %s", out.String())
	}
}

func TestSetAndDisplaySettings(t *testing.T) {
	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("set verbose true\nset\nquit\n"), &out, false)

	got := out.String()
	if !strings.Contains(got, "Setting updated.") {
		t.Errorf("expected setting confirmation, got: %s", got)
	}
	if !strings.Contains(got, "Verbose") {
		t.Errorf("expected settings display to list Verbose, got: %s", got)
	}
	if !h.settings.Verbose {
		t.Error("expected Verbose setting to be true after 'set verbose true'")
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeTempSource(t, "\t.pc = $1000\n\t.byte $01, $02, $03\n")

	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("assemble "+path+"\ndump\nquit\n"), &out, false)

	got := out.String()
	if !strings.Contains(got, "01 02 03") {
		t.Errorf("expected dump to show bytes 01 02 03, got: %s", got)
	}
}

func TestAssembleMissingFile(t *testing.T) {
	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("assemble /nonexistent/path.asm\nquit\n"), &out, false)

	if !strings.Contains(out.String(), "Failed to open") {
		t.Errorf("expected open failure message, got: %s", out.String())
	}
}

func TestDisassembleWithoutAssembleFails(t *testing.T) {
	var out bytes.Buffer
	h := New()
	h.RunCommands(strings.NewReader("disassemble\nquit\n"), &out, false)

	if !strings.Contains(out.String(), "Run assemble first") {
		t.Errorf("expected 'run assemble first' message, got: %s", out.String())
	}
}
