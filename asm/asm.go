// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass 6502 cross-assembler: source text in,
// a set of addressed memory chunks out.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nullflux/xasm6502/charset"
)

// errParse is the sentinel internal control flow uses to unwind out of a
// failed line without constructing a new error type at every call site;
// the actual diagnostic lives on the Assembler (a.err) and is surfaced
// once, when the run ends.
var errParse = errors.New("parse error")

// Options configures an assembly run.
type Options struct {
	// Charset is the initial active character-set table for .text
	// directives. A nil value defaults to charset.ASCII.
	Charset *charset.Table

	// Verbose, if true, causes the assembler to write a trace of its
	// pass to Trace (or os.Stdout if Trace is nil).
	Verbose bool

	// Trace receives the verbose trace output, if Verbose is set.
	Trace io.Writer
}

// Result holds the memory chunks and resolved symbol table produced by a
// successful assembly.
type Result struct {
	Chunks  []*MemChunk
	Symbols map[string]uint16
}

// Assembler holds all state for a single assembly run. It has no use
// outside of that one run; create a fresh Assembler (via Assemble) for
// each source file.
type Assembler struct {
	pc      uint16
	pcSet   bool
	charset *charset.Table
	chunk   *MemChunk
	chunks  []*MemChunk
	symbols *symbolTable
	refs    []*unresolvedRef

	out     io.Writer
	verbose bool

	err *Error
}

// Assemble reads 6502 assembly source from r and assembles it into a set
// of memory chunks. An assembly failure is returned as a *Error; an error
// from reading r is returned as is. No partial output is returned.
func Assemble(r io.Reader, options Options) (*Result, error) {
	cs := options.Charset
	if cs == nil {
		cs = charset.ASCII
	}
	out := options.Trace
	if out == nil {
		out = os.Stdout
	}

	a := &Assembler{
		charset: cs,
		symbols: newSymbolTable(),
		out:     out,
		verbose: options.Verbose,
	}

	if err := a.run(r); err != nil {
		return nil, err
	}
	return &Result{Chunks: a.chunks, Symbols: a.symbols.Symbols()}, nil
}

func (a *Assembler) run(r io.Reader) error {
	a.logSection("Assembling")

	scanner := bufio.NewScanner(r)
	row := 1
	for scanner.Scan() {
		line := newFstring(row, scanner.Text())
		if err := a.processLine(line); err != nil {
			if errors.Is(err, errParse) {
				return a.err
			}
			return err
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if a.chunk != nil {
		a.chunk.finalize()
		a.chunks = append(a.chunks, a.chunk)
		a.chunk = nil
	}

	a.logSection("Resolving forward references")
	if ferr := a.resolveForwardRefs(); ferr != nil {
		a.err = ferr
		return a.err
	}

	return nil
}

// processLine normalizes one source line and dispatches it to the
// directive handler, label recorder, or instruction encoder.
func (a *Assembler) processLine(raw fstring) error {
	line := raw.consumeWhitespace().stripTrailingComment()
	a.logLine(line, "line")
	if line.isEmpty() {
		return nil
	}

	if line.startsWithChar('.') {
		return a.fail(a.parseDirective(line))
	}

	if name, remain, found := parseLabel(line); found {
		if err := a.storeLabel(name, line); err != nil {
			return a.fail(err)
		}
		if remain.isEmpty() {
			return nil
		}
		if remain.startsWithChar('.') {
			return a.fail(a.parseDirective(remain))
		}
		return a.fail(a.parseInstruction(remain))
	}

	return a.fail(a.parseInstruction(line))
}

// fail records err (if non-nil) on the assembler and converts it to the
// errParse sentinel, the way the rest of the package expects to unwind.
func (a *Assembler) fail(err *Error) error {
	if err == nil {
		return nil
	}
	a.err = err
	return errParse
}

func (a *Assembler) syntaxError(line fstring, msg string) *Error {
	return &Error{Kind: KindSyntax, Line: line.row, Text: line.full, Msg: msg}
}

func (a *Assembler) orderError(line fstring) *Error {
	return &Error{Kind: KindOrder, Line: line.row, Text: line.full, Msg: "No .pc set before emitting data"}
}

func (a *Assembler) overflowError(line fstring) *Error {
	return &Error{Kind: KindInternal, Line: line.row, Text: line.full, Msg: "Chunk exceeds 64KB"}
}

// emitByte appends one byte to the currently open chunk and advances pc.
func (a *Assembler) emitByte(b byte) bool {
	if !a.chunk.appendByte(b) {
		return false
	}
	a.pc++
	return true
}

// emitWord appends a little-endian word to the currently open chunk and
// advances pc by 2.
func (a *Assembler) emitWord(v uint16) bool {
	if !a.chunk.appendBytes([]byte{byte(v), byte(v >> 8)}) {
		return false
	}
	a.pc += 2
	return true
}

// emitBytes appends a run of bytes (used by .text) and advances pc.
func (a *Assembler) emitBytes(b []byte) bool {
	if !a.chunk.appendBytes(b) {
		return false
	}
	a.pc += uint16(len(b))
	return true
}

// addForwardRef records an unresolved label use at addr (the address of
// its first patched byte) in the currently open chunk.
func (a *Assembler) addForwardRef(label string, addr uint16, kind patchKind, line fstring) {
	a.refs = append(a.refs, &unresolvedRef{
		label:   label,
		chunk:   a.chunk,
		addr:    addr,
		kind:    kind,
		refLine: line.row,
		refText: line.full,
	})
}

//
// verbose trace logging
//

func (a *Assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}

func (a *Assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

func (a *Assembler) logBytes(addr uint16, b []byte) {
	if a.verbose {
		for i, n := 0, len(b); i < n; i += 3 {
			j := i + 3
			if j > n {
				j = n
			}
			fmt.Fprintf(a.out, "%04X-*  %s\n", int(addr)+i, byteString(b[i:j]))
		}
	}
}
