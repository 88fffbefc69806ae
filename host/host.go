// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host wraps the assembler, instruction set, charset tables, and
// disassembler behind a small interactive REPL, in the style of the
// teacher's own host package, built on github.com/beevik/cmd and
// github.com/beevik/prefixtree/v2.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/nullflux/xasm6502/asm"
	"github.com/nullflux/xasm6502/charset"
	"github.com/nullflux/xasm6502/disasm"
)

// Host holds everything one interactive session needs: the chunks and
// symbol table from the last successful assemble command, and the user's
// settings.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection

	settings *Settings
	chunks   []*asm.MemChunk
	symbols  map[string]uint16
}

// New creates a new interactive host.
func New() *Host {
	return &Host{settings: newSettings()}
}

// RunCommands accepts host commands from r and writes results to w. If
// interactive, a prompt is displayed while the host waits for the next
// command.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		if err := handler(h, c); err != nil {
			break
		}
	}
}

func (h *Host) print(args ...interface{}) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...interface{}) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.println("xasm6502 commands:")
		for _, cc := range cmds.Commands {
			if cc.Brief != "" {
				h.printf("    %-12s %s\n", cc.Name, cc.Brief)
			}
		}
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if s.Command.Usage != "" {
		h.printf("Syntax: %s\n", s.Command.Usage)
	}
	if s.Command.Description != "" {
		h.printf("%s\n", s.Command.Description)
	}
	return nil
}

// cmdAssemble runs the core assembler against a file on disk, the same
// way cmd/xasm6502's batch mode does, and holds the resulting chunks and
// symbol table for later inspection.
func (h *Host) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.printf("Syntax: %s\n", c.Command.Usage)
		return nil
	}

	filename := c.Args[0]
	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filename, err)
		return nil
	}
	defer file.Close()

	options := asm.Options{Charset: charset.ByName(h.settings.Charset), Verbose: h.settings.Verbose, Trace: h.output}
	result, err := asm.Assemble(file, options)
	if err != nil {
		h.printf("Failed to assemble '%s': %v\n", filename, err)
		return nil
	}

	h.chunks = result.Chunks
	h.symbols = result.Symbols
	h.printf("Assembled '%s' into %d chunk(s).\n", filename, len(result.Chunks))
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	chunk, err := h.selectChunk(c.Args, 0)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	for _, line := range disasm.Disassemble(chunk) {
		h.printf("%04X-  %-10s  %s\n", line.Addr, hexBytes(line.Raw), line.Text)
	}
	return nil
}

func (h *Host) cmdSymbols(c cmd.Selection) error {
	if len(h.symbols) == 0 {
		h.println("No symbols. Run assemble first.")
		return nil
	}
	for name, addr := range h.symbols {
		h.printf("%-20s $%04X\n", name, addr)
	}
	return nil
}

func (h *Host) cmdDump(c cmd.Selection) error {
	chunk, err := h.selectChunk(c.Args, 0)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.dumpChunk(chunk)
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Settings:")
		h.settings.Display(h.output)

	case 1:
		h.printf("Syntax: %s\n", c.Command.Usage)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var v bool
			v, err = strconv.ParseBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			err = h.settings.Set(key, value)
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("exiting")
}

// selectChunk resolves a "[<chunk-index>]" argument against h.chunks,
// defaulting to defaultIndex when no argument is given.
func (h *Host) selectChunk(args []string, defaultIndex int) (*asm.MemChunk, error) {
	if len(h.chunks) == 0 {
		return nil, errors.New("no chunks. Run assemble first")
	}

	index := defaultIndex
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid chunk index '%s'", args[0])
		}
		index = n
	}

	if index < 0 || index >= len(h.chunks) {
		return nil, fmt.Errorf("chunk index %d out of range (have %d chunks)", index, len(h.chunks))
	}
	return h.chunks[index], nil
}

// dumpChunk hex-dumps a chunk 16 bytes per row, loosely modeled on the
// teacher's cmdMemoryDump: address, hex bytes, then a printable-ASCII
// rendering of the same bytes.
func (h *Host) dumpChunk(chunk *asm.MemChunk) {
	data := chunk.Bytes()
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		var hexPart strings.Builder
		var asciiPart strings.Builder
		for _, b := range row {
			fmt.Fprintf(&hexPart, "%02X ", b)
			asciiPart.WriteByte(toPrintableChar(b))
		}
		h.printf("%04X-  %-48s %s\n", int(chunk.Start)+off, hexPart.String(), asciiPart.String())
	}
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

func toPrintableChar(v byte) byte {
	if v >= 32 && v < 127 {
		return v
	}
	return '.'
}
