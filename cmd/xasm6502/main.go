// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xasm6502 is the batch front end for the assembler: given a
// source filename it assembles it and writes one block-<hex_start>.prg
// file per chunk. With no arguments it falls back to the interactive
// host REPL, mirroring the teacher's own main.go fallback pattern.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/nullflux/xasm6502/asm"
	"github.com/nullflux/xasm6502/host"
)

func main() {
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: xasm6502 [file.asm]\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		host.New().RunCommands(os.Stdin, os.Stdout, interactive)
		return
	}

	if len(args) > 1 {
		fmt.Println("ERROR: expected a single input filename.")
		os.Exit(1)
	}

	if err := assembleFile(args[0]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func assembleFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", filename, err)
	}
	defer file.Close()

	result, err := asm.Assemble(file, asm.Options{})
	if err != nil {
		return err
	}

	for _, chunk := range result.Chunks {
		if err := writeChunkFile(chunk); err != nil {
			return err
		}
	}

	fmt.Printf("Assembled '%s' into %d chunk(s).\n", filename, len(result.Chunks))
	return nil
}

// writeChunkFile writes one chunk to block-<hex_start>.prg: a 2-byte
// little-endian start address followed by the chunk's bytes.
func writeChunkFile(chunk *asm.MemChunk) error {
	name := fmt.Sprintf("block-%04X.prg", chunk.Start)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", name, err)
	}
	defer f.Close()

	header := []byte{byte(chunk.Start), byte(chunk.Start >> 8)}
	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("failed to write '%s': %w", name, err)
	}
	if _, err := f.Write(chunk.Bytes()); err != nil {
		return fmt.Errorf("failed to write '%s': %w", name, err)
	}

	fmt.Printf("Wrote %s (%d bytes).\n", name, len(chunk.Bytes()))
	return nil
}
