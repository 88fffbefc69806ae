// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "xasm6502"})

	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Shortcut:    "?",
		Brief:       "Display help",
		Description: "Display help for a command, or list all commands.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "assemble",
		Brief: "Assemble a source file",
		Description: "Run the cross-assembler against a file on disk." +
			" On success the resulting chunks replace whatever was held" +
			" from a previous assemble command; on failure the error is" +
			" reported the same way the batch command-line tool reports it.",
		Usage: "assemble <filename>",
		Data:  (*Host).cmdAssemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble an assembled chunk",
		Description: "Disassemble a chunk held from the last successful" +
			" assemble command back into mnemonic text. If no chunk index" +
			" is given, chunk 0 is disassembled.",
		Usage: "disassemble [<chunk-index>]",
		Data:  (*Host).cmdDisassemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "symbols",
		Brief: "List resolved symbols",
		Description: "List the symbol table resolved by the last" +
			" successful assemble command.",
		Usage: "symbols",
		Data:  (*Host).cmdSymbols,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Hex-dump a chunk",
		Description: "Dump the contents of a chunk held from the last" +
			" successful assemble command. If no chunk index is given," +
			" chunk 0 is dumped.",
		Usage: "dump [<chunk-index>]",
		Data:  (*Host).cmdDump,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Get or set a host setting",
		Description: "Set the value of a host setting. To see the" +
			" current values of all settings, type set without any" +
			" arguments.",
		Usage: "set [<field> <value>]",
		Data:  (*Host).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Shortcut:    "q",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})

	root.AddShortcut("a", "assemble")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("sym", "symbols")

	cmds = root
}
