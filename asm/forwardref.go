// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// patchKind identifies how a forward-referenced label's resolved address
// should be written back into a previously-emitted chunk.
type patchKind int

const (
	patchLow8 patchKind = iota
	patchHigh8
	patchAbs16
	patchBranchRel8
)

// unresolvedRef records one forward use of a label: the patch site (which
// chunk, and the absolute address of the first patched byte) and how to
// interpret the label's resolved address once pass 2 learns it.
type unresolvedRef struct {
	label    string
	chunk    *MemChunk
	addr     uint16 // address of the first byte to patch
	kind     patchKind
	refLine  int    // first source line that referenced the label
	refText  string // that line's text, for the error message
}

// resolveForwardRefs runs pass 2: every recorded reference to a label is
// patched now that the full symbol table is known. Unresolved labels are
// reported against the first line that referenced them.
func (a *Assembler) resolveForwardRefs() *Error {
	for _, ref := range a.refs {
		addr, ok := a.symbols.lookup(ref.label)
		if !ok {
			return &Error{
				Kind: KindUnknownSymbol,
				Line: ref.refLine,
				Text: ref.refText,
				Msg:  fmt.Sprintf("Unresolved label definition '%s'", ref.label),
			}
		}

		switch ref.kind {
		case patchLow8:
			ref.chunk.patchByte(ref.addr, byte(addr))
		case patchHigh8:
			ref.chunk.patchByte(ref.addr, byte(addr>>8))
		case patchAbs16:
			ref.chunk.patchWord(ref.addr, addr)
		case patchBranchRel8:
			offset := int(addr) - int(ref.addr) - 1
			if offset < -128 || offset > 127 {
				return &Error{
					Kind: KindRange,
					Line: ref.refLine,
					Text: ref.refText,
					Msg:  "Branch out of range",
				}
			}
			ref.chunk.patchByte(ref.addr, byte(offset))
		}
	}
	return nil
}
