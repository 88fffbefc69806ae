// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

const (
	chunkInitialCap = 256
	chunkMaxLen     = 65536
)

// MemChunk is a contiguous run of assembled bytes destined for a single
// load address. It grows by doubling, starting at chunkInitialCap bytes,
// and may never exceed chunkMaxLen bytes in total (the invariant is
// len(data) <= 0x10000 - Start).
type MemChunk struct {
	Start uint16
	data  []byte
}

func newMemChunk(start uint16) *MemChunk {
	return &MemChunk{Start: start, data: make([]byte, 0, chunkInitialCap)}
}

// Bytes returns the chunk's finalized byte contents.
func (c *MemChunk) Bytes() []byte {
	return c.data
}

// Len returns the number of bytes currently held by the chunk.
func (c *MemChunk) Len() int {
	return len(c.data)
}

// end returns the address one past the chunk's last byte.
func (c *MemChunk) end() int {
	return int(c.Start) + len(c.data)
}

func (c *MemChunk) grow(n int) {
	if cap(c.data) >= n {
		return
	}
	newCap := chunkInitialCap
	if cap(c.data) > newCap {
		newCap = cap(c.data)
	}
	for newCap < n {
		newCap *= 2
	}
	if newCap > chunkMaxLen {
		newCap = chunkMaxLen
	}
	grown := make([]byte, len(c.data), newCap)
	copy(grown, c.data)
	c.data = grown
}

// appendByte appends a single byte, reporting a chunk-overflow failure if
// doing so would run past address $FFFF (and so past the 64 KiB cap).
func (c *MemChunk) appendByte(b byte) bool {
	if c.end()+1 > chunkMaxLen {
		return false
	}
	c.grow(len(c.data) + 1)
	c.data = append(c.data, b)
	return true
}

func (c *MemChunk) appendBytes(b []byte) bool {
	for _, v := range b {
		if !c.appendByte(v) {
			return false
		}
	}
	return true
}

// finalize trims the chunk's backing array to exactly its used length.
func (c *MemChunk) finalize() {
	trimmed := make([]byte, len(c.data))
	copy(trimmed, c.data)
	c.data = trimmed
}

// contains reports whether addr lies within the chunk's current bytes.
func (c *MemChunk) contains(addr uint16) bool {
	return addr >= c.Start && int(addr) < c.end()
}

// patchByte overwrites a single already-emitted byte at the given absolute
// address. The caller guarantees addr lies within the chunk.
func (c *MemChunk) patchByte(addr uint16, v byte) {
	c.data[int(addr)-int(c.Start)] = v
}

// patchWord overwrites two already-emitted bytes, little-endian, starting
// at the given absolute address.
func (c *MemChunk) patchWord(addr uint16, v uint16) {
	off := int(addr) - int(c.Start)
	c.data[off] = byte(v)
	c.data[off+1] = byte(v >> 8)
}
