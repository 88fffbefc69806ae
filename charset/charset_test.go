// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charset

import "testing"

func TestASCIIIsIdentity(t *testing.T) {
	for i := 0; i < 256; i++ {
		if got := ASCII.Translate(byte(i)); got != byte(i) {
			t.Errorf("ASCII.Translate(%#x) = %#x, want %#x", i, got, i)
		}
	}
}

func TestPETSCIIUppercase(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
	}{
		{'A', 0x41},
		{'Z', 0x5A},
		{'a', 0xC1},
		{'z', 0xDA},
		{'@', 0x40},
		{'0', '0'},
	}
	for _, tt := range tests {
		if got := PETSCII.Translate(tt.in); got != tt.want {
			t.Errorf("PETSCII.Translate(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestScreenCodes(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
	}{
		{'@', 0x00},
		{'A', 0x01},
		{'Z', 0x1A},
		{'a', 0x01},
		{' ', 0x20},
	}
	for _, tt := range tests {
		if got := Screen.Translate(tt.in); got != tt.want {
			t.Errorf("Screen.Translate(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestUnmappedCodePointIsZero(t *testing.T) {
	if got := PETSCII.Translate(0xFF); got != 0 {
		t.Errorf("PETSCII.Translate(0xFF) = %#x, want 0", got)
	}
	if got := Screen.Translate(0xFF); got != 0 {
		t.Errorf("Screen.Translate(0xFF) = %#x, want 0", got)
	}
}

func TestByName(t *testing.T) {
	if ByName("ASCII") != ASCII {
		t.Error("ByName(\"ASCII\") mismatch")
	}
	if ByName("PETSCII") != PETSCII {
		t.Error("ByName(\"PETSCII\") mismatch")
	}
	if ByName("Screen") != Screen {
		t.Error("ByName(\"Screen\") mismatch")
	}
	if ByName("bogus") != nil {
		t.Error("ByName(\"bogus\") should be nil")
	}
	if ByName("petscii") != PETSCII {
		t.Error("ByName(\"petscii\") mismatch (lookup should be case-insensitive)")
	}
}
