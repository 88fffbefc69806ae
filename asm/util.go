// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

var hex = "0123456789ABCDEF"

func hexchar(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// parseNumber interprets s as a "$hex", "%binary", or decimal literal and
// returns its value. Invalid syntax is reported via ok=false so the
// caller can raise "Invalid number type".
func parseNumber(s string) (value int, ok bool) {
	switch {
	case len(s) > 1 && s[0] == '$':
		return parseBase(s[1:], hexadecimal, hexchar, 16)
	case len(s) > 1 && s[0] == '%':
		return parseBase(s[1:], binarynum, func(c byte) byte { return c - '0' }, 2)
	case len(s) > 0 && decimal(s[0]):
		return parseBase(s, decimal, func(c byte) byte { return c - '0' }, 10)
	default:
		return 0, false
	}
}

func parseBase(digits string, valid func(byte) bool, digitValue func(byte) byte, base int) (int, bool) {
	if len(digits) == 0 {
		return 0, false
	}
	v := 0
	for i := 0; i < len(digits); i++ {
		if !valid(digits[i]) {
			return 0, false
		}
		v = v*base + int(digitValue(digits[i]))
	}
	return v, true
}

// toBytesLE returns the little-endian byte representation of value, using
// either 1 or 2 bytes.
func toBytesLE(n int, value int) []byte {
	if n == 1 {
		return []byte{byte(value)}
	}
	return []byte{byte(value), byte(value >> 8)}
}

// byteString returns a hexadecimal string representation of a byte slice,
// used by the assembler's verbose trace output.
func byteString(b []byte) string {
	if len(b) < 1 {
		return ""
	}
	s := make([]byte, len(b)*3-1)
	i, j := 0, 0
	for n := len(b) - 1; i < n; i, j = i+1, j+3 {
		s[j+0] = hex[(b[i] >> 4)]
		s[j+1] = hex[(b[i] & 0x0f)]
		s[j+2] = ' '
	}
	s[j+0] = hex[(b[i] >> 4)]
	s[j+1] = hex[(b[i] & 0x0f)]
	return string(s)
}
