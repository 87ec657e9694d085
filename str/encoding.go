// SPDX-License-Identifier: Apache-2.0

package str

import (
	"hash/crc32"
	"slices"
	"unicode/utf16"
	"unicode/utf8"
)

// CRC32 returns the IEEE CRC-32 checksum of s.
func (s String) CRC32() uint32 {
	return crc32.ChecksumIEEE(s)
}

// ToUTF16 converts s to a NUL-terminated UTF-16 string. Invalid UTF-8 sequences
// become U+FFFD.
func ToUTF16(s String) []uint16 {
	out := make([]uint16, 0, len(s)+1)
	for len(s) > 0 {
		r, size := utf8.DecodeRune(s)
		out = utf16.AppendRune(out, r)
		s = s[size:]
	}
	return append(out, 0)
}

// FromUTF16 converts u up to its first NUL to UTF-8. Unpaired surrogates become
// U+FFFD.
func FromUTF16(u []uint16) String {
	if i := slices.Index(u, 0); i >= 0 {
		u = u[:i]
	}
	out := make([]byte, 0, len(u))
	for _, r := range utf16.Decode(u) {
		out = utf8.AppendRune(out, r)
	}
	return Wrap(out)
}
