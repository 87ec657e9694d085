// SPDX-License-Identifier: Apache-2.0

package str

import "bytes"

func found(i int) int {
	if i < 0 {
		return NotFound
	}
	return i
}

// byteSet is a membership table for FindFirstAny and FindLastAny. Unlike
// bytes.IndexAny it matches single bytes, not UTF-8 runes.
type byteSet [256]bool

func makeByteSet(set String) *byteSet {
	var bs byteSet
	for _, c := range set {
		bs[c] = true
	}
	return &bs
}

// FindFirst returns the index of the first c in s, or NotFound.
func (s String) FindFirst(c byte) int {
	return found(bytes.IndexByte(s, c))
}

// FindFirstString returns the index of the first occurrence of sub in s, or NotFound.
// An empty sub is found at 0.
func (s String) FindFirstString(sub String) int {
	return found(bytes.Index(s, sub))
}

// FindFirstAny returns the index of the first byte of s that appears in set, or NotFound.
func (s String) FindFirstAny(set String) int {
	if len(set) == 1 {
		return s.FindFirst(set[0])
	}
	bs := makeByteSet(set)
	for i, c := range s {
		if bs[c] {
			return i
		}
	}
	return NotFound
}

// FindLast returns the index of the last c in s, or NotFound.
func (s String) FindLast(c byte) int {
	return found(bytes.LastIndexByte(s, c))
}

// FindLastString returns the index of the last occurrence of sub in s, or NotFound.
// An empty sub is found at Len().
func (s String) FindLastString(sub String) int {
	return found(bytes.LastIndex(s, sub))
}

// FindLastAny returns the index of the last byte of s that appears in set, or NotFound.
func (s String) FindLastAny(set String) int {
	if len(set) == 1 {
		return s.FindLast(set[0])
	}
	bs := makeByteSet(set)
	for i := len(s) - 1; i >= 0; i-- {
		if bs[s[i]] {
			return i
		}
	}
	return NotFound
}

// Contains reports whether sub occurs in s.
func (s String) Contains(sub String) bool {
	return bytes.Contains(s, sub)
}
