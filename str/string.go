// SPDX-License-Identifier: Apache-2.0

package str

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/wundergraph/go-region"
)

// NotFound is returned by the search functions when there is no match. It is larger
// than any valid index.
const NotFound = math.MaxInt

// ErrNotAdjacent is returned by ConcatenateAdjacent when the two slices do not form
// one contiguous range of their parent.
var ErrNotAdjacent = errors.New("str: slices are not adjacent")

// String is a borrowed view of bytes. It does not own its memory and is never
// NUL-terminated. Views made by this package have their capacity clipped to their
// length, so appending to one always copies instead of writing into the parent.
type String []byte

// Wrap borrows b.
func Wrap(b []byte) String {
	return String(b[:len(b):len(b)])
}

// Literal borrows the memory of s without copying. The result must never be mutated.
func Literal(s string) String {
	return String(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Make copies s to the heap.
func Make(s string) String {
	return Wrap([]byte(s))
}

// WrapCString borrows b up to its first NUL byte, or all of b when it has none.
func WrapCString(b []byte) String {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return Wrap(b)
}

// MakeCString returns a heap copy of s followed by a NUL byte.
func MakeCString(s String) []byte {
	out := make([]byte, len(s)+1)
	copy(out, s)
	return out
}

// Allocate copies s into memory taken from a. The copy lives until a is rewound past it.
func Allocate(a region.Arena, s String) (String, error) {
	b, err := region.AllocateSlice[byte](a, len(s), len(s))
	if err != nil {
		return nil, fmt.Errorf("str: allocate %d bytes: %w", len(s), err)
	}
	copy(b, s)
	return String(b), nil
}

// Clone copies s to the heap.
func Clone(s String) String {
	return Wrap(bytes.Clone(s))
}

// Concatenate copies the parts into one heap string.
func Concatenate(parts ...String) String {
	out := make([]byte, 0, totalLen(parts))
	for _, p := range parts {
		out = append(out, p...)
	}
	return String(out)
}

// AllocateConcatenation copies the parts into one string allocated from a.
func AllocateConcatenation(a region.Arena, parts ...String) (String, error) {
	n := totalLen(parts)
	b, err := region.AllocateSlice[byte](a, 0, n)
	if err != nil {
		return nil, fmt.Errorf("str: allocate %d bytes: %w", n, err)
	}
	for _, p := range parts {
		b = append(b, p...)
	}
	return String(b), nil
}

func totalLen(parts []String) int {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	return n
}

// Len returns the number of bytes in s.
func (s String) Len() int { return len(s) }

// Empty reports whether s has no bytes.
func (s String) Empty() bool { return len(s) == 0 }

// String returns a copy of s as a Go string.
func (s String) String() string { return string(s) }

// Equal reports whether s and o hold the same bytes.
func (s String) Equal(o String) bool { return bytes.Equal(s, o) }

// EqualString reports whether s holds the bytes of o.
func (s String) EqualString(o string) bool { return string(s) == o }

// Compare orders s and o lexicographically by byte value.
func (s String) Compare(o String) int { return bytes.Compare(s, o) }

// HasPrefix reports whether s begins with prefix.
func (s String) HasPrefix(prefix String) bool { return bytes.HasPrefix(s, prefix) }

// HasSuffix reports whether s ends with suffix.
func (s String) HasSuffix(suffix String) bool { return bytes.HasSuffix(s, suffix) }

// Hash returns the 64-bit xxHash of s.
func (s String) Hash() uint64 { return xxhash.Sum64(s) }

// Substring returns the view of length bytes starting at start. It panics when the
// range does not fit inside s.
func (s String) Substring(start, length int) String {
	if start < 0 || length < 0 || start > len(s)-length {
		panic("str: substring out of range")
	}
	end := start + length
	return s[start:end:end]
}

// ConcatenateAdjacent merges two views that sit next to each other inside parent into
// a single view. When one operand is empty the other is returned unchanged.
func ConcatenateAdjacent(left, right, parent String) (String, error) {
	switch {
	case len(left) == 0 && len(right) == 0:
		return parent[:0:0], nil
	case len(left) == 0:
		if _, ok := offsetIn(parent, right); !ok {
			return nil, fmt.Errorf("%w: right is outside the parent", ErrNotAdjacent)
		}
		return right, nil
	case len(right) == 0:
		if _, ok := offsetIn(parent, left); !ok {
			return nil, fmt.Errorf("%w: left is outside the parent", ErrNotAdjacent)
		}
		return left, nil
	}

	lo, ok := offsetIn(parent, left)
	if !ok {
		return nil, fmt.Errorf("%w: left is outside the parent", ErrNotAdjacent)
	}
	ro, ok := offsetIn(parent, right)
	if !ok {
		return nil, fmt.Errorf("%w: right is outside the parent", ErrNotAdjacent)
	}
	if lo+len(left) != ro {
		return nil, fmt.Errorf("%w: left ends at %d, right starts at %d", ErrNotAdjacent, lo+len(left), ro)
	}
	end := ro + len(right)
	return parent[lo:end:end], nil
}

// offsetIn returns the offset of the non-empty view s inside parent.
func offsetIn(parent, s String) (int, bool) {
	if len(parent) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(parent)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	if p < base {
		return 0, false
	}
	off := p - base
	if off > uintptr(len(parent)) || uintptr(len(s)) > uintptr(len(parent))-off {
		return 0, false
	}
	return int(off), true
}

// IsWhitespace reports whether c is one of ' ', '\t', '\n', '\v', '\f' or '\r'.
func IsWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsDecimalDigit reports whether c is in '0'..'9'.
func IsDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Trim returns s without leading and trailing whitespace.
func (s String) Trim() String {
	i, j := 0, len(s)
	for i < j && IsWhitespace(s[i]) {
		i++
	}
	for j > i && IsWhitespace(s[j-1]) {
		j--
	}
	return s[i:j:j]
}

// ReplaceAll overwrites every occurrence of what with with, in place. s must not be
// a Literal.
func (s String) ReplaceAll(what, with byte) {
	for i, c := range s {
		if c == what {
			s[i] = with
		}
	}
}
