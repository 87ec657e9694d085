// SPDX-License-Identifier: Apache-2.0

package str

import (
	"io"

	"github.com/wundergraph/go-region"
)

const minRead = 512

// Builder is a growable, heap-owned byte buffer that is always NUL-terminated.
// The zero value is an empty builder ready to use.
//
// Any mutating call may move the contents, which invalidates views returned by View
// and CString.
type Builder struct {
	buf []byte // contents followed by the terminator, nil until first use
}

// Len returns the number of bytes written, excluding the terminator.
func (b *Builder) Len() int {
	if len(b.buf) == 0 {
		return 0
	}
	return len(b.buf) - 1
}

// Cap returns the size of the allocated buffer including room for the terminator.
// A builder with no buffer reports 1 for its implicit terminator, so Cap() >= Len()+1
// always holds.
func (b *Builder) Cap() int {
	if b.buf == nil {
		return 1
	}
	return cap(b.buf)
}

// grow makes room for n more bytes plus the terminator.
func (b *Builder) grow(n int) {
	need := b.Len() + n + 1
	if need <= cap(b.buf) {
		return
	}
	buf := make([]byte, len(b.buf), region.GrowCapacity(cap(b.buf), need))
	copy(buf, b.buf)
	b.buf = buf
}

// setLen resizes the contents to n bytes and writes the terminator.
func (b *Builder) setLen(n int) {
	b.buf = b.buf[:n+1]
	b.buf[n] = 0
}

// Append appends s.
func (b *Builder) Append(s String) {
	b.AppendBytes(s)
}

// AppendBytes appends p. p may alias the builder's own contents.
func (b *Builder) AppendBytes(p []byte) {
	n := b.Len()
	b.grow(len(p))
	b.setLen(n + len(p))
	copy(b.buf[n:], p)
}

// AppendString appends s.
func (b *Builder) AppendString(s string) {
	b.AppendBytes(Literal(s))
}

// Insert inserts s at offset, shifting the following bytes back. It panics when
// offset is greater than Len(). s may alias the builder's own contents.
func (b *Builder) Insert(offset int, s String) {
	n := b.Len()
	if offset < 0 || offset > n {
		panic("str: insert offset out of range")
	}
	if _, ok := offsetIn(String(b.buf[:cap(b.buf)]), s); ok && len(s) > 0 {
		// the shift below would overwrite s before it is copied
		s = Clone(s)
	}
	b.grow(len(s))
	b.setLen(n + len(s))
	copy(b.buf[offset+len(s):], b.buf[offset:n])
	copy(b.buf[offset:], s)
}

// InsertString inserts s at offset.
func (b *Builder) InsertString(offset int, s string) {
	b.Insert(offset, Literal(s))
}

// Remove deletes length bytes starting at offset. It panics when the range does not
// fit inside the contents.
func (b *Builder) Remove(offset, length int) {
	n := b.Len()
	if offset < 0 || length < 0 || offset > n-length {
		panic("str: remove range out of range")
	}
	if length == 0 {
		return
	}
	copy(b.buf[offset:], b.buf[offset+length:n])
	b.setLen(n - length)
}

// Clear empties the builder and keeps its buffer.
func (b *Builder) Clear() {
	if b.buf != nil {
		b.setLen(0)
	}
}

// Free drops the buffer. The builder can be reused afterwards.
func (b *Builder) Free() {
	b.buf = nil
}

// View returns the contents without the terminator.
func (b *Builder) View() String {
	return Wrap(b.buf[:b.Len()])
}

// String returns a copy of the contents.
func (b *Builder) String() string {
	return string(b.View())
}

// CString returns the contents including the NUL terminator.
func (b *Builder) CString() []byte {
	if b.buf == nil {
		return []byte{0}
	}
	return b.buf[:len(b.buf):len(b.buf)]
}

// Write implements io.Writer. It never fails.
func (b *Builder) Write(p []byte) (int, error) {
	b.AppendBytes(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (b *Builder) WriteByte(c byte) error {
	n := b.Len()
	b.grow(1)
	b.setLen(n + 1)
	b.buf[n] = c
	return nil
}

// WriteString implements io.StringWriter.
func (b *Builder) WriteString(s string) (int, error) {
	b.AppendString(s)
	return len(s), nil
}

// ReadFrom implements io.ReaderFrom. It reads directly into the builder's buffer
// until EOF.
func (b *Builder) ReadFrom(r io.Reader) (n int64, err error) {
	for {
		l := b.Len()
		b.grow(minRead)
		m, er := r.Read(b.buf[l : cap(b.buf)-1])
		if m < 0 {
			panic("str: reader returned negative count")
		}
		b.setLen(l + m)
		n += int64(m)
		if er == io.EOF {
			return n, nil
		}
		if er != nil {
			return n, er
		}
	}
}
