// SPDX-License-Identifier: Apache-2.0

package region

import (
	"errors"
	"io"
)

// Buffer is a bytes.Buffer-like struct backed by an arena.
// It implements io.Writer, io.ReaderFrom and io.WriterTo. Growing the buffer abandons
// the previous backing array in the arena, so the memory is reclaimed only by a
// rewind of the arena.
type Buffer struct {
	arena   Arena
	buf     []byte
	off     int    // read offset
	readBuf []byte // intermediate buffer for ReadFrom
}

const readBufferSize = 4 * 1024

// NewBuffer creates a new Buffer backed by the given arena.
// If arena is nil, it will fall back to standard Go allocation.
func NewBuffer(arena Arena) *Buffer {
	return &Buffer{arena: arena}
}

// Write implements io.Writer. It fails only when the arena is exhausted.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf, err := SliceAppend(b.arena, b.buf, p...)
	if err != nil {
		return 0, err
	}
	b.buf = buf
	return len(p), nil
}

// WriteByte writes a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	buf, err := SliceAppend(b.arena, b.buf, c)
	if err != nil {
		return err
	}
	b.buf = buf
	return nil
}

// WriteString writes a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	if len(s) == 0 {
		return 0, nil
	}
	return b.Write([]byte(s))
}

// WriteTo implements io.WriterTo by draining the unread portion into w.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	if b.Len() == 0 {
		return 0, nil
	}
	unread := b.buf[b.off:]
	m, err := w.Write(unread)
	b.off += m
	if err == nil && m < len(unread) {
		err = io.ErrShortWrite
	}
	b.compact()
	return int64(m), err
}

// Read reads up to len(p) bytes from the unread portion of the buffer.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.Len() == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n = copy(p, b.buf[b.off:])
	b.off += n
	b.compact()
	return n, nil
}

// ReadByte reads and returns the next byte from the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	if b.Len() == 0 {
		return 0, io.EOF
	}
	c := b.buf[b.off]
	b.off++
	b.compact()
	return c, nil
}

// Next returns a slice containing the next n bytes from the buffer,
// advancing the buffer as if the bytes had been returned by Read.
// The slice aliases the buffer and is valid only until the next write.
func (b *Buffer) Next(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	if m := b.Len(); n > m {
		n = m
	}
	data := b.buf[b.off : b.off+n : b.off+n]
	b.off += n
	return data
}

// compact rewinds the read offset once everything has been read so that the
// backing array is reused by later writes.
func (b *Buffer) compact() {
	if b.off == len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
	}
}

// Bytes returns a slice of length b.Len() holding the unread portion of the buffer.
// The slice is valid for use only until the next buffer modification.
func (b *Buffer) Bytes() []byte {
	if b.Len() == 0 {
		return []byte{}
	}
	return b.buf[b.off:len(b.buf):len(b.buf)]
}

// String returns a copy of the unread portion of the buffer.
func (b *Buffer) String() string {
	return string(b.buf[b.off:])
}

// Len returns the number of bytes of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

// Cap returns the capacity of the buffer's underlying byte slice.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Reset resets the buffer to be empty but keeps its backing array.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// Truncate discards all but the first n unread bytes from the buffer.
// It panics if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.Len() {
		panic("region: truncation out of range")
	}
	b.buf = b.buf[:b.off+n]
	b.compact()
}

// ReadFrom implements io.ReaderFrom.
// It reads data from r until EOF or error, writing it to the buffer.
// The intermediate read buffer is allocated from the arena.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	if b.readBuf == nil {
		if b.readBuf, err = AllocateSlice[byte](b.arena, readBufferSize, readBufferSize); err != nil {
			return 0, err
		}
	}

	for {
		nr, er := r.Read(b.readBuf)
		if nr > 0 {
			if _, ew := b.Write(b.readBuf[:nr]); ew != nil {
				return n, ew
			}
			n += int64(nr)
		}
		if er != nil {
			if errors.Is(er, io.EOF) {
				return n, nil
			}
			return n, er
		}
	}
}
