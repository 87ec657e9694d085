// SPDX-License-Identifier: Apache-2.0

package str

import "encoding/binary"

// Binary reads consume fixed-width values from the front of s. Each read is
// all-or-nothing: when too few bytes remain it returns false and s is unchanged.

// ReadBytes fills dst from the front of s.
func (s *String) ReadBytes(dst []byte) bool {
	b, ok := s.take(len(dst))
	if ok {
		copy(dst, b)
	}
	return ok
}

// ReadU8 reads one byte.
func (s *String) ReadU8() (uint8, bool) {
	b, ok := s.take(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// ReadI8 reads one byte as a signed integer.
func (s *String) ReadI8() (int8, bool) {
	v, ok := s.ReadU8()
	return int8(v), ok
}

func read16(s *String, order binary.ByteOrder) (uint16, bool) {
	b, ok := s.take(2)
	if !ok {
		return 0, false
	}
	return order.Uint16(b), true
}

func read32(s *String, order binary.ByteOrder) (uint32, bool) {
	b, ok := s.take(4)
	if !ok {
		return 0, false
	}
	return order.Uint32(b), true
}

func read64(s *String, order binary.ByteOrder) (uint64, bool) {
	b, ok := s.take(8)
	if !ok {
		return 0, false
	}
	return order.Uint64(b), true
}

// Native byte order.

// ReadU16 reads a native unsigned 16-bit integer.
func (s *String) ReadU16() (uint16, bool) { return read16(s, binary.NativeEndian) }
// ReadU32 reads a native unsigned 32-bit integer.
func (s *String) ReadU32() (uint32, bool) { return read32(s, binary.NativeEndian) }
// ReadU64 reads a native unsigned 64-bit integer.
func (s *String) ReadU64() (uint64, bool) { return read64(s, binary.NativeEndian) }

// ReadI16 reads a native signed 16-bit integer.
func (s *String) ReadI16() (int16, bool) {
	v, ok := read16(s, binary.NativeEndian)
	return int16(v), ok
}

// ReadI32 reads a native signed 32-bit integer.
func (s *String) ReadI32() (int32, bool) {
	v, ok := read32(s, binary.NativeEndian)
	return int32(v), ok
}

// ReadI64 reads a native signed 64-bit integer.
func (s *String) ReadI64() (int64, bool) {
	v, ok := read64(s, binary.NativeEndian)
	return int64(v), ok
}

// Little endian.

// ReadU16LE reads a little-endian unsigned 16-bit integer.
func (s *String) ReadU16LE() (uint16, bool) { return read16(s, binary.LittleEndian) }
// ReadU32LE reads a little-endian unsigned 32-bit integer.
func (s *String) ReadU32LE() (uint32, bool) { return read32(s, binary.LittleEndian) }
// ReadU64LE reads a little-endian unsigned 64-bit integer.
func (s *String) ReadU64LE() (uint64, bool) { return read64(s, binary.LittleEndian) }

// ReadI16LE reads a little-endian signed 16-bit integer.
func (s *String) ReadI16LE() (int16, bool) {
	v, ok := read16(s, binary.LittleEndian)
	return int16(v), ok
}

// ReadI32LE reads a little-endian signed 32-bit integer.
func (s *String) ReadI32LE() (int32, bool) {
	v, ok := read32(s, binary.LittleEndian)
	return int32(v), ok
}

// ReadI64LE reads a little-endian signed 64-bit integer.
func (s *String) ReadI64LE() (int64, bool) {
	v, ok := read64(s, binary.LittleEndian)
	return int64(v), ok
}

// Big endian.

// ReadU16BE reads a big-endian unsigned 16-bit integer.
func (s *String) ReadU16BE() (uint16, bool) { return read16(s, binary.BigEndian) }
// ReadU32BE reads a big-endian unsigned 32-bit integer.
func (s *String) ReadU32BE() (uint32, bool) { return read32(s, binary.BigEndian) }
// ReadU64BE reads a big-endian unsigned 64-bit integer.
func (s *String) ReadU64BE() (uint64, bool) { return read64(s, binary.BigEndian) }

// ReadI16BE reads a big-endian signed 16-bit integer.
func (s *String) ReadI16BE() (int16, bool) {
	v, ok := read16(s, binary.BigEndian)
	return int16(v), ok
}

// ReadI32BE reads a big-endian signed 32-bit integer.
func (s *String) ReadI32BE() (int32, bool) {
	v, ok := read32(s, binary.BigEndian)
	return int32(v), ok
}

// ReadI64BE reads a big-endian signed 64-bit integer.
func (s *String) ReadI64BE() (int64, bool) {
	v, ok := read64(s, binary.BigEndian)
	return int64(v), ok
}
