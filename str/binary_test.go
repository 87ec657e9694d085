// SPDX-License-Identifier: Apache-2.0

package str

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadU32ByteOrder(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x00}

	be := Wrap(data)
	v, ok := be.ReadU32BE()
	require.True(t, ok)
	require.Equal(t, uint32(256), v)
	require.True(t, be.Empty())

	le := Wrap(data)
	v, ok = le.ReadU32LE()
	require.True(t, ok)
	require.Equal(t, uint32(65536), v)

	le = Wrap([]byte{0x00, 0x00, 0x00, 0x01})
	v, ok = le.ReadU32LE()
	require.True(t, ok)
	require.Equal(t, uint32(16777216), v)

	native := Wrap(data)
	v, ok = native.ReadU32()
	require.True(t, ok)
	require.Equal(t, binary.NativeEndian.Uint32(data), v)
}

func TestReadIsAllOrNothing(t *testing.T) {
	s := Wrap([]byte{1, 2, 3})

	_, ok := s.ReadU32LE()
	require.False(t, ok)
	require.Equal(t, 3, s.Len())

	_, ok = s.ReadI64BE()
	require.False(t, ok)
	require.Equal(t, 3, s.Len())

	dst := make([]byte, 4)
	require.False(t, s.ReadBytes(dst))
	require.Equal(t, []byte{0, 0, 0, 0}, dst)

	u16, ok := s.ReadU16BE()
	require.True(t, ok)
	require.Equal(t, uint16(0x0102), u16)

	u8, ok := s.ReadU8()
	require.True(t, ok)
	require.Equal(t, uint8(3), u8)

	_, ok = s.ReadU8()
	require.False(t, ok)
}

func TestReadSigned(t *testing.T) {
	s := Wrap([]byte{
		0xFF,
		0xFE, 0xFF,
		0xFF, 0xFE,
		0xFD, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFD,
		0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC,
	})

	i8, ok := s.ReadI8()
	require.True(t, ok)
	require.Equal(t, int8(-1), i8)

	i16, ok := s.ReadI16LE()
	require.True(t, ok)
	require.Equal(t, int16(-2), i16)
	i16, ok = s.ReadI16BE()
	require.True(t, ok)
	require.Equal(t, int16(-2), i16)

	i32, ok := s.ReadI32LE()
	require.True(t, ok)
	require.Equal(t, int32(-3), i32)
	i32, ok = s.ReadI32BE()
	require.True(t, ok)
	require.Equal(t, int32(-3), i32)

	i64, ok := s.ReadI64LE()
	require.True(t, ok)
	require.Equal(t, int64(-4), i64)
	i64, ok = s.ReadI64BE()
	require.True(t, ok)
	require.Equal(t, int64(-4), i64)

	require.True(t, s.Empty())
}

func TestReadWidthsAndOrders(t *testing.T) {
	buf := binary.LittleEndian.AppendUint16(nil, 0xBEEF)
	buf = binary.BigEndian.AppendUint16(buf, 0xBEEF)
	buf = binary.LittleEndian.AppendUint64(buf, 0x0102030405060708)
	buf = binary.BigEndian.AppendUint64(buf, 0x0102030405060708)
	buf = binary.NativeEndian.AppendUint16(buf, 7)
	buf = binary.NativeEndian.AppendUint64(buf, 9)
	buf = binary.NativeEndian.AppendUint32(buf, uint32(0xFFFFFFFF))
	buf = binary.NativeEndian.AppendUint16(buf, uint16(0xFFFF))
	buf = binary.NativeEndian.AppendUint64(buf, ^uint64(0))
	s := Wrap(buf)

	u16, _ := s.ReadU16LE()
	require.Equal(t, uint16(0xBEEF), u16)
	u16, _ = s.ReadU16BE()
	require.Equal(t, uint16(0xBEEF), u16)
	u64, _ := s.ReadU64LE()
	require.Equal(t, uint64(0x0102030405060708), u64)
	u64, _ = s.ReadU64BE()
	require.Equal(t, uint64(0x0102030405060708), u64)
	u16, _ = s.ReadU16()
	require.Equal(t, uint16(7), u16)
	u64, _ = s.ReadU64()
	require.Equal(t, uint64(9), u64)
	i32, _ := s.ReadI32()
	require.Equal(t, int32(-1), i32)
	i16, _ := s.ReadI16()
	require.Equal(t, int16(-1), i16)
	i64, ok := s.ReadI64()
	require.True(t, ok)
	require.Equal(t, int64(-1), i64)
	require.True(t, s.Empty())
}

func TestReadBytes(t *testing.T) {
	s := Literal("RIFF\x24\x00\x00\x00WAVE")

	tag := make([]byte, 4)
	require.True(t, s.ReadBytes(tag))
	require.Equal(t, "RIFF", string(tag))

	size, ok := s.ReadU32LE()
	require.True(t, ok)
	require.Equal(t, uint32(36), size)

	require.True(t, s.ReadBytes(tag))
	require.Equal(t, "WAVE", string(tag))
	require.True(t, s.ReadBytes(nil))
	require.True(t, s.Empty())
}
