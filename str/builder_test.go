// SPDX-License-Identifier: Apache-2.0

package str

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireTerminated checks the NUL terminator and the capacity invariant.
func requireTerminated(t *testing.T, b *Builder) {
	t.Helper()
	c := b.CString()
	require.Len(t, c, b.Len()+1)
	require.Equal(t, byte(0), c[b.Len()])
	require.GreaterOrEqual(t, b.Cap(), b.Len()+1)
}

func TestBuilderZeroValue(t *testing.T) {
	var b Builder
	require.Equal(t, 0, b.Len())
	require.Equal(t, 1, b.Cap())
	require.True(t, b.View().Empty())
	require.Equal(t, []byte{0}, b.CString())
	require.Equal(t, "", b.String())
}

func TestBuilderAppend(t *testing.T) {
	var b Builder
	b.Append(Literal("hello"))
	requireTerminated(t, &b)
	b.AppendString(", ")
	b.AppendBytes([]byte("world"))
	requireTerminated(t, &b)

	require.Equal(t, "hello, world", b.String())
	require.Equal(t, []byte("hello, world\x00"), b.CString())
}

func TestBuilderAppendSelf(t *testing.T) {
	var b Builder
	b.AppendString("ab")
	b.Append(b.View())
	b.Append(b.View())
	require.Equal(t, "abababab", b.String())
	requireTerminated(t, &b)
}

func TestBuilderInsertSelf(t *testing.T) {
	cases := []struct {
		offset   int
		from, to int
		want     string
	}{
		{0, 3, 6, "defabcdef"},
		{3, 0, 3, "abcabcdef"},
		{2, 1, 5, "abbcdecdef"},
		{6, 0, 6, "abcdefabcdef"},
		{4, 2, 2, "abcdef"},
	}
	for _, tc := range cases {
		var b Builder
		// leave enough spare capacity that the insert happens in place
		b.AppendString(strings.Repeat("x", 32))
		b.Clear()
		b.AppendString("abcdef")
		capBefore := b.Cap()

		b.Insert(tc.offset, b.View()[tc.from:tc.to])
		require.Equal(t, tc.want, b.String())
		require.Equal(t, capBefore, b.Cap())
		requireTerminated(t, &b)
	}

	// same again when the insert has to reallocate
	var b Builder
	b.AppendString("abcdefg")
	for b.Cap() > b.Len()+1 {
		b.WriteByte('g')
	}
	want := "defg" + b.String()
	b.Insert(0, b.View()[3:7])
	require.Equal(t, want, b.String())
	requireTerminated(t, &b)
}

func TestBuilderGrowth(t *testing.T) {
	var b Builder
	b.AppendString("x")
	require.Equal(t, 2, b.Cap())

	b.AppendString("yz")
	require.Equal(t, 4, b.Cap())

	b.AppendString(strings.Repeat("a", 300))
	require.Equal(t, 320, b.Cap())
	requireTerminated(t, &b)
}

func TestBuilderInsert(t *testing.T) {
	var b Builder
	b.AppendString("held")
	b.InsertString(2, "llo wor")
	require.Equal(t, "hello world", b.String())
	requireTerminated(t, &b)

	b.Insert(0, Literal(">> "))
	b.Insert(b.Len(), Literal("!"))
	require.Equal(t, ">> hello world!", b.String())
	requireTerminated(t, &b)

	require.PanicsWithValue(t, "str: insert offset out of range", func() { b.InsertString(b.Len()+1, "x") })
	require.Panics(t, func() { b.InsertString(-1, "x") })
}

func TestBuilderRemove(t *testing.T) {
	var b Builder
	b.AppendString("hello cruel world")
	b.Remove(6, 6)
	require.Equal(t, "hello world", b.String())
	requireTerminated(t, &b)

	b.Remove(5, 6)
	require.Equal(t, "hello", b.String())
	b.Remove(0, 0)
	require.Equal(t, "hello", b.String())
	requireTerminated(t, &b)

	require.PanicsWithValue(t, "str: remove range out of range", func() { b.Remove(3, 3) })
	require.Panics(t, func() { b.Remove(-1, 1) })
}

func TestBuilderInsertRemoveRoundTrip(t *testing.T) {
	var b Builder
	b.AppendString("0123456789")
	for off := 0; off <= 10; off++ {
		b.InsertString(off, "abc")
		b.Remove(off, 3)
		require.Equal(t, "0123456789", b.String())
		requireTerminated(t, &b)
	}
}

func TestBuilderClearAndFree(t *testing.T) {
	var b Builder
	b.AppendString("some text")
	capBefore := b.Cap()

	b.Clear()
	require.Equal(t, 0, b.Len())
	require.Equal(t, capBefore, b.Cap())
	requireTerminated(t, &b)

	b.Free()
	require.Equal(t, 1, b.Cap())
	requireTerminated(t, &b)
	b.Clear()
	b.AppendString("again")
	require.Equal(t, "again", b.String())
}

func TestBuilderWriters(t *testing.T) {
	var b Builder
	_, err := fmt.Fprintf(&b, "%s=%d", "n", 42)
	require.NoError(t, err)
	require.NoError(t, b.WriteByte(';'))
	n, err := b.WriteString("done")
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "n=42;done", b.String())
	requireTerminated(t, &b)
}

func TestBuilderReadFrom(t *testing.T) {
	var b Builder
	b.AppendString(">")
	data := strings.Repeat("0123456789", 200)

	n, err := b.ReadFrom(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), n)
	require.Equal(t, ">"+data, b.String())
	requireTerminated(t, &b)

	boom := errors.New("boom")
	var failing Builder
	n, err = failing.ReadFrom(io.MultiReader(strings.NewReader("abc"), &errorReader{err: boom}))
	require.ErrorIs(t, err, boom)
	require.Equal(t, int64(3), n)
	require.Equal(t, "abc", failing.String())
	requireTerminated(t, &failing)
}

type errorReader struct{ err error }

func (r *errorReader) Read([]byte) (int, error) { return 0, r.err }

func BenchmarkBuilderAppend(b *testing.B) {
	part := Literal("segment/")
	var sb Builder
	for i := 0; i < b.N; i++ {
		sb.Clear()
		for j := 0; j < 32; j++ {
			sb.Append(part)
		}
	}
}
