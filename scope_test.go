// SPDX-License-Identifier: Apache-2.0

package region

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeRewindsOnClose(t *testing.T) {
	r := NewRegion()
	mustAlloc(t, r, 16, 1)

	func() {
		s := NewScope(r)
		defer s.Close()
		mustAlloc(t, r, 100, 1)
		require.Equal(t, 116, r.Len())
	}()

	require.Equal(t, 16, r.Len())
}

func TestScopeCloseIsIdempotent(t *testing.T) {
	r := NewRegion()
	s := NewScope(r)
	mustAlloc(t, r, 8, 1)
	require.NoError(t, s.Close())

	mustAlloc(t, r, 8, 1)
	require.NoError(t, s.Close())
	require.Equal(t, 8, r.Len())
}

func TestScopeEarlyExitInLoop(t *testing.T) {
	r := NewRegion()
	for i := 0; i < 10; i++ {
		func() {
			s := NewScope(r)
			defer s.Close()
			mustAlloc(t, r, 32, 1)
			if i%2 == 0 {
				return
			}
			mustAlloc(t, r, 32, 1)
		}()
		require.Equal(t, 0, r.Len())
	}
	require.Equal(t, 64, r.Peak())
}

func TestWithScopeRewindsOnError(t *testing.T) {
	r := NewRegion()
	errBoom := errors.New("boom")

	err := WithScope(r, func(a Arena) error {
		mustAlloc(t, a, 64, 1)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 0, r.Len())
}

func TestWithScopeRewindsOnPanic(t *testing.T) {
	r := NewRegion()
	mustAlloc(t, r, 4, 1)

	require.Panics(t, func() {
		_ = WithScope(r, func(a Arena) error {
			mustAlloc(t, a, 64, 1)
			panic("boom")
		})
	})
	require.Equal(t, 4, r.Len())
}

func TestNestedScopes(t *testing.T) {
	r := NewRegion()

	err := WithScope(r, func(a Arena) error {
		mustAlloc(t, a, 10, 1)
		err := WithScope(a, func(a Arena) error {
			mustAlloc(t, a, 20, 1)
			require.Equal(t, 30, a.Len())
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 10, a.Len())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, r.Len())
}

func TestScopeClosedOutOfOrder(t *testing.T) {
	r := NewRegion()
	outer := NewScope(r)
	mustAlloc(t, r, 10, 1)
	inner := NewScope(r)
	mustAlloc(t, r, 10, 1)

	require.NoError(t, outer.Close())
	mustAlloc(t, r, 30, 1)
	require.ErrorIs(t, inner.Close(), ErrStaleCursor)
	require.Equal(t, 30, r.Len())
}
