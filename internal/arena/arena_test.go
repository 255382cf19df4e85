package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func Test_New_ExactSize(t *testing.T) {
	for _, size := range []int{1, 7, 8, 16, 100, 8000, 80080} {
		a, err := New(size)
		require.NoError(t, err)
		require.Equal(t, size, a.Size())
		require.Len(t, a.Bytes(), size)
	}
}

func Test_New_Rejects(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
	_, err = New(-8)
	require.Error(t, err)
}

func Test_Base_Aligned(t *testing.T) {
	a, err := New(16)
	require.NoError(t, err)
	require.Zero(t, uintptr(a.Base())%8, "arena base must be 8-byte aligned")
}

func Test_Bytes_AliasesStorage(t *testing.T) {
	a, err := New(32)
	require.NoError(t, err)

	b := a.Bytes()
	b[0] = 0xAA
	b[31] = 0xBB

	again := a.Bytes()
	require.Equal(t, byte(0xAA), again[0])
	require.Equal(t, byte(0xBB), again[31])
	require.Equal(t, a.Base(), unsafe.Pointer(&again[0]))
}

func Test_Lock_Release(t *testing.T) {
	a, err := New(4096)
	require.NoError(t, err)

	// RLIMIT_MEMLOCK may forbid pinning in constrained environments, and
	// some platforms have no locking primitive; any Lock error skips.
	if err := a.Lock(); err != nil {
		t.Skipf("page locking unavailable: %v", err)
	}
	require.NoError(t, a.Lock(), "second Lock must be a no-op")
	require.NoError(t, a.Release())
	require.NoError(t, a.Release(), "second Release must be a no-op")
}
