package freelist

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func Test_New_StorageIsExactlyRequestedSize(t *testing.T) {
	for _, size := range []int{16, 300, 800, 8000, 80080} {
		p, err := New[float64](size)
		if size%8 != 0 {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, size, p.StorageBytes())
		require.Equal(t, size, p.ar.Size())
	}
}

func Test_New_Rejections(t *testing.T) {
	// Pointerful element types cannot live in untyped storage.
	type node struct {
		next *int32
		v    int32
	}
	_, err := New[node](1024)
	require.ErrorIs(t, err, ErrReferenceType)

	_, err = New[string](1024)
	require.ErrorIs(t, err, ErrReferenceType)

	_, err = New[struct{}](1024)
	require.ErrorIs(t, err, ErrZeroSizeType)

	// 100 bytes do not tile into 8-byte slots.
	_, err = New[float64](100)
	require.ErrorIs(t, err, ErrSizeNotMultiple)

	// A single slot is consumed entirely by the control word.
	_, err = New[float64](8)
	require.ErrorIs(t, err, ErrTooSmall)

	// A 2^20-byte pool of one-byte elements widens to 4-byte slots; its
	// 262144 slots are more than a control-word field can address.
	_, err = New[int8](1 << 20)
	require.ErrorIs(t, err, ErrTooLarge)
}

func Test_Capacity_TinyBytePool(t *testing.T) {
	// One-byte elements, 16 bytes total: 1-byte index, 1-byte slots, the
	// control word overlaps the first 8.
	p, err := New[int8](16)
	require.NoError(t, err)
	require.Equal(t, 8, p.Capacity())
	require.Positive(t, p.Capacity())

	var got int
	for {
		if _, err := p.Alloc(int8(got)); err != nil {
			require.ErrorIs(t, err, ErrExhausted)
			break
		}
		got++
	}
	require.Equal(t, p.Capacity(), got)
}

func Test_Capacity_Float64Pool(t *testing.T) {
	p, err := New[float64](8000)
	require.NoError(t, err)
	require.Equal(t, 999, p.Capacity())
}

func Test_Empty_Full_Size(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	require.True(t, p.Empty())
	require.False(t, p.Full())
	require.Zero(t, p.Size())

	ptrs := make([]*float64, 0, p.Capacity())
	for i := 0; i < p.Capacity(); i++ {
		require.Equal(t, i, p.Size())
		require.False(t, p.Full())
		ptr, err := p.Alloc(float64(i))
		require.NoError(t, err)
		ptrs = append(ptrs, ptr)
		require.False(t, p.Empty())
	}
	require.True(t, p.Full())
	require.Equal(t, p.Capacity(), p.Size())

	p.Free(ptrs[len(ptrs)-1])
	require.False(t, p.Full())
	require.Equal(t, p.Capacity()-1, p.Size())
}

func Test_Alloc_PointersStayInStorage(t *testing.T) {
	p, err := New[float64](8000)
	require.NoError(t, err)

	base := uintptr(p.base)
	for i := 0; i < p.Capacity(); i++ {
		ptr, err := p.Alloc(float64(i))
		require.NoError(t, err)

		addr := uintptr(unsafe.Pointer(ptr))
		require.GreaterOrEqual(t, addr, base)
		require.Less(t, addr, base+uintptr(p.StorageBytes()))
		require.Zero(t, (addr-base)%uintptr(p.lo.SlotSize))
	}

	_, err = p.Alloc(0)
	require.ErrorIs(t, err, ErrExhausted)
}

func Test_Alloc_AfterFreeSucceedsAgain(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	ptrs := make([]*float64, 0, p.Capacity())
	for !p.Full() {
		ptr, err := p.Alloc(1.0)
		require.NoError(t, err)
		ptrs = append(ptrs, ptr)
	}

	_, err = p.Alloc(2.0)
	require.ErrorIs(t, err, ErrExhausted)

	p.Free(ptrs[len(ptrs)-1])
	ptr, err := p.Alloc(3.0)
	require.NoError(t, err)
	require.Equal(t, 3.0, *ptr)
}

func Test_DataIntegrity_FillAndReadBack(t *testing.T) {
	p, err := New[int32](300)
	require.NoError(t, err)

	ptrs := make([]*int32, p.Capacity())
	for i := range ptrs {
		ptr, err := p.Alloc(int32(i * 7))
		require.NoError(t, err)
		ptrs[i] = ptr
	}
	for i, ptr := range ptrs {
		require.Equal(t, int32(i*7), *ptr)
	}
}

// Test_ReuseAfterRelease walks the exact alloc/free interleaving of the
// reuse scenario: surviving elements keep their values while freed slots
// are recycled around them.
func Test_ReuseAfterRelease(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	d0, err := p.Alloc(0.0)
	require.NoError(t, err)
	d1, err := p.Alloc(1.0)
	require.NoError(t, err)
	d2, err := p.Alloc(2.0)
	require.NoError(t, err)
	dm1, err := p.Alloc(-1.0)
	require.NoError(t, err)
	dm2, err := p.Alloc(-2.0)
	require.NoError(t, err)
	dm3, err := p.Alloc(-3.0)
	require.NoError(t, err)

	p.Free(dm1)
	p.Free(dm2)

	d3, err := p.Alloc(3.0)
	require.NoError(t, err)

	p.Free(dm3)

	dm4, err := p.Alloc(-4.0)
	require.NoError(t, err)
	p.Free(dm4)

	require.Equal(t, 0.0, *d0)
	require.Equal(t, 1.0, *d1)
	require.Equal(t, 2.0, *d2)
	require.Equal(t, 3.0, *d3)
	require.Equal(t, 4, p.Size())
}

func Test_GetIndex_RoundTrip(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	for i := p.lo.HeaderSlots; i < p.lo.SlotCount; i++ {
		ptr := p.Get(Index(i))
		require.Equal(t, Index(i), p.Index(ptr))
		require.Equal(t, ptr, p.Get(p.Index(ptr)))
	}
}

func Test_Get_PanicsOutOfRange(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	require.Panics(t, func() { p.Get(0) }, "header slot")
	require.Panics(t, func() { p.Get(Index(p.lo.SlotCount)) })
}

func Test_Index_PanicsOnForeignPointer(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	var local float64
	require.Panics(t, func() { p.Index(&local) })
	require.Panics(t, func() { p.Free(nil) })
}

func Test_Index_PanicsOnMisalignedPointer(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	crooked := (*float64)(unsafe.Add(p.base, p.lo.SlotSize+4))
	require.Panics(t, func() { p.Index(crooked) })
}

func Test_Clear_ResetsPool(t *testing.T) {
	p, err := New[float64](800)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := p.Alloc(float64(i))
		require.NoError(t, err)
	}
	require.Equal(t, 10, p.Size())

	p.Clear()
	require.True(t, p.Empty())
	require.Equal(t, p.lo.HeaderSlots, p.Stats().Frontier)

	// Fully usable again.
	for !p.Full() {
		_, err := p.Alloc(1.0)
		require.NoError(t, err)
	}
	require.Equal(t, p.Capacity(), p.Size())
}

func Test_Close_LeavesPoolEmpty(t *testing.T) {
	p, err := New[int32](100)
	require.NoError(t, err)

	_, err = p.Alloc(1)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.True(t, p.Empty())
}

func Test_WithLockedMemory(t *testing.T) {
	p, err := New[float64](4096, WithLockedMemory[float64]())
	if err != nil {
		// RLIMIT_MEMLOCK or an unsupported platform; construction must
		// fail cleanly rather than hand out unpinned storage.
		t.Skipf("locked memory unavailable: %v", err)
	}
	ptr, err := p.Alloc(1.5)
	require.NoError(t, err)
	require.Equal(t, 1.5, *ptr)
	require.NoError(t, p.Close())
}
