package msf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeSuperBlockBytes() []byte {
	buf := make([]byte, SuperBlockSize)
	copy(buf, []byte(Magic))
	return buf
}

func TestSuperBlockOverlayRoundTrip(t *testing.T) {
	buf := makeSuperBlockBytes()
	mut, err := NewSuperBlockOverlayMut(buf)
	require.NoError(t, err)

	mut.SetPageSize(4096)
	mut.SetFreePageMap(1)
	mut.SetNumPages(100)
	mut.SetStreamDirSize(2048)
	mut.SetStreamBlockMap(42)

	ro, err := NewSuperBlockOverlay(buf)
	require.NoError(t, err)

	require.True(t, ro.HasValidMagic())
	require.Equal(t, uint32(4096), ro.PageSize())
	require.Equal(t, uint32(1), ro.FreePageMap())
	require.Equal(t, uint32(100), ro.NumPages())
	require.Equal(t, uint32(2048), ro.StreamDirSize())
	require.Equal(t, uint32(42), ro.StreamBlockMap())
}

func TestSuperBlockOverlayInvalidMagic(t *testing.T) {
	buf := make([]byte, SuperBlockSize)
	ro, err := NewSuperBlockOverlay(buf)
	require.NoError(t, err)
	require.False(t, ro.HasValidMagic())
}

func TestSuperBlockOverlayShortSlice(t *testing.T) {
	_, err := NewSuperBlockOverlay(make([]byte, SuperBlockSize-1))
	require.ErrorIs(t, err, ErrShortSlice)

	_, err = NewSuperBlockOverlayMut(make([]byte, SuperBlockSize-1))
	require.ErrorIs(t, err, ErrShortSlice)
}

func TestSuperBlockPagesNeededToStore(t *testing.T) {
	buf := makeSuperBlockBytes()
	mut, err := NewSuperBlockOverlayMut(buf)
	require.NoError(t, err)
	mut.SetPageSize(512)

	require.Equal(t, uint32(0), mut.PagesNeededToStore(0))
	require.Equal(t, uint32(1), mut.PagesNeededToStore(1))
	require.Equal(t, uint32(1), mut.PagesNeededToStore(512))
	require.Equal(t, uint32(2), mut.PagesNeededToStore(513))
}

func TestIsValidPageSize(t *testing.T) {
	for _, v := range []uint32{512, 1024, 2048, 4096} {
		require.True(t, IsValidPageSize(v), "page size %d should be valid", v)
	}
	require.False(t, IsValidPageSize(256))
	require.False(t, IsValidPageSize(8192))
}
