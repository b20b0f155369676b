package msf

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamReaderReadAndSeek(t *testing.T) {
	s := &Stream{Size: 5, View: SourceView{Bytes: []byte("hello")}}
	r := NewStreamReader(s)

	require.Equal(t, uint32(5), r.Size())
	require.Equal(t, uint32(5), r.Remaining())

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "hel", string(buf))
	require.Equal(t, uint32(3), r.Position())
	require.Equal(t, uint32(2), r.Remaining())

	n, err = r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "lo", string(buf[:n]))

	_, err = r.Read(buf)
	require.ErrorIs(t, err, io.EOF)

	r.Reset()
	require.Equal(t, uint32(0), r.Position())

	pos, err := r.Seek(2, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(2), pos)

	out := make([]byte, 3)
	n, err = r.ReadAt(out, 1)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "ell", string(out))
}
