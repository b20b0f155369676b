package pdb

import (
	"encoding/binary"
	"testing"

	"github.com/pdbtools/msfrewrite/dbi"
	"github.com/pdbtools/msfrewrite/msf"
	"github.com/stretchr/testify/require"
)

// buildSyntheticPDB assembles a minimal but well-formed PDB byte buffer by
// hand: a PDB Info stream (index 1) and a DBI stream (index 3) with an empty
// extra-stream (optional debug header) substream, each on its own page.
func buildSyntheticPDB(t *testing.T) []byte {
	t.Helper()
	const pageSize = 512

	// PDB Info stream: version, signature, age, 16-byte GUID.
	info := make([]byte, pdbInfoHeaderSize)
	binary.LittleEndian.PutUint32(info[0:], 20000404)
	binary.LittleEndian.PutUint32(info[4:], 0xCAFEBABE)
	binary.LittleEndian.PutUint32(info[8:], 7)
	copy(info[12:28], []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06,
		0x07, 0x08,
		0x09, 0x0A,
		0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	})

	// DBI stream: header with every substream size zero, so the extra
	// streams substream immediately follows the header, plus the 22-byte
	// extra streams substream itself, all slots set to "no stream".
	dbiBytes := make([]byte, dbi.HeaderSize+dbi.ExtraStreamSize)
	binary.LittleEndian.PutUint32(dbiBytes[0:], uint32(int32(dbi.VersionSignature)))
	binary.LittleEndian.PutUint32(dbiBytes[0x08:], 42)  // Age
	binary.LittleEndian.PutUint16(dbiBytes[0x3A:], 0x8664) // Machine
	extrasOff := dbi.HeaderSize
	for i := 0; i < 11; i++ {
		binary.LittleEndian.PutUint16(dbiBytes[extrasOff+i*2:], 0xFFFF)
	}

	streamBytes := [][]byte{
		nil,      // stream 0: old directory, unused
		info,     // stream 1: PDB Info
		nil,      // stream 2: TPI, unused in this test
		dbiBytes, // stream 3: DBI
	}
	streamPages := []uint32{0, 3, 0, 4}

	dir := make([]byte, 0)
	dir = binary.LittleEndian.AppendUint32(dir, uint32(len(streamBytes)))
	for _, b := range streamBytes {
		if b == nil {
			dir = binary.LittleEndian.AppendUint32(dir, 0xFFFFFFFF)
		} else {
			dir = binary.LittleEndian.AppendUint32(dir, uint32(len(b)))
		}
	}
	for i, b := range streamBytes {
		if b == nil {
			continue
		}
		dir = binary.LittleEndian.AppendUint32(dir, streamPages[i])
	}

	data := make([]byte, pageSize*5)

	var magic [32]byte
	copy(magic[:], []byte("Microsoft C/C++ MSF 7.00\r\n\x1a\x44\x53\x00\x00\x00"))
	binary.LittleEndian.PutUint32(data[0x20:], pageSize)
	binary.LittleEndian.PutUint32(data[0x28:], 5) // NumPages
	binary.LittleEndian.PutUint32(data[0x2C:], uint32(len(dir)))
	binary.LittleEndian.PutUint32(data[0x34:], 1) // StreamBlockMap -> page 1
	copy(data[0x00:], magic[:])

	binary.LittleEndian.PutUint32(data[1*pageSize:], 2) // block map -> directory on page 2
	copy(data[2*pageSize:], dir)
	for i, b := range streamBytes {
		if b == nil {
			continue
		}
		copy(data[streamPages[i]*pageSize:], b)
	}

	return data
}

func TestOpenBytesAndInfo(t *testing.T) {
	data := buildSyntheticPDB(t)

	f, err := OpenBytes(data)
	require.NoError(t, err)

	info := f.Info()
	require.Equal(t, uint32(20000404), info.Version)
	require.Equal(t, uint32(0xCAFEBABE), info.Signature)
	require.Equal(t, uint32(7), info.Age)
	require.Equal(t, "04030201-0605-0807-090A-0B0C0D0E0F10", info.GUIDString())

	blockSize, err := f.BlockSize()
	require.NoError(t, err)
	require.Equal(t, uint32(512), blockSize)

	require.Equal(t, uint32(4), f.NumStreams())

	header, err := f.DBI().Header()
	require.NoError(t, err)
	require.Equal(t, uint32(42), header.Age())
	require.Equal(t, uint16(0x8664), header.Machine())
}

func TestCommitRoundTrip(t *testing.T) {
	data := buildSyntheticPDB(t)

	f, err := OpenBytes(data)
	require.NoError(t, err)

	dir := f.StreamDirectory()
	idx := dir.Push(msf.Stream{
		Size: 5,
		View: msf.SourceView{Bytes: []byte("hello"), Pages: msf.NewPageList(512)},
	})

	out, err := f.Commit(dir)
	require.NoError(t, err)

	reopened, err := OpenBytes(out)
	require.NoError(t, err)
	require.Equal(t, uint32(5), reopened.NumStreams())

	s, err := reopened.container.GetStream(idx)
	require.NoError(t, err)
	require.Equal(t, "hello", string(s.View.Bytes))
}
