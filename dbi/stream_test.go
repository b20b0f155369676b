package dbi

import (
	"encoding/binary"
	"testing"

	"github.com/pdbtools/msfrewrite/msf"
	"github.com/stretchr/testify/require"
)

func makeDBIStreamBytes() []byte {
	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[offVersionSignature:], uint32(int32(VersionSignature)))
	binary.LittleEndian.PutUint32(header[offModInfoSize:], 100)
	binary.LittleEndian.PutUint32(header[offSectionContribSize:], 200)
	binary.LittleEndian.PutUint32(header[offSectionMapSize:], 8)
	// source info, type server map, and EC substream are all empty so the
	// extra-stream substream immediately follows the section map.

	sectionMapOff := HeaderSize + 100 + 200
	data := make([]byte, sectionMapOff+8+22)
	copy(data, header)

	// section map: a nonzero count/logcount to later be nopped
	binary.LittleEndian.PutUint16(data[sectionMapOff:], 5)
	binary.LittleEndian.PutUint16(data[sectionMapOff+2:], 5)

	extrasOff := sectionMapOff + 8
	for i := 0; i < 11; i++ {
		binary.LittleEndian.PutUint16(data[extrasOff+i*2:], 0xFFFF)
	}
	return data
}

func TestDBIStreamNopSectionMaps(t *testing.T) {
	data := makeDBIStreamBytes()
	raw := &msf.Stream{Size: uint32(len(data)), View: msf.SourceView{Bytes: data}}
	s := NewStream(raw)

	require.NoError(t, s.NopSectionMaps())

	h, err := s.Header()
	require.NoError(t, err)
	_, _, sectionMapOff, _, _, _, _ := h.SubstreamOffsets()
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[sectionMapOff:]))
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[sectionMapOff+2:]))
}

func TestDBIStreamModules(t *testing.T) {
	modRecord := encodeModuleRecord(0, 9, "foo.obj", "/src/foo.obj")

	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[offVersionSignature:], uint32(int32(VersionSignature)))
	binary.LittleEndian.PutUint32(header[offModInfoSize:], uint32(len(modRecord)))

	data := make([]byte, HeaderSize+len(modRecord))
	copy(data, header)
	copy(data[HeaderSize:], modRecord)

	raw := &msf.Stream{Size: uint32(len(data)), View: msf.SourceView{Bytes: data}}
	s := NewStream(raw)

	mods, err := s.Modules()
	require.NoError(t, err)
	require.Len(t, mods, 1)
	require.Equal(t, "foo.obj", mods[0].ModuleName)
	require.Equal(t, uint16(9), mods[0].ModuleSymStream)
}

func TestDBIStreamExtraStreams(t *testing.T) {
	data := makeDBIStreamBytes()
	raw := &msf.Stream{Size: uint32(len(data)), View: msf.SourceView{Bytes: data}}
	s := NewStream(raw)

	extras, err := s.ExtraStreams()
	require.NoError(t, err)
	require.Equal(t, uint16(0xFFFF), extras.OmapToSrc())

	mut, err := s.ExtraStreamsMut()
	require.NoError(t, err)
	mut.SetOmapToSrc(7)
	mut.SetOmapFromSrc(8)

	extras, err = s.ExtraStreams()
	require.NoError(t, err)
	require.Equal(t, uint16(7), extras.OmapToSrc())
	require.Equal(t, uint16(8), extras.OmapFromSrc())
}
