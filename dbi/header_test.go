package dbi

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeHeaderBytes() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[offVersionSignature:], uint32(int32(VersionSignature)))
	binary.LittleEndian.PutUint32(buf[offAge:], 3)
	binary.LittleEndian.PutUint32(buf[offModInfoSize:], 100)
	binary.LittleEndian.PutUint32(buf[offSectionContribSize:], 200)
	binary.LittleEndian.PutUint32(buf[offSectionMapSize:], 8)
	binary.LittleEndian.PutUint32(buf[offSourceInfoSize:], 16)
	binary.LittleEndian.PutUint32(buf[offTypeServerMapSize:], 0)
	binary.LittleEndian.PutUint32(buf[offECSubstreamSize:], 0)
	binary.LittleEndian.PutUint16(buf[offMachine:], 0x8664)
	return buf
}

func TestHeaderOverlayFields(t *testing.T) {
	buf := makeHeaderBytes()
	h, err := NewHeaderOverlay(buf)
	require.NoError(t, err)

	require.True(t, h.HasValidVersionSignature())
	require.Equal(t, uint32(3), h.Age())
	require.Equal(t, uint32(100), h.ModInfoSize())
	require.Equal(t, uint32(200), h.SectionContributionSize())
	require.Equal(t, uint32(8), h.SectionMapSize())
	require.Equal(t, uint16(0x8664), h.Machine())
}

func TestHeaderOverlaySubstreamOffsets(t *testing.T) {
	buf := makeHeaderBytes()
	h, err := NewHeaderOverlay(buf)
	require.NoError(t, err)

	modInfo, sectionContrib, sectionMap, sourceInfo, typeServerMap, ecSubstream, optionalDbg := h.SubstreamOffsets()
	require.Equal(t, uint32(HeaderSize), modInfo)
	require.Equal(t, uint32(HeaderSize+100), sectionContrib)
	require.Equal(t, uint32(HeaderSize+100+200), sectionMap)
	require.Equal(t, uint32(HeaderSize+100+200+8), sourceInfo)
	require.Equal(t, uint32(HeaderSize+100+200+8+16), typeServerMap)
	require.Equal(t, typeServerMap, ecSubstream)
	require.Equal(t, ecSubstream, optionalDbg)
}

func TestHeaderOverlayTruncated(t *testing.T) {
	_, err := NewHeaderOverlay(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrTruncatedHeader)
}

func TestHeaderOverlayMutRoundTrip(t *testing.T) {
	buf := makeHeaderBytes()
	mut, err := NewHeaderOverlayMut(buf)
	require.NoError(t, err)

	mut.SetSectionMapSize(0)
	require.Equal(t, uint32(0), mut.SectionMapSize())

	mut.SetOptionalDebugHeaderSize(22)
	require.Equal(t, uint32(22), mut.OptionalDebugHeaderSize())
}
