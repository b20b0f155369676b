package dbi

import "encoding/binary"

// HeaderSize is the fixed size, in bytes, of the DBI stream header.
const HeaderSize = 0x40

// VersionSignature is the sentinel stored in every modern DBI header's
// VersionSignature field.
const VersionSignature = -1

// DBI header field offsets, matching the on-disk layout exactly: no padding
// is implicit, so every offset here is load-bearing.
const (
	offVersionSignature      = 0x00
	offVersionHeader         = 0x04
	offAge                   = 0x08
	offGlobalStreamIndex     = 0x0C
	offBuildNumber           = 0x0E
	offPublicStreamIndex     = 0x10
	offPdbDllVersion         = 0x12
	offSymRecordStream       = 0x14
	offPdbDllRbld            = 0x16
	offModInfoSize           = 0x18
	offSectionContribSize    = 0x1C
	offSectionMapSize        = 0x20
	offSourceInfoSize        = 0x24
	offTypeServerMapSize     = 0x28
	offMFCTypeServerIndex    = 0x2C
	offOptionalDbgHeaderSize = 0x30
	offECSubstreamSize       = 0x34
	offFlags                 = 0x38
	offMachine               = 0x3A
	offPadding               = 0x3C
)

// HeaderOverlay is a read-only typed view over a DBI stream's HeaderSize-byte
// header.
type HeaderOverlay struct {
	data []byte
}

// NewHeaderOverlay borrows the first HeaderSize bytes of data.
func NewHeaderOverlay(data []byte) (*HeaderOverlay, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncatedHeader
	}
	return &HeaderOverlay{data: data[:HeaderSize]}, nil
}

func (h *HeaderOverlay) VersionSignature() int32 {
	return int32(binary.LittleEndian.Uint32(h.data[offVersionSignature:]))
}

func (h *HeaderOverlay) VersionHeader() uint32 {
	return binary.LittleEndian.Uint32(h.data[offVersionHeader:])
}

func (h *HeaderOverlay) Age() uint32 { return binary.LittleEndian.Uint32(h.data[offAge:]) }

func (h *HeaderOverlay) GlobalStreamIndex() uint16 {
	return binary.LittleEndian.Uint16(h.data[offGlobalStreamIndex:])
}

func (h *HeaderOverlay) BuildNumber() uint16 {
	return binary.LittleEndian.Uint16(h.data[offBuildNumber:])
}

func (h *HeaderOverlay) PublicStreamIndex() uint16 {
	return binary.LittleEndian.Uint16(h.data[offPublicStreamIndex:])
}

func (h *HeaderOverlay) PdbDllVersion() uint16 {
	return binary.LittleEndian.Uint16(h.data[offPdbDllVersion:])
}

func (h *HeaderOverlay) SymRecordStream() uint16 {
	return binary.LittleEndian.Uint16(h.data[offSymRecordStream:])
}

func (h *HeaderOverlay) PdbDllRbld() uint16 {
	return binary.LittleEndian.Uint16(h.data[offPdbDllRbld:])
}

func (h *HeaderOverlay) ModInfoSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offModInfoSize:])
}

func (h *HeaderOverlay) SectionContributionSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offSectionContribSize:])
}

func (h *HeaderOverlay) SectionMapSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offSectionMapSize:])
}

func (h *HeaderOverlay) SourceInfoSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offSourceInfoSize:])
}

func (h *HeaderOverlay) TypeServerMapSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offTypeServerMapSize:])
}

func (h *HeaderOverlay) MFCTypeServerIndex() uint32 {
	return binary.LittleEndian.Uint32(h.data[offMFCTypeServerIndex:])
}

func (h *HeaderOverlay) OptionalDebugHeaderSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offOptionalDbgHeaderSize:])
}

func (h *HeaderOverlay) ECSubstreamSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offECSubstreamSize:])
}

func (h *HeaderOverlay) Flags() uint16 { return binary.LittleEndian.Uint16(h.data[offFlags:]) }

func (h *HeaderOverlay) Machine() uint16 { return binary.LittleEndian.Uint16(h.data[offMachine:]) }

// HasValidVersionSignature reports whether VersionSignature equals the
// well-known sentinel every modern DBI header carries.
func (h *HeaderOverlay) HasValidVersionSignature() bool {
	return h.VersionSignature() == VersionSignature
}

// SubstreamOffsets returns the byte offsets, relative to the start of the
// DBI stream, of each variable-length substream that follows the header, in
// on-disk order: module info, section contributions, section map, source
// info, type server map, EC substream, optional debug header.
func (h *HeaderOverlay) SubstreamOffsets() (modInfo, sectionContrib, sectionMap, sourceInfo, typeServerMap, ecSubstream, optionalDbg uint32) {
	modInfo = HeaderSize
	sectionContrib = modInfo + h.ModInfoSize()
	sectionMap = sectionContrib + h.SectionContributionSize()
	sourceInfo = sectionMap + h.SectionMapSize()
	typeServerMap = sourceInfo + h.SourceInfoSize()
	ecSubstream = typeServerMap + h.TypeServerMapSize()
	optionalDbg = ecSubstream + h.ECSubstreamSize()
	return
}

// HeaderOverlayMut is the mutable sibling of HeaderOverlay.
type HeaderOverlayMut struct {
	data []byte
}

// NewHeaderOverlayMut borrows the first HeaderSize bytes of data.
func NewHeaderOverlayMut(data []byte) (*HeaderOverlayMut, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncatedHeader
	}
	return &HeaderOverlayMut{data: data[:HeaderSize]}, nil
}

func (h *HeaderOverlayMut) VersionSignature() int32 {
	return int32(binary.LittleEndian.Uint32(h.data[offVersionSignature:]))
}

func (h *HeaderOverlayMut) ModInfoSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offModInfoSize:])
}

func (h *HeaderOverlayMut) SectionContributionSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offSectionContribSize:])
}

func (h *HeaderOverlayMut) SectionMapSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offSectionMapSize:])
}

func (h *HeaderOverlayMut) SetSectionMapSize(v uint32) {
	binary.LittleEndian.PutUint32(h.data[offSectionMapSize:], v)
}

func (h *HeaderOverlayMut) SourceInfoSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offSourceInfoSize:])
}

func (h *HeaderOverlayMut) TypeServerMapSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offTypeServerMapSize:])
}

func (h *HeaderOverlayMut) ECSubstreamSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offECSubstreamSize:])
}

func (h *HeaderOverlayMut) OptionalDebugHeaderSize() uint32 {
	return binary.LittleEndian.Uint32(h.data[offOptionalDbgHeaderSize:])
}

// SetOptionalDebugHeaderSize updates the header's declared optional debug
// header substream size. Adding a new extra-stream slot (see ExtraStreamsMut)
// does not do this automatically — callers that grow the substream must call
// this explicitly, per the open question this module resolves in DESIGN.md.
func (h *HeaderOverlayMut) SetOptionalDebugHeaderSize(v uint32) {
	binary.LittleEndian.PutUint32(h.data[offOptionalDbgHeaderSize:], v)
}

// SubstreamOffsets mirrors HeaderOverlay.SubstreamOffsets.
func (h *HeaderOverlayMut) SubstreamOffsets() (modInfo, sectionContrib, sectionMap, sourceInfo, typeServerMap, ecSubstream, optionalDbg uint32) {
	modInfo = HeaderSize
	sectionContrib = modInfo + h.ModInfoSize()
	sectionMap = sectionContrib + h.SectionContributionSize()
	sourceInfo = sectionMap + h.SectionMapSize()
	typeServerMap = sourceInfo + h.SourceInfoSize()
	ecSubstream = typeServerMap + h.TypeServerMapSize()
	optionalDbg = ecSubstream + h.ECSubstreamSize()
	return
}
