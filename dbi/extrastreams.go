package dbi

import "encoding/binary"

// ExtraStreamSize is the fixed size, in bytes, of the optional debug header
// substream: eleven stream indices, each InvalidStreamIndex (0xFFFF) when
// unused.
const ExtraStreamSize = 0x16

// Extra-stream field offsets, each a 2-byte stream index.
const (
	offFPOData                = 0x00
	offExceptionData          = 0x02
	offFixupData              = 0x04
	offOmapToSrc              = 0x06
	offOmapFromSrc            = 0x08
	offSectionHeaders         = 0x0A
	offUnknown1               = 0x0C
	offXData                  = 0x0E
	offPData                  = 0x10
	offFPO2Data               = 0x12
	offOriginalSectionHeaders = 0x14
)

// ExtraStreamOverlay is a read-only typed view over the DBI optional debug
// header substream.
type ExtraStreamOverlay struct {
	data []byte
}

// NewExtraStreamOverlay borrows the first ExtraStreamSize bytes of data.
func NewExtraStreamOverlay(data []byte) (*ExtraStreamOverlay, error) {
	if len(data) < ExtraStreamSize {
		return nil, ErrTruncatedExtraStreams
	}
	return &ExtraStreamOverlay{data: data[:ExtraStreamSize]}, nil
}

func (e *ExtraStreamOverlay) FPOData() uint16    { return binary.LittleEndian.Uint16(e.data[offFPOData:]) }
func (e *ExtraStreamOverlay) ExceptionData() uint16 {
	return binary.LittleEndian.Uint16(e.data[offExceptionData:])
}
func (e *ExtraStreamOverlay) FixupData() uint16 {
	return binary.LittleEndian.Uint16(e.data[offFixupData:])
}
func (e *ExtraStreamOverlay) OmapToSrc() uint16 {
	return binary.LittleEndian.Uint16(e.data[offOmapToSrc:])
}
func (e *ExtraStreamOverlay) OmapFromSrc() uint16 {
	return binary.LittleEndian.Uint16(e.data[offOmapFromSrc:])
}
func (e *ExtraStreamOverlay) SectionHeaders() uint16 {
	return binary.LittleEndian.Uint16(e.data[offSectionHeaders:])
}
func (e *ExtraStreamOverlay) Unknown1() uint16 {
	return binary.LittleEndian.Uint16(e.data[offUnknown1:])
}
func (e *ExtraStreamOverlay) XData() uint16 { return binary.LittleEndian.Uint16(e.data[offXData:]) }
func (e *ExtraStreamOverlay) PData() uint16 { return binary.LittleEndian.Uint16(e.data[offPData:]) }
func (e *ExtraStreamOverlay) FPO2Data() uint16 {
	return binary.LittleEndian.Uint16(e.data[offFPO2Data:])
}
func (e *ExtraStreamOverlay) OriginalSectionHeaders() uint16 {
	return binary.LittleEndian.Uint16(e.data[offOriginalSectionHeaders:])
}

// ExtraStreamOverlayMut is the mutable sibling of ExtraStreamOverlay. Every
// field defaults to InvalidStreamIndex (0xFFFF) in a freshly zeroed DBI
// stream buffer only if Zero is called first — a raw zeroed buffer instead
// reads as stream index 0, which is StreamOldDirectory, so callers creating
// a fresh optional debug header from scratch must set every slot explicitly.
type ExtraStreamOverlayMut struct {
	data []byte
}

// NewExtraStreamOverlayMut borrows the first ExtraStreamSize bytes of data.
func NewExtraStreamOverlayMut(data []byte) (*ExtraStreamOverlayMut, error) {
	if len(data) < ExtraStreamSize {
		return nil, ErrTruncatedExtraStreams
	}
	return &ExtraStreamOverlayMut{data: data[:ExtraStreamSize]}, nil
}

func (e *ExtraStreamOverlayMut) FPOData() uint16 {
	return binary.LittleEndian.Uint16(e.data[offFPOData:])
}
func (e *ExtraStreamOverlayMut) SetFPOData(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offFPOData:], v)
}

func (e *ExtraStreamOverlayMut) ExceptionData() uint16 {
	return binary.LittleEndian.Uint16(e.data[offExceptionData:])
}
func (e *ExtraStreamOverlayMut) SetExceptionData(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offExceptionData:], v)
}

func (e *ExtraStreamOverlayMut) FixupData() uint16 {
	return binary.LittleEndian.Uint16(e.data[offFixupData:])
}
func (e *ExtraStreamOverlayMut) SetFixupData(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offFixupData:], v)
}

func (e *ExtraStreamOverlayMut) OmapToSrc() uint16 {
	return binary.LittleEndian.Uint16(e.data[offOmapToSrc:])
}
func (e *ExtraStreamOverlayMut) SetOmapToSrc(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offOmapToSrc:], v)
}

func (e *ExtraStreamOverlayMut) OmapFromSrc() uint16 {
	return binary.LittleEndian.Uint16(e.data[offOmapFromSrc:])
}
func (e *ExtraStreamOverlayMut) SetOmapFromSrc(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offOmapFromSrc:], v)
}

func (e *ExtraStreamOverlayMut) SectionHeaders() uint16 {
	return binary.LittleEndian.Uint16(e.data[offSectionHeaders:])
}
func (e *ExtraStreamOverlayMut) SetSectionHeaders(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offSectionHeaders:], v)
}

func (e *ExtraStreamOverlayMut) Unknown1() uint16 {
	return binary.LittleEndian.Uint16(e.data[offUnknown1:])
}
func (e *ExtraStreamOverlayMut) SetUnknown1(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offUnknown1:], v)
}

func (e *ExtraStreamOverlayMut) XData() uint16 { return binary.LittleEndian.Uint16(e.data[offXData:]) }
func (e *ExtraStreamOverlayMut) SetXData(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offXData:], v)
}

func (e *ExtraStreamOverlayMut) PData() uint16 { return binary.LittleEndian.Uint16(e.data[offPData:]) }
func (e *ExtraStreamOverlayMut) SetPData(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offPData:], v)
}

func (e *ExtraStreamOverlayMut) FPO2Data() uint16 {
	return binary.LittleEndian.Uint16(e.data[offFPO2Data:])
}
func (e *ExtraStreamOverlayMut) SetFPO2Data(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offFPO2Data:], v)
}

func (e *ExtraStreamOverlayMut) OriginalSectionHeaders() uint16 {
	return binary.LittleEndian.Uint16(e.data[offOriginalSectionHeaders:])
}
func (e *ExtraStreamOverlayMut) SetOriginalSectionHeaders(v uint16) {
	binary.LittleEndian.PutUint16(e.data[offOriginalSectionHeaders:], v)
}

// Zero sets every slot to InvalidStreamIndex, the correct empty state for a
// freshly allocated optional debug header substream.
func (e *ExtraStreamOverlayMut) Zero() {
	for off := 0; off+2 <= len(e.data); off += 2 {
		binary.LittleEndian.PutUint16(e.data[off:], 0xFFFF)
	}
}
