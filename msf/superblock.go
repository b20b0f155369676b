package msf

import "encoding/binary"

// Magic is the fixed 32-byte MSF 7.0 signature that opens every PDB file.
const Magic = "Microsoft C/C++ MSF 7.00\r\n\x1a\x44\x53\x00\x00\x00"

// SuperBlockSize is the minimum size, in bytes, of the superblock overlay.
const SuperBlockSize = 56

// ValidPageSizes are the page sizes the MSF format allows.
var ValidPageSizes = [4]uint32{512, 1024, 2048, 4096}

// Superblock field offsets, packed with no implicit padding.
const (
	offMagic         = 0x00
	offPageSize      = 0x20
	offFreePageMap   = 0x24
	offNumPages      = 0x28
	offStreamDirSize = 0x2C
	offUnknown       = 0x30
	offStreamBlkMap  = 0x34
)

// SuperBlockOverlay is a read-only typed view over the first SuperBlockSize
// bytes of an MSF container. It borrows its backing slice; it never copies.
type SuperBlockOverlay struct {
	data []byte
}

// NewSuperBlockOverlay borrows the first SuperBlockSize bytes of data.
// It returns ErrShortSlice if data is too small; it does not validate magic.
func NewSuperBlockOverlay(data []byte) (*SuperBlockOverlay, error) {
	if len(data) < SuperBlockSize {
		return nil, ErrShortSlice
	}
	return &SuperBlockOverlay{data: data[:SuperBlockSize]}, nil
}

// Size returns the overlay's minimum size in bytes.
func (*SuperBlockOverlay) Size() int { return SuperBlockSize }

func (o *SuperBlockOverlay) Magic() [32]byte {
	var m [32]byte
	copy(m[:], o.data[offMagic:offMagic+32])
	return m
}

func (o *SuperBlockOverlay) PageSize() uint32 {
	return binary.LittleEndian.Uint32(o.data[offPageSize:])
}

func (o *SuperBlockOverlay) FreePageMap() uint32 {
	return binary.LittleEndian.Uint32(o.data[offFreePageMap:])
}

func (o *SuperBlockOverlay) NumPages() uint32 {
	return binary.LittleEndian.Uint32(o.data[offNumPages:])
}

func (o *SuperBlockOverlay) StreamDirSize() uint32 {
	return binary.LittleEndian.Uint32(o.data[offStreamDirSize:])
}

func (o *SuperBlockOverlay) Unknown() uint32 {
	return binary.LittleEndian.Uint32(o.data[offUnknown:])
}

func (o *SuperBlockOverlay) StreamBlockMap() uint32 {
	return binary.LittleEndian.Uint32(o.data[offStreamBlkMap:])
}

// PagesNeededToStore returns ceil(n / PageSize()).
func (o *SuperBlockOverlay) PagesNeededToStore(n uint32) uint32 {
	ps := o.PageSize()
	return (n + ps - 1) / ps
}

// StreamBlockMapOffset returns the byte offset of the stream-block-map page.
func (o *SuperBlockOverlay) StreamBlockMapOffset() uint32 {
	return o.StreamBlockMap() * o.PageSize()
}

// HasValidMagic reports whether the overlay's magic matches the MSF 7.0
// signature exactly.
func (o *SuperBlockOverlay) HasValidMagic() bool {
	m := o.Magic()
	return string(m[:]) == Magic
}

// SuperBlockOverlayMut is the mutable sibling of SuperBlockOverlay: it
// borrows a mutable byte range and offers setters alongside the getters.
type SuperBlockOverlayMut struct {
	data []byte
}

// NewSuperBlockOverlayMut borrows the first SuperBlockSize bytes of data.
func NewSuperBlockOverlayMut(data []byte) (*SuperBlockOverlayMut, error) {
	if len(data) < SuperBlockSize {
		return nil, ErrShortSlice
	}
	return &SuperBlockOverlayMut{data: data[:SuperBlockSize]}, nil
}

// Size returns the overlay's minimum size in bytes.
func (*SuperBlockOverlayMut) Size() int { return SuperBlockSize }

// Zero clears every byte of the overlay's backing slice.
func (o *SuperBlockOverlayMut) Zero() {
	for i := range o.data {
		o.data[i] = 0
	}
}

func (o *SuperBlockOverlayMut) Magic() [32]byte {
	var m [32]byte
	copy(m[:], o.data[offMagic:offMagic+32])
	return m
}

func (o *SuperBlockOverlayMut) SetMagic(m [32]byte) {
	copy(o.data[offMagic:offMagic+32], m[:])
}

func (o *SuperBlockOverlayMut) PageSize() uint32 {
	return binary.LittleEndian.Uint32(o.data[offPageSize:])
}

func (o *SuperBlockOverlayMut) SetPageSize(v uint32) {
	binary.LittleEndian.PutUint32(o.data[offPageSize:], v)
}

func (o *SuperBlockOverlayMut) FreePageMap() uint32 {
	return binary.LittleEndian.Uint32(o.data[offFreePageMap:])
}

func (o *SuperBlockOverlayMut) SetFreePageMap(v uint32) {
	binary.LittleEndian.PutUint32(o.data[offFreePageMap:], v)
}

func (o *SuperBlockOverlayMut) NumPages() uint32 {
	return binary.LittleEndian.Uint32(o.data[offNumPages:])
}

func (o *SuperBlockOverlayMut) SetNumPages(v uint32) {
	binary.LittleEndian.PutUint32(o.data[offNumPages:], v)
}

func (o *SuperBlockOverlayMut) StreamDirSize() uint32 {
	return binary.LittleEndian.Uint32(o.data[offStreamDirSize:])
}

func (o *SuperBlockOverlayMut) SetStreamDirSize(v uint32) {
	binary.LittleEndian.PutUint32(o.data[offStreamDirSize:], v)
}

func (o *SuperBlockOverlayMut) Unknown() uint32 {
	return binary.LittleEndian.Uint32(o.data[offUnknown:])
}

func (o *SuperBlockOverlayMut) SetUnknown(v uint32) {
	binary.LittleEndian.PutUint32(o.data[offUnknown:], v)
}

func (o *SuperBlockOverlayMut) StreamBlockMap() uint32 {
	return binary.LittleEndian.Uint32(o.data[offStreamBlkMap:])
}

func (o *SuperBlockOverlayMut) SetStreamBlockMap(v uint32) {
	binary.LittleEndian.PutUint32(o.data[offStreamBlkMap:], v)
}

// PagesNeededToStore returns ceil(n / PageSize()).
func (o *SuperBlockOverlayMut) PagesNeededToStore(n uint32) uint32 {
	ps := o.PageSize()
	return (n + ps - 1) / ps
}

// StreamBlockMapOffset returns the byte offset of the stream-block-map page.
func (o *SuperBlockOverlayMut) StreamBlockMapOffset() uint32 {
	return o.StreamBlockMap() * o.PageSize()
}

// CopyFrom copies another mutable overlay's bytes wholesale; used by the
// header-clone pattern during directory flush (see Container.SetStreamDirectory).
func (o *SuperBlockOverlayMut) CopyFrom(src *SuperBlockOverlayMut) {
	copy(o.data, src.data)
}

// IsValidPageSize reports whether size is one of the four MSF page sizes.
func IsValidPageSize(size uint32) bool {
	for _, v := range ValidPageSizes {
		if size == v {
			return true
		}
	}
	return false
}
