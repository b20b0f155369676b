package msf

import "encoding/binary"

// NilStreamSize marks a deleted or never-allocated stream slot.
const NilStreamSize = 0xFFFFFFFF

// InvalidStreamIndex is the sentinel stored in a DBI extra-stream slot (or
// anywhere else a stream reference is optional) to mean "no stream".
const InvalidStreamIndex uint16 = 0xFFFF

// Well-known stream indices.
const (
	StreamOldDirectory = 0 // old MSF directory, unused in PDB 7.0
	StreamPDBInfo      = 1 // PDB Info stream (GUID, age, named streams)
	StreamTPI          = 2 // Type Program Information
	StreamDBI          = 3 // Debug Information
	StreamIPI          = 4 // ID Program Information
)

// StreamIndex identifies a stream slot, with InvalidStreamIndex meaning "no
// stream is assigned to this slot" (e.g. an unset DBI extra-stream entry).
type StreamIndex uint16

// IsValid reports whether the index refers to a real stream rather than the
// sentinel. The original implementation this module is based on inverted
// this sense by mistake; this follows the intended meaning.
func (s StreamIndex) IsValid() bool {
	return uint16(s) != InvalidStreamIndex
}

// Stream is one entry of a StreamDirectory: its declared byte size and a
// gathered view over the pages holding its content. Size may exceed
// View.Pages' rounded capacity only up to one page size, and is always
// len(View.Bytes) once gathered.
type Stream struct {
	Size uint32
	View SourceView
}

// StreamDirectory is the mutable table mapping each stream index to its
// size and page list. It is itself stored in pages reachable through the
// superblock's block map, gathered the same way as any other stream.
type StreamDirectory struct {
	Streams []Stream
}

// ParseStreamDirectory decodes a StreamDirectory from the gathered bytes of
// the directory view. pageSize is needed to know how many PFNs each
// stream's page list occupies.
func ParseStreamDirectory(data []byte, src []byte, pageSize uint32) (*StreamDirectory, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	numStreams := binary.LittleEndian.Uint32(data)
	offset := 4

	sizeBytes := int(numStreams) * 4
	if len(data) < offset+sizeBytes {
		return nil, ErrTruncated
	}
	sizes := make([]uint32, numStreams)
	for i := range sizes {
		sizes[i] = binary.LittleEndian.Uint32(data[offset:])
		offset += 4
	}

	dir := &StreamDirectory{Streams: make([]Stream, numStreams)}
	for i, size := range sizes {
		dir.Streams[i].Size = size
		if size == NilStreamSize {
			continue
		}
		numPages := (size + pageSize - 1) / pageSize
		if numPages == 0 {
			dir.Streams[i].View = SourceView{Pages: NewPageList(pageSize)}
			continue
		}
		pages := NewPageList(pageSize)
		for j := uint32(0); j < numPages; j++ {
			if offset+4 > len(data) {
				return nil, ErrTruncated
			}
			pages.Push(binary.LittleEndian.Uint32(data[offset:]))
			offset += 4
		}
		view, err := GatherWithSize(src, pages, uint64(size))
		if err != nil {
			return nil, err
		}
		dir.Streams[i].View = *view
	}

	return dir, nil
}

// encode serializes the directory's stream count, sizes, and page lists
// into the flat layout the MSF format stores them in.
func (d *StreamDirectory) encode() []byte {
	n := len(d.Streams)
	buf := make([]byte, 4, 4+n*4)
	binary.LittleEndian.PutUint32(buf, uint32(n))
	for _, s := range d.Streams {
		buf = binary.LittleEndian.AppendUint32(buf, s.Size)
	}
	for _, s := range d.Streams {
		if s.Size == NilStreamSize {
			continue
		}
		for _, pfn := range s.View.Pages.PFNs {
			buf = binary.LittleEndian.AppendUint32(buf, pfn)
		}
	}
	return buf
}

// Flush first flushes every live stream's own bytes through its view
// (allocating pages for brand-new or grown streams via header), then
// serializes the resulting size/page-list table and writes it through view
// into dst, growing the directory's own page list the same way. The caller
// is responsible for writing header's StreamBlockMap field to point at
// view's (possibly reallocated) page list afterward.
func (d *StreamDirectory) Flush(view *SourceView, dst *[]byte, header *SuperBlockOverlayMut) error {
	for i := range d.Streams {
		s := &d.Streams[i]
		if s.Size == NilStreamSize {
			continue
		}
		if err := s.View.Flush(dst, header); err != nil {
			return err
		}
		s.Size = uint32(len(s.View.Bytes))
	}

	view.Bytes = d.encode()
	if err := view.Flush(dst, header); err != nil {
		return err
	}
	header.SetStreamDirSize(uint32(len(view.Bytes)))
	return nil
}

// GetStream returns the stream at idx, or ErrInvalidStreamIndex if idx is
// the sentinel or out of range.
func (d *StreamDirectory) GetStream(idx StreamIndex) (*Stream, error) {
	if !idx.IsValid() {
		return nil, ErrInvalidStreamIndex
	}
	i := int(idx)
	if i >= len(d.Streams) {
		return nil, ErrInvalidStreamIndex
	}
	return &d.Streams[i], nil
}

// SetStream replaces the stream at idx.
func (d *StreamDirectory) SetStream(idx StreamIndex, s Stream) error {
	if !idx.IsValid() {
		return ErrInvalidStreamIndex
	}
	i := int(idx)
	if i >= len(d.Streams) {
		return ErrInvalidStreamIndex
	}
	d.Streams[i] = s
	return nil
}

// Push appends a new stream and returns the index it was assigned, for
// callers adding a brand-new stream (e.g. an OMAP stream) to the directory.
func (d *StreamDirectory) Push(s Stream) StreamIndex {
	d.Streams = append(d.Streams, s)
	return StreamIndex(len(d.Streams) - 1)
}

// NumStreams returns the number of stream slots in the directory.
func (d *StreamDirectory) NumStreams() uint32 {
	return uint32(len(d.Streams))
}

// StreamSize returns the declared size of the stream at idx, or 0 if it
// doesn't exist or is a nil stream.
func (d *StreamDirectory) StreamSize(idx StreamIndex) uint32 {
	s, err := d.GetStream(idx)
	if err != nil || s.Size == NilStreamSize {
		return 0
	}
	return s.Size
}

// StreamExists reports whether idx names a present, non-nil stream.
func (d *StreamDirectory) StreamExists(idx StreamIndex) bool {
	s, err := d.GetStream(idx)
	return err == nil && s.Size != NilStreamSize
}
