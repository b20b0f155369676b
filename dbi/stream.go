package dbi

import (
	"encoding/binary"

	"github.com/pdbtools/msfrewrite/msf"
)

// Stream wraps a DBI msf.Stream, giving typed access to its header and
// optional debug header (extra streams) substream, and the one mutation the
// rewrite path needs on the section map: replacing it with an empty,
// harmless placeholder once its contents have been superseded by an OMAP.
type Stream struct {
	Raw *msf.Stream
}

// NewStream wraps an already-gathered DBI stream.
func NewStream(raw *msf.Stream) *Stream {
	return &Stream{Raw: raw}
}

// Header returns a read-only view of the DBI header.
func (s *Stream) Header() (*HeaderOverlay, error) {
	return NewHeaderOverlay(s.Raw.View.Bytes)
}

// HeaderMut returns a mutable view of the DBI header.
func (s *Stream) HeaderMut() (*HeaderOverlayMut, error) {
	return NewHeaderOverlayMut(s.Raw.View.Bytes)
}

// ExtraStreams returns a read-only view of the optional debug header
// substream, or an error if the stream is too short to hold it at the offset
// implied by the header's substream sizes. The header's
// OptionalDebugHeaderSize field is not consulted.
func (s *Stream) ExtraStreams() (*ExtraStreamOverlay, error) {
	off, err := s.optionalDebugHeaderOffset()
	if err != nil {
		return nil, err
	}
	return NewExtraStreamOverlay(s.Raw.View.Bytes[off:])
}

// ExtraStreamsMut returns a mutable view of the optional debug header
// substream. Setting a new slot here (e.g. SetOmapToSrc) does not resize the
// substream or update the header's OptionalDebugHeaderSize field — callers
// that add brand-new slots where none existed must extend the stream
// themselves and call HeaderMut().SetOptionalDebugHeaderSize.
func (s *Stream) ExtraStreamsMut() (*ExtraStreamOverlayMut, error) {
	off, err := s.optionalDebugHeaderOffset()
	if err != nil {
		return nil, err
	}
	return NewExtraStreamOverlayMut(s.Raw.View.Bytes[off:])
}

func (s *Stream) optionalDebugHeaderOffset() (uint32, error) {
	h, err := NewHeaderOverlay(s.Raw.View.Bytes)
	if err != nil {
		return 0, err
	}
	_, _, _, _, _, _, off := h.SubstreamOffsets()
	if uint64(off)+ExtraStreamSize > uint64(len(s.Raw.View.Bytes)) {
		return 0, ErrTruncatedExtraStreams
	}
	return off, nil
}

// Modules parses the module info substream, for callers that want to list
// the compilands contributing to this PDB while rewriting it.
func (s *Stream) Modules() ([]ModuleInfo, error) {
	h, err := NewHeaderOverlay(s.Raw.View.Bytes)
	if err != nil {
		return nil, err
	}
	modInfo, sectionContrib, _, _, _, _, _ := h.SubstreamOffsets()
	if uint64(sectionContrib) > uint64(len(s.Raw.View.Bytes)) {
		return nil, ErrTruncatedHeader
	}
	return ParseModules(s.Raw.View.Bytes[modInfo:sectionContrib])
}

// NopSectionMaps overwrites the section-map substream's two leading u16
// counters (Count, LogCount) with zero, turning it into an empty table
// without touching the substream's declared size or anything after it. This
// is the standard way to invalidate stale section-map data once a rewrite
// has made it meaningless, without having to shift every later substream.
func (s *Stream) NopSectionMaps() error {
	h, err := NewHeaderOverlay(s.Raw.View.Bytes)
	if err != nil {
		return err
	}
	_, _, sectionMapOff, _, _, _, _ := h.SubstreamOffsets()
	if uint64(sectionMapOff)+4 > uint64(len(s.Raw.View.Bytes)) {
		return ErrTruncatedHeader
	}
	binary.LittleEndian.PutUint16(s.Raw.View.Bytes[sectionMapOff:], 0)
	binary.LittleEndian.PutUint16(s.Raw.View.Bytes[sectionMapOff+2:], 0)
	return nil
}

// SetOptionalDebugHeaderSize updates the header's declared size for the
// optional debug header substream. See ExtraStreamsMut's doc comment.
func (s *Stream) SetOptionalDebugHeaderSize(v uint32) error {
	h, err := s.HeaderMut()
	if err != nil {
		return err
	}
	h.SetOptionalDebugHeaderSize(v)
	return nil
}
