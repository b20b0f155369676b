// Package omap implements OMAP (ordered address-mapping) streams: sorted,
// unique-by-source-address (source, target) pairs used by a PDB to
// translate addresses between an original and a rewritten image layout.
package omap

import (
	"encoding/binary"
	"errors"

	"golang.org/x/exp/slices"
)

// EntrySize is the on-disk size, in bytes, of a single OMAP entry: two
// little-endian uint32s.
const EntrySize = 8

// ErrUnsorted is returned by ParseStrict when the input is not in strictly
// ascending source-address order.
var ErrUnsorted = errors.New("omap: entries not in ascending order")

// ErrTruncated is returned when the input length is not a multiple of
// EntrySize.
var ErrTruncated = errors.New("omap: truncated entry")

// Entry is one (source, target) address pair.
type Entry struct {
	Source uint32
	Target uint32
}

// Stream is a sorted, source-unique set of address-mapping entries.
type Stream struct {
	entries []Entry
}

// New returns an empty OMAP stream.
func New() *Stream {
	return &Stream{}
}

// Insert adds an entry in sorted position. If an entry with the same Source
// already exists, the existing entry is kept and e is discarded — the first
// mapping recorded for a given source address wins.
func (s *Stream) Insert(e Entry) {
	i, found := slices.BinarySearchFunc(s.entries, e, compareBySource)
	if found {
		return
	}
	s.entries = slices.Insert(s.entries, i, e)
}

// Len returns the number of entries in the stream.
func (s *Stream) Len() int { return len(s.entries) }

// Entries returns the stream's entries in ascending source order. The
// returned slice must not be mutated.
func (s *Stream) Entries() []Entry { return s.entries }

// Translate maps a source address to its target address. It binary-searches
// for the largest entry whose Source is <= source (the floor entry). If no
// such entry exists, or the floor entry's Target is 0 (an unmapped region),
// source is returned unchanged. Otherwise the result is the floor entry's
// target plus source's offset past the floor entry's source.
func (s *Stream) Translate(source uint32) uint32 {
	i, found := slices.BinarySearchFunc(s.entries, Entry{Source: source}, compareBySource)
	floor := i
	if !found {
		floor--
	}
	if floor < 0 {
		return source
	}
	e := s.entries[floor]
	if e.Target == 0 {
		return source
	}
	return (source - e.Source) + e.Target
}

// Serialize encodes the stream as a flat sequence of little-endian
// (source, target) uint32 pairs, in ascending source order.
func (s *Stream) Serialize() []byte {
	buf := make([]byte, len(s.entries)*EntrySize)
	for i, e := range s.entries {
		binary.LittleEndian.PutUint32(buf[i*EntrySize:], e.Source)
		binary.LittleEndian.PutUint32(buf[i*EntrySize+4:], e.Target)
	}
	return buf
}

// Parse decodes an OMAP stream from raw bytes. It reads pairs until the
// buffer is exhausted; a trailing partial pair is ErrTruncated. Input need
// not be sorted: entries are inserted one at a time via Insert, so the
// first occurrence of a duplicate source is kept and the result is always
// returned in ascending order regardless of input order.
func Parse(data []byte) (*Stream, error) {
	if len(data)%EntrySize != 0 {
		return nil, ErrTruncated
	}
	s := New()
	for off := 0; off < len(data); off += EntrySize {
		s.Insert(Entry{
			Source: binary.LittleEndian.Uint32(data[off:]),
			Target: binary.LittleEndian.Uint32(data[off+4:]),
		})
	}
	return s, nil
}

// ParseStrict is like Parse but additionally requires the input already be
// in strictly ascending source order with no duplicates, returning
// ErrUnsorted otherwise. Use this when the caller wants to assert the
// producing tool behaved, rather than silently normalize its output.
func ParseStrict(data []byte) (*Stream, error) {
	if len(data)%EntrySize != 0 {
		return nil, ErrTruncated
	}
	n := len(data) / EntrySize
	s := &Stream{entries: make([]Entry, n)}
	for i := 0; i < n; i++ {
		off := i * EntrySize
		s.entries[i] = Entry{
			Source: binary.LittleEndian.Uint32(data[off:]),
			Target: binary.LittleEndian.Uint32(data[off+4:]),
		}
		if i > 0 && s.entries[i-1].Source >= s.entries[i].Source {
			return nil, ErrUnsorted
		}
	}
	return s, nil
}

func compareBySource(a, b Entry) int {
	switch {
	case a.Source < b.Source:
		return -1
	case a.Source > b.Source:
		return 1
	default:
		return 0
	}
}
