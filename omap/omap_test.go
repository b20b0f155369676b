package omap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamInsertKeepsFirstOccurrence(t *testing.T) {
	s := New()
	s.Insert(Entry{Source: 0x2000, Target: 0x1800})
	s.Insert(Entry{Source: 0x1000, Target: 0x1000})
	s.Insert(Entry{Source: 0x3000, Target: 0x2800})
	s.Insert(Entry{Source: 0x2000, Target: 0xDEAD}) // duplicate source, should be discarded

	entries := s.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, []Entry{
		{Source: 0x1000, Target: 0x1000},
		{Source: 0x2000, Target: 0x1800},
		{Source: 0x3000, Target: 0x2800},
	}, entries)
}

func TestStreamTranslate(t *testing.T) {
	s := New()
	for _, e := range []Entry{
		{Source: 0x1008, Target: 0x1000},
		{Source: 0x100F, Target: 0x1007},
		{Source: 0x1010, Target: 0x1010},
		{Source: 0x1088, Target: 0x1010},
		{Source: 0x109F, Target: 0x1064},
		{Source: 0x10A0, Target: 0x10A0},
	} {
		s.Insert(e)
	}

	require.Equal(t, uint32(0x1000), s.Translate(0x1000)) // below first entry
	require.Equal(t, uint32(0x1000), s.Translate(0x1008))
	require.Equal(t, uint32(0x1002), s.Translate(0x100A))
	require.Equal(t, uint32(0x1010), s.Translate(0x1088))
	require.Equal(t, uint32(0x1018), s.Translate(0x1090))
	require.Equal(t, uint32(0x1064), s.Translate(0x109F))
	require.Equal(t, uint32(0x10A0), s.Translate(0x10A0))
}

func TestStreamTranslateUnmappedRegion(t *testing.T) {
	s := New()
	s.Insert(Entry{Source: 0x2000, Target: 0}) // unmapped region marker

	require.Equal(t, uint32(0x2050), s.Translate(0x2050))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	s := New()
	s.Insert(Entry{Source: 0x1008, Target: 0x1000})
	s.Insert(Entry{Source: 0x2000, Target: 0x1800})
	s.Insert(Entry{Source: 0x3008, Target: 0x2800})

	data := s.Serialize()
	require.Len(t, data, 3*EntrySize)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, s.Entries(), parsed.Entries())
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse(make([]byte, EntrySize+1))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestParseStrictRejectsUnsorted(t *testing.T) {
	s := New()
	s.Insert(Entry{Source: 0x2000, Target: 0x1800})
	s.Insert(Entry{Source: 0x1000, Target: 0x1000})
	sorted := s.Serialize()

	// corrupt to out-of-order by swapping the two entries back
	unsorted := append(append([]byte{}, sorted[EntrySize:]...), sorted[:EntrySize]...)

	_, err := ParseStrict(sorted)
	require.NoError(t, err)

	_, err = ParseStrict(unsorted)
	require.ErrorIs(t, err, ErrUnsorted)
}
