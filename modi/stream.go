package modi

import "encoding/binary"

// Signature is the four-byte CodeView signature every module symbol
// substream begins with (version 4, the only one modern tools emit).
const Signature uint32 = 4

// Stream builds a module's private symbol substream: the signature word
// followed by a run of CodeView symbol records. It is a write-only builder,
// not a parser — the rewrite path only ever appends new labels, it never
// needs to make sense of a module's existing symbols.
type Stream struct {
	bytes  []byte
	offset int
}

// NewStream returns a Stream with the signature word already written.
func NewStream() *Stream {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, Signature)
	return &Stream{bytes: buf, offset: 4}
}

// AddLabel encodes label and appends it to the stream.
func (s *Stream) AddLabel(label *LabelSymbol) {
	s.bytes = label.Encode(s.bytes)
	s.offset = len(s.bytes)
}

// Bytes returns the substream's encoded content so far.
func (s *Stream) Bytes() []byte { return s.bytes }
