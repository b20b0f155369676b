package msf

import (
	"fmt"
	"io"
)

// StreamReader provides sequential, io.Reader/io.Seeker-style access over a
// Stream's already-gathered bytes, for callers that prefer incremental reads
// to slicing View.Bytes directly.
type StreamReader struct {
	bytes []byte
	pos   uint32
}

// NewStreamReader wraps a Stream for sequential reading.
func NewStreamReader(s *Stream) *StreamReader {
	return &StreamReader{bytes: s.View.Bytes}
}

// Read implements io.Reader.
func (r *StreamReader) Read(p []byte) (n int, err error) {
	if int(r.pos) >= len(r.bytes) {
		return 0, io.EOF
	}
	n = copy(p, r.bytes[r.pos:])
	r.pos += uint32(n)
	return n, nil
}

// ReadAt implements io.ReaderAt over the gathered bytes.
func (r *StreamReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fmt.Errorf("msf: negative offset: %d", off)
	}
	if off >= int64(len(r.bytes)) {
		return 0, io.EOF
	}
	n = copy(p, r.bytes[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// Seek implements io.Seeker.
func (r *StreamReader) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(r.pos) + offset
	case io.SeekEnd:
		newPos = int64(len(r.bytes)) + offset
	default:
		return 0, fmt.Errorf("msf: invalid seek whence: %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("msf: negative seek position: %d", newPos)
	}
	if newPos > int64(len(r.bytes)) {
		newPos = int64(len(r.bytes))
	}
	r.pos = uint32(newPos)
	return newPos, nil
}

// Size returns the total size of the underlying stream in bytes.
func (r *StreamReader) Size() uint32 { return uint32(len(r.bytes)) }

// Position returns the current read position.
func (r *StreamReader) Position() uint32 { return r.pos }

// Remaining returns the number of bytes left to read.
func (r *StreamReader) Remaining() uint32 {
	if int(r.pos) >= len(r.bytes) {
		return 0
	}
	return uint32(len(r.bytes)) - r.pos
}

// Reset rewinds the reader to the beginning of the stream.
func (r *StreamReader) Reset() { r.pos = 0 }
