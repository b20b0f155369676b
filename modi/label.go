// Package modi implements module-info symbol substream helpers: encoding
// S_LABEL32 symbol records and appending them to a module's private symbol
// stream, for tools that relabel addresses after a rewrite and want the
// label to show up in a debugger's symbol search.
package modi

import (
	"encoding/binary"
)

// S_LABEL32 is the CodeView symbol kind for a 32-bit label.
const S_LABEL32 uint16 = 0x1105

// LabelSymbol is a single S_LABEL32 record: an address (section:offset),
// flags, and a name.
type LabelSymbol struct {
	Offset  uint32
	Section uint16
	Flags   uint8
	Name    string
}

// Size returns the encoded size of the symbol record, including its
// 2-byte length prefix.
func (l *LabelSymbol) Size() int {
	// length-prefix(2) + kind(2) + offset(4) + section(2) + flags(1) + name + nul(1)
	return 2 + 2 + 4 + 2 + 1 + len(l.Name) + 1
}

// Encode appends the symbol's CodeView record bytes to buf and returns the
// result.
func (l *LabelSymbol) Encode(buf []byte) []byte {
	recordLen := uint16(l.Size() - 2)
	var hdr [11]byte
	binary.LittleEndian.PutUint16(hdr[0:], recordLen)
	binary.LittleEndian.PutUint16(hdr[2:], S_LABEL32)
	binary.LittleEndian.PutUint32(hdr[4:], l.Offset)
	binary.LittleEndian.PutUint16(hdr[8:], l.Section)
	hdr[10] = l.Flags
	buf = append(buf, hdr[:]...)
	buf = append(buf, l.Name...)
	buf = append(buf, 0)
	return buf
}
