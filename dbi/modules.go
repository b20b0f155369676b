package dbi

import (
	"encoding/binary"
)

// ModuleInfoFixedSize is the size, in bytes, of a module info record's
// fixed-width prefix; it is followed by two NUL-terminated strings (module
// name, object file name) and padding up to a 4-byte boundary.
const ModuleInfoFixedSize = 0x30

// ModuleInfo describes one compiland (object file) contribution recorded in
// the DBI module info substream. This is read-only convenience for callers
// that want to inspect modules while rewriting; the core address-rewrite
// path does not need it.
type ModuleInfo struct {
	Section         uint16
	Offset          int32
	Size            int32
	Characteristics uint32
	ModuleIndex     uint16
	Flags           uint16
	ModuleSymStream uint16
	SymByteSize     uint32
	C11ByteSize     uint32
	C13ByteSize     uint32
	ModuleName      string
	ObjFileName     string
}

// ParseModules reads every module info record out of the DBI module info
// substream until data is exhausted.
func ParseModules(data []byte) ([]ModuleInfo, error) {
	var mods []ModuleInfo
	off := 0
	for off < len(data) {
		if off+ModuleInfoFixedSize > len(data) {
			return nil, ErrTruncatedHeader
		}
		rec := data[off : off+ModuleInfoFixedSize]
		m := ModuleInfo{
			Section:         binary.LittleEndian.Uint16(rec[0x04:]),
			Offset:          int32(binary.LittleEndian.Uint32(rec[0x08:])),
			Size:            int32(binary.LittleEndian.Uint32(rec[0x0C:])),
			Characteristics: binary.LittleEndian.Uint32(rec[0x10:]),
			ModuleIndex:     binary.LittleEndian.Uint16(rec[0x14:]),
			Flags:           binary.LittleEndian.Uint16(rec[0x20:]),
			ModuleSymStream: binary.LittleEndian.Uint16(rec[0x22:]),
			SymByteSize:     binary.LittleEndian.Uint32(rec[0x24:]),
			C11ByteSize:     binary.LittleEndian.Uint32(rec[0x28:]),
			C13ByteSize:     binary.LittleEndian.Uint32(rec[0x2C:]),
		}
		off += ModuleInfoFixedSize

		name, n, err := readCString(data, off)
		if err != nil {
			return nil, err
		}
		m.ModuleName = name
		off += n

		objName, n, err := readCString(data, off)
		if err != nil {
			return nil, err
		}
		m.ObjFileName = objName
		off += n

		// Records are padded so the next one starts on a 4-byte boundary.
		if pad := off % 4; pad != 0 {
			off += 4 - pad
		}

		mods = append(mods, m)
	}
	return mods, nil
}

func readCString(data []byte, off int) (string, int, error) {
	for i := off; i < len(data); i++ {
		if data[i] == 0 {
			return string(data[off:i]), i - off + 1, nil
		}
	}
	return "", 0, ErrTruncatedHeader
}
