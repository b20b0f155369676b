package pdb

import (
	"encoding/binary"
	"fmt"

	"github.com/pdbtools/msfrewrite/msf"
)

// SectionHeader mirrors the IMAGE_SECTION_HEADER structure as stored in the
// DBI optional debug header's section-headers stream.
type SectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32 // RVA of the section
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

// NameString returns the section name as a string, trimmed at the first NUL.
func (s *SectionHeader) NameString() string {
	n := 0
	for n < 8 && s.Name[n] != 0 {
		n++
	}
	return string(s.Name[:n])
}

// SectionHeaders provides access to the PE section headers a PDB carries
// for address translation between section:offset and RVA.
type SectionHeaders struct {
	sections []SectionHeader
}

// Count returns the number of sections.
func (sh *SectionHeaders) Count() int { return len(sh.sections) }

// Get returns the section header at the given 0-based index.
func (sh *SectionHeaders) Get(index int) (*SectionHeader, error) {
	if index < 0 || index >= len(sh.sections) {
		return nil, fmt.Errorf("pdb: section index out of range: %d", index)
	}
	return &sh.sections[index], nil
}

// All returns every section header.
func (sh *SectionHeaders) All() []SectionHeader { return sh.sections }

// ToRVA converts a 1-based section number and offset to an RVA.
// Returns 0 if the section number is invalid.
func (sh *SectionHeaders) ToRVA(section uint16, offset uint32) uint32 {
	if section == 0 || int(section) > len(sh.sections) {
		return 0
	}
	return sh.sections[section-1].VirtualAddress + offset
}

// FindSection finds which 1-based section contains rva and the offset
// within it. Returns 0, 0 if rva is not within any section.
func (sh *SectionHeaders) FindSection(rva uint32) (section uint16, offset uint32) {
	for i, sec := range sh.sections {
		if rva >= sec.VirtualAddress && rva < sec.VirtualAddress+sec.VirtualSize {
			return uint16(i + 1), rva - sec.VirtualAddress
		}
	}
	return 0, 0
}

const sectionHeaderSize = 40

func parseSectionHeaders(data []byte) (*SectionHeaders, error) {
	if len(data) < sectionHeaderSize {
		return &SectionHeaders{}, nil
	}

	numSections := len(data) / sectionHeaderSize
	sections := make([]SectionHeader, numSections)

	for i := 0; i < numSections; i++ {
		offset := i * sectionHeaderSize
		sec := &sections[i]

		copy(sec.Name[:], data[offset:offset+8])
		sec.VirtualSize = binary.LittleEndian.Uint32(data[offset+8:])
		sec.VirtualAddress = binary.LittleEndian.Uint32(data[offset+12:])
		sec.SizeOfRawData = binary.LittleEndian.Uint32(data[offset+16:])
		sec.PointerToRawData = binary.LittleEndian.Uint32(data[offset+20:])
		sec.PointerToRelocations = binary.LittleEndian.Uint32(data[offset+24:])
		sec.PointerToLinenumbers = binary.LittleEndian.Uint32(data[offset+28:])
		sec.NumberOfRelocations = binary.LittleEndian.Uint16(data[offset+32:])
		sec.NumberOfLinenumbers = binary.LittleEndian.Uint16(data[offset+34:])
		sec.Characteristics = binary.LittleEndian.Uint32(data[offset+36:])
	}

	return &SectionHeaders{sections: sections}, nil
}

// SectionHeaders returns the PE section headers this PDB carries, reading
// the DBI extra-stream slot the first time it's called.
func (f *File) SectionHeaders() (*SectionHeaders, error) {
	if f.sectionHdrs != nil {
		return f.sectionHdrs, nil
	}

	extras, err := f.dbiStream.ExtraStreams()
	if err != nil {
		return nil, fmt.Errorf("pdb: no optional debug header: %w", err)
	}

	idx := msf.StreamIndex(extras.SectionHeaders())
	if !idx.IsValid() {
		return nil, fmt.Errorf("pdb: no section header stream")
	}

	s, err := f.container.GetStream(idx)
	if err != nil {
		return nil, fmt.Errorf("pdb: failed to read section header stream: %w", err)
	}

	headers, err := parseSectionHeaders(s.View.Bytes)
	if err != nil {
		return nil, err
	}
	f.sectionHdrs = headers
	return headers, nil
}
