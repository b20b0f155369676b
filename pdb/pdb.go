package pdb

import (
	"encoding/binary"
	"fmt"

	"github.com/pdbtools/msfrewrite/dbi"
	"github.com/pdbtools/msfrewrite/msf"
)

// File is an opened PDB, backed by a mutable in-memory MSF container. Unlike
// a read-only PDB reader, File is built to be mutated: its DBI stream and
// OMAP streams can be rewritten and committed back to bytes.
type File struct {
	container *msf.Container

	info        *PDBInfo
	dbiStream   *dbi.Stream
	dbiIndex    msf.StreamIndex
	sectionHdrs *SectionHeaders
}

// PDBInfo holds the fixed-size header fields of the PDB Info stream.
type PDBInfo struct {
	Version   uint32
	Signature uint32
	Age       uint32
	GUID      [16]byte
}

// pdbInfoHeaderSize is the size of the fixed portion of the PDB Info stream
// this module reads: version, signature, age, and a 16-byte GUID. The named
// stream map and feature flags that follow are not needed for rewriting and
// are left untouched.
const pdbInfoHeaderSize = 28

// OpenBytes parses data as a PDB file. data is taken by reference: Commit
// writes rewritten bytes back into the same backing array when it fits, and
// returns a grown replacement slice otherwise.
func OpenBytes(data []byte) (*File, error) {
	c, err := msf.Open(data)
	if err != nil {
		return nil, fmt.Errorf("pdb: %w", err)
	}

	f := &File{container: c, dbiIndex: msf.StreamDBI}

	info, err := f.loadInfo()
	if err != nil {
		return nil, err
	}
	f.info = info

	dbiStream, err := f.loadDBI()
	if err != nil {
		return nil, err
	}
	f.dbiStream = dbiStream

	return f, nil
}

func (f *File) loadInfo() (*PDBInfo, error) {
	s, err := f.container.GetStream(msf.StreamIndex(msf.StreamPDBInfo))
	if err != nil {
		return nil, fmt.Errorf("pdb: failed to read PDB info stream: %w", err)
	}
	data := s.View.Bytes
	if len(data) < pdbInfoHeaderSize {
		return nil, fmt.Errorf("pdb: PDB info stream too short")
	}

	info := &PDBInfo{
		Version:   binary.LittleEndian.Uint32(data[0:]),
		Signature: binary.LittleEndian.Uint32(data[4:]),
		Age:       binary.LittleEndian.Uint32(data[8:]),
	}
	copy(info.GUID[:], data[12:28])
	return info, nil
}

func (f *File) loadDBI() (*dbi.Stream, error) {
	s, err := f.container.GetStream(msf.StreamIndex(msf.StreamDBI))
	if err != nil {
		return nil, fmt.Errorf("pdb: failed to read DBI stream: %w", err)
	}
	return dbi.NewStream(s), nil
}

// Info returns the PDB's version/signature/age/GUID.
func (f *File) Info() *PDBInfo { return f.info }

// GUIDString formats the PDB's GUID as the standard
// 8-4-4-4-12 hyphenated hex form.
func (info *PDBInfo) GUIDString() string {
	g := info.GUID
	return fmt.Sprintf("%08X-%04X-%04X-%04X-%012X",
		binary.LittleEndian.Uint32(g[0:4]),
		binary.LittleEndian.Uint16(g[4:6]),
		binary.LittleEndian.Uint16(g[6:8]),
		binary.BigEndian.Uint16(g[8:10]),
		g[10:16])
}

// DBI returns the PDB's DBI stream wrapper, for readers and rewriters that
// need direct access to its header and extra-stream slots.
func (f *File) DBI() *dbi.Stream { return f.dbiStream }

// StreamDirectory returns the container's stream directory, for callers
// adding brand-new streams (e.g. OMAP) before committing.
func (f *File) StreamDirectory() *msf.StreamDirectory {
	return f.container.StreamDirectory()
}

// Commit writes the container's (possibly rewritten) stream directory back
// into the backing byte buffer and returns it. Call this after pushing new
// streams onto the directory or mutating the DBI stream's bytes in place.
func (f *File) Commit(dir *msf.StreamDirectory) ([]byte, error) {
	if err := f.container.SetStreamDirectory(dir); err != nil {
		return nil, fmt.Errorf("pdb: commit failed: %w", err)
	}
	return f.container.Bytes, nil
}

// BlockSize returns the MSF page size backing this PDB.
func (f *File) BlockSize() (uint32, error) {
	h, err := f.container.Header()
	if err != nil {
		return 0, err
	}
	return h.PageSize(), nil
}

// NumStreams returns the number of streams in the PDB.
func (f *File) NumStreams() uint32 {
	return f.container.StreamDirectory().NumStreams()
}
