package msf

import (
	"encoding/binary"
	"fmt"
)

// Container is an in-memory MSF file: a single mutable byte buffer plus the
// parsed superblock and stream directory views over it. Unlike a read-only
// file handle, Container owns its bytes outright and can grow them in place
// as streams are rewritten or appended.
type Container struct {
	Bytes []byte

	dirView SourceView
	dir     *StreamDirectory
}

// Open parses data as an MSF container, validating its superblock and
// loading its stream directory. data is taken by reference: mutations made
// through Container write back into the same backing array when no growth is
// needed, and reallocate it (replacing Container.Bytes) when the file grows.
func Open(data []byte) (*Container, error) {
	sb, err := NewSuperBlockOverlay(data)
	if err != nil {
		return nil, err
	}
	if !sb.HasValidMagic() {
		return nil, ErrBadMagic
	}
	if !IsValidPageSize(sb.PageSize()) {
		return nil, fmt.Errorf("msf: %w: %d", ErrShortSlice, sb.PageSize())
	}

	c := &Container{Bytes: data}

	blockMapPages := NewPageList(sb.PageSize())
	numDirBlocks := sb.PagesNeededToStore(sb.StreamDirSize())
	blockMapView, err := GatherWithSize(data, PageList{PageSize: sb.PageSize(), PFNs: []uint32{sb.StreamBlockMap()}}, uint64(numDirBlocks)*4)
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < numDirBlocks; i++ {
		if int(i)*4+4 > len(blockMapView.Bytes) {
			return nil, ErrTruncated
		}
		blockMapPages.Push(binary.LittleEndian.Uint32(blockMapView.Bytes[i*4:]))
	}

	dirView, err := GatherWithSize(data, blockMapPages, uint64(sb.StreamDirSize()))
	if err != nil {
		return nil, err
	}

	dir, err := ParseStreamDirectory(dirView.Bytes, data, sb.PageSize())
	if err != nil {
		return nil, err
	}

	c.dirView = *dirView
	c.dir = dir
	return c, nil
}

// Header returns a read-only view of the container's superblock.
func (c *Container) Header() (*SuperBlockOverlay, error) {
	return NewSuperBlockOverlay(c.Bytes)
}

// HeaderMut returns a mutable view of the container's superblock.
func (c *Container) HeaderMut() (*SuperBlockOverlayMut, error) {
	return NewSuperBlockOverlayMut(c.Bytes)
}

// StreamDirectory returns the container's parsed stream directory.
func (c *Container) StreamDirectory() *StreamDirectory {
	return c.dir
}

// SetStreamDirectory replaces the container's stream directory and flushes
// it back into Bytes, growing the container as needed. It follows the
// header-clone pattern: the superblock is copied into a scratch buffer,
// mutated there, and copied back only once the directory (and any streams
// it references) have successfully been flushed — so a failed flush leaves
// the superblock unchanged. Stream, directory and block-map pages are
// rewritten in place, so a failed flush can still leave those partially
// updated.
func (c *Container) SetStreamDirectory(dir *StreamDirectory) error {
	scratch := make([]byte, SuperBlockSize)
	copy(scratch, c.Bytes[:SuperBlockSize])
	scratchHeader, err := NewSuperBlockOverlayMut(scratch)
	if err != nil {
		return err
	}

	// The block-map page itself is a one-page indirection holding the PFN
	// list of the directory's own pages; capture its existing location
	// before flushing anything so growth bookkeeping below reuses it
	// correctly instead of mistaking a freshly allocated directory page for
	// the old block-map page.
	oldBlockMapPages := PageList{PageSize: scratchHeader.PageSize(), PFNs: []uint32{scratchHeader.StreamBlockMap()}}

	view := c.dirView
	if err := dir.Flush(&view, &c.Bytes, scratchHeader); err != nil {
		return err
	}

	blockMapBytes := make([]byte, len(view.Pages.PFNs)*4)
	for i, pfn := range view.Pages.PFNs {
		binary.LittleEndian.PutUint32(blockMapBytes[i*4:], pfn)
	}

	// The stream-block-map page carries whatever stale bytes a previous,
	// larger directory left behind; Flush only overwrites the bytes the new
	// PFN list actually needs, so the old page(s) must be zeroed first or
	// those stale bytes would survive past the active PFN list.
	pageSize := uint64(scratchHeader.PageSize())
	for _, pfn := range oldBlockMapPages.PFNs {
		start := uint64(pfn) * pageSize
		end := start + pageSize
		if end > uint64(len(c.Bytes)) {
			return ErrOutOfRangePFN
		}
		clear(c.Bytes[start:end])
	}

	blockMapView := SourceView{Bytes: blockMapBytes, Pages: oldBlockMapPages}
	if err := blockMapView.Flush(&c.Bytes, scratchHeader); err != nil {
		return err
	}
	scratchHeader.SetStreamBlockMap(blockMapView.Pages.PFNs[0])

	live, err := c.HeaderMut()
	if err != nil {
		return err
	}
	live.CopyFrom(scratchHeader)

	c.dirView = view
	c.dir = dir
	return nil
}

// GetStream returns the stream at idx, as gathered when the container was
// opened.
func (c *Container) GetStream(idx StreamIndex) (*Stream, error) {
	return c.dir.GetStream(idx)
}
