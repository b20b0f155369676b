package msf

// SourceView gathers the scattered pages a PageList describes into one
// linear, in-memory buffer, and knows how to flush edits to that buffer
// back into the pages it came from — growing the container and the page
// list itself if the buffer has grown past its original capacity.
type SourceView struct {
	Bytes []byte
	Pages PageList
}

// Gather copies every page the list references out of src into one
// contiguous buffer sized to the list's full page capacity.
func Gather(src []byte, pages PageList) (*SourceView, error) {
	return GatherWithSize(src, pages, pages.ByteLen())
}

// GatherWithSize is like Gather but truncates the resulting buffer to size
// bytes, for streams whose directory-declared size is smaller than the
// full page-rounded capacity of their page list.
func GatherWithSize(src []byte, pages PageList, size uint64) (*SourceView, error) {
	if size > pages.ByteLen() {
		size = pages.ByteLen()
	}
	buf := make([]byte, size)
	var written uint64
	for _, pfn := range pages.PFNs {
		start := uint64(pfn) * uint64(pages.PageSize)
		end := start + uint64(pages.PageSize)
		if end > uint64(len(src)) {
			return nil, ErrOutOfRangePFN
		}
		remaining := size - written
		if remaining == 0 {
			break
		}
		n := uint64(pages.PageSize)
		if n > remaining {
			n = remaining
		}
		copy(buf[written:written+n], src[start:start+n])
		written += n
	}
	return &SourceView{Bytes: buf, Pages: pages}, nil
}

// AsSlice returns the view's gathered bytes.
func (v *SourceView) AsSlice() []byte { return v.Bytes }

// Flush writes the view's (possibly grown) bytes back into dst, allocating
// new pages via header when the view has outgrown its current page list.
// dst is replaced wholesale since growth may require it to reallocate.
func (v *SourceView) Flush(dst *[]byte, header *SuperBlockOverlayMut) error {
	pageSize := uint64(header.PageSize())
	needed := uint64(len(v.Bytes))
	haveCapacity := v.Pages.ByteLen()

	if needed > haveCapacity {
		extra := needed - haveCapacity
		newPageCount := header.PagesNeededToStore(uint32(extra))
		highPFN := header.NumPages()
		for i := uint32(0); i < newPageCount; i++ {
			v.Pages.Push(highPFN + i)
		}
		header.SetNumPages(highPFN + newPageCount)

		requiredLen := uint64(header.NumPages()) * pageSize
		if uint64(len(*dst)) < requiredLen {
			grown := make([]byte, requiredLen)
			copy(grown, *dst)
			*dst = grown
		}
	}

	var written uint64
	for _, pfn := range v.Pages.PFNs {
		if written >= needed {
			break
		}
		start := uint64(pfn) * pageSize
		end := start + pageSize
		if end > uint64(len(*dst)) {
			return ErrOutOfRangePFN
		}
		n := pageSize
		if remaining := needed - written; n > remaining {
			n = remaining
		}
		copy((*dst)[start:start+n], v.Bytes[written:written+n])
		written += n
	}
	return nil
}
