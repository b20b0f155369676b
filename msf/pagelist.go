package msf

// PageList is an ordered list of page frame numbers (PFNs) describing where
// a stream's bytes live inside the container, PageSize bytes at a time.
// It carries no bytes itself; SourceView pairs a PageList with the backing
// buffer to gather or flush the actual content.
type PageList struct {
	PageSize uint32
	PFNs     []uint32
}

// NewPageList returns an empty PageList for the given page size.
func NewPageList(pageSize uint32) PageList {
	return PageList{PageSize: pageSize}
}

// Push appends a page frame number to the list.
func (p *PageList) Push(pfn uint32) {
	p.PFNs = append(p.PFNs, pfn)
}

// Len returns the number of pages in the list.
func (p *PageList) Len() uint32 {
	return uint32(len(p.PFNs))
}

// ByteLen returns the total byte capacity spanned by the list's pages.
func (p *PageList) ByteLen() uint64 {
	return uint64(p.Len()) * uint64(p.PageSize)
}
