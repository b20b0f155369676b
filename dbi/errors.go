// Package dbi implements the Debug Information (DBI) stream: module list,
// section contributions, section map, and the optional-debug-header array
// of extra stream indices (OMAP, section headers, FPO data, and friends).
package dbi

import "errors"

var (
	// ErrTruncatedHeader indicates fewer than HeaderSize bytes were given to
	// a header overlay constructor, or that a substream located through the
	// header (module info, section map) is shorter than its layout needs.
	ErrTruncatedHeader = errors.New("dbi: truncated header")

	// ErrInvalidVersionSignature indicates the header's VersionSignature
	// field is not the well-known -1 sentinel used by all modern PDBs.
	ErrInvalidVersionSignature = errors.New("dbi: invalid version signature")

	// ErrTruncatedExtraStreams indicates fewer than ExtraStreamSize bytes
	// were given to an extra-stream overlay constructor.
	ErrTruncatedExtraStreams = errors.New("dbi: truncated optional debug header")
)
