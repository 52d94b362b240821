package rsrc

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a bad magic, creator tag, format version, or
	// an inconsistent pair of header copies.
	ErrFormat = errors.New("rsrc: invalid container format")
	// ErrTruncated reports an offset or length referencing past the
	// end of the buffer.
	ErrTruncated = errors.New("rsrc: truncated data")
	// ErrCorruptOffset reports offsets that overlap or violate the
	// structural ordering of the container regions.
	ErrCorruptOffset = errors.New("rsrc: corrupt offset")
	// ErrEncode reports a value that cannot be represented in its
	// fixed-width slot on write.
	ErrEncode = errors.New("rsrc: cannot encode")
	// ErrVersionMismatch reports a block variant that is not valid for
	// the detected layout generation or source version.
	ErrVersionMismatch = errors.New("rsrc: version mismatch")
	// ErrLimitExceeded reports a size or count limit violation.
	ErrLimitExceeded = errors.New("rsrc: limit exceeded")
	// ErrCodePage reports an unknown text code page identifier.
	ErrCodePage = errors.New("rsrc: unknown code page")
)

// WarningKind classifies a non-fatal anomaly recorded during decode.
type WarningKind int

const (
	// WarnCompression marks a section whose zlib stream failed to
	// inflate or declared an implausible uncompressed size; the raw
	// bytes were kept.
	WarnCompression WarningKind = iota + 1
	// WarnUnknownTag marks a block routed to the passthrough codec.
	WarnUnknownTag
	// WarnBlockParse marks a section a registered codec could not
	// parse; the section was kept as an opaque node.
	WarnBlockParse
)

func (k WarningKind) String() string {
	switch k {
	case WarnCompression:
		return "compression"
	case WarnUnknownTag:
		return "unknown-tag"
	case WarnBlockParse:
		return "block-parse"
	default:
		return "unknown"
	}
}

// Warning records a recoverable anomaly found while decoding. Warnings
// accumulate on the container so a caller can decide whether a salvaged
// file is still usable.
type Warning struct {
	Kind    WarningKind
	Tag     Tag
	Section int32
	Msg     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s:%d]: %s", w.Kind, w.Tag, w.Section, w.Msg)
}
