package rsrc

const (
	rsrcHeaderSize         = 32
	blockInfoListSize      = 20
	blockInfoHeaderSize    = 4
	blockHeaderSize        = 12
	sectionStartSizeExt    = 20
	sectionStartSizeLegacy = 16
	sectionDataHeaderSize  = 4
)

// Magic is the 6-byte RSRC file signature.
var Magic = [6]byte{'R', 'S', 'R', 'C', '\r', '\n'}

// Creator is the fixed 4-byte creator tag present in every RSRC header.
var Creator = Tag{'L', 'B', 'V', 'W'}

// FormatVersion is the only header format version this package accepts.
const FormatVersion uint16 = 3

// noNameOffset marks a section without an entry in the name table.
const noNameOffset uint32 = 0xFFFFFFFF

// Tag is a 4-character block or file-type identifier.
type Tag [4]byte

// MakeTag builds a Tag from a string, padding with spaces and ignoring
// anything past four bytes.
func MakeTag(s string) Tag {
	t := Tag{' ', ' ', ' ', ' '}
	copy(t[:], s)
	return t
}

func (t Tag) String() string {
	return string(t[:])
}

// Layout identifies which of the two historical container shapes a file
// uses. The extended layout inserts a block info list header before the
// blocks info and carries a section name table; the legacy layout has
// neither and ends the info region with a single stored filename.
type Layout int

const (
	LegacyLayout Layout = iota
	ExtendedLayout
)

func (l Layout) String() string {
	if l == LegacyLayout {
		return "legacy"
	}
	return "extended"
}

// FileType classifies an RSRC container by its header type tag.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeVI
	FileTypeControl
	FileTypeLLB
	FileTypeDLog
	FileTypeClassLib
	FileTypeProject
	FileTypeLibrary
	FileTypeMenuPalette
	FileTypeTemplateControl
	FileTypeTemplateVI
	FileTypeXControl
)

var fileTypeTags = map[FileType]Tag{
	FileTypeVI:              MakeTag("LVIN"),
	FileTypeControl:         MakeTag("LVCC"),
	FileTypeLLB:             MakeTag("LVAR"),
	FileTypeDLog:            MakeTag("LVDL"),
	FileTypeClassLib:        MakeTag("CLIB"),
	FileTypeProject:         MakeTag("LVPJ"),
	FileTypeLibrary:         MakeTag("LIBR"),
	FileTypeMenuPalette:     MakeTag("LMNU"),
	FileTypeTemplateControl: MakeTag("sVCC"),
	FileTypeTemplateVI:      MakeTag("sVIN"),
	FileTypeXControl:        MakeTag("LVXC"),
}

var fileTypeExts = map[FileType]string{
	FileTypeVI:              "vi",
	FileTypeControl:         "ctl",
	FileTypeLLB:             "llb",
	FileTypeDLog:            "dlog",
	FileTypeClassLib:        "lvclass",
	FileTypeProject:         "lvproj",
	FileTypeLibrary:         "lvlib",
	FileTypeMenuPalette:     "mnu",
	FileTypeTemplateControl: "ctt",
	FileTypeTemplateVI:      "vit",
	FileTypeXControl:        "xctl",
}

// TypeTag returns the 4-byte header tag for a file type, or the zero
// Tag when the type is unknown.
func (ft FileType) TypeTag() Tag {
	return fileTypeTags[ft]
}

// Ext returns the conventional file extension for a file type.
func (ft FileType) Ext() string {
	if e, ok := fileTypeExts[ft]; ok {
		return e
	}
	return "rsrc"
}

// FileTypeFromTag recognizes a header type tag.
func FileTypeFromTag(t Tag) FileType {
	for ft, tag := range fileTypeTags {
		if tag == t {
			return ft
		}
	}
	return FileTypeUnknown
}

// Coding identifies the byte-level transform applied to a section's
// stored payload. It is recorded on read and replayed verbatim on
// write; the writer never infers a coding from payload content.
type Coding int

const (
	CodingNone Coding = iota
	CodingZlib
	CodingXor
)

func (c Coding) String() string {
	switch c {
	case CodingZlib:
		return "zlib"
	case CodingXor:
		return "xor"
	default:
		return "none"
	}
}

// countFromStored converts an on-disk count field to the true element
// count. The format stores counts decremented by one in the blocks info
// header and in each block header; every reader path goes through this
// single helper.
func countFromStored(stored uint32) int {
	return int(stored) + 1
}

// storedFromCount is the write-side inverse of countFromStored.
func storedFromCount(n int) uint32 {
	return uint32(n - 1)
}
