package rsrc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// Context carries the per-file state a block codec needs: the supplied
// text code page, the resolved source version, the detected layout
// generation, and the file type. Codecs never consult global state.
type Context struct {
	CodePage *CodePage
	Version  VersionRecord
	Layout   Layout
	FileType FileType
}

// Codec converts one section payload between raw bytes and the
// intermediate tree. The invariant for every codec is that Encode is
// the exact inverse of Decode for well-formed payloads.
type Codec interface {
	Decode(data []byte, ctx Context) (*Node, error)
	Encode(n *Node, ctx Context) ([]byte, error)
}

// RegistryEntry binds a block tag to its codec and to the byte-level
// coding of its stored payload.
type RegistryEntry struct {
	Tag    Tag
	Codec  Codec
	Coding Coding
}

// Registry dispatches block tags to codecs by exact 4-byte match.
// Unrecognized tags fall through to a passthrough codec that echoes
// payload bytes verbatim. A registry is immutable once built and safe
// for concurrent use.
type Registry struct {
	codecs map[Tag]Codec
	coding map[Tag]Coding
}

// NewRegistry builds a registry from explicit entries.
func NewRegistry(entries []RegistryEntry) *Registry {
	r := &Registry{
		codecs: make(map[Tag]Codec, len(entries)),
		coding: make(map[Tag]Coding, len(entries)),
	}
	for _, e := range entries {
		r.codecs[e.Tag] = e.Codec
		if e.Coding != CodingNone {
			r.coding[e.Tag] = e.Coding
		}
	}
	return r
}

var defaultRegistry = NewRegistry(defaultEntries())

// DefaultRegistry returns the registry covering all known block tags.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Known reports whether a codec is registered for the tag.
func (r *Registry) Known(tag Tag) bool {
	_, ok := r.codecs[tag]
	return ok
}

// Lookup returns the codec for a tag, or the passthrough codec.
func (r *Registry) Lookup(tag Tag) Codec {
	if c, ok := r.codecs[tag]; ok {
		return c
	}
	return passthroughCodec{}
}

// Coding returns the stored payload coding for a tag. The XOR stream
// only exists in extended-layout files.
func (r *Registry) Coding(tag Tag, layout Layout) Coding {
	c := r.coding[tag]
	if c == CodingXor && layout == LegacyLayout {
		return CodingNone
	}
	return c
}

func defaultEntries() []RegistryEntry {
	e := []RegistryEntry{
		{Tag: MakeTag("LVSR"), Codec: saveRecordCodec{}},
		{Tag: MakeTag("vers"), Codec: versionCodec{}},
		{Tag: MakeTag("BDPW"), Codec: passwordCodec{}},
		{Tag: MakeTag("LIBN"), Codec: libNamesCodec{}},
		{Tag: MakeTag("LIvi"), Codec: libraryInfoCodec{}},
		{Tag: MakeTag("FTAB"), Codec: fontTableCodec{}},
		{Tag: MakeTag("HIST"), Codec: historyCodec{}},
		{Tag: MakeTag("HBUF"), Codec: historyCodec{}},
		{Tag: MakeTag("ICON"), Codec: iconCodec{size: 128}},
		{Tag: MakeTag("icl4"), Codec: iconCodec{size: 512}},
		{Tag: MakeTag("icl8"), Codec: iconCodec{size: 1024}},
		{Tag: MakeTag("TITL"), Codec: stringBlockCodec{sizeLen: 1}},
		{Tag: MakeTag("STRG"), Codec: stringBlockCodec{sizeLen: 4}},
		{Tag: MakeTag("STR "), Codec: archiveStringCodec{}},
		{Tag: MakeTag("CPMp"), Codec: cosmeticPartsCodec{}},
		{Tag: MakeTag("BDHP"), Codec: heapCodec{}},
		{Tag: MakeTag("LVzp"), Codec: passthroughCodec{}, Coding: CodingXor},
	}
	for _, t := range []string{"MUID", "FPSE", "BDSE"} {
		e = append(e, RegistryEntry{Tag: MakeTag(t), Codec: uintCodec{width: 4}})
	}
	for _, t := range []string{"FPTD", "CONP", "CPC2"} {
		e = append(e, RegistryEntry{Tag: MakeTag(t), Codec: uintCodec{width: 2}})
	}
	e = append(e, RegistryEntry{Tag: MakeTag("FLAG"), Codec: uintCodec{width: 1, hex: true}})
	for _, t := range []string{"BDHb", "BDHc", "FPHb", "FPHc"} {
		e = append(e, RegistryEntry{Tag: MakeTag(t), Codec: heapCodec{}, Coding: CodingZlib})
	}
	for _, t := range []string{"VCTP", "DFDS", "GCDI"} {
		e = append(e, RegistryEntry{Tag: MakeTag(t), Codec: passthroughCodec{}, Coding: CodingZlib})
	}
	return e
}

// passthroughCodec is the mandatory fallback: raw bytes in, raw bytes
// out, so the codec layer never drops content for tags that have not
// been reverse engineered.
type passthroughCodec struct{}

func (passthroughCodec) Decode(data []byte, ctx Context) (*Node, error) {
	n := NewNode("Opaque")
	n.Payload = append([]byte(nil), data...)
	return n, nil
}

func (passthroughCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	return append([]byte(nil), n.Payload...), nil
}

var prettyStrip = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// prettyTag gives the alphanumeric document name of a 4-byte tag.
// The hash character expands to "sh"; other special characters are
// dropped, with a "spec" suffix keeping very short results readable.
func prettyTag(t Tag) string {
	s := strings.ReplaceAll(t.String(), "#", "sh")
	s = prettyStrip.ReplaceAllString(s, "")
	if len(s) < 3 {
		s += "spec"
	}
	return s
}

// tagFromPretty is the inverse of prettyTag.
func tagFromPretty(s string) Tag {
	if len(s) > 4 {
		s = strings.ReplaceAll(s, "sh", "#")
	}
	if len(s) > 4 {
		s = strings.ReplaceAll(s, "spec", "?")
	}
	return MakeTag(s)
}

// readPascal reads a one-byte-length Pascal string within a codec.
func readPascal(r *binary.Reader) ([]byte, error) {
	return readPString(r)
}

// writePascal writes a one-byte-length Pascal string.
func writePascal(w *binary.Writer, b []byte) error {
	if len(b) > 255 {
		return fmt.Errorf("%w: string of %d bytes exceeds length prefix", ErrEncode, len(b))
	}
	w.WriteUint8(uint8(len(b)))
	w.WriteBytes(b)
	return nil
}
