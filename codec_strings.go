package rsrc

import (
	"fmt"
	"strings"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// libNamesCodec handles the library names block: a 4-byte count of
// Pascal strings naming the libraries that contain this file.
type libNamesCodec struct{}

func (libNamesCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	count, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("library names block too short (%d bytes)", len(data))
	}
	n := NewNode("LibraryNames")
	for i := uint32(0); i < count; i++ {
		name, err := readPascal(r)
		if err != nil {
			return nil, fmt.Errorf("library name %d: %v", i, err)
		}
		n.AddChild(NewNode("Library")).SetAttr("Name", ctx.CodePage.Decode(name))
	}
	if r.Remaining() > 0 {
		return nil, fmt.Errorf("library names block has %d trailing bytes", r.Remaining())
	}
	return n, nil
}

func (libNamesCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	w := binary.NewWriter()
	w.WriteUint32(uint32(len(n.Children)))
	for _, c := range n.Children {
		name, _ := c.Attr("Name")
		b, err := ctx.CodePage.Encode(name)
		if err != nil {
			return nil, err
		}
		if err := writePascal(w, b); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// libraryInfoCodec handles the link information block: a count of
// Pascal-string link names kept 2-byte aligned, so a name of even
// length is followed by a single padding byte. The padding rule must
// be replicated exactly or re-encoding diverges byte for byte.
type libraryInfoCodec struct{}

func (libraryInfoCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	count, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("link info block too short (%d bytes)", len(data))
	}
	n := NewNode("LinkInfo")
	for i := uint32(0); i < count; i++ {
		name, err := readPascal(r)
		if err != nil {
			return nil, fmt.Errorf("link name %d: %v", i, err)
		}
		if len(name)%2 == 0 {
			if err := r.Skip(1); err != nil {
				return nil, fmt.Errorf("link name %d padding: %v", i, err)
			}
		}
		n.AddChild(NewNode("Link")).SetAttr("Name", ctx.CodePage.Decode(name))
	}
	if rest := r.Remaining(); rest > 0 {
		tail, _ := r.ReadBytes(rest)
		n.Payload = append([]byte(nil), tail...)
	}
	return n, nil
}

func (libraryInfoCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	w := binary.NewWriter()
	w.WriteUint32(uint32(len(n.Children)))
	for _, c := range n.Children {
		name, _ := c.Attr("Name")
		b, err := ctx.CodePage.Encode(name)
		if err != nil {
			return nil, err
		}
		if err := writePascal(w, b); err != nil {
			return nil, err
		}
		if len(b)%2 == 0 {
			w.WriteUint8(0)
		}
	}
	w.WriteBytes(n.Payload)
	return w.Bytes(), nil
}

// Line ending notation used in text attributes, CR and LF spelled out
// so the value survives attribute whitespace handling.
func eolnToText(eoln string) string {
	return strings.NewReplacer("\r", "CR", "\n", "LF").Replace(eoln)
}

func eolnFromText(s string) string {
	return strings.NewReplacer("CR", "\r", "LF", "\n").Replace(s)
}

// detectEoln picks the line separator used by a stored string, so a
// decode that splits on it and a re-encode that joins with it restore
// the original bytes.
func detectEoln(s string) string {
	switch {
	case strings.Count(s, "\r\n") > strings.Count(s, "\n\r"):
		return "\r\n"
	case strings.Count(s, "\n\r") > 0:
		return "\n\r"
	case strings.Count(s, "\n") > strings.Count(s, "\r"):
		return "\n"
	case strings.Count(s, "\r") > 0:
		return "\r"
	default:
		return "\r\n"
	}
}

// stringBlockCodec handles the length-prefixed text blocks (title and
// description). The stored value is split into lines on its detected
// separator so multi-line text stays editable.
type stringBlockCodec struct {
	sizeLen int // width of the length prefix, 1 or 4 bytes
}

func (c stringBlockCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	var length int
	if c.sizeLen == 1 {
		v, err := r.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("string block too short (%d bytes)", len(data))
		}
		length = int(v)
	} else {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("string block too short (%d bytes)", len(data))
		}
		length = int(v)
	}
	content, err := r.ReadBytes(length)
	if err != nil {
		return nil, fmt.Errorf("string block declares %d bytes, %d available", length, r.Remaining())
	}
	text := ctx.CodePage.Decode(content)
	eoln := detectEoln(text)
	n := NewNode("Text")
	n.SetAttr("EOLN", eolnToText(eoln))
	for _, line := range strings.Split(text, eoln) {
		n.AddChild(NewNode("String")).SetAttr("Text", line)
	}
	return n, nil
}

func (c stringBlockCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	eolnText, _ := n.Attr("EOLN")
	eoln := eolnFromText(eolnText)
	lines := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		line, _ := child.Attr("Text")
		lines = append(lines, line)
	}
	content, err := ctx.CodePage.Encode(strings.Join(lines, eoln))
	if err != nil {
		return nil, err
	}
	w := binary.NewWriter()
	if c.sizeLen == 1 {
		if len(content) > 255 {
			return nil, fmt.Errorf("%w: string of %d bytes exceeds length prefix", ErrEncode, len(content))
		}
		w.WriteUint8(uint8(len(content)))
	} else {
		w.WriteUint32(uint32(len(content)))
	}
	w.WriteBytes(content)
	return w.Bytes(), nil
}

// archiveStringCodec handles the short string block. Only library
// archives store it as a plain Pascal string; in other file types its
// structure is unknown and the bytes pass through opaquely.
type archiveStringCodec struct{}

func (archiveStringCodec) Decode(data []byte, ctx Context) (*Node, error) {
	if ctx.FileType != FileTypeLLB {
		return passthroughCodec{}.Decode(data, ctx)
	}
	r := binary.NewReader(data)
	text, err := readPascal(r)
	if err != nil {
		return nil, fmt.Errorf("short string block too short (%d bytes)", len(data))
	}
	if r.Remaining() > 0 {
		return nil, fmt.Errorf("short string block has %d trailing bytes", r.Remaining())
	}
	n := NewNode("Text")
	n.SetAttr("Text", ctx.CodePage.Decode(text))
	return n, nil
}

func (archiveStringCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	if ctx.FileType != FileTypeLLB {
		return passthroughCodec{}.Encode(n, ctx)
	}
	text, _ := n.Attr("Text")
	b, err := ctx.CodePage.Encode(text)
	if err != nil {
		return nil, err
	}
	w := binary.NewWriter()
	if err := writePascal(w, b); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
