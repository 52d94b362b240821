package rsrc

import (
	"fmt"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// passwordCodec handles the diagram password block: three 16-byte
// digests. The content is copied through as opaque byte fields; hash
// computation and verification belong to an outside collaborator.
type passwordCodec struct{}

func (passwordCodec) Decode(data []byte, ctx Context) (*Node, error) {
	if len(data) != 48 {
		return nil, fmt.Errorf("password block is %d bytes, want 48", len(data))
	}
	n := NewNode("Password")
	setHexBytes(n, "PasswordMD5", data[0:16])
	setHexBytes(n, "Hash1", data[16:32])
	setHexBytes(n, "Hash2", data[32:48])
	return n, nil
}

func (passwordCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	w := binary.NewWriter()
	for _, key := range []string{"PasswordMD5", "Hash1", "Hash2"} {
		b, err := getHexBytes(n, key, 16)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	return w.Bytes(), nil
}

// fontTableCodec handles the font table block: a header word, a count
// of font records stored with the usual decrement, the fixed records,
// then one Pascal-string name per record. The two repeated passes keep
// their relative order.
type fontTableCodec struct{}

func (fontTableCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	field0, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("font table too short (%d bytes)", len(data))
	}
	stored, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("font table too short (%d bytes)", len(data))
	}
	count := countFromStored(uint32(stored))
	n := NewNode("FontTable")
	setUint(n, "Field0", uint64(field0))
	for i := 0; i < count; i++ {
		font := n.AddChild(NewNode("Font"))
		for _, key := range []string{"ID", "Style", "Size", "Reserved"} {
			v, err := r.ReadUint16()
			if err != nil {
				return nil, fmt.Errorf("font record %d: %v", i, err)
			}
			setUint(font, key, uint64(v))
		}
	}
	for i := 0; i < count; i++ {
		name, err := readPascal(r)
		if err != nil {
			return nil, fmt.Errorf("font name %d: %v", i, err)
		}
		n.Children[i].SetAttr("Name", ctx.CodePage.Decode(name))
	}
	if r.Remaining() > 0 {
		return nil, fmt.Errorf("font table has %d trailing bytes", r.Remaining())
	}
	return n, nil
}

func (fontTableCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	if len(n.Children) < 1 || len(n.Children) > 0x10000 {
		return nil, fmt.Errorf("%w: font table with %d records", ErrEncode, len(n.Children))
	}
	field0, err := getUint(n, "Field0")
	if err != nil {
		return nil, err
	}
	w := binary.NewWriter()
	w.WriteUint16(uint16(field0))
	w.WriteUint16(uint16(storedFromCount(len(n.Children))))
	for i, font := range n.Children {
		for _, key := range []string{"ID", "Style", "Size", "Reserved"} {
			v, err := getUint(font, key)
			if err != nil {
				return nil, fmt.Errorf("font record %d: %v", i, err)
			}
			w.WriteUint16(uint16(v))
		}
	}
	for i, font := range n.Children {
		name, _ := font.Attr("Name")
		b, err := ctx.CodePage.Encode(name)
		if err != nil {
			return nil, fmt.Errorf("font name %d: %v", i, err)
		}
		if err := writePascal(w, b); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// historyCodec handles the revision history blocks: a plain count of
// fixed 16-byte records. The timestamp encoding is unknown and kept as
// a raw 32-bit value, never decoded to calendar time.
type historyCodec struct{}

func (historyCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	count, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("history block too short (%d bytes)", len(data))
	}
	n := NewNode("History")
	for i := uint32(0); i < count; i++ {
		rev := n.AddChild(NewNode("Revision"))
		for _, key := range []string{"Number", "Timestamp", "Reserved0", "Reserved1"} {
			v, err := r.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("revision record %d: %v", i, err)
			}
			setUint(rev, key, uint64(v))
		}
	}
	if rest := r.Remaining(); rest > 0 {
		tail, _ := r.ReadBytes(rest)
		n.Payload = append([]byte(nil), tail...)
	}
	return n, nil
}

func (historyCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	w := binary.NewWriter()
	w.WriteUint32(uint32(len(n.Children)))
	for i, rev := range n.Children {
		for _, key := range []string{"Number", "Timestamp", "Reserved0", "Reserved1"} {
			v, err := getUint(rev, key)
			if err != nil {
				return nil, fmt.Errorf("revision record %d: %v", i, err)
			}
			w.WriteUint32(uint32(v))
		}
	}
	w.WriteBytes(n.Payload)
	return w.Bytes(), nil
}

// iconCodec handles the fixed-size icon planes. Pixel layout is out of
// scope; the plane is an opaque blob of known total length.
type iconCodec struct {
	size int
}

func (c iconCodec) Decode(data []byte, ctx Context) (*Node, error) {
	if len(data) != c.size {
		return nil, fmt.Errorf("icon plane is %d bytes, want %d", len(data), c.size)
	}
	n := NewNode("Icon")
	n.Payload = append([]byte(nil), data...)
	return n, nil
}

func (c iconCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	if len(n.Payload) != c.size {
		return nil, fmt.Errorf("%w: icon plane of %d bytes, want %d", ErrEncode, len(n.Payload), c.size)
	}
	return append([]byte(nil), n.Payload...), nil
}

// heapCodec handles the diagram and panel heap blocks: a 4-byte length
// followed by the heap stream. The stream's internal object tree is
// not interpreted here.
type heapCodec struct{}

func (heapCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	length, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("heap block too short (%d bytes)", len(data))
	}
	content, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("heap block declares %d bytes, %d available", length, r.Remaining())
	}
	if r.Remaining() > 0 {
		return nil, fmt.Errorf("heap block has %d trailing bytes", r.Remaining())
	}
	n := NewNode("Heap")
	n.Payload = append([]byte(nil), content...)
	return n, nil
}

func (heapCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	w := binary.NewWriter()
	w.WriteUint32(uint32(len(n.Payload)))
	w.WriteBytes(n.Payload)
	return w.Bytes(), nil
}
