package rsrc

import (
	"fmt"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// uintCodec handles the single-integer blocks: a lone big-endian value
// of fixed width and nothing else. Flag-like blocks render in hex.
type uintCodec struct {
	width int // 1, 2 or 4 bytes
	hex   bool
}

func (c uintCodec) Decode(data []byte, ctx Context) (*Node, error) {
	if len(data) != c.width {
		return nil, fmt.Errorf("scalar block is %d bytes, want %d", len(data), c.width)
	}
	r := binary.NewReader(data)
	var v uint64
	switch c.width {
	case 1:
		b, _ := r.ReadUint8()
		v = uint64(b)
	case 2:
		b, _ := r.ReadUint16()
		v = uint64(b)
	default:
		b, _ := r.ReadUint32()
		v = uint64(b)
	}
	n := NewNode("Scalar")
	if c.hex {
		setHexFlags(n, "Value", v)
	} else {
		setUint(n, "Value", v)
	}
	return n, nil
}

func (c uintCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	v, err := getUint(n, "Value")
	if err != nil {
		return nil, err
	}
	if v>>(uint(c.width)*8) != 0 {
		return nil, fmt.Errorf("%w: value %d exceeds %d-byte field", ErrEncode, v, c.width)
	}
	w := binary.NewWriter()
	switch c.width {
	case 1:
		w.WriteUint8(uint8(v))
	case 2:
		w.WriteUint16(uint16(v))
	default:
		w.WriteUint32(uint32(v))
	}
	return w.Bytes(), nil
}

// cosmeticPartsCodec handles the cosmetic parts map block: a one-byte
// element count, one unknown byte, then 16-bit part values.
type cosmeticPartsCodec struct{}

func (cosmeticPartsCodec) Decode(data []byte, ctx Context) (*Node, error) {
	r := binary.NewReader(data)
	count, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("cosmetic parts block too short (%d bytes)", len(data))
	}
	field1, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("cosmetic parts block too short (%d bytes)", len(data))
	}
	n := NewNode("CosmeticParts")
	setUint(n, "Field1", uint64(field1))
	for i := 0; i < int(count); i++ {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("cosmetic part %d: %v", i, err)
		}
		part := n.AddChild(NewNode("Part"))
		setUint(part, "Value", uint64(v))
	}
	if r.Remaining() > 0 {
		return nil, fmt.Errorf("cosmetic parts block has %d trailing bytes", r.Remaining())
	}
	return n, nil
}

func (cosmeticPartsCodec) Encode(n *Node, ctx Context) ([]byte, error) {
	if len(n.Children) > 255 {
		return nil, fmt.Errorf("%w: %d cosmetic parts exceed count field", ErrEncode, len(n.Children))
	}
	field1, err := getUint(n, "Field1")
	if err != nil {
		return nil, err
	}
	w := binary.NewWriter()
	w.WriteUint8(uint8(len(n.Children)))
	w.WriteUint8(uint8(field1))
	for _, c := range n.Children {
		v, err := getUint(c, "Value")
		if err != nil {
			return nil, err
		}
		w.WriteUint16(uint16(v))
	}
	return w.Bytes(), nil
}
