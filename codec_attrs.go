package rsrc

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// Attribute formatting shared by the block codecs. Numeric fields are
// decimal, flag fields hexadecimal, digests lowercase hex strings.

func setInt(n *Node, key string, v int64) {
	n.SetAttr(key, strconv.FormatInt(v, 10))
}

func getInt(n *Node, key string) (int64, error) {
	s, ok := n.Attr(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing attribute %q", ErrEncode, key)
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %q: %v", ErrEncode, key, err)
	}
	return v, nil
}

func setUint(n *Node, key string, v uint64) {
	n.SetAttr(key, strconv.FormatUint(v, 10))
}

func getUint(n *Node, key string) (uint64, error) {
	s, ok := n.Attr(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing attribute %q", ErrEncode, key)
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %q: %v", ErrEncode, key, err)
	}
	return v, nil
}

func setHexFlags(n *Node, key string, v uint64) {
	n.SetAttr(key, "0x"+strconv.FormatUint(v, 16))
}

func setHexBytes(n *Node, key string, b []byte) {
	n.SetAttr(key, hex.EncodeToString(b))
}

func getHexBytes(n *Node, key string, want int) ([]byte, error) {
	s, ok := n.Attr(key)
	if !ok {
		return nil, fmt.Errorf("%w: missing attribute %q", ErrEncode, key)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: attribute %q: %v", ErrEncode, key, err)
	}
	if len(b) != want {
		return nil, fmt.Errorf("%w: attribute %q has %d bytes, want %d", ErrEncode, key, len(b), want)
	}
	return b, nil
}

func setBool(n *Node, key string, v bool) {
	if v {
		n.SetAttr(key, "1")
	} else {
		n.SetAttr(key, "0")
	}
}

func getBool(n *Node, key string) (bool, error) {
	v, err := getInt(n, key)
	return v != 0, err
}
