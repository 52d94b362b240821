package rsrc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// MarshalDocument renders a tree as an XML document for the external
// editing workflow. Attribute order is preserved as stored, and opaque
// payloads are emitted as base64 character data so binary content and
// editable text coexist in one file.
func MarshalDocument(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := marshalNode(enc, root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func marshalNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Key}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := marshalNode(enc, c); err != nil {
			return err
		}
	}
	if len(n.Payload) > 0 {
		data := base64.StdEncoding.EncodeToString(n.Payload)
		if err := enc.EncodeToken(xml.CharData(data)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// UnmarshalDocument parses an XML document produced by MarshalDocument
// back into a tree. Character data inside an element is read as the
// node's base64 payload; surrounding indentation is ignored.
func UnmarshalDocument(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := NewNode(t.Name.Local)
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Key: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrFormat)
				}
				root = n
			} else {
				stack[len(stack)-1].AddChild(n)
			}
			stack = append(stack, n)
			text.Reset()
		case xml.CharData:
			if len(stack) > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced document", ErrFormat)
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if payload := strings.Join(strings.Fields(text.String()), ""); payload != "" {
				b, err := base64.StdEncoding.DecodeString(payload)
				if err != nil {
					return nil, fmt.Errorf("%w: payload of %s: %v", ErrFormat, n.Tag, err)
				}
				n.Payload = b
			}
			text.Reset()
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrFormat)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unbalanced document", ErrFormat)
	}
	return root, nil
}
