package rsrc

// Attr is one key/value attribute of a tree node. Attributes keep their
// insertion order; files produced by environments that do not sort
// attributes round-trip only if the order is preserved.
type Attr struct {
	Key   string
	Value string
}

// Node is the editable intermediate form of a block section or of one
// of its fields. Opaque binary content lives in Payload, distinct from
// the textual attributes, so unknown bytes survive a decode/encode
// cycle untouched.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Payload  []byte
}

// NewNode creates a node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// SetAttr sets an attribute, replacing an existing key in place to keep
// attribute order stable.
func (n *Node) SetAttr(key, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// AddChild appends a child node and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildValue returns the value attribute of the first child with the
// given tag.
func (n *Node) ChildValue(tag string) (string, bool) {
	if c := n.Child(tag); c != nil {
		return c.Attr("value")
	}
	return "", false
}
