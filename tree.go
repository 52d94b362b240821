package rsrc

import "fmt"

// DecodeTree converts a parsed container into the editable tree. Each
// block becomes a child of the RSRC root named by its pretty tag; each
// of its sections becomes a Section node wrapping the content produced
// by the registered codec. A section whose codec rejects its payload
// is kept as an opaque node and recorded as a warning on the
// container, so files that stricter tools refuse to open still decode.
func DecodeTree(c *Container, opts ...ReadOption) (*Node, error) {
	cfg := readConfig{limits: defaultLimits(), codePage: DefaultCodePage}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	cp, err := LookupCodePage(cfg.codePage)
	if err != nil {
		return nil, err
	}
	ctx := Context{
		CodePage: cp,
		Version:  ResolveVersion(c),
		Layout:   c.Layout,
		FileType: c.FileType(),
	}

	root := NewNode("RSRC")
	root.SetAttr("Type", c.TypeTag.String())
	root.SetAttr("Layout", c.Layout.String())
	if c.Layout == ExtendedLayout {
		setHexFlags(root, "Int1", uint64(c.InfoReserved[0]))
		setHexFlags(root, "Int2", uint64(c.InfoReserved[1]))
	} else {
		root.SetAttr("Filename", cp.Decode(c.Filename))
	}

	for _, b := range c.Blocks {
		bn := root.AddChild(NewNode(prettyTag(b.Tag)))
		if tagFromPretty(prettyTag(b.Tag)) != b.Tag {
			bn.SetAttr("Ident", b.Tag.String())
		}
		codec := cfg.registry.Lookup(b.Tag)
		for _, s := range b.Sections {
			sn := bn.AddChild(NewNode("Section"))
			setInt(sn, "Index", int64(s.Index))
			if s.Name != nil {
				sn.SetAttr("Name", cp.Decode(s.Name))
			}
			sn.SetAttr("Coding", s.Coding.String())
			setHexFlags(sn, "Reserved0", uint64(s.Reserved0))
			setHexFlags(sn, "Reserved1", uint64(s.Reserved1))

			content, err := codec.Decode(s.Data, ctx)
			if err != nil {
				c.warn(WarnBlockParse, b.Tag, s.Index, err.Error())
				content, _ = passthroughCodec{}.Decode(s.Data, ctx)
			}
			sn.AddChild(content)
		}
	}

	if cfg.strict && len(c.Warnings) > 0 {
		w := c.Warnings[0]
		return nil, fmt.Errorf("%w: %s", ErrFormat, w.String())
	}
	return root, nil
}

// EncodeTree converts an edited tree back into a container ready for
// Encode. Every content node is re-encoded through the registry; a
// field that no longer fits its fixed-width slot aborts the whole
// conversion.
func EncodeTree(root *Node, opts ...WriteOption) (*Container, error) {
	cfg := writeConfig{limits: defaultLimits(), codePage: DefaultCodePage}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	cp, err := LookupCodePage(cfg.codePage)
	if err != nil {
		return nil, err
	}
	if root.Tag != "RSRC" {
		return nil, fmt.Errorf("%w: root node is %q, want RSRC", ErrEncode, root.Tag)
	}

	c := &Container{}
	typ, ok := root.Attr("Type")
	if !ok {
		return nil, fmt.Errorf("%w: root node has no Type", ErrEncode)
	}
	c.TypeTag = MakeTag(typ)
	layout, _ := root.Attr("Layout")
	switch layout {
	case LegacyLayout.String():
		c.Layout = LegacyLayout
		name, _ := root.Attr("Filename")
		if c.Filename, err = cp.Encode(name); err != nil {
			return nil, err
		}
	case ExtendedLayout.String(), "":
		c.Layout = ExtendedLayout
		for i, key := range []string{"Int1", "Int2"} {
			if _, ok := root.Attr(key); !ok {
				continue
			}
			v, err := getUint(root, key)
			if err != nil {
				return nil, err
			}
			c.InfoReserved[i] = uint32(v)
		}
	default:
		return nil, fmt.Errorf("%w: unknown layout %q", ErrEncode, layout)
	}

	ctx := Context{
		CodePage: cp,
		Version:  treeVersion(root, c.Layout),
		Layout:   c.Layout,
		FileType: FileTypeFromTag(c.TypeTag),
	}

	for _, bn := range root.Children {
		tag := tagFromPretty(bn.Tag)
		if ident, ok := bn.Attr("Ident"); ok {
			tag = MakeTag(ident)
		}
		b := &Block{Tag: tag}
		codec := cfg.registry.Lookup(tag)
		for _, sn := range bn.Children {
			if sn.Tag != "Section" {
				return nil, fmt.Errorf("%w: block %s contains %q, want Section", ErrEncode, tag, sn.Tag)
			}
			s, err := encodeTreeSection(sn, tag, codec, ctx, cp)
			if err != nil {
				return nil, err
			}
			b.Sections = append(b.Sections, s)
		}
		c.Blocks = append(c.Blocks, b)
	}
	return c, nil
}

func encodeTreeSection(sn *Node, tag Tag, codec Codec, ctx Context, cp *CodePage) (*Section, error) {
	s := &Section{}
	idx, err := getInt(sn, "Index")
	if err != nil {
		return nil, fmt.Errorf("block %s: %v", tag, err)
	}
	s.Index = int32(idx)
	if name, ok := sn.Attr("Name"); ok {
		if s.Name, err = cp.Encode(name); err != nil {
			return nil, err
		}
	}
	for _, f := range []struct {
		key string
		dst *uint32
	}{{"Reserved0", &s.Reserved0}, {"Reserved1", &s.Reserved1}} {
		if _, ok := sn.Attr(f.key); !ok {
			continue
		}
		v, err := getUint(sn, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = uint32(v)
	}
	coding, _ := sn.Attr("Coding")
	if s.Coding, err = codingFromString(coding); err != nil {
		return nil, err
	}
	if s.Coding == CodingXor && ctx.Layout == LegacyLayout {
		return nil, fmt.Errorf("%w: %s coding in %s layout (block %s section %d)", ErrVersionMismatch, s.Coding, ctx.Layout, tag, s.Index)
	}
	if len(sn.Children) != 1 {
		return nil, fmt.Errorf("%w: section %s:%d has %d content nodes, want 1", ErrEncode, tag, s.Index, len(sn.Children))
	}
	content := sn.Children[0]
	if content.Tag == "Opaque" {
		// Sections salvaged or hand-marked opaque echo their bytes
		// without consulting the codec.
		s.Data, err = passthroughCodec{}.Encode(content, ctx)
	} else {
		s.Data, err = codec.Encode(content, ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (block %s section %d)", err, tag, s.Index)
	}
	return s, nil
}

func codingFromString(s string) (Coding, error) {
	switch s {
	case CodingNone.String(), "":
		return CodingNone, nil
	case CodingZlib.String():
		return CodingZlib, nil
	case CodingXor.String():
		return CodingXor, nil
	default:
		return CodingNone, fmt.Errorf("%w: unknown coding %q", ErrEncode, s)
	}
}

// treeVersion recovers the source version from an edited tree so codec
// variant selection matches what a fresh decode of the result would
// see.
func treeVersion(root *Node, layout Layout) VersionRecord {
	for _, name := range []string{"LVSR", "vers"} {
		bn := root.Child(name)
		if bn == nil {
			continue
		}
		for _, sn := range bn.Children {
			for _, content := range sn.Children {
				vn := content
				if content.Tag == "SaveRecord" {
					vn = content.Child("Version")
				}
				if vn == nil || vn.Tag != "Version" {
					continue
				}
				if vr, err := versionFromNode(vn); err == nil {
					return vr
				}
			}
		}
	}
	if layout == ExtendedLayout {
		return VersionRecord{Major: 8, Stage: StageRelease}
	}
	return VersionRecord{Major: 5, Stage: StageRelease}
}
