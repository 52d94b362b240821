package rsrc

// Container is the parsed, editable form of one RSRC file. It keeps
// every unknown field verbatim so an unmodified container re-encodes
// to a semantically identical file.
type Container struct {
	// TypeTag is the 4-byte file type from the header (LVIN, LVAR, ...).
	TypeTag Tag
	// Layout is the container shape generation detected on read and
	// used again on write.
	Layout Layout
	// InfoReserved preserves the two unknown fields of the block info
	// list header. Zero in legacy-layout files, which have no such
	// header.
	InfoReserved [2]uint32
	// Blocks in file order.
	Blocks []*Block
	// Filename is the single stored name ending the info region of a
	// legacy-layout file. Unused in the extended layout.
	Filename []byte
	// Warnings accumulated during decode.
	Warnings []Warning
}

// FileType classifies the container by its header type tag.
func (c *Container) FileType() FileType {
	return FileTypeFromTag(c.TypeTag)
}

// FindBlock returns the first block with the given tag, or nil.
func (c *Container) FindBlock(tag Tag) *Block {
	for _, b := range c.Blocks {
		if b.Tag == tag {
			return b
		}
	}
	return nil
}

// warn records a non-fatal decode anomaly.
func (c *Container) warn(kind WarningKind, tag Tag, section int32, msg string) {
	c.Warnings = append(c.Warnings, Warning{Kind: kind, Tag: tag, Section: section, Msg: msg})
}

// Block is one tagged unit of the container. Tags are not required to
// be unique across a file.
type Block struct {
	Tag      Tag
	Sections []*Section
}

// Section is one alternative encoding of a block's content. Data holds
// the payload with its stored coding already reversed; Coding records
// that transform so the writer can replay it without inspecting the
// content.
type Section struct {
	Index int32
	// Name is the raw name-table entry for this section, nil when the
	// section has none. Extended layout only.
	Name []byte
	// Reserved0 and Reserved1 preserve the two unknown fields of the
	// on-disk section record.
	Reserved0 uint32
	Reserved1 uint32
	Coding    Coding
	Data      []byte
}
