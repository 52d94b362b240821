package rsrc

import (
	"fmt"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// Decode parses an RSRC container from a fully buffered byte slice.
// The format is offset driven and requires random access, so streaming
// input is not supported.
//
// Decode validates both header copies, walks the blocks info table and
// every per-block section record, reads each size-prefixed payload out
// of the data region, and reverses the payload coding (zlib or the XOR
// stream of protected payload blocks). Anomalies the salvage policy
// tolerates, such as a section that fails to inflate, are recorded as
// Warnings on the returned container; structural violations return an
// error and no container.
//
// Use ReadOption functions to customize behavior:
//   - WithReadLimits(l): set custom size limits
//   - WithRegistry(r): override the block codec registry
//   - WithStrict(true): turn warnings into errors
func Decode(data []byte, opts ...ReadOption) (*Container, error) {
	cfg := readConfig{limits: defaultLimits(), codePage: DefaultCodePage}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	r := binary.NewReader(data)
	h1, err := readRsrcHeader(r)
	if err != nil {
		return nil, err
	}
	if err := h1.check(); err != nil {
		return nil, err
	}
	if err := checkRegions(h1, len(data)); err != nil {
		return nil, err
	}

	h2, err := readRsrcHeader(r.At(int(h1.InfoOffset)))
	if err != nil {
		return nil, err
	}
	if err := h2.check(); err != nil {
		return nil, err
	}
	if h1.TypeTag != h2.TypeTag || h1.Version != h2.Version {
		return nil, fmt.Errorf("%w: header copies disagree", ErrFormat)
	}

	c := &Container{TypeTag: h1.TypeTag}

	// The info region continues after the second header copy. The
	// extended layout inserts a 20-byte list header there whose third
	// field echoes the container header size; its absence means the
	// blocks info follows directly.
	infoPos := int(h1.InfoOffset) + rsrcHeaderSize
	blockInfoPos := infoPos
	ir := r.At(infoPos)
	if peek, err := ir.Peek(blockInfoListSize); err == nil &&
		beUint32(peek[8:12]) == rsrcHeaderSize {
		list, err := readBlockInfoList(ir)
		if err != nil {
			return nil, err
		}
		c.Layout = ExtendedLayout
		c.InfoReserved = [2]uint32{list.Reserved0, list.Reserved1}
		blockInfoPos = int(h1.InfoOffset) + int(list.BlockInfoOffset)
		if blockInfoPos < infoPos+blockInfoListSize || blockInfoPos >= len(data) {
			return nil, fmt.Errorf("%w: blocks info at %d", ErrCorruptOffset, blockInfoPos)
		}
	} else {
		c.Layout = LegacyLayout
	}

	br := r.At(blockInfoPos)
	storedCount, err := br.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: blocks info header", ErrTruncated)
	}
	blockCount := countFromStored(storedCount)
	if blockCount > cfg.limits.MaxBlocks {
		return nil, fmt.Errorf("%w: %d blocks", ErrLimitExceeded, blockCount)
	}

	headers := make([]blockHeader, blockCount)
	for i := range headers {
		if headers[i], err = readBlockHeader(br); err != nil {
			return nil, err
		}
	}

	// Section records for all blocks are stored back to back after the
	// block headers; the name table (or the legacy filename) follows
	// the last record.
	starts := make([][]sectionStart, blockCount)
	totalSections := 0
	firstStart := blockInfoHeaderSize + blockCount*blockHeaderSize
	for i, bh := range headers {
		n := countFromStored(bh.Count)
		if n > cfg.limits.MaxSectionsPerBlock {
			return nil, fmt.Errorf("%w: block %s has %d sections", ErrLimitExceeded, bh.Ident, n)
		}
		if int(bh.Offset) < firstStart {
			return nil, fmt.Errorf("%w: block %s section records at %d", ErrCorruptOffset, bh.Ident, bh.Offset)
		}
		sr := r.At(blockInfoPos + int(bh.Offset))
		starts[i] = make([]sectionStart, n)
		for j := range starts[i] {
			if starts[i][j], err = readSectionStart(sr, c.Layout); err != nil {
				return nil, err
			}
		}
		totalSections += n
	}

	namesPos := blockInfoPos + firstStart + totalSections*sectionStartSize(c.Layout)
	infoEnd := int(h1.InfoOffset) + int(h1.InfoSize)
	if namesPos > len(data) {
		return nil, fmt.Errorf("%w: names table at %d", ErrTruncated, namesPos)
	}
	if infoEnd > namesPos && uint64(infoEnd-namesPos) > uint64(cfg.limits.MaxNameTable) {
		return nil, fmt.Errorf("%w: name table of %d bytes", ErrLimitExceeded, infoEnd-namesPos)
	}

	for i, bh := range headers {
		b := &Block{Tag: bh.Ident}
		if !cfg.registry.Known(bh.Ident) {
			c.warn(WarnUnknownTag, bh.Ident, -1, "no codec registered, using passthrough")
		}
		for _, ss := range starts[i] {
			s, err := decodeSection(r, c, bh.Ident, ss, h1, cfg, namesPos, infoEnd)
			if err != nil {
				return nil, err
			}
			b.Sections = append(b.Sections, s)
		}
		c.Blocks = append(c.Blocks, b)
	}

	if c.Layout == LegacyLayout {
		name, err := readPString(r.At(namesPos))
		if err != nil {
			return nil, fmt.Errorf("%w: filename", ErrTruncated)
		}
		c.Filename = name
	}

	if cfg.strict && len(c.Warnings) > 0 {
		w := c.Warnings[0]
		return nil, fmt.Errorf("%w: %s", ErrFormat, w.String())
	}
	return c, nil
}

func decodeSection(r *binary.Reader, c *Container, tag Tag, ss sectionStart, h rsrcHeader, cfg readConfig, namesPos, infoEnd int) (*Section, error) {
	s := &Section{
		Index:     ss.Index,
		Reserved0: ss.Reserved0,
		Reserved1: ss.Reserved1,
	}

	dataPos := int(h.DataOffset) + int(ss.DataOffset)
	dr := r.At(dataPos)
	size, err := dr.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: section %s:%d data header", ErrTruncated, tag, ss.Index)
	}
	if size > cfg.limits.MaxSectionPayload {
		return nil, fmt.Errorf("%w: section %s:%d payload %d bytes", ErrLimitExceeded, tag, ss.Index, size)
	}
	stored, err := dr.ReadBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("%w: section %s:%d payload", ErrTruncated, tag, ss.Index)
	}

	s.Coding = cfg.registry.Coding(tag, c.Layout)
	if c.Layout == LegacyLayout && s.Coding == CodingZlib {
		// Compression is not flag-declared in the legacy layout; keep
		// the raw bytes silently when the payload is not a stream.
		if out, err := inflatePayload(stored, cfg.limits.MaxUncompressed); err == nil {
			s.Data = out
			return s, s.readName(r, ss, namesPos, infoEnd)
		}
		s.Coding = CodingNone
		s.Data = append([]byte(nil), stored...)
		return s, s.readName(r, ss, namesPos, infoEnd)
	}

	out, warn, err := decodePayload(s.Coding, stored, cfg.limits.MaxUncompressed)
	if err != nil {
		return nil, err
	}
	if warn != nil {
		c.warn(warn.Kind, tag, ss.Index, warn.Msg)
		s.Coding = CodingNone
	}
	s.Data = append([]byte(nil), out...)
	return s, s.readName(r, ss, namesPos, infoEnd)
}

func (s *Section) readName(r *binary.Reader, ss sectionStart, namesPos, infoEnd int) error {
	if ss.NameOffset == noNameOffset {
		return nil
	}
	pos := namesPos + int(ss.NameOffset)
	if pos >= infoEnd {
		return fmt.Errorf("%w: section name at %d past info region end %d", ErrCorruptOffset, pos, infoEnd)
	}
	name, err := readPString(r.At(pos))
	if err != nil {
		return fmt.Errorf("%w: section name", ErrTruncated)
	}
	s.Name = name
	return nil
}

// checkRegions validates the structural ordering of the two container
// regions against the buffer bounds.
func checkRegions(h rsrcHeader, size int) error {
	dataEnd := int64(h.DataOffset) + int64(h.DataSize)
	infoEnd := int64(h.InfoOffset) + int64(h.InfoSize)
	if int(h.DataOffset) < rsrcHeaderSize {
		return fmt.Errorf("%w: data region at %d inside header", ErrCorruptOffset, h.DataOffset)
	}
	if dataEnd > int64(size) {
		return fmt.Errorf("%w: data region ends at %d, buffer is %d bytes", ErrTruncated, dataEnd, size)
	}
	if infoEnd > int64(size) {
		return fmt.Errorf("%w: info region ends at %d, buffer is %d bytes", ErrTruncated, infoEnd, size)
	}
	if int64(h.InfoOffset) < dataEnd {
		return fmt.Errorf("%w: info region at %d overlaps data region ending at %d", ErrCorruptOffset, h.InfoOffset, dataEnd)
	}
	if int(h.InfoSize) < rsrcHeaderSize+blockInfoHeaderSize {
		return fmt.Errorf("%w: info region size %d", ErrCorruptOffset, h.InfoSize)
	}
	return nil
}

// readPString reads a Pascal string with a one-byte length prefix.
func readPString(r *binary.Reader) ([]byte, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
