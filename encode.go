package rsrc

import (
	"fmt"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// Encode serializes the container back to the dual-header binary
// layout. The data region is emitted first, one size-prefixed payload
// per section padded to a 4-byte boundary, replaying each section's
// recorded coding. The info region follows: second header copy, list
// header (extended layout), blocks info with the decremented count
// encoding, section records and the name table. Both header copies are
// patched byte-identically once all offsets are final.
//
// Sections are written in container order, so a file decoded and
// re-encoded without edits reproduces its original region layout.
func (c *Container) Encode(opts ...WriteOption) ([]byte, error) {
	cfg := writeConfig{limits: defaultLimits(), codePage: DefaultCodePage}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if err := validateContainer(c, cfg.limits); err != nil {
		return nil, err
	}

	w := binary.NewWriter()
	h := rsrcHeader{
		Magic:      Magic,
		Version:    FormatVersion,
		TypeTag:    c.TypeTag,
		Creator:    Creator,
		DataOffset: rsrcHeaderSize,
	}
	writeRsrcHeader(w, h)

	// Data region. Offsets recorded here are relative to the region
	// start; names accumulate in block/section order, which makes the
	// table deterministic for re-encoded files.
	names := binary.NewWriter()
	dataOffsets := make([][]uint32, len(c.Blocks))
	nameOffsets := make([][]uint32, len(c.Blocks))
	for i, b := range c.Blocks {
		dataOffsets[i] = make([]uint32, len(b.Sections))
		nameOffsets[i] = make([]uint32, len(b.Sections))
		for j, s := range b.Sections {
			payload, err := encodePayload(s.Coding, s.Data)
			if err != nil {
				return nil, fmt.Errorf("%w (block %s section %d)", err, b.Tag, s.Index)
			}
			if uint64(len(payload)) > uint64(cfg.limits.MaxSectionPayload) {
				return nil, fmt.Errorf("%w: block %s section %d payload %d bytes", ErrLimitExceeded, b.Tag, s.Index, len(payload))
			}
			dataOffsets[i][j] = uint32(w.Len() - rsrcHeaderSize)
			w.WriteUint32(uint32(len(payload)))
			w.WriteBytes(payload)
			w.Pad(4)

			nameOffsets[i][j] = noNameOffset
			if c.Layout == ExtendedLayout && s.Name != nil {
				if len(s.Name) > 255 {
					return nil, fmt.Errorf("%w: section name %d bytes", ErrEncode, len(s.Name))
				}
				nameOffsets[i][j] = uint32(names.Len())
				names.WriteUint8(uint8(len(s.Name)))
				names.WriteBytes(s.Name)
			}
		}
	}
	h.InfoOffset = uint32(w.Len())
	h.DataSize = h.InfoOffset - h.DataOffset

	// Info region.
	writeRsrcHeader(w, h)
	startBytes := 0
	for _, b := range c.Blocks {
		startBytes += len(b.Sections) * sectionStartSize(c.Layout)
	}
	tableSize := blockInfoHeaderSize + len(c.Blocks)*blockHeaderSize + startBytes
	if c.Layout == ExtendedLayout {
		writeBlockInfoList(w, blockInfoList{
			Reserved0:       c.InfoReserved[0],
			Reserved1:       c.InfoReserved[1],
			HeaderSize:      rsrcHeaderSize,
			BlockInfoOffset: rsrcHeaderSize + blockInfoListSize,
			BlockInfoSize:   uint32(rsrcHeaderSize + blockInfoListSize + tableSize),
		})
	}

	w.WriteUint32(storedFromCount(len(c.Blocks)))
	startOff := uint32(blockInfoHeaderSize + len(c.Blocks)*blockHeaderSize)
	for _, b := range c.Blocks {
		writeBlockHeader(w, blockHeader{
			Ident:  b.Tag,
			Count:  storedFromCount(len(b.Sections)),
			Offset: startOff,
		})
		startOff += uint32(len(b.Sections) * sectionStartSize(c.Layout))
	}
	for i, b := range c.Blocks {
		for j, s := range b.Sections {
			writeSectionStart(w, sectionStart{
				Index:      s.Index,
				NameOffset: nameOffsets[i][j],
				Reserved0:  s.Reserved0,
				DataOffset: dataOffsets[i][j],
				Reserved1:  s.Reserved1,
			}, c.Layout)
		}
	}

	if c.Layout == ExtendedLayout {
		w.WriteBytes(names.Bytes())
	} else {
		if len(c.Filename) > 255 {
			return nil, fmt.Errorf("%w: filename %d bytes", ErrEncode, len(c.Filename))
		}
		w.WriteUint8(uint8(len(c.Filename)))
		w.WriteBytes(c.Filename)
	}
	h.InfoSize = uint32(w.Len()) - h.InfoOffset

	// Patch both header copies with the final offsets.
	hw := binary.NewWriter()
	writeRsrcHeader(hw, h)
	w.PatchBytes(0, hw.Bytes())
	w.PatchBytes(int(h.InfoOffset), hw.Bytes())
	return w.Bytes(), nil
}
