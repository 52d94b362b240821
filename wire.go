package rsrc

import (
	"fmt"

	"github.com/logicossoftware/go-rsrc/internal/binary"
)

// rsrcHeader is the 32-byte container header. Every file carries two
// byte-identical copies: one at offset 0, one at the start of the info
// region.
type rsrcHeader struct {
	Magic      [6]byte
	Version    uint16
	TypeTag    Tag
	Creator    Tag
	InfoOffset uint32
	InfoSize   uint32
	DataOffset uint32
	DataSize   uint32
}

func readRsrcHeader(r *binary.Reader) (rsrcHeader, error) {
	var h rsrcHeader
	buf, err := r.ReadBytes(6)
	if err != nil {
		return h, fmt.Errorf("%w: header", ErrTruncated)
	}
	copy(h.Magic[:], buf)
	if h.Version, err = r.ReadUint16(); err != nil {
		return h, fmt.Errorf("%w: header", ErrTruncated)
	}
	if err = readTag(r, &h.TypeTag); err != nil {
		return h, err
	}
	if err = readTag(r, &h.Creator); err != nil {
		return h, err
	}
	fields := []*uint32{&h.InfoOffset, &h.InfoSize, &h.DataOffset, &h.DataSize}
	for _, f := range fields {
		if *f, err = r.ReadUint32(); err != nil {
			return h, fmt.Errorf("%w: header", ErrTruncated)
		}
	}
	return h, nil
}

func writeRsrcHeader(w *binary.Writer, h rsrcHeader) {
	w.WriteBytes(h.Magic[:])
	w.WriteUint16(h.Version)
	w.WriteBytes(h.TypeTag[:])
	w.WriteBytes(h.Creator[:])
	w.WriteUint32(h.InfoOffset)
	w.WriteUint32(h.InfoSize)
	w.WriteUint32(h.DataOffset)
	w.WriteUint32(h.DataSize)
}

func (h rsrcHeader) check() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: bad magic %q", ErrFormat, h.Magic[:])
	}
	if h.Version != FormatVersion {
		return fmt.Errorf("%w: header format version %d", ErrFormat, h.Version)
	}
	if h.Creator != Creator {
		return fmt.Errorf("%w: bad creator tag %q", ErrFormat, h.Creator)
	}
	return nil
}

// blockInfoList is the 20-byte list header present only in the extended
// layout, directly after the second container header. HeaderSize echoes
// the container header size and is the layout detection key; offsets in
// it are relative to the start of the info region.
type blockInfoList struct {
	Reserved0       uint32
	Reserved1       uint32
	HeaderSize      uint32
	BlockInfoOffset uint32
	BlockInfoSize   uint32
}

func readBlockInfoList(r *binary.Reader) (blockInfoList, error) {
	var l blockInfoList
	fields := []*uint32{&l.Reserved0, &l.Reserved1, &l.HeaderSize, &l.BlockInfoOffset, &l.BlockInfoSize}
	for _, f := range fields {
		v, err := r.ReadUint32()
		if err != nil {
			return l, fmt.Errorf("%w: block info list", ErrTruncated)
		}
		*f = v
	}
	return l, nil
}

func writeBlockInfoList(w *binary.Writer, l blockInfoList) {
	w.WriteUint32(l.Reserved0)
	w.WriteUint32(l.Reserved1)
	w.WriteUint32(l.HeaderSize)
	w.WriteUint32(l.BlockInfoOffset)
	w.WriteUint32(l.BlockInfoSize)
}

// blockHeader is one 12-byte entry in the blocks info table. Count is
// stored decremented by one; Offset is relative to the position of the
// blocks info header.
type blockHeader struct {
	Ident  Tag
	Count  uint32
	Offset uint32
}

func readBlockHeader(r *binary.Reader) (blockHeader, error) {
	var bh blockHeader
	if err := readTag(r, &bh.Ident); err != nil {
		return bh, err
	}
	var err error
	if bh.Count, err = r.ReadUint32(); err != nil {
		return bh, fmt.Errorf("%w: block header", ErrTruncated)
	}
	if bh.Offset, err = r.ReadUint32(); err != nil {
		return bh, fmt.Errorf("%w: block header", ErrTruncated)
	}
	return bh, nil
}

func writeBlockHeader(w *binary.Writer, bh blockHeader) {
	w.WriteBytes(bh.Ident[:])
	w.WriteUint32(bh.Count)
	w.WriteUint32(bh.Offset)
}

// sectionStart is one per-section record. The extended layout stores
// the 20-byte form; the legacy layout omits NameOffset and stores 16
// bytes. DataOffset is relative to the start of the data region.
type sectionStart struct {
	Index      int32
	NameOffset uint32
	Reserved0  uint32
	DataOffset uint32
	Reserved1  uint32
}

func readSectionStart(r *binary.Reader, layout Layout) (sectionStart, error) {
	var ss sectionStart
	var err error
	if ss.Index, err = r.ReadInt32(); err != nil {
		return ss, fmt.Errorf("%w: section start", ErrTruncated)
	}
	if layout == ExtendedLayout {
		if ss.NameOffset, err = r.ReadUint32(); err != nil {
			return ss, fmt.Errorf("%w: section start", ErrTruncated)
		}
	} else {
		ss.NameOffset = noNameOffset
	}
	fields := []*uint32{&ss.Reserved0, &ss.DataOffset, &ss.Reserved1}
	for _, f := range fields {
		if *f, err = r.ReadUint32(); err != nil {
			return ss, fmt.Errorf("%w: section start", ErrTruncated)
		}
	}
	return ss, nil
}

func writeSectionStart(w *binary.Writer, ss sectionStart, layout Layout) {
	w.WriteInt32(ss.Index)
	if layout == ExtendedLayout {
		w.WriteUint32(ss.NameOffset)
	}
	w.WriteUint32(ss.Reserved0)
	w.WriteUint32(ss.DataOffset)
	w.WriteUint32(ss.Reserved1)
}

func sectionStartSize(layout Layout) int {
	if layout == ExtendedLayout {
		return sectionStartSizeExt
	}
	return sectionStartSizeLegacy
}

func readTag(r *binary.Reader, t *Tag) error {
	b, err := r.ReadBytes(4)
	if err != nil {
		return fmt.Errorf("%w: tag", ErrTruncated)
	}
	copy(t[:], b)
	return nil
}
