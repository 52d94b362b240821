package rsrc

import (
	"errors"
	"reflect"
	"testing"

	gobinary "github.com/logicossoftware/go-rsrc/internal/binary"
)

func TestRsrcHeaderRoundTrip(t *testing.T) {
	in := rsrcHeader{
		Magic:      Magic,
		Version:    FormatVersion,
		TypeTag:    MakeTag("LVIN"),
		Creator:    Creator,
		InfoOffset: 0x100,
		InfoSize:   0x80,
		DataOffset: rsrcHeaderSize,
		DataSize:   0xE0,
	}
	w := gobinary.NewWriter()
	writeRsrcHeader(w, in)
	if w.Len() != rsrcHeaderSize {
		t.Fatalf("header is %d bytes, want %d", w.Len(), rsrcHeaderSize)
	}
	out, err := readRsrcHeader(gobinary.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("header mismatch: %#v vs %#v", in, out)
	}
	if err := out.check(); err != nil {
		t.Fatal(err)
	}
}

func TestRsrcHeaderCheck(t *testing.T) {
	base := rsrcHeader{Magic: Magic, Version: FormatVersion, Creator: Creator}

	bad := base
	bad.Magic[0] = 'X'
	if err := bad.check(); !errors.Is(err, ErrFormat) {
		t.Fatalf("magic error = %v", err)
	}
	bad = base
	bad.Version = 4
	if err := bad.check(); !errors.Is(err, ErrFormat) {
		t.Fatalf("version error = %v", err)
	}
	bad = base
	bad.Creator = MakeTag("XXXX")
	if err := bad.check(); !errors.Is(err, ErrFormat) {
		t.Fatalf("creator error = %v", err)
	}
}

func TestBlockInfoListRoundTrip(t *testing.T) {
	in := blockInfoList{
		Reserved0:       1,
		Reserved1:       2,
		HeaderSize:      rsrcHeaderSize,
		BlockInfoOffset: rsrcHeaderSize + blockInfoListSize,
		BlockInfoSize:   0x70,
	}
	w := gobinary.NewWriter()
	writeBlockInfoList(w, in)
	if w.Len() != blockInfoListSize {
		t.Fatalf("list header is %d bytes, want %d", w.Len(), blockInfoListSize)
	}
	out, err := readBlockInfoList(gobinary.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if in != out {
		t.Fatalf("list header mismatch: %#v vs %#v", in, out)
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	in := blockHeader{Ident: MakeTag("BDHb"), Count: 2, Offset: 0x40}
	w := gobinary.NewWriter()
	writeBlockHeader(w, in)
	if w.Len() != blockHeaderSize {
		t.Fatalf("block header is %d bytes, want %d", w.Len(), blockHeaderSize)
	}
	out, err := readBlockHeader(gobinary.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if in != out {
		t.Fatalf("block header mismatch: %#v vs %#v", in, out)
	}
}

func TestSectionStartLayouts(t *testing.T) {
	in := sectionStart{Index: -1, NameOffset: 5, Reserved0: 6, DataOffset: 7, Reserved1: 8}

	t.Run("extended", func(t *testing.T) {
		w := gobinary.NewWriter()
		writeSectionStart(w, in, ExtendedLayout)
		if w.Len() != sectionStartSizeExt {
			t.Fatalf("record is %d bytes, want %d", w.Len(), sectionStartSizeExt)
		}
		out, err := readSectionStart(gobinary.NewReader(w.Bytes()), ExtendedLayout)
		if err != nil {
			t.Fatal(err)
		}
		if in != out {
			t.Fatalf("record mismatch: %#v vs %#v", in, out)
		}
	})

	t.Run("legacy", func(t *testing.T) {
		w := gobinary.NewWriter()
		writeSectionStart(w, in, LegacyLayout)
		if w.Len() != sectionStartSizeLegacy {
			t.Fatalf("record is %d bytes, want %d", w.Len(), sectionStartSizeLegacy)
		}
		out, err := readSectionStart(gobinary.NewReader(w.Bytes()), LegacyLayout)
		if err != nil {
			t.Fatal(err)
		}
		want := in
		want.NameOffset = noNameOffset // not stored in this layout
		if want != out {
			t.Fatalf("record mismatch: %#v vs %#v", want, out)
		}
	})
}

func TestCountEncoding(t *testing.T) {
	for _, n := range []int{1, 2, 4096} {
		if got := countFromStored(storedFromCount(n)); got != n {
			t.Fatalf("count %d round trips to %d", n, got)
		}
	}
	if storedFromCount(1) != 0 {
		t.Fatal("a single element must store as zero")
	}
}

func TestMakeTag(t *testing.T) {
	if MakeTag("vers").String() != "vers" {
		t.Fatal("four-character tag changed")
	}
	if MakeTag("du").String() != "du  " {
		t.Fatal("short tag not space padded")
	}
	if MakeTag("toolong").String() != "tool" {
		t.Fatal("long tag not truncated")
	}
}

func TestFileTypeMapping(t *testing.T) {
	tests := []struct {
		tag string
		ft  FileType
		ext string
	}{
		{"LVIN", FileTypeVI, "vi"},
		{"LVAR", FileTypeLLB, "llb"},
		{"LVCC", FileTypeControl, "ctl"},
		{"LVPJ", FileTypeProject, "lvproj"},
		{"????", FileTypeUnknown, "rsrc"},
	}
	for _, tt := range tests {
		ft := FileTypeFromTag(MakeTag(tt.tag))
		if ft != tt.ft {
			t.Fatalf("FileTypeFromTag(%q) = %v, want %v", tt.tag, ft, tt.ft)
		}
		if ft.Ext() != tt.ext {
			t.Fatalf("%v.Ext() = %q, want %q", ft, ft.Ext(), tt.ext)
		}
		if tt.ft != FileTypeUnknown && ft.TypeTag() != MakeTag(tt.tag) {
			t.Fatalf("%v.TypeTag() = %q, want %q", ft, ft.TypeTag(), tt.tag)
		}
	}
}
