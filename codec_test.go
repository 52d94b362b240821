package rsrc

import (
	"bytes"
	"errors"
	"testing"

	gobinary "github.com/logicossoftware/go-rsrc/internal/binary"
)

func testCtx(t *testing.T) Context {
	t.Helper()
	cp, err := LookupCodePage(DefaultCodePage)
	if err != nil {
		t.Fatal(err)
	}
	return Context{
		CodePage: cp,
		Version:  VersionRecord{Major: 14, Stage: StageRelease},
		Layout:   ExtendedLayout,
		FileType: FileTypeVI,
	}
}

func saveRecordPayload(word uint32, tail []byte) []byte {
	w := gobinary.NewWriter()
	w.WriteUint32(word)
	w.WriteUint32(0x2000 | 0x40) // protected plus one exec flag

	fieldWidths := []int{4, 4, 2, 2, 2, 2, 4, 4, 2, 2, 4, 4, 4, 4}
	for i, width := range fieldWidths {
		switch width {
		case 2:
			w.WriteUint16(uint16(i + 1))
		default:
			w.WriteUint32(uint32(i + 1))
		}
	}
	sig := make([]byte, 16)
	for i := range sig {
		sig[i] = byte(i)
	}
	w.WriteBytes(sig)
	w.WriteUint32(0x44)
	w.WriteUint32(0x48)
	w.WriteUint16(0x4C)
	w.WriteUint16(0x4E)
	w.WriteBytes(bytes.Repeat([]byte{0xAB}, 16)) // Field50MD5
	w.WriteBytes(bytes.Repeat([]byte{0xCD}, 16)) // LibPassMD5
	w.WriteUint32(0x70)
	w.WriteUint32(0x74)

	vr := DecodeVersionWord(word)
	if atLeastRelease(vr, 10, 0) {
		w.WriteBytes(bytes.Repeat([]byte{0xEF}, 16))
	}
	if vr.AtLeast(14, 0) {
		w.WriteUint8(2)
	}
	if vr.AtLeast(15, 0) {
		w.WriteZeros(3)
		w.WriteUint32(0x8C)
	}
	w.WriteBytes(tail)
	return w.Bytes()
}

func TestCodecRoundTrips(t *testing.T) {
	ctx := testCtx(t)
	llbCtx := ctx
	llbCtx.FileType = FileTypeLLB

	icon := func(size int) []byte {
		b := make([]byte, size)
		for i := range b {
			b[i] = byte(i * 7)
		}
		return b
	}

	tests := []struct {
		name    string
		tag     string
		payload []byte
		ctx     Context
	}{
		{"version", "vers", versPayload(), ctx},
		{"version with language", "vers", append(versPayload(), 0, 9), ctx},
		{"save record v8", "LVSR", saveRecordPayload(0x08008000, nil), ctx},
		{"save record v15 with tail", "LVSR", saveRecordPayload(0x15008000, []byte{1, 2, 3}), ctx},
		{"password", "BDPW", icon(48), ctx},
		{"library names", "LIBN", []byte{0, 0, 0, 2, 1, 'A', 4, 'L', 'i', 'b', '2'}, ctx},
		{"link info with padding", "LIvi", []byte{0, 0, 0, 2, 2, 'a', 'b', 0, 3, 'a', 'b', 'c', 0xFF}, ctx},
		{"font table", "FTAB", []byte{
			0, 0, 0, 1, // header word, count of 2 stored as 1
			0, 1, 0, 2, 0, 3, 0, 4,
			0, 5, 0, 6, 0, 7, 0, 8,
			5, 'A', 'r', 'i', 'a', 'l',
			3, 'S', 'y', 's',
		}, ctx},
		{"history", "HIST", []byte{
			0, 0, 0, 1,
			0, 0, 0, 9, 0x12, 0x34, 0x56, 0x78, 0, 0, 0, 0, 0, 0, 0, 0,
			0xAA, 0xBB,
		}, ctx},
		{"icon bw", "ICON", icon(128), ctx},
		{"icon 4bit", "icl4", icon(512), ctx},
		{"icon 8bit", "icl8", icon(1024), ctx},
		{"title single line", "TITL", []byte{5, 'H', 'e', 'l', 'l', 'o'}, ctx},
		{"title crlf", "TITL", []byte{4, 'a', '\r', '\n', 'b'}, ctx},
		{"long string lf", "STRG", []byte{0, 0, 0, 11, 'l', 'i', 'n', 'e', '1', '\n', 'l', 'i', 'n', 'e', '2'}, ctx},
		{"short string in archive", "STR ", []byte{3, 'f', 'o', 'o'}, llbCtx},
		{"short string elsewhere", "STR ", []byte{1, 2, 3}, ctx},
		{"cosmetic parts", "CPMp", []byte{2, 7, 0, 0x10, 0, 0x20}, ctx},
		{"heap", "BDHP", []byte{0, 0, 0, 3, 1, 2, 3}, ctx},
		{"scalar u32", "MUID", []byte{0, 0, 0, 42}, ctx},
		{"scalar u16", "FPTD", []byte{0, 3}, ctx},
		{"scalar u8 hex", "FLAG", []byte{0x80}, ctx},
		{"opaque passthrough", "LVzp", []byte{9, 8, 7, 6}, ctx},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := DefaultRegistry().Lookup(MakeTag(tt.tag))
			n, err := codec.Decode(tt.payload, tt.ctx)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			out, err := codec.Encode(n, tt.ctx)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytes.Equal(out, tt.payload) {
				t.Fatalf("round trip mismatch:\n% x\nvs\n% x", out, tt.payload)
			}
		})
	}
}

func TestCodecDecodeErrors(t *testing.T) {
	ctx := testCtx(t)
	tests := []struct {
		name    string
		tag     string
		payload []byte
	}{
		{"password short", "BDPW", make([]byte, 47)},
		{"icon wrong size", "ICON", make([]byte, 5)},
		{"scalar wrong size", "MUID", []byte{0, 0, 1}},
		{"version trailing byte", "vers", append(versPayload(), 1)},
		{"version missing terminator", "vers", []byte{0x14, 0, 0x80, 1, 1, 'x', 1}},
		{"library names trailing", "LIBN", []byte{0, 0, 0, 1, 1, 'A', 9}},
		{"font table trailing", "FTAB", []byte{0, 0, 0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 1, 'A', 9}},
		{"heap trailing", "BDHP", []byte{0, 0, 0, 1, 5, 6}},
		{"heap short", "BDHP", []byte{0, 0, 0, 9, 1}},
		{"cosmetic parts trailing", "CPMp", []byte{1, 0, 0, 1, 9}},
		{"save record short", "LVSR", make([]byte, 10)},
		{"string block short", "TITL", []byte{9, 'a'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := DefaultRegistry().Lookup(MakeTag(tt.tag))
			if _, err := codec.Decode(tt.payload, ctx); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSaveRecordProtectedFlag(t *testing.T) {
	ctx := testCtx(t)
	codec := DefaultRegistry().Lookup(MakeTag("LVSR"))
	n, err := codec.Decode(saveRecordPayload(0x08008000, nil), ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := n.Attr("Protected"); v != "1" {
		t.Fatalf("Protected = %q, want 1", v)
	}
	if v, _ := n.Attr("ExecFlags"); v != "0x40" {
		t.Fatalf("ExecFlags = %q, want 0x40 with protected bit masked out", v)
	}
}

func TestScalarEncodeRange(t *testing.T) {
	ctx := testCtx(t)
	n := NewNode("Scalar")
	setUint(n, "Value", 0x10000)
	if _, err := (uintCodec{width: 2}).Encode(n, ctx); !errors.Is(err, ErrEncode) {
		t.Fatalf("error = %v, want %v", err, ErrEncode)
	}
}

func TestStringBlockLengthCap(t *testing.T) {
	ctx := testCtx(t)
	n := NewNode("Text")
	n.SetAttr("EOLN", "CRLF")
	n.AddChild(NewNode("String")).SetAttr("Text", string(bytes.Repeat([]byte{'a'}, 300)))
	if _, err := (stringBlockCodec{sizeLen: 1}).Encode(n, ctx); !errors.Is(err, ErrEncode) {
		t.Fatalf("error = %v, want %v", err, ErrEncode)
	}
}

func TestDetectEoln(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\r\nb", "\r\n"},
		{"a\n\rb", "\n\r"},
		{"a\nb", "\n"},
		{"a\rb", "\r"},
		{"plain", "\r\n"},
	}
	for _, tt := range tests {
		if got := detectEoln(tt.in); got != tt.want {
			t.Fatalf("detectEoln(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrettyTag(t *testing.T) {
	tests := []struct {
		tag    string
		pretty string
	}{
		{"LVSR", "LVSR"},
		{"STR ", "STR"},
		{"VI#1", "VIsh1"},
		{"icl8", "icl8"},
	}
	for _, tt := range tests {
		tag := MakeTag(tt.tag)
		got := prettyTag(tag)
		if got != tt.pretty {
			t.Fatalf("prettyTag(%q) = %q, want %q", tt.tag, got, tt.pretty)
		}
		if back := tagFromPretty(got); back != tag {
			t.Fatalf("tagFromPretty(%q) = %q, want %q", got, back, tag)
		}
	}
}

func TestRegistryCoding(t *testing.T) {
	r := DefaultRegistry()
	if got := r.Coding(MakeTag("BDHb"), ExtendedLayout); got != CodingZlib {
		t.Fatalf("BDHb coding = %v, want zlib", got)
	}
	if got := r.Coding(MakeTag("LVzp"), ExtendedLayout); got != CodingXor {
		t.Fatalf("LVzp coding = %v, want xor", got)
	}
	if got := r.Coding(MakeTag("LVzp"), LegacyLayout); got != CodingNone {
		t.Fatalf("LVzp legacy coding = %v, want none", got)
	}
	if got := r.Coding(MakeTag("TITL"), ExtendedLayout); got != CodingNone {
		t.Fatalf("TITL coding = %v, want none", got)
	}
	if !r.Known(MakeTag("vers")) || r.Known(MakeTag("ZZZZ")) {
		t.Fatal("Known() misreports registry contents")
	}
}
