package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderValues(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0xFF, 0xFF, 0xFF, 0xFF})
	if v, err := r.ReadUint8(); err != nil || v != 1 {
		t.Fatalf("ReadUint8 = %d, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x0203 {
		t.Fatalf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x0405 {
		t.Fatalf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt32(); err != nil || v != -1 {
		t.Fatalf("ReadInt32 = %d, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReaderRangeError(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.ReadUint32(); err == nil {
		t.Fatal("expected range error")
	}
	var re *RangeError
	_, err := r.ReadBytes(5)
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want RangeError", err)
	}
	if re.Need != 5 || re.Size != 2 {
		t.Fatalf("RangeError = %+v", re)
	}
	if _, err := r.ReadBytes(-1); err == nil {
		t.Fatal("negative read must fail")
	}
}

func TestReaderAtAndPeek(t *testing.T) {
	r := NewReader([]byte{0, 0, 0, 0, 0xAB, 0xCD})
	sub := r.At(4)
	if v, err := sub.ReadUint16(); err != nil || v != 0xABCD {
		t.Fatalf("At(4) read = %#x, %v", v, err)
	}
	if r.Pos() != 0 {
		t.Fatal("At must not move the parent reader")
	}
	p, err := r.Peek(4)
	if err != nil || !bytes.Equal(p, []byte{0, 0, 0, 0}) {
		t.Fatalf("Peek = % x, %v", p, err)
	}
	if r.Pos() != 0 {
		t.Fatal("Peek must not advance")
	}
	if _, err := r.Peek(10); err == nil {
		t.Fatal("oversized peek must fail")
	}
}

func TestReaderSkipAlign(t *testing.T) {
	r := NewReader(make([]byte, 10))
	if err := r.Skip(3); err != nil || r.Pos() != 3 {
		t.Fatalf("Skip: pos = %d, %v", r.Pos(), err)
	}
	r.Align(4)
	if r.Pos() != 4 {
		t.Fatalf("Align: pos = %d, want 4", r.Pos())
	}
	r.Align(4)
	if r.Pos() != 4 {
		t.Fatal("aligned position must not move")
	}
	if err := r.Skip(20); err == nil {
		t.Fatal("skip past end must fail")
	}
}

func TestWriterValuesAndPatch(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(1)
	w.WriteUint16(0x0203)
	w.WriteUint32(0x04050607)
	w.WriteInt32(-1)
	w.WriteBytes([]byte{9})
	want := []byte{1, 2, 3, 4, 5, 6, 7, 0xFF, 0xFF, 0xFF, 0xFF, 9}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("bytes = % x, want % x", w.Bytes(), want)
	}

	w.PatchUint32(3, 0xAABBCCDD)
	if w.Bytes()[3] != 0xAA || w.Bytes()[6] != 0xDD {
		t.Fatalf("patch failed: % x", w.Bytes())
	}
	w.PatchBytes(0, []byte{7, 7})
	if w.Bytes()[0] != 7 || w.Bytes()[1] != 7 {
		t.Fatalf("patch bytes failed: % x", w.Bytes())
	}
}

func TestWriterPad(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{1, 2, 3})
	w.Pad(4)
	if w.Len() != 4 {
		t.Fatalf("len = %d, want 4", w.Len())
	}
	w.Pad(4)
	if w.Len() != 4 {
		t.Fatal("aligned buffer must not grow")
	}
	w.WriteZeros(3)
	if w.Len() != 7 || w.Bytes()[6] != 0 {
		t.Fatalf("zeros: % x", w.Bytes())
	}
}
