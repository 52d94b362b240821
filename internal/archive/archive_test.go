package archive

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("exported document content\n"), 200)
	for _, a := range []Algorithm{None, Zstd, LZ4, Brotli} {
		t.Run(string(a), func(t *testing.T) {
			packed, err := Compress(a, payload)
			if err != nil {
				t.Fatal(err)
			}
			out, err := Decompress(a, packed, int64(len(payload)))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(out, payload) {
				t.Fatal("round trip mismatch")
			}
		})
	}
}

func TestDecompressSizeLimit(t *testing.T) {
	payload := bytes.Repeat([]byte{7}, 4096)
	for _, a := range []Algorithm{Zstd, LZ4, Brotli} {
		packed, err := Compress(a, payload)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Decompress(a, packed, 16); err == nil {
			t.Fatalf("%s: expected size limit error", a)
		}
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"none", "zstd", "lz4", "br", ""} {
		if _, err := Parse(s); err != nil {
			t.Fatalf("Parse(%q) = %v", s, err)
		}
	}
	if _, err := Parse("gzip"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("error = %v, want %v", err, ErrUnknownAlgorithm)
	}
}

func TestExtMapping(t *testing.T) {
	if None.Ext() != "" || Zstd.Ext() != ".zstd" {
		t.Fatal("Ext mapping wrong")
	}
	tests := []struct {
		name string
		want Algorithm
	}{
		{"doc.xml", None},
		{"doc.xml.zstd", Zstd},
		{"doc.xml.lz4", LZ4},
		{"doc.xml.br", Brotli},
		{".br", None}, // suffix only, no stem
	}
	for _, tt := range tests {
		if got := FromExt(tt.name); got != tt.want {
			t.Fatalf("FromExt(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := Compress(Algorithm("xz"), nil); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("compress error = %v", err)
	}
	if _, err := Decompress(Algorithm("xz"), nil, 1); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("decompress error = %v", err)
	}
}
