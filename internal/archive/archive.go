// Package archive provides the selectable whole-file compression used
// when exported documents and extracted payloads are written to disk.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var ErrUnknownAlgorithm = errors.New("archive: unknown algorithm")

type Algorithm string

const (
	None   Algorithm = "none"
	Zstd   Algorithm = "zstd"
	LZ4    Algorithm = "lz4"
	Brotli Algorithm = "br"
)

// Parse resolves a command-line algorithm name.
func Parse(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case None, Zstd, LZ4, Brotli:
		return Algorithm(s), nil
	case "":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Ext returns the filename suffix for the algorithm, empty for None.
func (a Algorithm) Ext() string {
	if a == None {
		return ""
	}
	return "." + string(a)
}

// FromExt recognizes the algorithm from a filename suffix.
func FromExt(name string) Algorithm {
	for _, a := range []Algorithm{Zstd, LZ4, Brotli} {
		if len(name) > len(a.Ext()) && name[len(name)-len(a.Ext()):] == a.Ext() {
			return a
		}
	}
	return None
}

// Compress compresses in with the selected algorithm.
func Compress(a Algorithm, in []byte) ([]byte, error) {
	switch a {
	case None:
		return in, nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(in, nil), nil
	case LZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(in); err != nil {
			_ = zw.Close()
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Brotli:
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		if _, err := bw.Write(in); err != nil {
			_ = bw.Close()
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}
}

// Decompress reverses Compress. maxSize caps the output to guard
// against decompression bombs in files of unknown provenance.
func Decompress(a Algorithm, in []byte, maxSize int64) ([]byte, error) {
	switch a {
	case None:
		return in, nil
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(in, nil)
		if err != nil {
			return nil, err
		}
		if int64(len(out)) > maxSize {
			return nil, fmt.Errorf("archive: zstd output exceeds %d bytes", maxSize)
		}
		return out, nil
	case LZ4:
		return readBounded(lz4.NewReader(bytes.NewReader(in)), maxSize, "lz4")
	case Brotli:
		return readBounded(brotli.NewReader(bytes.NewReader(in)), maxSize, "brotli")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}
}

func readBounded(r io.Reader, maxSize int64, name string) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxSize {
		return nil, fmt.Errorf("archive: %s output exceeds %d bytes", name, maxSize)
	}
	return out, nil
}
