package rsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/klauspost/compress/zlib"
	gobinary "github.com/logicossoftware/go-rsrc/internal/binary"
)

// Function variables for testing injection.
var (
	newZlibReader = func(r io.Reader) (io.ReadCloser, error) { return zlib.NewReader(r) }
	readAll       = io.ReadAll
)

// Maximum expansion ratio zlib can produce. A declared uncompressed
// size beyond this is not a valid stream.
const zlibMaxRatio = 1032

// xorKeySeed is the initial rolling key of the stream cipher used by
// password-protected payload blocks.
const xorKeySeed uint32 = 0xEDB88320

// decodePayload reverses the stored coding of a section payload. For
// CodingZlib the stored bytes begin with a 4-byte declared uncompressed
// length followed by a zlib stream. A stream that fails the plausibility
// bounds or fails to inflate is returned unchanged together with a
// non-nil Warning; the caller keeps the raw bytes and records the
// anomaly instead of failing the whole file.
func decodePayload(coding Coding, stored []byte, maxUncompressed uint64) ([]byte, *Warning, error) {
	switch coding {
	case CodingNone:
		return stored, nil, nil
	case CodingXor:
		return xorDecrypt(stored), nil, nil
	case CodingZlib:
		out, err := inflatePayload(stored, maxUncompressed)
		if err != nil {
			if errors.Is(err, ErrLimitExceeded) {
				return nil, nil, err
			}
			return stored, &Warning{Kind: WarnCompression, Msg: err.Error()}, nil
		}
		return out, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown coding %d", ErrEncode, coding)
	}
}

// encodePayload applies the recorded coding before a payload is placed
// in the data region. The coding flag recorded at decode time is
// replayed as-is; payload content is never inspected to choose one.
func encodePayload(coding Coding, payload []byte) ([]byte, error) {
	switch coding {
	case CodingNone:
		return payload, nil
	case CodingXor:
		return xorEncrypt(payload), nil
	case CodingZlib:
		return deflatePayload(payload)
	default:
		return nil, fmt.Errorf("%w: unknown coding %d", ErrEncode, coding)
	}
}

func inflatePayload(stored []byte, maxUncompressed uint64) ([]byte, error) {
	if len(stored) < 4 {
		return nil, fmt.Errorf("compressed payload too short (%d bytes)", len(stored))
	}
	r := gobinary.NewReader(stored)
	usize, _ := r.ReadUint32()
	streamLen := len(stored) - 4
	if uint64(usize) > maxUncompressed {
		return nil, fmt.Errorf("%w: uncompressed length %d", ErrLimitExceeded, usize)
	}
	if uint64(usize) > uint64(streamLen)*zlibMaxRatio {
		return nil, fmt.Errorf("declared size %d exceeds max expansion of %d stream bytes", usize, streamLen)
	}
	if streamLen > 32 && uint64(usize) < uint64(streamLen)*9/10 {
		return nil, fmt.Errorf("declared size %d implausibly small for %d stream bytes", usize, streamLen)
	}
	zr, err := newZlibReader(bytes.NewReader(stored[4:]))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := readAll(io.LimitReader(zr, int64(usize)+1))
	if err != nil {
		return nil, err
	}
	if uint32(len(out)) != usize {
		return nil, fmt.Errorf("inflated to %d bytes, declared %d", len(out), usize)
	}
	return out, nil
}

func deflatePayload(payload []byte) ([]byte, error) {
	w := gobinary.NewWriter()
	w.WriteUint32(uint32(len(payload)))
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("%w: deflate: %v", ErrEncode, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: deflate: %v", ErrEncode, err)
	}
	w.WriteBytes(buf.Bytes())
	return w.Bytes(), nil
}

// xorDecrypt reverses the rolling-key XOR stream applied to protected
// payload blocks. The key folds each recovered plaintext byte back in,
// so the stream is position dependent.
func xorDecrypt(in []byte) []byte {
	out := make([]byte, len(in))
	key := xorKeySeed
	for i, c := range in {
		p := byte(key) ^ c
		out[i] = p
		key = uint32(p) ^ bits.RotateLeft32(key, 1)
	}
	return out
}

// xorEncrypt is the inverse of xorDecrypt.
func xorEncrypt(in []byte) []byte {
	out := make([]byte, len(in))
	key := xorKeySeed
	for i, p := range in {
		out[i] = byte(key) ^ p
		key = uint32(p) ^ bits.RotateLeft32(key, 1)
	}
	return out
}
