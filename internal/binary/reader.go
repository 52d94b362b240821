// Package binary provides low-level big-endian I/O over fully buffered
// RSRC container data. The container format requires random access via
// absolute offsets, so both Reader and Writer operate on byte slices
// rather than streams.
package binary

import (
	"encoding/binary"
	"fmt"
)

// RangeError is returned when a read would cross the end of the buffer.
// Off is the position of the failed read, Need the number of bytes
// requested, Size the buffer length.
type RangeError struct {
	Off  int
	Need int
	Size int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer size %d", e.Need, e.Off, e.Size)
}

// Reader reads big-endian values from a byte slice while tracking a
// position. Derived readers created with At share the underlying buffer
// but have independent positions.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// At returns a new reader over the same buffer positioned at offset.
func (r *Reader) At(offset int) *Reader {
	return &Reader{buf: r.buf, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Size returns the length of the underlying buffer.
func (r *Reader) Size() int {
	return len(r.buf)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.pos
}

// ReadBytes reads exactly n bytes from the current position.
// The returned slice aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &RangeError{Off: r.pos, Need: n, Size: len(r.buf)}
	}
	if n == 0 {
		return nil, nil
	}
	if r.pos+n > len(r.buf) || r.pos+n < 0 {
		return nil, &RangeError{Off: r.pos, Need: n, Size: len(r.buf)}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// Skip advances the position by n bytes, failing if that crosses the
// end of the buffer.
func (r *Reader) Skip(n int) error {
	if _, err := r.ReadBytes(n); err != nil {
		return err
	}
	return nil
}

// Align advances the position to the next multiple of alignment.
func (r *Reader) Align(alignment int) {
	if alignment <= 1 {
		return
	}
	if rem := r.pos % alignment; rem != 0 {
		r.pos += alignment - rem
	}
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) || n < 0 {
		return nil, &RangeError{Off: r.pos, Need: n, Size: len(r.buf)}
	}
	return r.buf[r.pos : r.pos+n], nil
}
