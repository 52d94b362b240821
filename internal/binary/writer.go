package binary

import "encoding/binary"

// Writer appends big-endian values to a growing buffer. Offsets written
// before they are known can be patched in place once the final layout
// is settled, which the container writer uses to fix up both header
// copies after the data and info regions are emitted.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends data to the buffer.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteUint8 appends an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends a big-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32 appends a big-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteInt32 appends a big-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteZeros appends n zero bytes.
func (w *Writer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// Pad appends zero bytes until the length is a multiple of alignment.
func (w *Writer) Pad(alignment int) {
	if alignment <= 1 {
		return
	}
	if rem := len(w.buf) % alignment; rem != 0 {
		w.WriteZeros(alignment - rem)
	}
}

// PatchUint32 overwrites a previously written big-endian uint32 at offset.
func (w *Writer) PatchUint32(offset int, v uint32) {
	binary.BigEndian.PutUint32(w.buf[offset:offset+4], v)
}

// PatchBytes overwrites previously written bytes at offset.
func (w *Writer) PatchBytes(offset int, data []byte) {
	copy(w.buf[offset:offset+len(data)], data)
}
