package ot

import (
	"bytes"
	"errors"
	"io"
)

// Reading bytes from a font's binary representation

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// --- Reader ----------------------------------------------------------------

// Reader is a cursor over a random-access byte source holding a font.
// Every read consumes the requested number of bytes at the current position and
// advances the position accordingly; integers are interpreted as big-endian.
//
// A read requesting more bytes than remain in the source fails with a
// *TruncatedInputError and leaves the position unchanged. Seek fails with an
// *InvalidOffsetError for targets outside of the source.
//
// A Reader is not safe for concurrent use, as Seek mutates its position. Clients
// decoding concurrently should hand a Clone to each goroutine.
type Reader struct {
	src  io.ReaderAt
	size int64
	pos  int64
	buf  [4]byte // scratch space for scalar reads
}

// NewReader creates a Reader for src, which holds size bytes of font data.
// src is typically an *os.File or a *bytes.Reader. The Reader does not take
// ownership of src; closing it remains the client's responsibility.
func NewReader(src io.ReaderAt, size int64) *Reader {
	if size < 0 {
		size = 0
	}
	return &Reader{src: src, size: size}
}

// ReaderFromBytes creates a Reader over an in-memory font binary.
// b must not change while the Reader is in use.
func ReaderFromBytes(b []byte) *Reader {
	return NewReader(bytes.NewReader(b), int64(len(b)))
}

// Clone returns an independent Reader over the same source, positioned at the
// same offset as r.
func (r *Reader) Clone() *Reader {
	return &Reader{src: r.src, size: r.size, pos: r.pos}
}

// Size returns the total size of the byte source.
func (r *Reader) Size() int64 {
	return r.size
}

// Offset returns the current position.
func (r *Reader) Offset() int64 {
	return r.pos
}

// Remaining returns the number of bytes between the current position and the end
// of the source.
func (r *Reader) Remaining() int64 {
	return r.size - r.pos
}

// Seek sets the position to an absolute offset from the start of the source.
// Seeking to exactly Size() is legal; any read thereafter will be truncated.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 || offset > r.size {
		return &InvalidOffsetError{Offset: offset, Size: r.size}
	}
	r.pos = offset
	return nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || int64(n) > r.Remaining() {
		return r.truncated(n)
	}
	r.pos += int64(n)
	return nil
}

// U16 reads a big-endian uint16.
func (r *Reader) U16() (uint16, error) {
	if err := r.fill(r.buf[:2]); err != nil {
		return 0, err
	}
	return u16(r.buf[:2]), nil
}

// I16 reads a big-endian int16.
func (r *Reader) I16() (int16, error) {
	n, err := r.U16()
	return int16(n), err
}

// U32 reads a big-endian uint32.
func (r *Reader) U32() (uint32, error) {
	if err := r.fill(r.buf[:4]); err != nil {
		return 0, err
	}
	return u32(r.buf[:4]), nil
}

// Tag reads a 4-byte tag.
func (r *Reader) Tag() (Tag, error) {
	n, err := r.U32()
	return Tag(n), err
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || int64(n) > r.Remaining() {
		return nil, r.truncated(n)
	}
	b := make([]byte, n)
	if err := r.fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// U16Array reads n consecutive big-endian uint16 values.
// The remaining size is checked before anything is allocated.
func (r *Reader) U16Array(n int) ([]uint16, error) {
	if n < 0 || int64(n)*2 > r.Remaining() {
		return nil, r.truncated(2 * n)
	}
	raw := make([]byte, 2*n)
	if err := r.fill(raw); err != nil {
		return nil, err
	}
	a := make([]uint16, n)
	for i := range a {
		a[i] = u16(raw[2*i:])
	}
	return a, nil
}

// I16Array reads n consecutive big-endian int16 values.
func (r *Reader) I16Array(n int) ([]int16, error) {
	a, err := r.U16Array(n)
	if err != nil {
		return nil, err
	}
	s := make([]int16, len(a))
	for i, v := range a {
		s[i] = int16(v)
	}
	return s, nil
}

// fill reads len(b) bytes at the current position and advances it.
func (r *Reader) fill(b []byte) error {
	if int64(len(b)) > r.Remaining() {
		return r.truncated(len(b))
	}
	n, err := r.src.ReadAt(b, r.pos)
	if n < len(b) {
		// the source is shorter than it claimed to be
		if err == nil || errors.Is(err, io.EOF) {
			return &TruncatedInputError{Offset: r.pos, Need: len(b), Have: n}
		}
		return err
	}
	r.pos += int64(len(b))
	return nil
}

func (r *Reader) truncated(need int) error {
	have := r.Remaining()
	if have < 0 {
		have = 0
	}
	return &TruncatedInputError{Offset: r.pos, Need: need, Have: int(have)}
}
